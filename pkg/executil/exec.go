// Package executil provides command execution utilities.
package executil

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

const maxOutputLen = 500

// limitedWriter caps writes to a bytes.Buffer at a maximum byte count.
// Bytes beyond the limit are silently discarded.
type limitedWriter struct {
	buf *bytes.Buffer
	n   int64
	max int64
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	if w.n >= w.max {
		return len(p), nil
	}
	remaining := w.max - w.n
	origLen := len(p)
	if int64(origLen) > remaining {
		p = p[:remaining]
	}
	n, err := w.buf.Write(p)
	w.n += int64(n)
	if err != nil {
		return n, err
	}
	return origLen, nil
}

// Executor runs external commands.
type Executor interface {
	// Run executes a command and returns its combined output.
	Run(ctx context.Context, cmd string, args ...string) ([]byte, error)
}

// RealExecutor calls actual commands.
type RealExecutor struct{}

// Run executes a command and returns its combined output. Output is capped
// at 500 bytes so a noisy browser launcher cannot flood the status line; on
// failure the trimmed output becomes part of the error message. The original
// *exec.ExitError is preserved via wrapping.
func (e *RealExecutor) Run(ctx context.Context, cmd string, args ...string) ([]byte, error) {
	var buf bytes.Buffer
	w := &limitedWriter{buf: &buf, max: maxOutputLen}

	c := exec.CommandContext(ctx, cmd, args...)
	c.Stdout = w
	c.Stderr = w
	if err := c.Run(); err != nil {
		if msg := strings.TrimSpace(buf.String()); msg != "" {
			return buf.Bytes(), fmt.Errorf("exec %s: %s: %w", cmd, msg, err)
		}
		return buf.Bytes(), fmt.Errorf("exec %s: %w", cmd, err)
	}
	return buf.Bytes(), nil
}
