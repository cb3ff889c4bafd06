package utils

import (
	"bytes"
	"io"
	"sync"
)

// DeferredWriter passes writes through to its target until Hold is called.
// While held, writes are buffered in memory; Flush writes the buffer to the
// target and resumes passthrough. Safe for concurrent use.
type DeferredWriter struct {
	mu     sync.Mutex
	target io.Writer
	held   bool
	buf    bytes.Buffer
}

// NewDeferredWriter creates a writer that forwards to target.
func NewDeferredWriter(target io.Writer) *DeferredWriter {
	return &DeferredWriter{target: target}
}

// Write forwards p to the target, or buffers it while held.
func (d *DeferredWriter) Write(p []byte) (n int, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.held || d.target == nil {
		return d.buf.Write(p)
	}
	return d.target.Write(p)
}

// Hold starts buffering writes.
func (d *DeferredWriter) Hold() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.held = true
}

// Flush writes all buffered data to the target, clears the buffer and
// resumes passthrough.
func (d *DeferredWriter) Flush() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.held = false
	if d.buf.Len() == 0 || d.target == nil {
		return nil
	}

	_, err := d.buf.WriteTo(d.target)
	return err
}
