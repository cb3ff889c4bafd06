package executil

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	// ErrNoCommand is returned when no open command is configured.
	ErrNoCommand = errors.New("no open command configured")
	// ErrInvalidURL is returned for empty or non-web URLs.
	ErrInvalidURL = errors.New("invalid url")
)

// Opener opens web links with an external command such as xdg-open.
type Opener struct {
	exec    Executor
	command string
	args    []string
}

// NewOpener creates an opener for command. The command may carry leading
// arguments ("open -a Safari"); the URL is appended last.
func NewOpener(exec Executor, command string) *Opener {
	fields := strings.Fields(command)
	o := &Opener{exec: exec}
	if len(fields) > 0 {
		o.command = fields[0]
		o.args = fields[1:]
	}
	return o
}

// Command returns the program the opener runs.
func (o *Opener) Command() string {
	return o.command
}

// Open launches the configured command for rawURL. Only http and https
// URLs are accepted.
func (o *Opener) Open(ctx context.Context, rawURL string) error {
	if o.command == "" {
		return ErrNoCommand
	}

	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	args := append(append([]string(nil), o.args...), u.String())
	if _, err := o.exec.Run(ctx, o.command, args...); err != nil {
		return fmt.Errorf("open %s: %w", u.String(), err)
	}
	return nil
}
