package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/acknowlist/internal/acknowlist"
	"github.com/colonyops/acknowlist/internal/core/styles"
	"github.com/colonyops/acknowlist/pkg/iojson"
)

type ValidateCmd struct {
	flags *Flags
	app   *acknowlist.App

	// flags
	jsonOutput bool
}

// NewValidateCmd creates a new validate command.
func NewValidateCmd(flags *Flags, app *acknowlist.App) *ValidateCmd {
	return &ValidateCmd{flags: flags, app: app}
}

// Register adds the validate command to the application.
func (cmd *ValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "validate",
		Usage:     "Check the configuration and the acknowledgements source",
		UsageText: "acknowlist validate [--json]",
		Description: `Validates the configuration file, resolves the acknowledgements source and parses it.

Reports the number of entries, entries dropped for having no title, and the
effective header and footer. Exits with status 1 when the configuration is
invalid or the source cannot be loaded.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

// ValidationReport summarizes a validate run.
type ValidationReport struct {
	Valid       bool     `json:"valid"`
	ConfigError string   `json:"config_error,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
	Source      string   `json:"source"`
	Path        string   `json:"path,omitempty"`
	Loaded      bool     `json:"loaded"`
	LoadError   string   `json:"load_error,omitempty"`
	Entries     int      `json:"entries"`
	Dropped     int      `json:"dropped"`
	Header      *string  `json:"header"`
	Footer      *string  `json:"footer"`
}

func (cmd *ValidateCmd) run(_ context.Context, c *cli.Command) error {
	report := cmd.report()

	if cmd.jsonOutput {
		if err := iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, report); err != nil {
			return err
		}
	} else {
		out := c.Root().Writer
		writeReport(out, report, isTerminal(out))
	}

	if !report.Valid {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *ValidateCmd) report() ValidationReport {
	cfg := cmd.app.Config
	r := ValidationReport{
		Warnings: cfg.Warnings(),
		Source:   cfg.Source,
	}

	if err := cfg.ValidateDeep(cmd.flags.ConfigPath); err != nil {
		r.ConfigError = err.Error()
	}

	presenter, parser := cmd.app.Load(nil)
	r.Path = presenter.Source()
	r.Entries = presenter.RowCount()

	switch {
	case parser == nil:
		r.LoadError = "source not found in search paths: " + strings.Join(cmd.app.Resolver.SearchPaths(), ", ")
	case parser.Err() != nil:
		r.LoadError = parser.Err().Error()
	default:
		r.Loaded = presenter.Loaded()
		r.Dropped = parser.Dropped()
	}

	if header, ok := presenter.Header(); ok {
		r.Header = &header
	}
	if footer, ok := presenter.Footer(); ok {
		r.Footer = &footer
	}

	r.Valid = r.ConfigError == "" && r.Loaded
	return r
}

func writeReport(w io.Writer, r ValidationReport, color bool) {
	ok := func(format string, args ...any) {
		_, _ = fmt.Fprintln(w, stylize(color, styles.TextSuccessStyle, "✓ "+fmt.Sprintf(format, args...)))
	}
	warn := func(format string, args ...any) {
		_, _ = fmt.Fprintln(w, stylize(color, styles.TextWarningStyle, "! "+fmt.Sprintf(format, args...)))
	}
	fail := func(format string, args ...any) {
		_, _ = fmt.Fprintln(w, stylize(color, styles.TextErrorStyle, "✗ "+fmt.Sprintf(format, args...)))
	}

	if r.ConfigError != "" {
		fail("config: %s", r.ConfigError)
	} else {
		ok("config: valid")
	}
	for _, msg := range r.Warnings {
		warn("config: %s", msg)
	}

	if r.Loaded {
		ok("source: %s", r.Path)
		ok("entries: %d", r.Entries)
	} else {
		fail("source %q: %s", r.Source, r.LoadError)
	}
	if r.Dropped > 0 {
		warn("dropped %d entries without a title", r.Dropped)
	}

	_, _ = fmt.Fprintf(w, "  header: %s\n", quoteOrNone(r.Header))
	_, _ = fmt.Fprintf(w, "  footer: %s\n", quoteOrNone(r.Footer))
}

func quoteOrNone(s *string) string {
	if s == nil {
		return "(none)"
	}
	return fmt.Sprintf("%q", *s)
}
