package commands

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/acknowlist/internal/acknowlist"
	"github.com/colonyops/acknowlist/internal/core/styles"
	"github.com/colonyops/acknowlist/pkg/iojson"
)

type LsCmd struct {
	flags *Flags
	app   *acknowlist.App

	// flags
	jsonOutput bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags, app *acknowlist.App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List acknowledgements",
		UsageText: "acknowlist ls [--json]",
		Description: `Prints the acknowledged libraries sorted by title, with their index, license and repository.

Use --json for JSON lines output that can be piped through jq.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

type lsEntry struct {
	Index      int    `json:"index"`
	Title      string `json:"title"`
	License    string `json:"license,omitempty"`
	Repository string `json:"repository,omitempty"`
}

func (cmd *LsCmd) run(_ context.Context, c *cli.Command) error {
	presenter, _ := cmd.app.Load(nil)
	entries := presenter.Entries()

	if len(entries) == 0 {
		if !cmd.jsonOutput {
			_, _ = fmt.Fprintln(c.Root().ErrWriter, "No acknowledgements found")
		}
		return nil
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for i, e := range entries {
			row := lsEntry{Index: i, Title: e.Title, License: e.License, Repository: e.Repository}
			if err := iojson.WriteLine(out, row); err != nil {
				return fmt.Errorf("encode entry: %w", err)
			}
		}
		return nil
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "#\tTITLE\tLICENSE\tREPOSITORY")
	for i, e := range entries {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i, e.Title, orDash(e.License), orDash(e.Repository))
	}
	_ = w.Flush()

	return writeTable(out, buf.String(), isTerminal(out))
}

// writeTable writes a tabwriter table, styling the header line when color
// is wanted. Styling after alignment keeps escape codes out of the column
// width calculation.
func writeTable(w io.Writer, table string, color bool) error {
	header, rest, _ := strings.Cut(table, "\n")
	header = stylize(color, styles.CommandHeaderStyle, header)
	_, err := fmt.Fprintf(w, "%s\n%s", header, rest)
	return err
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// stylize renders s with st only when color output is wanted.
func stylize(color bool, st lipgloss.Style, s string) string {
	if !color {
		return s
	}
	return st.Render(s)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
