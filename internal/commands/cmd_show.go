package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/acknowlist/internal/acknowlist"
	"github.com/colonyops/acknowlist/internal/core/ack"
	"github.com/colonyops/acknowlist/internal/core/styles"
	"github.com/colonyops/acknowlist/internal/tui/views/detail"
)

const showWidth = 80

type ShowCmd struct {
	flags *Flags
	app   *acknowlist.App

	// flags
	markdown bool
}

// NewShowCmd creates a new show command
func NewShowCmd(flags *Flags, app *acknowlist.App) *ShowCmd {
	return &ShowCmd{flags: flags, app: app}
}

// Register adds the show command to the application
func (cmd *ShowCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "show",
		Usage:     "Print one acknowledgement",
		UsageText: "acknowlist show [--markdown] <title|index>",
		Description: `Prints the title, license and full text of one acknowledgement.

The argument is either a title (matched ignoring case and accents) or the
index shown by 'acknowlist ls'.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "markdown",
				Usage:       "render the text as markdown",
				Destination: &cmd.markdown,
			},
		},
		ShellComplete: TitleCompleter(cmd.app),
		Action:        cmd.run,
	})

	return app
}

func (cmd *ShowCmd) run(_ context.Context, c *cli.Command) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("missing argument: title or index")
	}

	var selected *ack.Detail
	presenter, _ := cmd.app.Load(func(d ack.Detail) { selected = &d })

	row, err := findRow(presenter, query)
	if err != nil {
		return err
	}
	if err := presenter.Select(row); err != nil {
		return fmt.Errorf("select %q: %w", query, err)
	}
	if selected == nil {
		return fmt.Errorf("select %q: no detail", query)
	}

	markdown := cmd.markdown || cmd.app.Config.TUI.Markdown
	out := c.Root().Writer
	_, err = fmt.Fprint(out, renderDetail(*selected, markdown, isTerminal(out)))
	return err
}

// findRow matches query as a title first, then as a row index. Index bounds
// are left to Presenter.Select.
func findRow(p *ack.Presenter, query string) (int, error) {
	if row, ok := p.Find(query); ok {
		return row, nil
	}

	if n, err := strconv.Atoi(query); err == nil {
		return n, nil
	}

	return 0, fmt.Errorf("no acknowledgement titled %q", query)
}

func renderDetail(d ack.Detail, markdown, color bool) string {
	var b strings.Builder

	b.WriteString(stylize(color, styles.CommandHeaderStyle, d.Heading()))
	b.WriteString("\n")

	e := d.Entry()
	if e.License != "" {
		b.WriteString(stylize(color, styles.TextMutedStyle, "License: "+e.License))
		b.WriteString("\n")
	}
	if link, ok := d.Link(); ok {
		b.WriteString(stylize(color, styles.TextMutedStyle, link))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	body := d.Body()
	if markdown {
		if rendered, ok := detail.RenderMarkdown(body, showWidth); ok {
			body = rendered
		}
	}
	b.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		b.WriteString("\n")
	}

	return b.String()
}
