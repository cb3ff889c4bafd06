package commands

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/acknowlist/internal/acknowlist"
	"github.com/colonyops/acknowlist/internal/tui"
)

type TuiCmd struct {
	flags *Flags
	app   *acknowlist.App

	// flags
	markdown bool
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *acknowlist.App) *TuiCmd {
	return &TuiCmd{
		flags: flags,
		app:   app,
	}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "markdown",
			Usage:       "render license text as markdown",
			Sources:     cli.EnvVars("ACKNOWLIST_MARKDOWN"),
			Destination: &cmd.markdown,
		},
	}
}

// Register adds the tui command to the application
func (cmd *TuiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "tui",
		Usage:     "Browse acknowledgements interactively",
		UsageText: "acknowlist tui [--markdown]",
		Description: `Opens the acknowledgements list. Select an entry to read its license text.

This is the default command when acknowlist runs without arguments.`,
		Flags:  cmd.Flags(),
		Action: cmd.Run,
	})

	return app
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(_ context.Context, _ *cli.Command) error {
	cfg := cmd.app.Config

	nav := tui.NewNavigator()
	presenter, _ := cmd.app.Load(nav.Show)

	deps := tui.Deps{
		Presenter: presenter,
		Navigator: nav,
		Opener:    cmd.app.Opener,
		BuildInfo: tui.BuildInfo(cmd.app.Build),
	}
	opts := tui.Opts{
		Modal:    cfg.TUI.Modal,
		Markdown: cmd.markdown || cfg.TUI.Markdown,
		Locale:   cmd.app.Localizer.Tag().String(),
		Theme:    cfg.TUI.Theme,
	}

	if cmd.flags.Logs != nil {
		cmd.flags.Logs.Hold()
		defer func() {
			if err := cmd.flags.Logs.Flush(); err != nil {
				log.Error().Err(err).Msg("failed to flush buffered logs")
			}
		}()
	}

	p := tea.NewProgram(tui.New(deps, opts))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	return nil
}
