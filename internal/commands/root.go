package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/acknowlist/internal/acknowlist"
)

// NewRootCmd builds the acknowlist command tree. Lifecycle hooks and the
// version are left to the caller so docgen can render the same tree.
func NewRootCmd(flags *Flags, app *acknowlist.App) *cli.Command {
	root := &cli.Command{
		Name:      "acknowlist",
		Usage:     "Browse the third-party acknowledgements of a CocoaPods project",
		UsageText: "acknowlist [global options] command [command options]",
		Description: `acknowlist reads the acknowledgements file CocoaPods generates for a target
(Pods-<target>-acknowledgements.plist), a JSON or YAML export of it, or a
SwiftPM Package.resolved, and shows the acknowledged libraries sorted by title, with their license text.

Run 'acknowlist' with no arguments to open the interactive browser.
Run 'acknowlist ls' to print the list.`,
		Flags:                 GlobalFlags(flags),
		EnableShellCompletion: true,
	}

	tuiCmd := NewTuiCmd(flags, app)
	root.Flags = append(root.Flags, tuiCmd.Flags()...)

	root = tuiCmd.Register(root)
	root = NewLsCmd(flags, app).Register(root)
	root = NewShowCmd(flags, app).Register(root)
	root = NewValidateCmd(flags, app).Register(root)
	root = NewDocCmd(flags).Register(root)

	// TUI is the default action when no subcommand is provided
	root.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'acknowlist --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	return root
}
