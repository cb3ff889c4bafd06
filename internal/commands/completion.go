package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/acknowlist/internal/acknowlist"
)

// TitleCompleter returns a ShellCompleteFunc that suggests acknowledgement
// titles as positional completions.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func TitleCompleter(app *acknowlist.App) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		// Delegate to default flag completion when typing a flag
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		if app.Config == nil {
			return
		}

		presenter, _ := app.Load(nil)
		w := cmd.Root().Writer
		for _, title := range presenter.Entries().Titles() {
			_, _ = fmt.Fprintln(w, title)
		}
	}
}
