package commands

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/colonyops/acknowlist/internal/core/ack"
	"github.com/colonyops/acknowlist/internal/core/config"
	"github.com/colonyops/acknowlist/internal/core/i18n"
	"github.com/colonyops/acknowlist/internal/core/styles"
)

type DocCmd struct {
	flags    *Flags
	defaults bool
}

func NewDocCmd(flags *Flags) *DocCmd {
	return &DocCmd{flags: flags}
}

func (cmd *DocCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "doc",
		Usage: "Configuration and localization reference",
		Description: `Prints reference material for acknowlist.

Use 'acknowlist doc config' to see the effective configuration.
Use 'acknowlist doc locales' to list the bundled translations.`,
		Commands: []*cli.Command{
			cmd.configCmd(),
			cmd.localesCmd(),
		},
	})
	return app
}

func (cmd *DocCmd) configCmd() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Show the effective configuration as YAML",
		Description: `Outputs the configuration after defaults, the config file and flags are applied.

Use --defaults to show the built-in defaults instead, as a starting point for
a new config file.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "defaults",
				Usage:       "show built-in defaults, ignoring the config file and flags",
				Destination: &cmd.defaults,
			},
		},
		Action: cmd.runConfig,
	}
}

func (cmd *DocCmd) runConfig(_ context.Context, c *cli.Command) error {
	cfg := config.DefaultConfig()
	if !cmd.defaults && cmd.flags.Config != nil {
		cfg = *cmd.flags.Config
	}
	return printConfig(c.Root().Writer, cfg)
}

func printConfig(w io.Writer, cfg config.Config) error {
	_, _ = fmt.Fprintf(w, "# acknowlist configuration\n# default location: %s\n", DefaultConfigPath())
	_, _ = fmt.Fprintf(w, "# themes: %v\n", styles.ThemeNames())

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

func (cmd *DocCmd) localesCmd() *cli.Command {
	return &cli.Command{
		Name:  "locales",
		Usage: "List bundled translations",
		Description: `Outputs every bundled language with its translated screen title and footer.

Extra translations can be added with i18n.dir in the config file: one
<tag>.yaml file per language with the keys listed here.`,
		Action: cmd.runLocales,
	}
}

func (cmd *DocCmd) runLocales(_ context.Context, c *cli.Command) error {
	bundles, err := i18n.Embedded()
	if err != nil {
		return fmt.Errorf("load locales: %w", err)
	}
	printLocales(c.Root().Writer, bundles)
	return nil
}

func printLocales(w io.Writer, bundles []i18n.Bundle) {
	slices.SortFunc(bundles, func(a, b i18n.Bundle) int {
		return strings.Compare(a.Tag.String(), b.Tag.String())
	})

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "TAG\t%s\t%s\n", ack.KeyScreenTitle, ack.KeyGeneratedByFooter)
	for _, b := range bundles {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", b.Tag, b.Strings[ack.KeyScreenTitle], b.Strings[ack.KeyGeneratedByFooter])
	}
	_ = tw.Flush()
}
