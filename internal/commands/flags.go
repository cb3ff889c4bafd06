package commands

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/acknowlist/internal/core/config"
	"github.com/colonyops/acknowlist/pkg/utils"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string

	// Overrides applied on top of the config file when set.
	Source string
	Header string
	Footer string
	Locale string
	Theme  string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// Logs buffers console log output while the TUI owns the terminal.
	// Nil when logging to a file.
	Logs *utils.DeferredWriter
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "acknowlist", "config.yaml")
}

// GlobalFlags returns the root command flags bound to f.
func GlobalFlags(f *Flags) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error, fatal, panic)",
			Sources:     cli.EnvVars("ACKNOWLIST_LOG_LEVEL"),
			Value:       "warn",
			Destination: &f.LogLevel,
		},
		&cli.StringFlag{
			Name:        "log-file",
			Usage:       "write JSON logs to this file instead of stderr",
			Sources:     cli.EnvVars("ACKNOWLIST_LOG_FILE"),
			Destination: &f.LogFile,
		},
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "path to config file",
			Sources:     cli.EnvVars("ACKNOWLIST_CONFIG"),
			Value:       DefaultConfigPath(),
			Destination: &f.ConfigPath,
		},
		&cli.StringFlag{
			Name:        "source",
			Aliases:     []string{"s"},
			Usage:       "acknowledgements source, as a path or a name resolved against search_paths",
			Sources:     cli.EnvVars("ACKNOWLIST_SOURCE"),
			Destination: &f.Source,
		},
		&cli.StringFlag{
			Name:        "header",
			Usage:       "replace the header text (empty hides it)",
			Sources:     cli.EnvVars("ACKNOWLIST_HEADER"),
			Destination: &f.Header,
		},
		&cli.StringFlag{
			Name:        "footer",
			Usage:       "replace the footer text (empty hides it)",
			Sources:     cli.EnvVars("ACKNOWLIST_FOOTER"),
			Destination: &f.Footer,
		},
		&cli.StringFlag{
			Name:        "locale",
			Usage:       "preferred language tag (defaults to LC_ALL, LC_MESSAGES, LANG)",
			Sources:     cli.EnvVars("ACKNOWLIST_LOCALE"),
			Destination: &f.Locale,
		},
		&cli.StringFlag{
			Name:        "theme",
			Usage:       "color theme",
			Sources:     cli.EnvVars("ACKNOWLIST_THEME"),
			Destination: &f.Theme,
		},
	}
}

// ApplyOverrides copies the flags the user set onto cfg.
func (f *Flags) ApplyOverrides(c *cli.Command, cfg *config.Config) {
	if c.IsSet("source") {
		cfg.Source = f.Source
	}
	if c.IsSet("header") {
		header := f.Header
		cfg.Header = &header
	}
	if c.IsSet("footer") {
		footer := f.Footer
		cfg.Footer = &footer
	}
	if c.IsSet("locale") {
		cfg.Locale = f.Locale
	}
	if c.IsSet("theme") {
		cfg.TUI.Theme = f.Theme
	}
}
