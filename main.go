package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/acknowlist/internal/acknowlist"
	"github.com/colonyops/acknowlist/internal/commands"
	"github.com/colonyops/acknowlist/internal/core/config"
	"github.com/colonyops/acknowlist/internal/core/styles"
	"github.com/colonyops/acknowlist/pkg/logutils"
	"github.com/colonyops/acknowlist/pkg/utils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, buildInfo populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func buildInfo() acknowlist.BuildInfo {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	return acknowlist.BuildInfo{Version: v, Commit: c, Date: d}
}

func build() string {
	b := buildInfo()
	short := b.Commit
	if len(short) > 7 {
		short = short[:7]
	}
	return fmt.Sprintf("%s (%s) %s", b.Version, short, b.Date)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		ackApp    = &acknowlist.App{}
	)

	flags := &commands.Flags{}

	app := commands.NewRootCmd(flags, ackApp)
	app.Version = build()

	app.Before = func(ctx context.Context, c *cli.Command) (context.Context, error) {
		// Console logs go through a deferred writer so the TUI can hold
		// them until the terminal is restored.
		if flags.LogFile == "" {
			flags.Logs = utils.NewDeferredWriter(os.Stderr)
		}

		logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile, flags.Logs)
		if err != nil {
			return ctx, fmt.Errorf("setup logger: %w", err)
		}
		log.Logger = logger
		logCloser = closer

		cfg, err := config.Load(flags.ConfigPath)
		if err != nil {
			return ctx, fmt.Errorf("load config: %w", err)
		}

		flags.ApplyOverrides(c, cfg)
		if err := cfg.Validate(); err != nil {
			return ctx, fmt.Errorf("invalid flags: %w", err)
		}
		flags.Config = cfg

		// Apply configured theme (validation ensures name is valid)
		palette, _ := styles.GetPalette(cfg.TUI.Theme)
		styles.SetTheme(palette)

		a, err := acknowlist.New(cfg, os.Getenv)
		if err != nil {
			return ctx, err
		}
		a.Build = buildInfo()

		// Populate the pre-allocated App struct (commands already hold a pointer to it)
		*ackApp = *a

		return ctx, nil
	}

	app.After = func(ctx context.Context, c *cli.Command) error {
		if flags.Logs != nil {
			if err := flags.Logs.Flush(); err != nil {
				return fmt.Errorf("flush logs: %w", err)
			}
		}

		// Close log file
		if logCloser != nil {
			logCloser()
		}
		return nil
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
