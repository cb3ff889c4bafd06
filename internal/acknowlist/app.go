// Package acknowlist wires configuration, localization, source resolution
// and link opening into the services the commands and TUI consume.
package acknowlist

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/colonyops/acknowlist/internal/core/ack"
	"github.com/colonyops/acknowlist/internal/core/config"
	"github.com/colonyops/acknowlist/internal/core/i18n"
	"github.com/colonyops/acknowlist/internal/core/logging"
	"github.com/colonyops/acknowlist/internal/core/resource"
	"github.com/colonyops/acknowlist/pkg/executil"
)

// BuildInfo holds build-time metadata.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// App is the central entry point for all acknowlist operations.
// Commands and TUI consume App instead of cherry-picking raw dependencies.
type App struct {
	Config    *config.Config
	Resolver  *resource.Resolver
	Localizer *i18n.Localizer
	Opener    *executil.Opener
	Build     BuildInfo

	logger zerolog.Logger
}

// New constructs an App from cfg. getenv supplies the locale environment and
// may be nil.
func New(cfg *config.Config, getenv func(string) string) (*App, error) {
	bundles, err := i18n.Embedded()
	if err != nil {
		return nil, fmt.Errorf("load embedded locales: %w", err)
	}

	if cfg.I18n.Dir != "" {
		extra, err := i18n.LoadDir(cfg.I18n.Dir)
		if err != nil {
			return nil, fmt.Errorf("load locales from %s: %w", cfg.I18n.Dir, err)
		}
		bundles = append(bundles, extra...)
	}

	return &App{
		Config:    cfg,
		Resolver:  resource.New(cfg.SearchPaths, ack.Extensions),
		Localizer: i18n.New(i18n.Preferred(cfg.Locale, getenv), bundles...),
		Opener:    executil.NewOpener(&executil.RealExecutor{}, cfg.OpenCommand),
		logger:    logging.Component("app"),
	}, nil
}

// SourcePath resolves the configured source. It returns "" when nothing
// matches, which presenters treat as an empty document.
func (a *App) SourcePath() string {
	path, _ := a.Resolver.Resolve(a.Config.Source)
	return path
}

// NewPresenter creates an unloaded presenter configured from the app.
func (a *App) NewPresenter(onSelect func(ack.Detail)) *ack.Presenter {
	logger := logging.Component("presenter")
	return ack.NewPresenter(ack.PresenterOptions{
		Localizer:      a.Localizer,
		Language:       a.Localizer.Tag(),
		HeaderOverride: a.Config.Header,
		FooterOverride: a.Config.Footer,
		OnSelect:       onSelect,
		Logger:         &logger,
	})
}

// Load resolves the source and fills a presenter from it. The parser is
// returned for diagnostics and is nil when no source was found.
func (a *App) Load(onSelect func(ack.Detail)) (*ack.Presenter, *ack.Parser) {
	p := a.NewPresenter(onSelect)

	path := a.SourcePath()
	if path == "" {
		a.logger.Debug().Str("source", a.Config.Source).Msg("no source resolved")
		p.Load("")
		return p, nil
	}

	parser := ack.NewParser(path)
	p.LoadFrom(parser)

	a.logger.Debug().
		Str("source", path).
		Int("entries", p.RowCount()).
		Int("dropped", parser.Dropped()).
		Msg("acknowledgements loaded")
	return p, parser
}
