package acknowlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/acknowlist/internal/core/ack"
	"github.com/colonyops/acknowlist/internal/core/config"
)

const sampleDoc = `{
  "header": "This application makes use of the following third party libraries:",
  "footer": "Generated by CocoaPods - https://cocoapods.org",
  "entries": [
    {"title": "SnapKit", "footer": "MIT"},
    {"footer": "no title"},
    {"title": "Alamofire", "footer": "MIT"}
  ]
}`

func newTestApp(t *testing.T, mutate func(*config.Config)) *App {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.SearchPaths = []string{t.TempDir()}
	if mutate != nil {
		mutate(&cfg)
	}
	app, err := New(&cfg, nil)
	require.NoError(t, err)
	return app
}

func writeSource(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(sampleDoc), 0o644))
}

func TestApp_LoadResolvesSource(t *testing.T) {
	app := newTestApp(t, nil)
	dir := app.Config.SearchPaths[0]
	writeSource(t, dir, "Pods-acknowledgements.json")

	p, parser := app.Load(nil)
	require.NotNil(t, parser)

	assert.True(t, p.Loaded())
	assert.Equal(t, filepath.Join(dir, "Pods-acknowledgements.json"), p.Source())
	assert.Equal(t, []string{"Alamofire", "SnapKit"}, p.Entries().Titles())
	assert.Equal(t, 1, parser.Dropped())
}

func TestApp_LoadWithoutSource(t *testing.T) {
	app := newTestApp(t, nil)

	assert.Empty(t, app.SourcePath())

	p, parser := app.Load(nil)
	assert.Nil(t, parser)
	assert.Equal(t, 0, p.RowCount())
	assert.False(t, p.Loaded())
}

func TestApp_Overrides(t *testing.T) {
	empty := ""
	custom := "Thanks to everyone below."
	app := newTestApp(t, func(c *config.Config) {
		c.Header = &custom
		c.Footer = &empty
	})
	writeSource(t, app.Config.SearchPaths[0], "Pods-acknowledgements.json")

	p, _ := app.Load(nil)

	header, ok := p.Header()
	require.True(t, ok)
	assert.Equal(t, custom, header)

	_, ok = p.Footer()
	assert.False(t, ok, "empty override hides the footer")
}

func TestApp_Localization(t *testing.T) {
	t.Run("configured locale", func(t *testing.T) {
		app := newTestApp(t, func(c *config.Config) { c.Locale = "de" })
		p := app.NewPresenter(nil)
		assert.Equal(t, "Danksagungen", p.ScreenTitle())
	})

	t.Run("environment locale", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.SearchPaths = []string{t.TempDir()}
		app, err := New(&cfg, func(k string) string {
			if k == "LANG" {
				return "de_DE.UTF-8"
			}
			return ""
		})
		require.NoError(t, err)
		assert.Equal(t, "de-DE", app.Localizer.Tag().String())
		assert.Equal(t, "Danksagungen", app.NewPresenter(nil).ScreenTitle())
	})

	t.Run("extra locale directory", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "nl.yaml"),
			[]byte("acknowledgements-title: Dankbetuigingen\n"), 0o644))

		app := newTestApp(t, func(c *config.Config) {
			c.Locale = "nl"
			c.I18n.Dir = dir
		})
		assert.Equal(t, "Dankbetuigingen", app.NewPresenter(nil).ScreenTitle())
	})

	t.Run("missing locale directory", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.I18n.Dir = filepath.Join(t.TempDir(), "missing")
		_, err := New(&cfg, nil)
		assert.Error(t, err)
	})
}

func TestApp_SelectReachesCallback(t *testing.T) {
	app := newTestApp(t, nil)
	writeSource(t, app.Config.SearchPaths[0], "Pods-acknowledgements.json")

	var got []ack.Detail
	p, _ := app.Load(func(d ack.Detail) { got = append(got, d) })

	require.NoError(t, p.Select(1))
	require.Len(t, got, 1)
	assert.Equal(t, "SnapKit", got[0].Heading())
}

func TestApp_Opener(t *testing.T) {
	app := newTestApp(t, func(c *config.Config) { c.OpenCommand = "open -a Safari" })
	assert.Equal(t, "open", app.Opener.Command())
}
