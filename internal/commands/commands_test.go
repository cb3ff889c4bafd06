package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/acknowlist/internal/acknowlist"
	"github.com/colonyops/acknowlist/internal/core/ack"
	"github.com/colonyops/acknowlist/internal/core/config"
	"github.com/colonyops/acknowlist/internal/core/i18n"
)

const sampleDoc = `{
  "header": "This application makes use of the following third party libraries:",
  "footer": "Generated by CocoaPods - https://cocoapods.org",
  "entries": [
    {"title": "SnapKit", "footer": "Copyright (c) SnapKit Team", "license": "MIT"},
    {"footer": "orphaned text"},
    {"title": "Alamofire", "footer": "Copyright (c) Alamofire Software Foundation", "license": "MIT"},
    {"title": "Éclair", "footer": "Some **bold** text"}
  ]
}`

type harness struct {
	flags *Flags
	app   *acknowlist.App
	out   bytes.Buffer
	err   bytes.Buffer
}

func newHarness(t *testing.T, doc string) *harness {
	t.Helper()

	dir := t.TempDir()
	if doc != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "Pods-acknowledgements.json"), []byte(doc), 0o644))
	}

	cfg := config.DefaultConfig()
	cfg.SearchPaths = []string{dir}
	cfg.Locale = "en"

	app, err := acknowlist.New(&cfg, nil)
	require.NoError(t, err)

	return &harness{
		flags: &Flags{Config: &cfg},
		app:   app,
	}
}

func (h *harness) run(t *testing.T, args ...string) error {
	t.Helper()
	root := NewRootCmd(h.flags, h.app)
	root.Writer = &h.out
	root.ErrWriter = &h.err
	root.ExitErrHandler = func(context.Context, *cli.Command, error) {}
	return root.Run(context.Background(), append([]string{"acknowlist"}, args...))
}

func TestLsCmd(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		h := newHarness(t, sampleDoc)
		require.NoError(t, h.run(t, "ls"))

		lines := strings.Split(strings.TrimSpace(h.out.String()), "\n")
		require.Len(t, lines, 4)
		assert.Contains(t, lines[0], "TITLE")
		assert.Contains(t, lines[1], "Alamofire")
		assert.Contains(t, lines[2], "Éclair")
		assert.Contains(t, lines[3], "SnapKit")
		assert.Contains(t, lines[2], "-", "missing license shows a dash")
	})

	t.Run("json lines", func(t *testing.T) {
		h := newHarness(t, sampleDoc)
		require.NoError(t, h.run(t, "ls", "--json"))

		lines := strings.Split(strings.TrimSpace(h.out.String()), "\n")
		require.Len(t, lines, 3)

		var first lsEntry
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
		assert.Equal(t, lsEntry{Index: 0, Title: "Alamofire", License: "MIT"}, first)
	})

	t.Run("empty source", func(t *testing.T) {
		h := newHarness(t, "")
		require.NoError(t, h.run(t, "ls"))

		assert.Empty(t, h.out.String())
		assert.Contains(t, h.err.String(), "No acknowledgements found")
	})
}

func TestShowCmd(t *testing.T) {
	t.Run("by title ignoring case and accents", func(t *testing.T) {
		h := newHarness(t, sampleDoc)
		require.NoError(t, h.run(t, "show", "eclair"))

		out := h.out.String()
		assert.True(t, strings.HasPrefix(out, "Éclair"), out)
		assert.Contains(t, out, "Some **bold** text")
	})

	t.Run("by index", func(t *testing.T) {
		h := newHarness(t, sampleDoc)
		require.NoError(t, h.run(t, "show", "2"))

		out := h.out.String()
		assert.Contains(t, out, "SnapKit")
		assert.Contains(t, out, "License: MIT")
		assert.Contains(t, out, "Copyright (c) SnapKit Team")
	})

	t.Run("index out of range", func(t *testing.T) {
		for _, arg := range []string{"7", "3"} {
			h := newHarness(t, sampleDoc)
			err := h.run(t, "show", arg)
			require.Error(t, err, arg)
			assert.ErrorIs(t, err, ack.ErrIndexOutOfRange, arg)
			assert.Contains(t, err.Error(), "select "+strconv.Quote(arg), arg)
		}
	})

	t.Run("unknown title", func(t *testing.T) {
		h := newHarness(t, sampleDoc)
		err := h.run(t, "show", "Kingfisher")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Kingfisher")
	})

	t.Run("missing argument", func(t *testing.T) {
		h := newHarness(t, sampleDoc)
		assert.Error(t, h.run(t, "show"))
	})
}

func TestFindRow(t *testing.T) {
	p := ack.NewPresenter(ack.PresenterOptions{})
	p.LoadFrom(ack.NewParserFromBytes([]byte(sampleDoc), ack.FormatJSON))

	row, err := findRow(p, "alamofire")
	require.NoError(t, err)
	assert.Equal(t, 0, row)

	row, err = findRow(p, "42")
	require.NoError(t, err, "indexes pass through unchecked")
	assert.Equal(t, 42, row)
	assert.ErrorIs(t, p.Select(row), ack.ErrIndexOutOfRange)

	row, err = findRow(p, "-1")
	require.NoError(t, err)
	assert.ErrorIs(t, p.Select(row), ack.ErrIndexOutOfRange)

	_, err = findRow(p, "Kingfisher")
	assert.Error(t, err)
}

func TestRenderDetail(t *testing.T) {
	d := ack.NewDetail(ack.Entry{
		Title:      "Kingfisher",
		Text:       "MIT License",
		License:    "MIT",
		Repository: "https://github.com/onevcat/Kingfisher",
	})

	out := renderDetail(d, false, false)
	lines := strings.Split(out, "\n")

	require.GreaterOrEqual(t, len(lines), 5)
	assert.Equal(t, "Kingfisher", lines[0])
	assert.Equal(t, "License: MIT", lines[1])
	assert.Equal(t, "https://github.com/onevcat/Kingfisher", lines[2])
	assert.Empty(t, lines[3])
	assert.Equal(t, "MIT License", lines[4])
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestValidateCmd_Report(t *testing.T) {
	t.Run("loaded source", func(t *testing.T) {
		h := newHarness(t, sampleDoc)
		cmd := NewValidateCmd(h.flags, h.app)

		r := cmd.report()
		assert.True(t, r.Loaded)
		assert.Equal(t, 3, r.Entries)
		assert.Equal(t, 1, r.Dropped)
		require.NotNil(t, r.Header)
		assert.Equal(t, "This application makes use of the following third party libraries:", *r.Header)
		require.NotNil(t, r.Footer)
		assert.Empty(t, r.LoadError)
	})

	t.Run("missing source", func(t *testing.T) {
		h := newHarness(t, "")
		cmd := NewValidateCmd(h.flags, h.app)

		r := cmd.report()
		assert.False(t, r.Valid)
		assert.False(t, r.Loaded)
		assert.Equal(t, 0, r.Entries)
		assert.Equal(t, "source not found in search paths: "+h.app.Config.SearchPaths[0], r.LoadError)
	})

	t.Run("malformed source", func(t *testing.T) {
		h := newHarness(t, `{"entries": [`)
		cmd := NewValidateCmd(h.flags, h.app)

		r := cmd.report()
		assert.False(t, r.Valid)
		assert.False(t, r.Loaded)
		assert.NotEmpty(t, r.LoadError)
	})
}

func TestWriteReport(t *testing.T) {
	header := "Thanks"
	var buf bytes.Buffer
	writeReport(&buf, ValidationReport{
		Valid:    true,
		Warnings: []string{"header and footer are both hidden by overrides"},
		Source:   "Pods-acknowledgements",
		Path:     "Pods/Pods-acknowledgements.plist",
		Loaded:   true,
		Entries:  12,
		Dropped:  2,
		Header:   &header,
	}, false)

	out := buf.String()
	assert.Contains(t, out, "config: valid")
	assert.Contains(t, out, "source: Pods/Pods-acknowledgements.plist")
	assert.Contains(t, out, "entries: 12")
	assert.Contains(t, out, "dropped 2 entries")
	assert.Contains(t, out, `header: "Thanks"`)
	assert.Contains(t, out, "footer: (none)")
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeTable(&buf, "#  TITLE\n0  Alamofire\n", false))
	assert.Equal(t, "#  TITLE\n0  Alamofire\n", buf.String())
}

func TestDocCmd(t *testing.T) {
	t.Run("config defaults", func(t *testing.T) {
		h := newHarness(t, "")
		require.NoError(t, h.run(t, "doc", "config", "--defaults"))

		out := h.out.String()
		assert.Contains(t, out, "source: "+config.DefaultSource)
		assert.Contains(t, out, "theme:")
	})

	t.Run("effective config", func(t *testing.T) {
		h := newHarness(t, "")
		require.NoError(t, h.run(t, "doc", "config"))
		assert.Contains(t, h.out.String(), "locale: en")
	})

	t.Run("locales", func(t *testing.T) {
		h := newHarness(t, "")
		require.NoError(t, h.run(t, "doc", "locales"))

		out := h.out.String()
		assert.Contains(t, out, ack.KeyScreenTitle)
		assert.Contains(t, out, "Danksagungen")
		assert.Contains(t, out, "pt-BR")
	})
}

func TestPrintLocales_Sorted(t *testing.T) {
	bundles, err := i18n.Embedded()
	require.NoError(t, err)

	var buf bytes.Buffer
	printLocales(&buf, bundles)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, len(bundles)+1)
	for i := 2; i < len(lines); i++ {
		prev := strings.Fields(lines[i-1])[0]
		cur := strings.Fields(lines[i])[0]
		assert.Less(t, prev, cur)
	}
}

func TestFlags_ApplyOverrides(t *testing.T) {
	run := func(t *testing.T, args ...string) config.Config {
		t.Helper()
		f := &Flags{}
		cfg := config.DefaultConfig()
		cmd := &cli.Command{
			Name:  "acknowlist",
			Flags: GlobalFlags(f),
			Action: func(_ context.Context, c *cli.Command) error {
				f.ApplyOverrides(c, &cfg)
				return nil
			},
		}
		require.NoError(t, cmd.Run(context.Background(), append([]string{"acknowlist"}, args...)))
		return cfg
	}

	t.Run("unset flags keep config values", func(t *testing.T) {
		cfg := run(t)
		assert.Equal(t, config.DefaultSource, cfg.Source)
		assert.Nil(t, cfg.Header)
		assert.Nil(t, cfg.Footer)
	})

	t.Run("set flags override", func(t *testing.T) {
		cfg := run(t, "--source", "Pods-App-acknowledgements", "--header", "Thanks", "--footer", "", "--locale", "de", "--theme", "kanagawa")
		assert.Equal(t, "Pods-App-acknowledgements", cfg.Source)
		require.NotNil(t, cfg.Header)
		assert.Equal(t, "Thanks", *cfg.Header)
		require.NotNil(t, cfg.Footer)
		assert.Empty(t, *cfg.Footer, "empty footer flag hides the footer")
		assert.Equal(t, "de", cfg.Locale)
		assert.Equal(t, "kanagawa", cfg.TUI.Theme)
	})
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "acknowlist", "config.yaml"), DefaultConfigPath())
}
