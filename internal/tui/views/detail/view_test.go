package detail

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/acknowlist/internal/core/ack"
	"github.com/colonyops/acknowlist/pkg/tuitest"
)

func TestView_Render(t *testing.T) {
	d := ack.NewDetail(ack.Entry{
		Title:      "Alamofire",
		Text:       "Copyright (c) 2014-2024 Alamofire Software Foundation",
		License:    "MIT",
		Repository: "https://github.com/Alamofire/Alamofire",
	})

	v := New(d, 80, 20, Options{})
	out := tuitest.StripANSI(v.View())

	assert.Contains(t, out, "Alamofire")
	assert.Contains(t, out, "License: MIT")
	assert.Contains(t, out, "https://github.com/Alamofire/Alamofire")
	assert.Contains(t, out, "Copyright (c) 2014-2024 Alamofire Software Foundation")
	assert.Equal(t, "Alamofire", v.Detail().Heading())
}

func TestView_EmptyBody(t *testing.T) {
	v := New(ack.NewDetail(ack.Entry{Title: "Bolts"}), 80, 20, Options{})
	assert.Contains(t, tuitest.StripANSI(v.View()), "No license text")
}

func TestView_WrapsToWidth(t *testing.T) {
	body := strings.Repeat("Permission is hereby granted, free of charge. ", 20)
	v := New(ack.NewDetail(ack.Entry{Title: "SnapKit", Text: body}), 40, 30, Options{})

	for _, line := range strings.Split(tuitest.StripANSI(v.viewport.View()), "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 40)
	}
}

func TestView_Scroll(t *testing.T) {
	lines := make([]string, 100)
	for i := range lines {
		lines[i] = "line"
	}
	v := New(ack.NewDetail(ack.Entry{Title: "Long", Text: strings.Join(lines, "\n")}), 60, 15, Options{})

	require.Equal(t, 0, v.viewport.YOffset())
	assert.Contains(t, tuitest.StripANSI(v.View()), "(0%)")

	v, _ = v.Update(tuitest.KeyDown())
	v, _ = v.Update(tuitest.KeyPress('j'))
	assert.Equal(t, 2, v.viewport.YOffset())

	v, _ = v.Update(tuitest.KeyUp())
	assert.Equal(t, 1, v.viewport.YOffset())

	v, _ = v.Update(tuitest.KeyPress('G'))
	assert.True(t, v.viewport.AtBottom())

	v, _ = v.Update(tuitest.KeyPress('g'))
	assert.True(t, v.viewport.AtTop())
}

func TestView_OpenRepository(t *testing.T) {
	var opened []string
	open := func(url string) tea.Cmd {
		opened = append(opened, url)
		return func() tea.Msg { return nil }
	}

	t.Run("opens the repository link", func(t *testing.T) {
		v := New(ack.NewDetail(ack.Entry{Title: "Éclair", Repository: "https://github.com/example/eclair"}), 60, 15, Options{Open: open})
		assert.Contains(t, tuitest.StripANSI(v.View()), "open repository")

		_, cmd := v.Update(tuitest.KeyPress('o'))
		require.NotNil(t, cmd)
		assert.Equal(t, []string{"https://github.com/example/eclair"}, opened)
	})

	t.Run("no link without a repository", func(t *testing.T) {
		opened = nil
		v := New(ack.NewDetail(ack.Entry{Title: "Zlib"}), 60, 15, Options{Open: open})
		assert.NotContains(t, tuitest.StripANSI(v.View()), "open repository")

		_, cmd := v.Update(tuitest.KeyPress('o'))
		assert.Nil(t, cmd)
		assert.Empty(t, opened)
	})
}

func TestView_Markdown(t *testing.T) {
	d := ack.NewDetail(ack.Entry{Title: "Yams", Text: "# MIT License\n\nPermission is **hereby** granted."})

	v := New(d, 80, 20, Options{Markdown: true})
	out := tuitest.StripANSI(v.View())

	assert.Contains(t, out, "MIT License")
	assert.Contains(t, out, "hereby")
	assert.NotContains(t, out, "**hereby**")
}

func TestTrimDecorative(t *testing.T) {
	in := "\n────\n  \nbody\n\n====\n"
	assert.Equal(t, "body", trimDecorative(in))
	assert.Equal(t, "", trimDecorative("───"))
}
