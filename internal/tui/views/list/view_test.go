package list

import (
	"bytes"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/acknowlist/internal/core/ack"
	"github.com/colonyops/acknowlist/pkg/tuitest"
)

func loadPresenter(t *testing.T, opts ack.PresenterOptions, doc string) *ack.Presenter {
	t.Helper()
	p := ack.NewPresenter(opts)
	p.LoadFrom(ack.NewParserFromBytes([]byte(doc), ack.FormatJSON))
	return p
}

func sized(v View, w, h int) View {
	v.SetSize(w, h)
	return v
}

func press(v View, msgs ...tea.Msg) (View, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		v, cmd = v.Update(msg)
	}
	return v, cmd
}

const sampleDoc = `{
	"header": "Open source software used in this app",
	"footer": "Generated by CocoaPods - https://cocoapods.org",
	"entries": [
		{"title": "Zlib", "footer": "zlib License"},
		{"title": "Alamofire", "footer": "MIT License"},
		{"title": "Éclair", "footer": "Apache 2.0"}
	]
}`

func TestView_Render(t *testing.T) {
	p := loadPresenter(t, ack.PresenterOptions{}, sampleDoc)
	v := sized(New(p, nil), 60, 12)

	out := tuitest.StripANSI(v.View())

	assert.Contains(t, out, "Acknowledgements")
	assert.Contains(t, out, "Open source software used in this app")
	assert.Contains(t, out, "Generated by CocoaPods")
	assert.NotContains(t, out, "https://cocoapods.org", "boilerplate footer is replaced")

	alamofire := strings.Index(out, "Alamofire")
	eclair := strings.Index(out, "Éclair")
	zlib := strings.Index(out, "Zlib")
	assert.True(t, alamofire < eclair && eclair < zlib, "rows are sorted:\n%s", out)
	assert.Contains(t, out, "┃ Alamofire", "first row is selected")
}

func TestView_FillsHeightExactly(t *testing.T) {
	longHeader := strings.Repeat("header words wrap ", 8)
	doc := `{"header":"` + longHeader + `","footer":"Thanks to everyone on cocoapods.org","entries":[{"title":"A","footer":"x"}]}`

	for _, width := range []int{30, 60, 120} {
		p := loadPresenter(t, ack.PresenterOptions{}, doc)
		v := sized(New(p, nil), width, 20)

		assert.Equal(t, 20, lipgloss.Height(v.View()), "width %d", width)
	}
}

func TestView_HeaderHeightIsReserved(t *testing.T) {
	doc := `{"header":"","footer":"","entries":[{"title":"A","footer":"x"}]}`
	withHeader := `{"header":"` + strings.Repeat("long header text ", 6) + `","footer":"","entries":[{"title":"A","footer":"x"}]}`

	plain := sized(New(loadPresenter(t, ack.PresenterOptions{}, doc), nil), 30, 20)
	wrapped := sized(New(loadPresenter(t, ack.PresenterOptions{}, withHeader), nil), 30, 20)

	assert.Greater(t, plain.visibleLines()-wrapped.visibleLines(), 1, "a wrapped header takes more than one line")
}

func TestView_EnterSelectsExactEntry(t *testing.T) {
	var got []ack.Detail
	p := loadPresenter(t, ack.PresenterOptions{OnSelect: func(d ack.Detail) { got = append(got, d) }}, sampleDoc)
	v := sized(New(p, nil), 60, 12)

	_, _ = press(v, tuitest.KeyDown(), tuitest.KeyEnter())

	require.Len(t, got, 1)
	assert.Equal(t, "Éclair", got[0].Heading())
	assert.Equal(t, "Apache 2.0", got[0].Body())
}

func TestView_EnterOnFilteredRow(t *testing.T) {
	var got []ack.Detail
	p := loadPresenter(t, ack.PresenterOptions{OnSelect: func(d ack.Detail) { got = append(got, d) }}, sampleDoc)
	v := sized(New(p, nil), 60, 12)

	msgs := append([]tea.Msg{tuitest.KeyPress('/')}, tuitest.Type("zl")...)
	msgs = append(msgs, tuitest.KeyEnter(), tuitest.KeyEnter())
	v, _ = press(v, msgs...)

	assert.False(t, v.HasEditorFocus())
	assert.True(t, v.HasFilter())
	require.Len(t, got, 1)
	assert.Equal(t, "Zlib", got[0].Heading())
}

func TestView_EscClearsFilter(t *testing.T) {
	p := loadPresenter(t, ack.PresenterOptions{}, sampleDoc)
	v := sized(New(p, nil), 60, 12)

	msgs := append([]tea.Msg{tuitest.KeyPress('/')}, tuitest.Type("zl")...)
	msgs = append(msgs, tuitest.KeyEnter(), tuitest.KeyEsc())
	v, _ = press(v, msgs...)

	assert.False(t, v.HasFilter())
	assert.Len(t, v.ctrl.Rows(), 3)
}

func TestView_FooterLink(t *testing.T) {
	doc := `{"header":"","footer":"Packages courtesy of cocoapods.org","entries":[]}`

	t.Run("o opens the website", func(t *testing.T) {
		var opened []string
		open := func(url string) tea.Cmd {
			opened = append(opened, url)
			return func() tea.Msg { return nil }
		}

		v := sized(New(loadPresenter(t, ack.PresenterOptions{}, doc), open), 60, 12)
		_, cmd := press(v, tuitest.KeyPress('o'))

		require.NotNil(t, cmd)
		assert.Equal(t, []string{ack.WebsiteURL}, opened)
		assert.Contains(t, tuitest.StripANSI(v.View()), "open link")
	})

	t.Run("footer without the host is not a link", func(t *testing.T) {
		var opened []string
		open := func(url string) tea.Cmd {
			opened = append(opened, url)
			return nil
		}

		v := sized(New(loadPresenter(t, ack.PresenterOptions{}, `{"footer":"Thanks!","entries":[]}`), open), 60, 12)
		_, cmd := press(v, tuitest.KeyPress('o'))

		assert.Nil(t, cmd)
		assert.Empty(t, opened)
		assert.NotContains(t, tuitest.StripANSI(v.View()), "open link")
	})
}

func TestView_EmptyState(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	p := ack.NewPresenter(ack.PresenterOptions{Logger: &logger})
	p.Load("")
	v := sized(New(p, nil), 60, 12)

	_ = v.Init()
	_ = v.Init()

	assert.Contains(t, tuitest.StripANSI(v.View()), "No acknowledgements")
	assert.Equal(t, 1, strings.Count(buf.String(), "no acknowledgements to display"))

	_, cmd := press(v, tuitest.KeyEnter(), tuitest.KeyDown())
	assert.Nil(t, cmd)
}

func TestView_NoMatches(t *testing.T) {
	p := loadPresenter(t, ack.PresenterOptions{}, sampleDoc)
	v := sized(New(p, nil), 60, 12)

	v, _ = press(v, append([]tea.Msg{tuitest.KeyPress('/')}, tuitest.Type("qqq")...)...)

	out := tuitest.StripANSI(v.View())
	assert.Contains(t, out, "No matching acknowledgements")
	assert.Contains(t, out, "Filter: qqq")
}

func TestView_TruncatesLongTitles(t *testing.T) {
	p := loadPresenter(t, ack.PresenterOptions{},
		`{"entries":[{"title":"`+strings.Repeat("x", 100)+`","footer":"MIT"}]}`)
	v := sized(New(p, nil), 20, 8)

	var row string
	for _, line := range strings.Split(tuitest.StripANSI(v.View()), "\n") {
		if strings.Contains(line, "xxx") {
			row = line
		}
	}
	require.NotEmpty(t, row)
	assert.LessOrEqual(t, lipgloss.Width(row), 20)
	assert.True(t, strings.HasSuffix(row, "…"))
}
