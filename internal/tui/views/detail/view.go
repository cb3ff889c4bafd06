// Package detail renders one acknowledgement: its title as the heading and
// its license text in a scrollable viewport.
package detail

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/acknowlist/internal/core/ack"
	"github.com/colonyops/acknowlist/internal/core/styles"
)

const contentPadding = 2

// OpenFunc returns a command that opens url in the user's browser.
type OpenFunc func(url string) tea.Cmd

type keyMap struct {
	Scroll key.Binding
	Open   key.Binding
	Back   key.Binding
}

var keys = keyMap{
	Scroll: key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑/↓", "scroll")),
	Open:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open repository")),
	Back:   key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
}

// Options controls detail rendering.
type Options struct {
	Markdown bool // render the body with glamour
	Open     OpenFunc
}

// View is the Bubble Tea sub-model for the detail screen.
type View struct {
	detail   ack.Detail
	opts     Options
	viewport viewport.Model
	help     help.Model
	width    int
	height   int
}

// New creates a detail view sized to width x height.
func New(d ack.Detail, width, height int, opts Options) View {
	h := help.New()
	h.ShortSeparator = " • "
	h.Styles.ShortKey = styles.TextMutedStyle
	h.Styles.ShortDesc = styles.TextMutedStyle
	h.Styles.ShortSeparator = styles.TextMutedStyle

	v := View{
		detail:   d,
		opts:     opts,
		viewport: viewport.New(),
		help:     h,
	}
	v.SetSize(width, height)
	return v
}

// Detail returns the presented acknowledgement.
func (v View) Detail() ack.Detail {
	return v.detail
}

// Update handles scrolling and the repository link.
func (v View) Update(msg tea.Msg) (View, tea.Cmd) {
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "up", "k":
			v.viewport.ScrollUp(1)
			return v, nil
		case "down", "j":
			v.viewport.ScrollDown(1)
			return v, nil
		case "g", "home":
			v.viewport.GotoTop()
			return v, nil
		case "G", "end":
			v.viewport.GotoBottom()
			return v, nil
		}
		if key.Matches(msg, keys.Open) {
			if url, ok := v.detail.Link(); ok && v.opts.Open != nil {
				return v, v.opts.Open(url)
			}
			return v, nil
		}
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// SetSize resizes the viewport and re-wraps the body.
func (v *View) SetSize(width, height int) {
	v.width = width
	v.height = height

	contentWidth := max(width-contentPadding, 10)
	v.viewport.SetWidth(contentWidth)
	v.viewport.SetHeight(max(height-lipgloss.Height(v.renderTop())-lipgloss.Height(v.renderBottom()), 1))
	v.viewport.SetContent(v.renderBody(contentWidth))
}

func (v View) renderTop() string {
	lines := []string{styles.DetailHeadingStyle.Render(v.detail.Heading())}

	e := v.detail.Entry()
	var meta []string
	if e.License != "" {
		meta = append(meta, "License: "+e.License)
	}
	if url, ok := v.detail.Link(); ok {
		meta = append(meta, styles.DetailLinkStyle.Render(url))
	}
	if len(meta) > 0 {
		lines = append(lines, styles.DetailMetaStyle.Render(strings.Join(meta, "  ")))
	}

	divider := styles.DividerStyle.Render(strings.Repeat("─", max(v.width, 1)))
	lines = append(lines, divider)
	return strings.Join(lines, "\n")
}

func (v View) renderBottom() string {
	helpText := v.help.ShortHelpView(v.helpBindings())
	if v.viewport.TotalLineCount() > v.viewport.VisibleLineCount() {
		helpText += styles.TextMutedStyle.Render(fmt.Sprintf("  (%.0f%%)", v.viewport.ScrollPercent()*100))
	}
	return styles.HelpStyle.Render(helpText)
}

// Bindings returns the detail screen key bindings for the help dialog.
func Bindings() []key.Binding {
	return []key.Binding{keys.Scroll, keys.Open, keys.Back}
}

func (v View) helpBindings() []key.Binding {
	bindings := []key.Binding{keys.Scroll, keys.Back}
	if _, ok := v.detail.Link(); ok && v.opts.Open != nil {
		bindings = append(bindings, keys.Open)
	}
	return bindings
}

func (v View) renderBody(width int) string {
	body := v.detail.Body()
	if body == "" {
		return styles.TextMutedStyle.Render("No license text")
	}

	if v.opts.Markdown {
		if rendered, ok := RenderMarkdown(body, width); ok {
			return rendered
		}
	}

	return lipgloss.NewStyle().
		Width(width).
		PaddingLeft(1).
		Foreground(styles.ColorForeground).
		Render(body)
}

// RenderMarkdown renders body with the active theme, wrapped to width. It
// reports false when glamour fails and the raw text should be shown.
func RenderMarkdown(body string, width int) (string, bool) {
	style := styles.GlamourStyle()
	noMargin := uint(0)
	style.Document.Margin = &noMargin

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		log.Debug().Err(err).Msg("failed to create markdown renderer, showing raw text")
		return "", false
	}

	rendered, err := renderer.Render(body)
	if err != nil {
		log.Debug().Err(err).Msg("failed to render markdown, showing raw text")
		return "", false
	}

	return trimDecorative(strings.TrimSpace(rendered)), true
}

// View renders the detail screen.
func (v View) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		v.renderTop(),
		v.viewport.View(),
		v.renderBottom(),
	)
}

func isDecorativeLine(line string) bool {
	stripped := strings.TrimSpace(ansi.Strip(line))
	if stripped == "" {
		return true
	}
	for _, r := range stripped {
		if r != '─' && r != '━' && r != '-' && r != '=' {
			return false
		}
	}
	return true
}

// trimDecorative drops blank and rule lines glamour leaves around the
// rendered document.
func trimDecorative(content string) string {
	lines := strings.Split(content, "\n")
	start, end := 0, len(lines)
	for start < end && isDecorativeLine(lines[start]) {
		start++
	}
	for end > start && isDecorativeLine(lines[end-1]) {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}
