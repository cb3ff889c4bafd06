// Package tui implements the interactive acknowledgements browser.
package tui

import (
	"errors"
	"strconv"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/acknowlist/internal/core/ack"
	"github.com/colonyops/acknowlist/internal/core/styles"
	"github.com/colonyops/acknowlist/internal/tui/components"
	"github.com/colonyops/acknowlist/internal/tui/views/detail"
	"github.com/colonyops/acknowlist/internal/tui/views/list"
)

var errNoOpener = errors.New("no browser command configured")

// Deps are the collaborators the TUI renders and drives.
type Deps struct {
	Presenter *ack.Presenter
	// Navigator must be the presenter's OnSelect target.
	Navigator *Navigator
	Opener    URLOpener
	BuildInfo BuildInfo
}

// Opts tune presentation.
type Opts struct {
	Modal    bool // esc on the list closes the program
	Markdown bool // render license text as markdown
	Locale   string
	Theme    string
}

type screen int

const (
	screenList screen = iota
	screenDetail
)

// Model is the root Bubble Tea model. It owns the list screen and, while an
// entry is open, its detail screen.
type Model struct {
	deps Deps
	opts Opts
	keys keyMap

	screen screen
	list   list.View
	detail detail.View

	helpDialog *components.HelpDialog
	infoDialog *components.InfoDialog

	status    string
	statusErr bool
	width     int
	height    int
	dismissed bool
}

// New creates the root model.
func New(deps Deps, opts Opts) Model {
	if deps.Navigator == nil {
		deps.Navigator = NewNavigator()
	}

	m := Model{
		deps: deps,
		opts: opts,
		keys: newKeyMap(opts.Modal),
	}
	m.list = list.New(deps.Presenter, m.open)
	return m
}

// Dismissed reports whether the user closed the browser.
func (m Model) Dismissed() bool {
	return m.dismissed
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.list.Init()
}

func (m Model) open(url string) tea.Cmd {
	return openURL(m.deps.Opener, url)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width, m.contentHeight())
		if m.screen == screenDetail {
			m.detail.SetSize(m.width, m.contentHeight())
		}
		if m.infoDialog != nil {
			m.infoDialog.SetSize(m.width, m.height)
		}
		return m, nil
	case urlOpenedMsg:
		if msg.err != nil {
			log.Debug().Err(msg.err).Str("url", msg.url).Msg("open link failed")
			m.status = "Open failed: " + msg.err.Error()
			m.statusErr = true
		} else {
			m.status = "Opened " + msg.url
			m.statusErr = false
		}
		return m, nil
	case tea.KeyPressMsg:
		m.status = ""
		return m.handleKey(msg)
	}

	return m.delegate(msg)
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	if m.helpDialog != nil {
		switch msg.String() {
		case "esc", "?", "q":
			m.helpDialog = nil
		}
		return m, nil
	}

	if m.infoDialog != nil {
		switch msg.String() {
		case "esc", "i", "q":
			m.infoDialog = nil
		case "up", "k":
			m.infoDialog.ScrollUp()
		case "down", "j":
			m.infoDialog.ScrollDown()
		}
		return m, nil
	}

	if m.screen == screenList && m.list.HasEditorFocus() {
		return m.delegate(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.helpDialog = m.newHelpDialog()
		return m, nil
	case key.Matches(msg, m.keys.Info):
		m.infoDialog = components.NewInfoDialog("About", m.infoSections(), m.width, m.height)
		return m, nil
	}

	switch m.screen {
	case screenDetail:
		if key.Matches(msg, m.keys.Back) {
			m.screen = screenList
			return m, nil
		}
	case screenList:
		if key.Matches(msg, m.keys.Dismiss) && !m.list.HasFilter() {
			return m.quit()
		}
	}

	return m.delegate(msg)
}

func (m Model) delegate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.screen {
	case screenList:
		m.list, cmd = m.list.Update(msg)
		if d, ok := m.deps.Navigator.Next(); ok {
			m.showDetail(d)
		}
	case screenDetail:
		m.detail, cmd = m.detail.Update(msg)
	}
	return m, cmd
}

func (m *Model) showDetail(d ack.Detail) {
	m.detail = detail.New(d, m.width, m.contentHeight(), detail.Options{
		Markdown: m.opts.Markdown,
		Open:     m.open,
	})
	m.screen = screenDetail
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.dismissed = true
	return m, tea.Quit
}

// contentHeight leaves one line for the status bar.
func (m Model) contentHeight() int {
	return max(m.height-1, 1)
}

func (m Model) newHelpDialog() *components.HelpDialog {
	global := components.HelpSection{
		Title:    "General",
		Bindings: []key.Binding{m.keys.Help, m.keys.Info, m.keys.Quit},
	}

	if m.screen == screenDetail {
		return components.NewHelpDialog("Keys",
			components.HelpSection{Title: "Detail", Bindings: detail.Bindings()},
			global,
		)
	}
	return components.NewHelpDialog("Keys",
		components.HelpSection{Title: "List", Bindings: append(list.Bindings(), m.keys.Dismiss)},
		global,
	)
}

func (m Model) infoSections() []components.InfoSection {
	p := m.deps.Presenter

	source := components.InfoItem{Label: "Path", Value: p.Source(), Status: components.InfoStatusPass}
	if source.Value == "" {
		source.Value = "not found"
	}
	if !p.Loaded() {
		source.Status = components.InfoStatusFail
	}

	entries := components.InfoItem{Label: "Entries", Value: strconv.Itoa(p.RowCount()), Status: components.InfoStatusPass}
	if p.RowCount() == 0 {
		entries.Status = components.InfoStatusWarn
	}

	return []components.InfoSection{
		{Title: "Source", Items: []components.InfoItem{source, entries}},
		{Title: "Display", Items: []components.InfoItem{
			{Label: "Locale", Value: m.opts.Locale},
			{Label: "Theme", Value: m.opts.Theme},
		}},
		{Title: "Build", Items: []components.InfoItem{
			{Label: "Version", Value: m.deps.BuildInfo.Version},
			{Label: "Commit", Value: m.deps.BuildInfo.Commit},
			{Label: "Date", Value: m.deps.BuildInfo.Date},
		}},
	}
}

// View implements tea.Model.
func (m Model) View() tea.View {
	if m.width == 0 || m.height == 0 {
		return tea.NewView("")
	}

	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m Model) render() string {
	var content string
	switch m.screen {
	case screenDetail:
		content = m.detail.View()
	default:
		content = m.list.View()
	}
	content = lipgloss.JoinVertical(lipgloss.Left, content, m.renderStatus())

	switch {
	case m.helpDialog != nil:
		content = m.helpDialog.Overlay(content, m.width, m.height)
	case m.infoDialog != nil:
		content = m.infoDialog.Overlay(content, m.width, m.height)
	}
	return content
}

func (m Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return styles.TextErrorStyle.Render(" " + m.status)
	}
	return styles.TextSuccessStyle.Render(" " + m.status)
}
