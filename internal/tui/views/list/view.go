// Package list renders the acknowledgements list screen: a title, the
// optional header, one row per acknowledgement and the optional footer.
package list

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/acknowlist/internal/core/ack"
	"github.com/colonyops/acknowlist/internal/core/styles"
)

// OpenFunc returns a command that opens url in the user's browser.
type OpenFunc func(url string) tea.Cmd

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Select key.Binding
	Filter key.Binding
	Open   key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Top:    key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
	Bottom: key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
	Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "view")),
	Filter: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	Open:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open link")),
}

// View is the Bubble Tea sub-model for the list screen.
type View struct {
	ctrl      *Controller
	presenter *ack.Presenter
	open      OpenFunc
	help      help.Model
	width     int
	height    int
}

// New creates a list view over p. open may be nil, which disables the footer
// link.
func New(p *ack.Presenter, open OpenFunc) View {
	h := help.New()
	h.ShortSeparator = " • "
	h.Styles.ShortKey = styles.TextMutedStyle
	h.Styles.ShortDesc = styles.TextMutedStyle
	h.Styles.ShortSeparator = styles.TextMutedStyle

	return View{
		ctrl:      NewController(p),
		presenter: p,
		open:      open,
		help:      h,
	}
}

// Init emits the empty-list diagnostic the first time the list is shown.
func (v View) Init() tea.Cmd {
	v.presenter.WarnIfEmpty()
	return nil
}

// Update handles messages for the list view.
func (v View) Update(msg tea.Msg) (View, tea.Cmd) {
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		if v.ctrl.IsFiltering() {
			return v.handleFilterKey(msg)
		}
		return v.handleNormalKey(msg)
	}
	return v, nil
}

// HasEditorFocus returns true if the filter input is active.
func (v View) HasEditorFocus() bool {
	return v.ctrl.IsFiltering()
}

// HasFilter returns true while a filter narrows the list.
func (v View) HasFilter() bool {
	return v.ctrl.Filter() != ""
}

// SetSize updates the view dimensions.
func (v *View) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.ctrl.SetSize(v.visibleLines())
}

// Selected returns the presenter row under the cursor.
func (v View) Selected() (int, bool) {
	return v.ctrl.Selected()
}

func (v View) handleFilterKey(msg tea.KeyPressMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.ctrl.CancelFilter()
	case "enter":
		v.ctrl.ConfirmFilter()
	case "backspace":
		v.ctrl.DeleteFilterRune()
	default:
		for _, r := range msg.Key().Text {
			v.ctrl.AddFilterRune(r)
		}
	}
	v.ctrl.SetSize(v.visibleLines())
	return v, nil
}

func (v View) handleNormalKey(msg tea.KeyPressMsg) (View, tea.Cmd) {
	visible := v.visibleLines()

	switch {
	case msg.String() == "esc" && v.ctrl.Filter() != "":
		v.ctrl.CancelFilter()
		v.ctrl.SetSize(v.visibleLines())
	case key.Matches(msg, keys.Up):
		v.ctrl.MoveUp(visible)
	case key.Matches(msg, keys.Down):
		v.ctrl.MoveDown(visible)
	case key.Matches(msg, keys.Top):
		v.ctrl.Top(visible)
	case key.Matches(msg, keys.Bottom):
		v.ctrl.Bottom(visible)
	case key.Matches(msg, keys.Filter):
		v.ctrl.StartFilter()
		v.ctrl.SetSize(v.visibleLines())
	case key.Matches(msg, keys.Select):
		if row, ok := v.ctrl.Selected(); ok {
			if err := v.presenter.Select(row); err != nil {
				log.Debug().Err(err).Int("row", row).Msg("select failed")
			}
		}
	case key.Matches(msg, keys.Open):
		if url, ok := v.presenter.FooterLink(); ok && v.open != nil {
			return v, v.open(url)
		}
	}
	return v, nil
}

// chrome renders everything except the rows: title and header above,
// filter line, footer and help below.
type chrome struct {
	top    string
	bottom string
}

func (v View) renderChrome() chrome {
	width := max(v.width, 1)

	top := []string{styles.ScreenTitleStyle.Render(v.presenter.ScreenTitle())}
	if header, ok := v.presenter.Header(); ok {
		top = append(top, styles.HeaderTextStyle.Width(width).Render(header))
	}
	top = append(top, "")

	var bottom []string
	if v.ctrl.IsFiltering() {
		bottom = append(bottom, " "+styles.TextPrimaryBoldStyle.Render("Filter: ")+v.ctrl.Filter()+"▎")
	} else if v.ctrl.Filter() != "" {
		bottom = append(bottom, styles.TextMutedStyle.Render(fmt.Sprintf(" Filter: %s", v.ctrl.Filter())))
	}
	if footer, ok := v.presenter.Footer(); ok {
		style := styles.FooterTextStyle
		if _, link := v.presenter.FooterLink(); link {
			style = styles.FooterLinkStyle
		}
		bottom = append(bottom, style.Width(width).Render(footer))
	}
	bottom = append(bottom, styles.HelpStyle.Render(v.help.ShortHelpView(v.helpBindings())))

	return chrome{
		top:    strings.Join(top, "\n"),
		bottom: strings.Join(bottom, "\n"),
	}
}

// Bindings returns the list screen key bindings for the help dialog.
func Bindings() []key.Binding {
	return []key.Binding{keys.Up, keys.Down, keys.Top, keys.Bottom, keys.Select, keys.Filter, keys.Open}
}

func (v View) helpBindings() []key.Binding {
	bindings := []key.Binding{keys.Up, keys.Down, keys.Select, keys.Filter}
	if _, ok := v.presenter.FooterLink(); ok && v.open != nil {
		bindings = append(bindings, keys.Open)
	}
	return bindings
}

// visibleLines is the number of rows left once the header and footer have
// taken the height they need at the current width.
func (v View) visibleLines() int {
	c := v.renderChrome()
	reserved := lipgloss.Height(c.top) + lipgloss.Height(c.bottom)
	return max(v.height-reserved, 1)
}

// View renders the list screen.
func (v View) View() string {
	c := v.renderChrome()
	visible := max(v.height-lipgloss.Height(c.top)-lipgloss.Height(c.bottom), 1)

	var b strings.Builder
	b.WriteString(c.top)
	b.WriteString("\n")

	rows := v.ctrl.Rows()
	linesRendered := 0

	if len(rows) == 0 {
		empty := "  No acknowledgements"
		if v.ctrl.Len() > 0 {
			empty = "  No matching acknowledgements"
		}
		b.WriteString(styles.TextMutedStyle.Render(empty))
		b.WriteString("\n")
		linesRendered = 1
	} else {
		offset := v.ctrl.Offset()
		end := min(offset+visible, len(rows))
		cursor := v.ctrl.Cursor()

		for i := offset; i < end; i++ {
			title, err := v.presenter.Title(rows[i])
			if err != nil {
				log.Debug().Err(err).Msg("render row")
				continue
			}
			b.WriteString(v.renderRow(title, i == cursor))
			b.WriteString("\n")
			linesRendered++
		}
	}

	for i := linesRendered; i < visible; i++ {
		b.WriteString("\n")
	}

	b.WriteString(c.bottom)
	return b.String()
}

func (v View) renderRow(title string, selected bool) string {
	title = ansi.Truncate(title, max(v.width-3, 1), "…")
	if selected {
		return styles.TextPrimaryStyle.Render("┃") + " " + styles.RowSelectedStyle.Render(title)
	}
	return "  " + styles.RowStyle.Render(title)
}
