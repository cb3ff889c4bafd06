package components

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/acknowlist/internal/core/styles"
)

const (
	infoModalMaxHeight = 24
	infoModalMargin    = 4
	infoModalChrome    = 6 // title + divider + help + spacing
	infoModalMinWidth  = 40
)

// InfoStatus represents the status of an info item.
type InfoStatus int

const (
	InfoStatusNone InfoStatus = iota
	InfoStatusPass
	InfoStatusWarn
	InfoStatusFail
)

// InfoItem is a single labeled row in an info section.
type InfoItem struct {
	Label  string
	Value  string
	Status InfoStatus
}

// InfoSection groups related info items under a section title.
type InfoSection struct {
	Title string
	Items []InfoItem
}

// InfoDialog displays status-annotated facts about the loaded source and
// the running build.
type InfoDialog struct {
	title    string
	sections []InfoSection
	viewport viewport.Model
	width    int
	height   int
}

// NewInfoDialog creates a new info dialog sized for a width x height screen.
func NewInfoDialog(title string, sections []InfoSection, width, height int) *InfoDialog {
	d := &InfoDialog{title: title, sections: sections}
	d.SetSize(width, height)
	return d
}

// SetSize fits the dialog to a new screen size.
func (d *InfoDialog) SetSize(width, height int) {
	d.width = width
	d.height = height

	modalWidth := d.modalWidth()
	d.viewport = viewport.New(
		viewport.WithWidth(max(modalWidth-4, 1)),
		viewport.WithHeight(max(d.modalHeight()-infoModalChrome, 1)),
	)
	d.viewport.SetContent(d.renderContent(modalWidth))
}

func (d *InfoDialog) modalWidth() int {
	return max(min(max(d.width*2/3, infoModalMinWidth), d.width-infoModalMargin), 1)
}

func (d *InfoDialog) modalHeight() int {
	return max(min(d.height-infoModalMargin, infoModalMaxHeight), 1)
}

func (d *InfoDialog) renderContent(modalWidth int) string {
	separator := styles.TextSurfaceStyle.Render(strings.Repeat("─", max(modalWidth-6, 1)))
	labelWidth := 0
	for _, s := range d.sections {
		for _, item := range s.Items {
			labelWidth = max(labelWidth, lipgloss.Width(item.Label))
		}
	}

	var lines []string
	for i, section := range d.sections {
		if i > 0 {
			lines = append(lines, "")
		}
		if section.Title != "" {
			lines = append(lines, styles.HelpDialogSectionStyle.Render(section.Title), separator)
		}
		for _, item := range section.Items {
			lines = append(lines, formatInfoItem(item, labelWidth))
		}
	}
	return strings.Join(lines, "\n")
}

func formatInfoItem(item InfoItem, labelWidth int) string {
	label := styles.TextForegroundBoldStyle.Render(lipgloss.NewStyle().Width(labelWidth).Render(item.Label))
	value := styles.TextMutedStyle.Render(item.Value)

	if icon := statusIcon(item.Status); icon != "" {
		return fmt.Sprintf("%s %s  %s", icon, label, value)
	}
	return fmt.Sprintf("  %s  %s", label, value)
}

func statusIcon(s InfoStatus) string {
	switch s {
	case InfoStatusPass:
		return styles.TextSuccessStyle.Render("✔")
	case InfoStatusWarn:
		return styles.TextWarningStyle.Render("●")
	case InfoStatusFail:
		return styles.TextErrorStyle.Render("✘")
	default:
		return ""
	}
}

// ScrollUp scrolls the viewport up.
func (d *InfoDialog) ScrollUp() {
	d.viewport.ScrollUp(1)
}

// ScrollDown scrolls the viewport down.
func (d *InfoDialog) ScrollDown() {
	d.viewport.ScrollDown(1)
}

// Overlay renders the dialog centered over the provided background.
func (d *InfoDialog) Overlay(background string, width, height int) string {
	modalWidth := d.modalWidth()

	scrollInfo := ""
	if d.viewport.TotalLineCount() > d.viewport.VisibleLineCount() {
		scrollInfo = styles.TextMutedStyle.Render(
			fmt.Sprintf(" (%.0f%%)", d.viewport.ScrollPercent()*100),
		)
	}

	divider := styles.TextSurfaceStyle.Render(strings.Repeat("─", max(modalWidth-6, 1)))
	modalContent := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ModalTitleStyle.Render(d.title+scrollInfo),
		divider,
		d.viewport.View(),
		styles.ModalHelpStyle.Render("[j/k] scroll  [esc/i] close"),
	)

	modal := styles.ModalStyle.
		Width(modalWidth).
		Height(d.modalHeight()).
		Render(modalContent)

	return overlay(background, modal, width, height)
}
