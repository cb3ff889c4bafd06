// Package components provides reusable TUI components.
package components

import (
	"strings"

	"charm.land/bubbles/v2/key"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/acknowlist/internal/core/styles"
)

const helpKeyWidth = 12

// HelpSection groups related key bindings under a title.
type HelpSection struct {
	Title    string
	Bindings []key.Binding
}

// HelpDialog lists the key bindings of the current screen.
type HelpDialog struct {
	title    string
	sections []HelpSection
}

// NewHelpDialog creates a help dialog. Disabled bindings are omitted.
func NewHelpDialog(title string, sections ...HelpSection) *HelpDialog {
	return &HelpDialog{title: title, sections: sections}
}

// View renders the help dialog.
func (h *HelpDialog) View() string {
	var lines []string
	separator := styles.TextMutedStyle.Render(strings.Repeat("─", 25))

	for _, section := range h.sections {
		var entries []string
		for _, b := range section.Bindings {
			if !b.Enabled() {
				continue
			}
			entries = append(entries, formatBinding(b))
		}
		if len(entries) == 0 {
			continue
		}

		if section.Title != "" {
			if len(lines) > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, styles.HelpDialogSectionStyle.Render(section.Title), separator)
		}
		lines = append(lines, entries...)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.TextForegroundBoldStyle.Render(h.title),
		"",
		strings.Join(lines, "\n"),
		styles.HelpDialogHelpStyle.Render("esc/? close"),
	)

	return styles.HelpDialogModalStyle.Render(content)
}

// Overlay renders the help dialog as a layer over the given background.
func (h *HelpDialog) Overlay(background string, width, height int) string {
	return overlay(background, h.View(), width, height)
}

func formatBinding(b key.Binding) string {
	k := lipgloss.NewStyle().Width(helpKeyWidth).Render(b.Help().Key)
	return styles.TextPrimaryBoldStyle.Render(k) + styles.TextForegroundStyle.Render(b.Help().Desc)
}

// overlay centers modal over background.
func overlay(background, modal string, width, height int) string {
	bgLayer := lipgloss.NewLayer(background)
	modalLayer := lipgloss.NewLayer(modal)

	centerX := max((width-lipgloss.Width(modal))/2, 0)
	centerY := max((height-lipgloss.Height(modal))/2, 0)
	modalLayer.X(centerX).Y(centerY).Z(1)

	return lipgloss.NewCompositor(bgLayer, modalLayer).Render()
}
