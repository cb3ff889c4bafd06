package components

import (
	"testing"

	"charm.land/bubbles/v2/key"
	"github.com/stretchr/testify/assert"

	"github.com/colonyops/acknowlist/pkg/tuitest"
)

func TestHelpDialog_View(t *testing.T) {
	disabled := key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss"))
	disabled.SetEnabled(false)

	d := NewHelpDialog("Keys",
		HelpSection{Title: "List", Bindings: []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "view")),
			disabled,
		}},
		HelpSection{Title: "Empty", Bindings: []key.Binding{disabled}},
	)

	out := tuitest.StripANSI(d.View())
	assert.Contains(t, out, "Keys")
	assert.Contains(t, out, "List")
	assert.Contains(t, out, "view")
	assert.NotContains(t, out, "dismiss", "disabled bindings are hidden")
	assert.NotContains(t, out, "Empty", "sections without enabled bindings are hidden")
	assert.Contains(t, out, "esc/? close")
}
