package styles

import (
	"image/color"
	"maps"
	"slices"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    color.Color
	Secondary  color.Color
	Foreground color.Color
	Muted      color.Color
	Background color.Color
	Surface    color.Color
	Success    color.Color
	Warning    color.Color
	Error      color.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

// seed holds the colors a theme picks by hand. Muted and Surface are mixed
// from text and base so license bodies and selected rows keep the same
// contrast in every theme.
type seed struct {
	heading string // screen titles, selected row
	link    string // repository and website links
	text    string
	base    string
	ok      string
	warn    string
	bad     string
}

const (
	mutedMix   = 0.45 // toward base
	surfaceMix = 0.18 // toward text
)

var seeds = map[string]seed{
	"tokyo-night": {heading: "#7aa2f7", link: "#7dcfff", text: "#c0caf5", base: "#1a1b26", ok: "#9ece6a", warn: "#e0af68", bad: "#f7768e"},
	"gruvbox":     {heading: "#83a598", link: "#8ec07c", text: "#ebdbb2", base: "#282828", ok: "#b8bb26", warn: "#fabd2f", bad: "#fb4934"},
	"catppuccin":  {heading: "#89b4fa", link: "#94e2d5", text: "#cdd6f4", base: "#1e1e2e", ok: "#a6e3a1", warn: "#f9e2af", bad: "#f38ba8"},
	"kanagawa":    {heading: "#7E9CD8", link: "#7FB4CA", text: "#DCD7BA", base: "#1F1F28", ok: "#76946A", warn: "#DCA561", bad: "#C34043"},
	"onedark":     {heading: "#61afef", link: "#56b6c2", text: "#abb2bf", base: "#282c34", ok: "#98c379", warn: "#e5c07b", bad: "#e06c75"},
	"nord":        {heading: "#88c0d0", link: "#8fbcbb", text: "#eceff4", base: "#2e3440", ok: "#a3be8c", warn: "#ebcb8b", bad: "#bf616a"},
}

var themes = buildThemes(seeds)

func buildThemes(seeds map[string]seed) map[string]Palette {
	out := make(map[string]Palette, len(seeds))
	for name, s := range seeds {
		out[name] = s.palette()
	}
	return out
}

func (s seed) palette() Palette {
	return Palette{
		Primary:    lipgloss.Color(s.heading),
		Secondary:  lipgloss.Color(s.link),
		Foreground: lipgloss.Color(s.text),
		Muted:      mix(s.text, s.base, mutedMix),
		Background: lipgloss.Color(s.base),
		Surface:    mix(s.base, s.text, surfaceMix),
		Success:    lipgloss.Color(s.ok),
		Warning:    lipgloss.Color(s.warn),
		Error:      lipgloss.Color(s.bad),
	}
}

// mix blends from toward to by t in Lab space and returns the result as a
// hex color. Unparseable input falls back to from.
func mix(from, to string, t float64) color.Color {
	a, err := colorful.Hex(from)
	if err != nil {
		return lipgloss.Color(from)
	}
	b, err := colorful.Hex(to)
	if err != nil {
		return lipgloss.Color(from)
	}
	return lipgloss.Color(a.BlendLab(b, t).Clamped().Hex())
}

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	return slices.Sorted(maps.Keys(themes))
}

// GetPalette returns the palette for the given theme name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}
