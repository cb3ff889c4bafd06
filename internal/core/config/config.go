// Package config handles configuration loading and validation for acknowlist.
package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/acknowlist/internal/core/styles"
)

// DefaultSource is the file name CocoaPods generates for the main target.
const DefaultSource = "Pods-acknowledgements"

// Config holds the application configuration.
type Config struct {
	// Source names the acknowledgements document, as a path or a bare name
	// resolved against SearchPaths.
	Source      string   `yaml:"source"`
	SearchPaths []string `yaml:"search_paths"`

	// Header and Footer override the text read from the source. A nil value
	// keeps the source text, an empty string hides it.
	Header *string `yaml:"header"`
	Footer *string `yaml:"footer"`

	Locale      string     `yaml:"locale"`
	I18n        I18nConfig `yaml:"i18n"`
	TUI         TUIConfig  `yaml:"tui"`
	OpenCommand string     `yaml:"open_command"`
}

// I18nConfig holds localization settings.
type I18nConfig struct {
	Dir string `yaml:"dir"` // extra <tag>.yaml bundles
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme    string `yaml:"theme"`
	Markdown bool   `yaml:"markdown"` // render entry text as markdown
	Modal    bool   `yaml:"modal"`    // esc on the list dismisses the program
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Source:      DefaultSource,
		SearchPaths: []string{".", "Pods", "Pods/Target Support Files/*"},
		TUI: TUIConfig{
			Theme: styles.DefaultTheme,
			Modal: true,
		},
		OpenCommand: DefaultOpenCommand(),
	}
}

// DefaultOpenCommand returns the platform command that opens a URL in the
// user's browser.
func DefaultOpenCommand() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "windows":
		return "explorer"
	default:
		return "xdg-open"
	}
}

// Load reads configuration from the given path.
// If configPath is empty or doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.OpenCommand == "" {
		c.OpenCommand = defaults.OpenCommand
	}
	if len(c.SearchPaths) == 0 {
		c.SearchPaths = defaults.SearchPaths
	}
}
