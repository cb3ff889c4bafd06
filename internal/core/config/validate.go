package config

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/acknowlist/internal/core/i18n"
	"github.com/colonyops/acknowlist/internal/core/styles"
)

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if _, ok := styles.GetPalette(c.TUI.Theme); !ok {
		errs = errs.Append("tui.theme", fmt.Errorf("unknown theme %q (available: %s)",
			c.TUI.Theme, strings.Join(styles.ThemeNames(), ", ")))
	}

	if c.Locale != "" {
		if _, ok := i18n.ParseLocale(c.Locale); !ok {
			errs = errs.Append("locale", fmt.Errorf("invalid language tag %q", c.Locale))
		}
	}

	for i, sp := range c.SearchPaths {
		if strings.TrimSpace(sp) == "" {
			errs = errs.Append(fmt.Sprintf("search_paths[%d]", i), fmt.Errorf("cannot be empty"))
		}
	}

	if strings.TrimSpace(c.OpenCommand) == "" {
		errs = errs.Append("open_command", fmt.Errorf("cannot be empty"))
	}

	return errs.ToError()
}

// ValidateDeep performs Validate plus checks that touch the filesystem: the
// config file itself, the locale directory and the browser command.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("i18n.dir", c.I18n.Dir, isDirectoryOrEmpty),
		criterio.Run("open_command", c.OpenCommand, executableExists),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrEmpty validates that an optional path points at a directory.
func isDirectoryOrEmpty(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

// executableExists validates that the first word of a command is on PATH.
func executableExists(cmd string) error {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return nil
	}
	if _, err := exec.LookPath(fields[0]); err != nil {
		return fmt.Errorf("executable not found: %s", fields[0])
	}
	return nil
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []string {
	var warnings []string
	if c.Source == "" {
		warnings = append(warnings, "source is empty; the list will always be empty")
	}
	if c.Header != nil && *c.Header == "" && c.Footer != nil && *c.Footer == "" {
		warnings = append(warnings, "header and footer are both hidden by overrides")
	}
	return warnings
}
