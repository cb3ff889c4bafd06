package ack

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
	"howett.net/plist"
)

// Format identifies the serialization of a source document.
type Format string

// Supported document formats.
const (
	FormatAuto     Format = ""
	FormatPlist    Format = "plist"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatResolved Format = "resolved" // Swift Package Manager Package.resolved
)

// ErrUnsupportedFormat is returned when a document's format cannot be determined.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Extensions lists the file extensions probed when resolving a bare source
// name, in preference order.
var Extensions = []string{".plist", ".json", ".yaml", ".yml"}

// FormatForPath picks a format from a file name. Unknown extensions return
// FormatAuto so the content is sniffed instead.
func FormatForPath(path string) Format {
	if filepath.Base(path) == "Package.resolved" {
		return FormatResolved
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".plist":
		return FormatPlist
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".resolved":
		return FormatResolved
	default:
		return FormatAuto
	}
}

// sniffFormat guesses the format from the leading bytes of data.
func sniffFormat(data []byte) Format {
	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.HasPrefix(trimmed, []byte("bplist")),
		bytes.HasPrefix(trimmed, []byte("<?xml")),
		bytes.HasPrefix(trimmed, []byte("<plist")),
		bytes.HasPrefix(trimmed, []byte("<!DOCTYPE plist")):
		return FormatPlist
	case bytes.HasPrefix(trimmed, []byte("{")), bytes.HasPrefix(trimmed, []byte("[")):
		return FormatJSON
	default:
		return FormatYAML
	}
}

// decodeDocument decodes data into a generic key-value tree.
func decodeDocument(data []byte, format Format) (map[string]any, error) {
	if format == FormatAuto {
		format = sniffFormat(data)
	}

	var doc map[string]any
	switch format {
	case FormatPlist:
		if _, err := plist.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode plist: %w", err)
		}
	case FormatJSON, FormatResolved:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if doc == nil {
		return nil, fmt.Errorf("decode %s: document is not a dictionary", format)
	}
	return doc, nil
}

// stringField returns the first string value found under keys.
func stringField(m map[string]any, keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if s, ok := v.(string); ok {
				return s, true
			}
		}
	}
	return "", false
}

// listField returns the first array value found under keys.
func listField(m map[string]any, keys ...string) ([]any, string) {
	for _, k := range keys {
		if v, ok := m[k].([]any); ok {
			return v, k
		}
	}
	return nil, ""
}

// dictField returns the dictionary value stored under key.
func dictField(m map[string]any, key string) (map[string]any, bool) {
	v, ok := m[key].(map[string]any)
	return v, ok
}
