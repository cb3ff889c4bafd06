// Package i18n looks up translated UI strings for the user's preferred
// language.
//
// Bundles are flat YAML dictionaries named after a BCP 47 tag
// (locales/de.yaml, locales/pt-BR.yaml, locales/zh-Hans.yaml). A lookup tries
// the exact tag, then the base language with its script, then the base
// language, then falls back to the caller's default.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var embedded embed.FS

// Bundle is the set of translations for one language.
type Bundle struct {
	Tag     language.Tag
	Strings map[string]string
}

// Localizer resolves keys against a fixed set of bundles.
type Localizer struct {
	tag     language.Tag
	bundles map[string]map[string]string
}

// New creates a Localizer for tag. Later bundles override earlier ones for
// the same language.
func New(tag language.Tag, bundles ...Bundle) *Localizer {
	l := &Localizer{
		tag:     tag,
		bundles: make(map[string]map[string]string, len(bundles)),
	}
	for _, b := range bundles {
		key := b.Tag.String()
		dst, ok := l.bundles[key]
		if !ok {
			dst = make(map[string]string, len(b.Strings))
			l.bundles[key] = dst
		}
		for k, v := range b.Strings {
			dst[k] = v
		}
	}
	return l
}

// Tag returns the preferred language.
func (l *Localizer) Tag() language.Tag {
	return l.tag
}

// String returns the translation of key for the preferred language, or def
// when no bundle provides one.
func (l *Localizer) String(key, def string) string {
	for _, lookup := range l.chain() {
		if s, ok := lookup(key); ok {
			return s
		}
	}
	return def
}

type lookupFunc func(key string) (string, bool)

// chain returns the lookups in fallback order: exact tag, base language with
// its script, then base language. zh-CN resolves through zh-Hans.
func (l *Localizer) chain() []lookupFunc {
	exact := l.tag.String()
	chain := []lookupFunc{l.lookupIn(exact)}
	seen := map[string]bool{exact: true}

	base, conf := l.tag.Base()
	if conf == language.No {
		return chain
	}

	if script, conf := l.tag.Script(); conf != language.No {
		if t, err := language.Compose(base, script); err == nil && !seen[t.String()] {
			seen[t.String()] = true
			chain = append(chain, l.lookupIn(t.String()))
		}
	}

	if b := base.String(); !seen[b] {
		chain = append(chain, l.lookupIn(b))
	}
	return chain
}

func (l *Localizer) lookupIn(tag string) lookupFunc {
	return func(key string) (string, bool) {
		bundle, ok := l.bundles[tag]
		if !ok {
			return "", false
		}
		s, ok := bundle[key]
		if !ok || s == "" {
			return "", false
		}
		return s, true
	}
}

// Embedded returns the bundles shipped with the binary.
func Embedded() ([]Bundle, error) {
	sub, err := fs.Sub(embedded, "locales")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub)
}

// LoadDir reads every <tag>.yaml bundle in dir.
func LoadDir(dir string) ([]Bundle, error) {
	return LoadFS(os.DirFS(dir))
}

// LoadFS reads every <tag>.yaml or <tag>.yml bundle at the root of fsys.
func LoadFS(fsys fs.FS) ([]Bundle, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}

	var bundles []Bundle
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}

		tag, err := language.Parse(strings.TrimSuffix(e.Name(), ext))
		if err != nil {
			return nil, fmt.Errorf("locale file %s: %w", e.Name(), err)
		}

		data, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}

		strs := map[string]string{}
		if err := yaml.Unmarshal(data, &strs); err != nil {
			return nil, fmt.Errorf("parse %s: %w", e.Name(), err)
		}

		bundles = append(bundles, Bundle{Tag: tag, Strings: strs})
	}
	return bundles, nil
}

// Preferred determines the user's language. An explicit setting wins,
// then the POSIX locale environment (LC_ALL, LC_MESSAGES, LANG). English is
// used when nothing parses.
func Preferred(setting string, getenv func(string) string) language.Tag {
	candidates := []string{setting}
	if getenv != nil {
		candidates = append(candidates, getenv("LC_ALL"), getenv("LC_MESSAGES"), getenv("LANG"))
	}

	for _, c := range candidates {
		if tag, ok := ParseLocale(c); ok {
			return tag
		}
	}
	return language.English
}

// ParseLocale parses a BCP 47 tag or a POSIX locale such as "de_DE.UTF-8".
// "C" and "POSIX" are not languages and report false.
func ParseLocale(s string) (language.Tag, bool) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	if s == "" || s == "C" || s == "POSIX" {
		return language.Und, false
	}

	tag, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil {
		return language.Und, false
	}
	return tag, true
}
