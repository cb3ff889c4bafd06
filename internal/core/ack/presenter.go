package ack

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"
)

// Boilerplate chrome written by CocoaPods into every acknowledgements file.
const (
	DefaultHeader       = "This application makes use of the following third party libraries:"
	DefaultFooterLegacy = "Generated by CocoaPods - http://cocoapods.org"
	DefaultFooter       = "Generated by CocoaPods - https://cocoapods.org"
)

// Localization keys queried by the presenter.
const (
	KeyScreenTitle       = "acknowledgements-title"
	KeyGeneratedByFooter = "generated-by-footer"

	DefaultScreenTitle       = "Acknowledgements"
	DefaultGeneratedByFooter = "Generated by CocoaPods"
)

// Package manager website linked from the footer.
const (
	WebsiteHost = "cocoapods.org"
	WebsiteURL  = "https://cocoapods.org"
)

// ErrIndexOutOfRange is returned when a row outside the list is requested.
var ErrIndexOutOfRange = errors.New("row index out of range")

// Localizer looks up a translated string, returning def when no translation
// exists.
type Localizer interface {
	String(key, def string) string
}

// LocalizerFunc adapts a function to the Localizer interface.
type LocalizerFunc func(key, def string) string

// String implements Localizer.
func (f LocalizerFunc) String(key, def string) string { return f(key, def) }

type passthrough struct{}

func (passthrough) String(_, def string) string { return def }

// PresenterOptions configures a Presenter. All fields are optional.
type PresenterOptions struct {
	// Localizer translates the screen title and boilerplate footer.
	Localizer Localizer
	// Language drives title collation. Defaults to language.Und.
	Language language.Tag
	// HeaderOverride replaces the header read from the source. An empty
	// string hides the header.
	HeaderOverride *string
	// FooterOverride replaces the footer read from the source. An empty
	// string hides the footer.
	FooterOverride *string
	// OnSelect receives the detail presenter for a selected row.
	OnSelect func(Detail)
	// Logger receives diagnostics. Defaults to a disabled logger.
	Logger *zerolog.Logger
}

// Presenter owns the sorted acknowledgements and the effective header and
// footer shown around them. It is built once by Load and not mutated after.
type Presenter struct {
	localizer Localizer
	collator  *Collator
	headerOvr *string
	footerOvr *string
	onSelect  func(Detail)
	logger    zerolog.Logger

	source  string
	header  *string
	footer  *string
	entries List
	loaded  bool
	warned  bool
}

// NewPresenter creates an empty presenter. Call Load before display.
func NewPresenter(opts PresenterOptions) *Presenter {
	p := &Presenter{
		localizer: opts.Localizer,
		collator:  NewCollator(opts.Language),
		headerOvr: opts.HeaderOverride,
		footerOvr: opts.FooterOverride,
		onSelect:  opts.OnSelect,
		logger:    zerolog.Nop(),
	}
	if p.localizer == nil {
		p.localizer = passthrough{}
	}
	if opts.Logger != nil {
		p.logger = *opts.Logger
	}
	return p
}

// Load parses the document at path. An empty path leaves the presenter in
// its empty state, which is valid: the list simply shows no rows.
func (p *Presenter) Load(path string) {
	p.source = path
	if path == "" {
		p.applyOverrides()
		return
	}
	p.LoadFrom(NewParser(path))
}

// LoadFrom fills the presenter from an already constructed parser.
func (p *Presenter) LoadFrom(parser *Parser) {
	if p.source == "" {
		p.source = parser.Source()
	}

	hf := parser.ParseHeaderAndFooter()
	p.header = effectiveHeader(hf.Header)
	p.footer = p.effectiveFooter(hf.Footer)
	p.applyOverrides()

	p.entries = p.collator.Sort(parser.ParseAcknowledgements())
	p.loaded = parser.Err() == nil
}

func (p *Presenter) applyOverrides() {
	if p.headerOvr != nil {
		p.header = optional(*p.headerOvr)
	}
	if p.footerOvr != nil {
		p.footer = optional(*p.footerOvr)
	}
}

func effectiveHeader(header string) *string {
	if header == DefaultHeader {
		return nil
	}
	return optional(header)
}

func (p *Presenter) effectiveFooter(footer string) *string {
	if footer == DefaultFooter || footer == DefaultFooterLegacy {
		localized := p.localizer.String(KeyGeneratedByFooter, DefaultGeneratedByFooter)
		return &localized
	}
	return optional(footer)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Source returns the path the presenter was loaded from.
func (p *Presenter) Source() string {
	return p.source
}

// Loaded reports whether a source document was parsed.
func (p *Presenter) Loaded() bool {
	return p.loaded
}

// ScreenTitle returns the localized screen title.
func (p *Presenter) ScreenTitle() string {
	return p.localizer.String(KeyScreenTitle, DefaultScreenTitle)
}

// Header returns the effective header text and whether it should be shown.
func (p *Presenter) Header() (string, bool) {
	if p.header == nil {
		return "", false
	}
	return *p.header, true
}

// Footer returns the effective footer text and whether it should be shown.
func (p *Presenter) Footer() (string, bool) {
	if p.footer == nil {
		return "", false
	}
	return *p.footer, true
}

// FooterLink returns the package manager website when the footer mentions it.
func (p *Presenter) FooterLink() (string, bool) {
	footer, ok := p.Footer()
	if !ok || !strings.Contains(footer, WebsiteHost) {
		return "", false
	}
	return WebsiteURL, true
}

// RowCount returns the number of entries.
func (p *Presenter) RowCount() int {
	return len(p.entries)
}

// Entries returns a copy of the sorted entries.
func (p *Presenter) Entries() List {
	out := make(List, len(p.entries))
	copy(out, p.entries)
	return out
}

// Entry returns the entry at row i.
func (p *Presenter) Entry(i int) (Entry, error) {
	if i < 0 || i >= len(p.entries) {
		return Entry{}, fmt.Errorf("row %d of %d: %w", i, len(p.entries), ErrIndexOutOfRange)
	}
	return p.entries[i], nil
}

// Title returns the row content for row i.
func (p *Presenter) Title(i int) (string, error) {
	e, err := p.Entry(i)
	if err != nil {
		return "", err
	}
	return e.Title, nil
}

// Select hands the entry at row i to the OnSelect callback.
func (p *Presenter) Select(i int) error {
	e, err := p.Entry(i)
	if err != nil {
		return err
	}
	if p.onSelect != nil {
		p.onSelect(NewDetail(e))
	}
	return nil
}

// Find returns the first row whose title equals title under the collation
// rules used for sorting.
func (p *Presenter) Find(title string) (int, bool) {
	title = strings.TrimSpace(title)
	for i, e := range p.entries {
		if p.collator.Compare(e.Title, title) == 0 {
			return i, true
		}
	}
	return 0, false
}

// Filter returns the rows whose title contains query, compared with the same
// case- and diacritic-insensitive rules used for sorting.
func (p *Presenter) Filter(query string) []int {
	rows := make([]int, 0, len(p.entries))
	for i, e := range p.entries {
		if p.collator.Contains(e.Title, query) {
			rows = append(rows, i)
		}
	}
	return rows
}

// WarnIfEmpty logs a one-time warning when there is nothing to display. The
// list view calls it the first time it is shown.
func (p *Presenter) WarnIfEmpty() bool {
	if p.warned || len(p.entries) > 0 {
		return false
	}
	p.warned = true

	p.logger.Warn().
		Str("source", p.source).
		Bool("loaded", p.loaded).
		Msg("no acknowledgements to display; check that the source file is bundled and the source name is correct")
	return true
}

// Detail presents a single acknowledgement.
type Detail struct {
	entry Entry
}

// NewDetail creates a detail presenter for e.
func NewDetail(e Entry) Detail {
	return Detail{entry: e}
}

// Entry returns the presented acknowledgement.
func (d Detail) Entry() Entry { return d.entry }

// Heading returns the page heading.
func (d Detail) Heading() string { return d.entry.Title }

// Body returns the license text.
func (d Detail) Body() string { return d.entry.Text }

// Link returns the repository URL when the entry has one.
func (d Detail) Link() (string, bool) {
	if d.entry.Repository == "" {
		return "", false
	}
	return d.entry.Repository, true
}
