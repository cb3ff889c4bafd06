package ack

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/rs/zerolog"

	"github.com/colonyops/acknowlist/internal/core/logging"
)

// Keys recognised in source documents. Alternatives are tried in order.
var (
	headerKeys     = []string{"header", "Header"}
	footerKeys     = []string{"footer", "Footer"}
	entryListKeys  = []string{"entries", "PreferenceSpecifiers", "acknowledgements"}
	entryTitleKeys = []string{"title", "Title"}
	entryTextKeys  = []string{"footer", "FooterText", "text", "Text"}
	entryLicKeys   = []string{"license", "License"}
	entryRepoKeys  = []string{"repository", "Repository", "repositoryURL"}
)

const (
	settingsBundleKey = "PreferenceSpecifiers"
	stringsTableKey   = "StringsTable"
	memorySource      = "<memory>"
)

// Parser reads header, footer and entries from a single source document.
// A document that is missing or cannot be decoded behaves as an empty one:
// the parse operations never fail, and Err reports what went wrong.
type Parser struct {
	source  string
	format  Format
	doc     map[string]any
	err     error
	dropped int
	logger  zerolog.Logger
}

// NewParser reads and decodes the document at path.
func NewParser(path string) *Parser {
	p := &Parser{
		source: path,
		format: FormatForPath(path),
		logger: logging.WithSource(logging.Component("parser"), path),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		p.fail(fmt.Errorf("read source: %w", err))
		return p
	}

	p.decode(data)
	return p
}

// NewParserFromBytes decodes an in-memory document. FormatAuto sniffs the
// content.
func NewParserFromBytes(data []byte, format Format) *Parser {
	p := &Parser{
		source: memorySource,
		format: format,
		logger: logging.WithSource(logging.Component("parser"), memorySource),
	}
	p.decode(data)
	return p
}

func (p *Parser) decode(data []byte) {
	doc, err := decodeDocument(data, p.format)
	if err != nil {
		p.fail(err)
		return
	}
	p.doc = doc
}

func (p *Parser) fail(err error) {
	p.err = err
	p.logger.Debug().Err(err).Msg("acknowledgements source unavailable")
}

// Source returns the path or label the parser was created from.
func (p *Parser) Source() string {
	return p.source
}

// Err returns the error that prevented the document from loading, if any.
func (p *Parser) Err() error {
	return p.err
}

// Dropped returns how many entry sub-documents the last ParseAcknowledgements
// call skipped because they had no title.
func (p *Parser) Dropped() int {
	return p.dropped
}

// ParseHeaderAndFooter returns the document's top-level header and footer.
// Missing fields are returned as empty strings.
func (p *Parser) ParseHeaderAndFooter() HeaderFooter {
	if p.doc == nil || p.format == FormatResolved {
		return HeaderFooter{}
	}

	if specs, ok := p.settingsBundle(); ok {
		first, _ := specs[0].(map[string]any)
		last, _ := specs[len(specs)-1].(map[string]any)
		header, _ := stringField(first, entryTextKeys...)
		footer, _ := stringField(last, entryTextKeys...)
		return HeaderFooter{Header: header, Footer: footer}
	}

	header, _ := stringField(p.doc, headerKeys...)
	footer, _ := stringField(p.doc, footerKeys...)
	return HeaderFooter{Header: header, Footer: footer}
}

// ParseAcknowledgements returns the entries in document order. Entries with
// an empty or missing title are dropped.
func (p *Parser) ParseAcknowledgements() []Entry {
	p.dropped = 0
	if p.doc == nil {
		return nil
	}

	if p.format == FormatResolved {
		return p.parsePins()
	}

	items, _ := listField(p.doc, entryListKeys...)
	if specs, ok := p.settingsBundle(); ok {
		items = specs[1 : len(specs)-1]
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			p.dropped++
			continue
		}

		title, _ := stringField(m, entryTitleKeys...)
		if strings.TrimSpace(title) == "" {
			p.dropped++
			continue
		}

		text, _ := stringField(m, entryTextKeys...)
		license, _ := stringField(m, entryLicKeys...)
		repo, _ := stringField(m, entryRepoKeys...)
		entries = append(entries, Entry{
			Title:      title,
			Text:       text,
			License:    license,
			Repository: repo,
		})
	}

	if p.dropped > 0 {
		p.logger.Debug().
			Int("dropped", p.dropped).
			Msg("skipped acknowledgements without a title")
	}

	return entries
}

// settingsBundle reports whether the document uses the layout CocoaPods
// generates for iOS settings bundles: header and footer live in the first and
// last specifier instead of top-level keys.
func (p *Parser) settingsBundle() ([]any, bool) {
	if _, ok := stringField(p.doc, headerKeys...); ok {
		return nil, false
	}
	if _, ok := stringField(p.doc, footerKeys...); ok {
		return nil, false
	}

	specs, key := listField(p.doc, entryListKeys...)
	if key != settingsBundleKey || len(specs) < 2 {
		return nil, false
	}

	last, ok := specs[len(specs)-1].(map[string]any)
	if !ok {
		return nil, false
	}
	if title, _ := stringField(last, entryTitleKeys...); strings.TrimSpace(title) != "" {
		return nil, false
	}
	if !generatedByCocoaPods(p.doc, specs) {
		return nil, false
	}
	return specs, true
}

// generatedByCocoaPods looks for the marks CocoaPods leaves on a settings
// bundle: the StringsTable key, or its boilerplate header or footer text.
func generatedByCocoaPods(doc map[string]any, specs []any) bool {
	if _, ok := doc[stringsTableKey]; ok {
		return true
	}

	first, _ := specs[0].(map[string]any)
	if header, _ := stringField(first, entryTextKeys...); header == DefaultHeader {
		return true
	}

	last, _ := specs[len(specs)-1].(map[string]any)
	footer, _ := stringField(last, entryTextKeys...)
	return footer == DefaultFooter || footer == DefaultFooterLegacy
}

// parsePins reads a Swift Package Manager Package.resolved file. Schema v1
// nests pins under "object"; v2 and later keep them at the top level.
func (p *Parser) parsePins() []Entry {
	pins, _ := listField(p.doc, "pins")
	if obj, ok := dictField(p.doc, "object"); ok && pins == nil {
		pins, _ = listField(obj, "pins")
	}

	entries := make([]Entry, 0, len(pins))
	for _, item := range pins {
		m, ok := item.(map[string]any)
		if !ok {
			p.dropped++
			continue
		}

		repo, _ := stringField(m, "repositoryURL", "location")
		title, _ := stringField(m, "package")
		if title == "" {
			title = repoName(repo)
		}
		if title == "" {
			title, _ = stringField(m, "identity")
		}
		if strings.TrimSpace(title) == "" {
			p.dropped++
			continue
		}

		entries = append(entries, Entry{Title: title, Repository: repo})
	}
	return entries
}

// repoName extracts "Alamofire" from "https://github.com/Alamofire/Alamofire.git".
func repoName(repo string) string {
	repo = strings.TrimSuffix(strings.TrimRight(repo, "/"), ".git")
	if repo == "" {
		return ""
	}
	return path.Base(repo)
}
