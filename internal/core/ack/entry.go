// Package ack holds the acknowledgement data model, the document parser that
// produces it, and the presenters that drive list and detail views from it.
package ack

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/search"
)

// Entry is a single third-party acknowledgement.
type Entry struct {
	Title      string `json:"title"`
	Text       string `json:"text"`
	License    string `json:"license,omitempty"`
	Repository string `json:"repository,omitempty"`
}

// HeaderFooter is the document-level chrome text read from a source file.
type HeaderFooter struct {
	Header string `json:"header"`
	Footer string `json:"footer"`
}

// List is an ordered set of entries sorted by title.
type List []Entry

// Titles returns the entry titles in list order.
func (l List) Titles() []string {
	titles := make([]string, len(l))
	for i, e := range l {
		titles[i] = e.Title
	}
	return titles
}

// Collator compares titles with locale-aware rules, ignoring case and
// diacritics.
type Collator struct {
	tag     language.Tag
	col     *collate.Collator
	matcher *search.Matcher
}

// NewCollator creates a Collator for the given language. language.Und falls
// back to the root collation order.
func NewCollator(tag language.Tag) *Collator {
	return &Collator{
		tag:     tag,
		col:     collate.New(tag, collate.IgnoreCase, collate.IgnoreDiacritics),
		matcher: search.New(tag, search.IgnoreCase, search.IgnoreDiacritics),
	}
}

// Compare returns -1, 0 or 1 depending on the collation order of a and b.
func (c *Collator) Compare(a, b string) int {
	return c.col.CompareString(a, b)
}

// Contains reports whether pattern occurs in s under the collator's
// equivalence rules. An empty pattern matches everything.
func (c *Collator) Contains(s, pattern string) bool {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return true
	}
	start, _ := c.matcher.IndexString(s, pattern)
	return start >= 0
}

// Sort returns a sorted copy of entries, ascending by title. Entries with
// equal titles may appear in any relative order.
func (c *Collator) Sort(entries []Entry) List {
	sorted := slices.Clone(entries)
	slices.SortFunc(sorted, func(a, b Entry) int {
		return c.Compare(a.Title, b.Title)
	})
	return List(sorted)
}
