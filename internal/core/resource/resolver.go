// Package resource resolves acknowledgement source identifiers to files.
//
// A source identifier is either a path or a bare name such as
// "Pods-acknowledgements". Bare names are looked up in each search path, in
// order, first as given and then with each known extension appended. Search
// paths and identifiers may contain doublestar glob patterns.
package resource

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"

	"github.com/colonyops/acknowlist/internal/core/logging"
)

// Resolver finds source documents on disk.
type Resolver struct {
	searchPaths []string
	extensions  []string
	logger      zerolog.Logger
}

// New creates a resolver. An empty searchPaths searches the working
// directory only. extensions are tried in order for names without a match.
func New(searchPaths, extensions []string) *Resolver {
	if len(searchPaths) == 0 {
		searchPaths = []string{"."}
	}
	return &Resolver{
		searchPaths: searchPaths,
		extensions:  extensions,
		logger:      logging.Component("resolver"),
	}
}

// SearchPaths returns the configured search paths.
func (r *Resolver) SearchPaths() []string {
	return slices.Clone(r.searchPaths)
}

// Resolve returns the first file matching id. It reports false when id is
// empty or nothing matches; callers treat that as "no data".
func (r *Resolver) Resolve(id string) (string, bool) {
	if id == "" {
		return "", false
	}

	if filepath.IsAbs(id) {
		return r.first([]string{id})
	}

	for _, dir := range r.dirs() {
		if path, ok := r.first([]string{filepath.Join(dir, id)}); ok {
			return path, true
		}
	}

	r.logger.Debug().
		Str("id", id).
		Strs("search_paths", r.searchPaths).
		Msg("acknowledgements source not found")
	return "", false
}

// dirs expands glob patterns in the search paths into existing directories,
// keeping the configured order.
func (r *Resolver) dirs() []string {
	var dirs []string
	for _, sp := range r.searchPaths {
		if !hasMeta(sp) {
			dirs = append(dirs, sp)
			continue
		}

		matches, err := doublestar.FilepathGlob(sp)
		if err != nil {
			r.logger.Debug().Err(err).Str("pattern", sp).Msg("invalid search path pattern")
			continue
		}
		slices.Sort(matches)
		for _, m := range matches {
			if isDir(m) {
				dirs = append(dirs, m)
			}
		}
	}
	return dirs
}

// first returns the first existing regular file among the candidates, trying
// each candidate as given and then with every extension appended.
func (r *Resolver) first(candidates []string) (string, bool) {
	for _, c := range candidates {
		if hasMeta(c) {
			matches, err := doublestar.FilepathGlob(c, doublestar.WithFilesOnly())
			if err != nil || len(matches) == 0 {
				continue
			}
			slices.Sort(matches)
			return matches[0], true
		}

		if isFile(c) {
			return c, true
		}
		for _, ext := range r.extensions {
			if isFile(c + ext) {
				return c + ext, true
			}
		}
	}
	return "", false
}

func hasMeta(path string) bool {
	for _, c := range path {
		switch c {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
