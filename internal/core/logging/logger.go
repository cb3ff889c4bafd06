// Package logging provides component-scoped zerolog loggers.
package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component creates a new logger with a component identifier.
// Uses the "cmp" key for consistency with zerolog conventions.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}

// WithSource tags a logger with the acknowledgements source it reports on.
func WithSource(l zerolog.Logger, source string) zerolog.Logger {
	if source == "" {
		return l
	}
	return l.With().Str("source", source).Logger()
}
