// Package logging builds the zerolog logger every entry point shares.
// Each emitted line is a single JSON object of the form
// {"tipo": "INFO"|"ERROR", "log_datos": {...}}, so events must carry all
// of their context inside one log_datos dict.
package logging

import (
	"io"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var setup sync.Once

// New returns a logger writing to w in the service's line format.
func New(w io.Writer) zerolog.Logger {
	setup.Do(func() {
		zerolog.LevelFieldName = "tipo"
		zerolog.LevelFieldMarshalFunc = func(l zerolog.Level) string {
			return strings.ToUpper(l.String())
		}
	})
	return zerolog.New(w)
}
