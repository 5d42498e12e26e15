// Package logging is a thin wrapper over the standard library's log.Logger,
// used for the warn-level diagnostics spec.md §7 asks for (illegal ROM
// writes, unmapped memory access) without pulling in a third-party logging
// stack — see DESIGN.md for why none of the retrieval pack's dependencies
// fit this concern. Mirrors cmd/cpurunner/main.go's use of stdlib log/fmt.
package logging

import (
	"io"
	"log"
	"os"
)

// Logger emits level-tagged lines. The zero value and a nil *Logger both
// write through Default, to os.Stderr.
type Logger struct {
	l *log.Logger
}

// New returns a Logger writing to w with the given prefix (e.g. "bus: ").
func New(w io.Writer, prefix string) *Logger {
	return &Logger{l: log.New(w, prefix, log.LstdFlags)}
}

// Default writes to os.Stderr with no prefix; used when a component isn't
// given an explicit logger (e.g. in tests, where warnings are expected and
// harmless).
var Default = New(os.Stderr, "")

// Warnf logs a warning-level message.
func (lg *Logger) Warnf(format string, args ...any) {
	if lg == nil || lg.l == nil {
		lg = Default
	}
	lg.l.Printf("WARN "+format, args...)
}
