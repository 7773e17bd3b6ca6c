package output

import (
	"fmt"
	"io"
)

// Info prints an informational line.
func Info(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, "ℹ️  "+format+"\n", args...)
}

// Warn prints a warning line.
func Warn(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, "⚠️  "+format+"\n", args...)
}

// Success prints a success line.
func Success(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, "✅ "+format+"\n", args...)
}

// Alerter prints alerts to a writer, usually stderr.
type Alerter struct {
	W io.Writer
}

// Alert prints a titled alert.
func (a Alerter) Alert(title, message string) {
	Warn(a.W, "%s: %s", title, message)
}
