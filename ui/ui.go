package ui

import (
	"encoding/json"
	"io"
)

// Severity is the visual weight of a piece of inline text.
type Severity uint8

const (
	SeverityInfo     Severity = iota // plain
	SeveritySuccess                  // green, fresh / positive
	SeverityWarn                     // yellow, degraded
	SeverityError                    // red, unavailable / negative
	SeverityCritical                 // bold
)

// StyledText pairs a plain string with a Severity. It marshals to JSON as
// the plain string so --json output never carries ANSI codes.
type StyledText struct {
	Text     string
	Severity Severity
}

func (s StyledText) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Text)
}

// UI is all the terminal output of tokenlens commands. TerminalUI writes
// to stdout, RecordingUI captures calls for tests.
type UI interface {
	// Style colours t by its Severity. Returns t.Text unchanged when colours
	// are off.
	Style(t StyledText) string

	Info(format string, args ...any)
	Success(format string, args ...any)
	Warn(format string, args ...any)
	// Error prints in red. It doesn't exit.
	Error(format string, args ...any)
	Critical(format string, args ...any)

	// Section prints a "===== title =====" separator.
	Section(title string)

	// KeyValue prints label/value rows with values aligned.
	KeyValue(rows [][2]string)

	// Table prints a bordered table. headers may be empty.
	Table(headers []string, rows [][]string)

	// Spinner shows msg with an animation until the returned func is
	// called. No-op animation off a terminal.
	Spinner(msg string) func()

	// Indent returns a child UI one level deeper sharing the same output.
	Indent() UI

	// Writer returns the output with the current indentation applied to
	// every line.
	Writer() io.Writer
}
