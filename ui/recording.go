package ui

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Call is one recorded UI method call.
type Call struct {
	Method string
	Value  string
}

type recording struct {
	calls []Call
	buf   bytes.Buffer
}

// RecordingUI captures every call for assertions in command tests. It
// never colours anything. Indent children share the parent's log.
type RecordingUI struct {
	rec         *recording
	indentLevel int
}

func NewRecordingUI() *RecordingUI {
	return &RecordingUI{rec: &recording{}}
}

func (r *RecordingUI) record(method, value string) {
	r.rec.calls = append(r.rec.calls, Call{Method: method, Value: value})
}

func (r *RecordingUI) Style(t StyledText) string {
	return t.Text
}

func (r *RecordingUI) Info(format string, args ...any) {
	r.record("Info", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Success(format string, args ...any) {
	r.record("Success", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Warn(format string, args ...any) {
	r.record("Warn", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Error(format string, args ...any) {
	r.record("Error", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Critical(format string, args ...any) {
	r.record("Critical", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Section(title string) {
	r.record("Section", title)
}

// KeyValue records each row as "label: value".
func (r *RecordingUI) KeyValue(rows [][2]string) {
	for _, row := range rows {
		r.record("KeyValue", row[0]+": "+row[1])
	}
}

// Table records each row with cells joined by " | ".
func (r *RecordingUI) Table(headers []string, rows [][]string) {
	for _, row := range rows {
		r.record("Table", strings.Join(row, " | "))
	}
}

func (r *RecordingUI) Spinner(msg string) func() {
	r.record("Spinner", msg)
	return func() {}
}

func (r *RecordingUI) Indent() UI {
	return &RecordingUI{
		rec:         r.rec,
		indentLevel: r.indentLevel + 1,
	}
}

func (r *RecordingUI) Writer() io.Writer {
	return &r.rec.buf
}

func (r *RecordingUI) Calls() []Call {
	return r.rec.calls
}

// Messages returns the values recorded by method, in order.
func (r *RecordingUI) Messages(method string) []string {
	var out []string
	for _, c := range r.rec.calls {
		if c.Method == method {
			out = append(out, c.Value)
		}
	}
	return out
}

// HasMessage reports whether any recorded value contains substr, ignoring
// case.
func (r *RecordingUI) HasMessage(substr string) bool {
	lower := strings.ToLower(substr)
	for _, c := range r.rec.calls {
		if strings.Contains(strings.ToLower(c.Value), lower) {
			return true
		}
	}
	return false
}

// Output is everything written to Writer().
func (r *RecordingUI) Output() string {
	return r.rec.buf.String()
}
