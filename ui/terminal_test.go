package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyValueAligns(t *testing.T) {
	buf := &bytes.Buffer{}
	u := NewWriterUI(buf)
	u.KeyValue([][2]string{
		{"Network", "bsc"},
		{"Price", "$1.00"},
		{"Market cap", "$5.35B"},
	})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Network     bsc", lines[0])
	assert.Equal(t, "Price       $1.00", lines[1])
	assert.Equal(t, "Market cap  $5.35B", lines[2])
}

func TestTable(t *testing.T) {
	buf := &bytes.Buffer{}
	u := NewWriterUI(buf)
	u.Table([]string{"Name", "Chain ID"}, [][]string{
		{"eth", "1"},
		{"arbi", "42161"},
	})
	lines := strings.Split(strings.TrimRight(ansi.Strip(buf.String()), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "┌──────┬──────────┐", lines[0])
	assert.Equal(t, "│ Name │ Chain ID │", lines[1])
	assert.Equal(t, "│ arbi │ 42161    │", lines[4])
	assert.Equal(t, "└──────┴──────────┘", lines[5])
}

func TestIndentWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	u := NewWriterUI(buf).Indent()
	u.Info("hello")
	_, err := u.Writer().Write([]byte("a\nb\n"))
	require.NoError(t, err)
	assert.Equal(t, "  hello\n  a\n  b\n", buf.String())
}

func TestStyledTextJSON(t *testing.T) {
	b, err := StyledText{Text: "live", Severity: SeveritySuccess}.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"live"`, string(b))
	assert.Equal(t, "live", NewWriterUI(&bytes.Buffer{}).Style(StyledText{Text: "live", Severity: SeverityError}))
}

func TestRecordingUI(t *testing.T) {
	r := NewRecordingUI()
	r.Info("network: %s", "bsc")
	r.Indent().Warn("market data unavailable")
	r.KeyValue([][2]string{{"Origin", "cache"}})
	assert.True(t, r.HasMessage("MARKET DATA"))
	assert.Equal(t, []string{"Origin: cache"}, r.Messages("KeyValue"))
	assert.Len(t, r.Calls(), 3)
}
