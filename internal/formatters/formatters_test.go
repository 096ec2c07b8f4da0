package formatters

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteFormatterEditElides(t *testing.T) {
	format := MakeWriteFormatter(2)
	input := json.RawMessage(`{"file_path":"/x/a.go","old_string":"one\ntwo\nthree\nfour","new_string":"uno"}`)

	out := format(input, "summary")
	assert.Contains(t, out, "Editing /x/a.go")
	assert.Contains(t, out, "one")
	assert.Contains(t, out, "two")
	assert.NotContains(t, out, "three")
	assert.Contains(t, out, "(2 more lines removed)")
	assert.Contains(t, out, "uno")
}

func TestWriteFormatterContentSummary(t *testing.T) {
	format := MakeWriteFormatter(0)
	input := json.RawMessage(`{"file_path":"/x/b.go","content":"l1\nl2\nl3\nl4\nl5\nl6"}`)

	out := format(input, "summary")
	assert.Contains(t, out, "Writing to /x/b.go")
	assert.Contains(t, out, "(6 lines)")
	assert.NotContains(t, out, "l6")

	out = format(input, "full")
	assert.Contains(t, out, "l1")
	assert.Contains(t, out, "l6")
}

func TestWriteFormatterDeclinesBadInput(t *testing.T) {
	format := MakeWriteFormatter(0)
	assert.Empty(t, format(json.RawMessage(`not json`), "summary"))
}

func TestTrimIndent(t *testing.T) {
	lines := trimIndent("    if x {\n        y()\n    }")
	assert.Equal(t, []string{"if x {", "    y()", "}"}, lines)

	// Blank lines do not drag the indent to zero.
	lines = trimIndent("    a\n\n    b")
	assert.Equal(t, []string{"a", "", "b"}, lines)
}

func TestFormatReadTool(t *testing.T) {
	out := FormatReadTool(json.RawMessage(`{"file_path":"/x/c.go","offset":10,"limit":5}`), "summary")
	assert.Contains(t, out, "/x/c.go")
	assert.Contains(t, out, "offset: 10")
	assert.Contains(t, out, "limit: 5")

	out = FormatReadTool(json.RawMessage(`{"file_path":"/x/c.go"}`), "summary")
	assert.Contains(t, out, "/x/c.go")
	assert.NotContains(t, out, "offset")
}

func TestFormatTodoWriteTool(t *testing.T) {
	input := json.RawMessage(`{"todos":[
		{"content":"done thing","status":"completed"},
		{"content":"current thing","status":"in_progress"},
		{"content":"next thing","status":"pending"}
	]}`)

	out := FormatTodoWriteTool(input, "summary")
	assert.Contains(t, out, "[✓] done thing")
	assert.Contains(t, out, "[→] current thing")
	assert.Contains(t, out, "[ ] next thing")
}
