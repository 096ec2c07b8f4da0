// Package formatters renders tool-call inputs for transcript display. Each
// known tool gets a compact rendering; unknown tools fall back to the
// caller's generic input dump.
package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ToolFormatter renders one tool invocation's input. An empty return means
// the formatter declined and the caller should fall back.
type ToolFormatter func(input json.RawMessage, detailLevel string) string

var (
	addStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	delStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// trimIndent splits text into lines with their common leading whitespace
// removed, so indented snippets render flush left. Blank lines stay blank
// and do not contribute to the indent.
func trimIndent(text string) []string {
	lines := strings.Split(text, "\n")

	indent := -1
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		if n := len(line) - len(trimmed); indent < 0 || n < indent {
			indent = n
		}
	}
	if indent <= 0 {
		return lines
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			out[i] = ""
		} else {
			out[i] = line[indent:]
		}
	}
	return out
}

// diffSide renders one side of a diff view, eliding lines past maxLines.
// maxLines 0 shows everything.
func diffSide(out *strings.Builder, lines []string, marker, verb string, style lipgloss.Style, maxLines int) {
	show := len(lines)
	if maxLines > 0 && maxLines < show {
		show = maxLines
	}
	for _, line := range lines[:show] {
		out.WriteString(style.Render(fmt.Sprintf("  %s %s", marker, line)) + "\n")
	}
	if rest := len(lines) - show; rest > 0 {
		out.WriteString(style.Render(fmt.Sprintf("  %s ... (%d more lines %s)", marker, rest, verb)) + "\n")
	}
}

// MakeWriteFormatter builds the formatter for Write and Edit inputs.
// maxLines bounds each diff side.
func MakeWriteFormatter(maxLines int) ToolFormatter {
	return func(input json.RawMessage, detailLevel string) string {
		var in struct {
			FilePath  string `json:"file_path"`
			Content   string `json:"content"`
			OldString string `json:"old_string"`
			NewString string `json:"new_string"`
		}
		if err := json.Unmarshal(input, &in); err != nil {
			return ""
		}

		var out strings.Builder
		switch {
		case in.OldString != "" && in.NewString != "":
			fmt.Fprintf(&out, "✏ Editing %s\n", in.FilePath)
			diffSide(&out, trimIndent(in.OldString), "-", "removed", delStyle, maxLines)
			diffSide(&out, trimIndent(in.NewString), "+", "added", addStyle, maxLines)
		case in.Content != "":
			fmt.Fprintf(&out, "✚ Writing to %s\n", in.FilePath)
			lines := trimIndent(in.Content)
			if detailLevel == "full" || len(lines) <= 5 {
				diffSide(&out, lines, "+", "added", addStyle, 0)
			} else {
				out.WriteString(addStyle.Render(fmt.Sprintf("  + (%d lines)", len(lines))) + "\n")
			}
		}
		return out.String()
	}
}

// FormatReadTool renders a Read invocation as a single line.
func FormatReadTool(input json.RawMessage, detailLevel string) string {
	var in struct {
		FilePath string `json:"file_path"`
		Offset   int    `json:"offset"`
		Limit    int    `json:"limit"`
	}
	if err := json.Unmarshal(input, &in); err != nil {
		return ""
	}

	var bounds []string
	if in.Offset > 0 {
		bounds = append(bounds, fmt.Sprintf("offset: %d", in.Offset))
	}
	if in.Limit > 0 {
		bounds = append(bounds, fmt.Sprintf("limit: %d", in.Limit))
	}
	if len(bounds) > 0 {
		return fmt.Sprintf("📄 Reading %s (%s)\n", in.FilePath, strings.Join(bounds, ", "))
	}
	return fmt.Sprintf("📄 Reading %s\n", in.FilePath)
}

// FormatTodoWriteTool renders a TodoWrite invocation as a checklist.
func FormatTodoWriteTool(input json.RawMessage, detailLevel string) string {
	var in struct {
		Todos []struct {
			Content string `json:"content"`
			Status  string `json:"status"`
		} `json:"todos"`
	}
	if err := json.Unmarshal(input, &in); err != nil {
		return ""
	}

	marks := map[string]string{
		"completed":   "[✓]",
		"in_progress": "[→]",
	}

	var out strings.Builder
	out.WriteString("☑ TODO List Updated:\n")
	for _, todo := range in.Todos {
		mark, ok := marks[todo.Status]
		if !ok {
			mark = "[ ]"
		}
		fmt.Fprintf(&out, "  %s %s\n", mark, todo.Content)
	}
	return out.String()
}
