package display

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/grovetools/agsess/internal/formatters"
	"github.com/grovetools/agsess/internal/transcript"
)

// PrintMessage renders a single typed message. Tool calls go through the
// per-tool formatters when one is registered; otherwise summary mode shows
// a one-line description and full mode the pretty-printed input.
func PrintMessage(
	w io.Writer,
	msg transcript.Message,
	detailLevel string,
	toolFormatters map[string]formatters.ToolFormatter,
) {
	switch m := msg.(type) {
	case transcript.UserMessage:
		if m.Text != "" {
			fmt.Fprintf(w, "%s %s\n\n", userStyle.Render(iconLightbulb), m.Text)
		}
		if detailLevel == "full" {
			for _, result := range m.ToolResults {
				fmt.Fprintf(w, "%s\n", mutedStyle.Render(fmt.Sprintf("◀ Result for %s:\n%s", result.ToolUseID, result.Content)))
			}
		}
	case transcript.AssistantMessage:
		role := assistantStyle.Render(iconRobot)
		for _, block := range m.Content {
			switch b := block.(type) {
			case transcript.TextBlock:
				if b.Text != "" {
					fmt.Fprintf(w, "%s %s\n\n", role, b.Text)
				}
			case transcript.ThinkingBlock:
				if detailLevel == "full" && b.Thinking != "" {
					fmt.Fprintf(w, "%s\n", mutedStyle.Render(fmt.Sprintf("∴ %s", b.Thinking)))
				}
			case transcript.ToolUseBlock:
				fmt.Fprintf(w, "%s %s", role, renderToolUse(b, detailLevel, toolFormatters))
			}
		}
	case transcript.SummaryMessage:
		if m.Summary != "" {
			fmt.Fprintf(w, "%s\n", mutedStyle.Render(fmt.Sprintf("== %s ==", m.Summary)))
		}
	}
}

func renderToolUse(
	b transcript.ToolUseBlock,
	detailLevel string,
	toolFormatters map[string]formatters.ToolFormatter,
) string {
	if formatter, ok := toolFormatters[b.Name]; ok {
		if out := formatter(b.Input, detailLevel); out != "" {
			return out
		}
	}

	if detailLevel == "full" {
		pretty, err := json.MarshalIndent(json.RawMessage(b.Input), "", "  ")
		if err == nil {
			return mutedStyle.Render(fmt.Sprintf("▼ Input for %s:\n%s", b.Name, string(pretty))) + "\n"
		}
		return mutedStyle.Render(fmt.Sprintf("▼ Input for %s (raw):\n%s", b.Name, string(b.Input))) + "\n"
	}

	// Summary mode: tool name plus the most telling input field.
	toolInfo := fmt.Sprintf("[Using %s", b.Name)
	var inputs map[string]interface{}
	if err := json.Unmarshal(b.Input, &inputs); err == nil {
		if filePath, ok := inputs["file_path"].(string); ok {
			toolInfo += fmt.Sprintf(" on %s", filePath)
		} else if command, ok := inputs["command"].(string); ok {
			if len(command) > 50 {
				toolInfo += fmt.Sprintf(": %s...", command[:50])
			} else {
				toolInfo += fmt.Sprintf(": %s", command)
			}
		} else if pattern, ok := inputs["pattern"].(string); ok {
			toolInfo += fmt.Sprintf(" for '%s'", pattern)
		}
	}
	return toolInfo + "]\n"
}
