package search

import (
	"fmt"

	"github.com/grovetools/agsess/internal/transcript"
)

// ExtractBlocks returns the searchable text blocks of a message, in block
// order. File-history snapshots are not searchable.
func ExtractBlocks(msg transcript.Message) []string {
	switch m := msg.(type) {
	case transcript.UserMessage:
		var blocks []string
		if m.Text != "" {
			blocks = append(blocks, m.Text)
		}
		for _, result := range m.ToolResults {
			if result.Content != "" {
				blocks = append(blocks, result.Content)
			}
		}
		return blocks
	case transcript.AssistantMessage:
		var blocks []string
		for _, block := range m.Content {
			switch b := block.(type) {
			case transcript.TextBlock:
				if b.Text != "" {
					blocks = append(blocks, b.Text)
				}
			case transcript.ThinkingBlock:
				if b.Thinking != "" {
					blocks = append(blocks, b.Thinking)
				}
			case transcript.ToolUseBlock:
				// Tool arguments are searchable through the stringified
				// input.
				blocks = append(blocks, fmt.Sprintf("Tool: %s\n%s", b.Name, string(b.Input)))
			}
		}
		return blocks
	case transcript.SummaryMessage:
		if m.Summary == "" {
			return nil
		}
		return []string{m.Summary}
	default:
		return nil
	}
}
