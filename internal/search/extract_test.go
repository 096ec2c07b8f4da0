package search

import (
	"encoding/json"
	"testing"

	"github.com/grovetools/agsess/internal/transcript"
	"github.com/stretchr/testify/assert"
)

func TestExtractBlocks(t *testing.T) {
	tests := []struct {
		name string
		msg  transcript.Message
		want []string
	}{
		{
			name: "user text and tool results",
			msg: transcript.UserMessage{
				Text: "a question",
				ToolResults: []transcript.ToolResult{
					{ToolUseID: "t1", Content: "result text"},
					{ToolUseID: "t2", Content: ""},
				},
			},
			want: []string{"a question", "result text"},
		},
		{
			name: "assistant blocks in order",
			msg: transcript.AssistantMessage{
				Content: []transcript.ContentBlock{
					transcript.ThinkingBlock{Thinking: "hmm"},
					transcript.TextBlock{Text: "an answer"},
					transcript.ToolUseBlock{Name: "Bash", Input: json.RawMessage(`{"command":"ls"}`)},
				},
			},
			want: []string{"hmm", "an answer", "Tool: Bash\n{\"command\":\"ls\"}"},
		},
		{
			name: "summary",
			msg:  transcript.SummaryMessage{Summary: "the title"},
			want: []string{"the title"},
		},
		{
			name: "empty summary",
			msg:  transcript.SummaryMessage{},
			want: nil,
		},
		{
			name: "snapshot is not searchable",
			msg:  transcript.FileHistorySnapshotMessage{MessageID: "m1"},
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractBlocks(tt.msg))
		})
	}
}
