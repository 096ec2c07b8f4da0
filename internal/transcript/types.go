package transcript

import (
	"encoding/json"
	"time"
)

// MessageKind discriminates the message union.
type MessageKind string

const (
	KindUser                MessageKind = "user"
	KindAssistant           MessageKind = "assistant"
	KindSummary             MessageKind = "summary"
	KindFileHistorySnapshot MessageKind = "file-history-snapshot"
)

// RawEntry is one decoded JSONL line before typing. It only exists during
// parsing; callers consume Message values.
type RawEntry struct {
	Type       string          `json:"type"`
	UUID       string          `json:"uuid"`
	ParentUUID string          `json:"parentUuid"`
	Timestamp  *time.Time      `json:"timestamp"`
	SessionID  string          `json:"sessionId"`
	AgentID    string          `json:"agentId"`
	Cwd        string          `json:"cwd"`
	GitBranch  string          `json:"gitBranch"`
	Version    string          `json:"version"`
	Summary    string          `json:"summary"`
	LeafUUID   string          `json:"leafUuid"`
	MessageID  string          `json:"messageId"`
	Message    json.RawMessage `json:"message"`
	Snapshot   json.RawMessage `json:"snapshot"`
}

// EntryMeta carries the fields common to every message.
type EntryMeta struct {
	UUID       string    `json:"uuid"`
	ParentUUID string    `json:"parentUuid,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Meta returns the common message fields.
func (m EntryMeta) Meta() EntryMeta { return m }

// Message is the closed union of transcript message types. Consumers switch
// on Kind() and assert the concrete type.
type Message interface {
	Kind() MessageKind
	Meta() EntryMeta
}

// Usage holds token accounting from an assistant turn. Missing counters
// decode to zero.
type Usage struct {
	InputTokens              int `json:"input_tokens"`
	OutputTokens             int `json:"output_tokens"`
	CacheCreationInputTokens int `json:"cache_creation_input_tokens"`
	CacheReadInputTokens     int `json:"cache_read_input_tokens"`
}

// ToolResult is one tool_result block inside a user entry.
type ToolResult struct {
	ToolUseID string `json:"tool_use_id"`
	Content   string `json:"content"`
}

// UserMessage is a user chat turn (Text set) or a batch of tool results
// (ToolResults set).
type UserMessage struct {
	EntryMeta
	Text        string       `json:"text,omitempty"`
	ToolResults []ToolResult `json:"toolResults,omitempty"`
}

func (UserMessage) Kind() MessageKind { return KindUser }

// MarshalJSON adds the kind discriminator, which an interface slice would
// otherwise lose on serialization.
func (m UserMessage) MarshalJSON() ([]byte, error) {
	type alias UserMessage
	return json.Marshal(struct {
		Type MessageKind `json:"type"`
		alias
	}{KindUser, alias(m)})
}

// ContentBlock is the closed union of assistant content blocks.
type ContentBlock interface {
	BlockType() string
}

// TextBlock is a plain text content block.
type TextBlock struct {
	Text string `json:"text"`
}

func (TextBlock) BlockType() string { return "text" }

// ThinkingBlock is an extended-thinking content block.
type ThinkingBlock struct {
	Thinking string `json:"thinking"`
}

func (ThinkingBlock) BlockType() string { return "thinking" }

// ToolUseBlock is a tool invocation with its structured input.
type ToolUseBlock struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Input json.RawMessage `json:"input"`
}

func (ToolUseBlock) BlockType() string { return "tool_use" }

// AssistantMessage is an assistant turn with ordered content blocks.
type AssistantMessage struct {
	EntryMeta
	Model      string         `json:"model,omitempty"`
	StopReason *string        `json:"stopReason"`
	Usage      Usage          `json:"usage"`
	Content    []ContentBlock `json:"-"`
}

func (AssistantMessage) Kind() MessageKind { return KindAssistant }

// MarshalJSON emits the kind discriminator and the content blocks, each
// tagged with its block type.
func (m AssistantMessage) MarshalJSON() ([]byte, error) {
	type jsonBlock struct {
		Type     string          `json:"type"`
		Text     string          `json:"text,omitempty"`
		Thinking string          `json:"thinking,omitempty"`
		ID       string          `json:"id,omitempty"`
		Name     string          `json:"name,omitempty"`
		Input    json.RawMessage `json:"input,omitempty"`
	}
	blocks := make([]jsonBlock, 0, len(m.Content))
	for _, block := range m.Content {
		b := jsonBlock{Type: block.BlockType()}
		switch v := block.(type) {
		case TextBlock:
			b.Text = v.Text
		case ThinkingBlock:
			b.Thinking = v.Thinking
		case ToolUseBlock:
			b.ID, b.Name, b.Input = v.ID, v.Name, v.Input
		}
		blocks = append(blocks, b)
	}

	type alias AssistantMessage
	return json.Marshal(struct {
		Type MessageKind `json:"type"`
		alias
		Content []jsonBlock `json:"content,omitempty"`
	}{KindAssistant, alias(m), blocks})
}

// SummaryMessage titles the conversation reachable from LeafUUID.
type SummaryMessage struct {
	EntryMeta
	Summary  string `json:"summary"`
	LeafUUID string `json:"leafUuid"`
}

func (SummaryMessage) Kind() MessageKind { return KindSummary }

func (m SummaryMessage) MarshalJSON() ([]byte, error) {
	type alias SummaryMessage
	return json.Marshal(struct {
		Type MessageKind `json:"type"`
		alias
	}{KindSummary, alias(m)})
}

// FileBackup describes one backed-up file inside a snapshot.
type FileBackup struct {
	BackupFileName string `json:"backupFileName"`
	Version        int    `json:"version"`
	BackupTime     string `json:"backupTime"`
}

// FileHistorySnapshotMessage maps absolute file paths to their backups.
type FileHistorySnapshotMessage struct {
	EntryMeta
	MessageID string                `json:"messageId"`
	Backups   map[string]FileBackup `json:"trackedFileBackups"`
}

func (FileHistorySnapshotMessage) Kind() MessageKind { return KindFileHistorySnapshot }

func (m FileHistorySnapshotMessage) MarshalJSON() ([]byte, error) {
	type alias FileHistorySnapshotMessage
	return json.Marshal(struct {
		Type MessageKind `json:"type"`
		alias
	}{KindFileHistorySnapshot, alias(m)})
}
