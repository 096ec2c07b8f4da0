package transcript

import (
	"encoding/json"
	"strings"
	"time"
)

// ToMessage converts a raw entry to its typed message. Entries with an
// unrecognized type, or snapshot entries without a snapshot payload, yield
// no message.
func ToMessage(entry RawEntry) (Message, bool) {
	meta := EntryMeta{
		UUID:       entry.UUID,
		ParentUUID: entry.ParentUUID,
		Timestamp:  entryTime(entry),
	}

	switch entry.Type {
	case "user":
		return toUserMessage(entry, meta)
	case "assistant":
		return toAssistantMessage(entry, meta)
	case "summary":
		return SummaryMessage{
			EntryMeta: meta,
			Summary:   entry.Summary,
			LeafUUID:  entry.LeafUUID,
		}, true
	case "file-history-snapshot":
		return toSnapshotMessage(entry, meta)
	default:
		return nil, false
	}
}

// entryTime applies the documented default: an absent timestamp decodes as
// the current time.
func entryTime(entry RawEntry) time.Time {
	if entry.Timestamp == nil {
		return time.Now()
	}
	return *entry.Timestamp
}

func toUserMessage(entry RawEntry, meta EntryMeta) (Message, bool) {
	msg := UserMessage{EntryMeta: meta}

	var body struct {
		Content json.RawMessage `json:"content"`
	}
	if entry.Message != nil {
		if err := json.Unmarshal(entry.Message, &body); err != nil {
			return msg, true
		}
	}
	if body.Content == nil {
		return msg, true
	}

	// String content is a plain chat turn.
	var text string
	if err := json.Unmarshal(body.Content, &text); err == nil {
		msg.Text = text
		return msg, true
	}

	// Array content carries tool results (and occasionally text items).
	var items []json.RawMessage
	if err := json.Unmarshal(body.Content, &items); err != nil {
		return msg, true
	}

	var texts []string
	for _, rawItem := range items {
		var item struct {
			Type      string          `json:"type"`
			Text      string          `json:"text"`
			ToolUseID string          `json:"tool_use_id"`
			Content   json.RawMessage `json:"content"`
		}
		if err := json.Unmarshal(rawItem, &item); err != nil {
			continue
		}
		switch item.Type {
		case "tool_result":
			msg.ToolResults = append(msg.ToolResults, ToolResult{
				ToolUseID: item.ToolUseID,
				Content:   decodeResultContent(item.Content),
			})
		case "text":
			if item.Text != "" {
				texts = append(texts, item.Text)
			}
		}
	}
	msg.Text = strings.Join(texts, "\n")
	return msg, true
}

// decodeResultContent flattens a tool_result content field, which may be a
// plain string or an array of text items.
func decodeResultContent(raw json.RawMessage) string {
	if raw == nil {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var items []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &items); err == nil {
		var texts []string
		for _, item := range items {
			if item.Type == "text" && item.Text != "" {
				texts = append(texts, item.Text)
			}
		}
		return strings.Join(texts, "\n")
	}

	return string(raw)
}

func toAssistantMessage(entry RawEntry, meta EntryMeta) (Message, bool) {
	msg := AssistantMessage{EntryMeta: meta}

	var body struct {
		Model      string          `json:"model"`
		StopReason *string         `json:"stop_reason"`
		Usage      *Usage          `json:"usage"`
		Content    json.RawMessage `json:"content"`
	}
	if entry.Message != nil {
		if err := json.Unmarshal(entry.Message, &body); err != nil {
			return msg, true
		}
	}

	msg.Model = body.Model
	msg.StopReason = body.StopReason
	if body.Usage != nil {
		msg.Usage = *body.Usage
	}

	var items []json.RawMessage
	if body.Content == nil || json.Unmarshal(body.Content, &items) != nil {
		return msg, true
	}

	for _, rawItem := range items {
		var item struct {
			Type     string          `json:"type"`
			Text     string          `json:"text"`
			Thinking string          `json:"thinking"`
			ID       string          `json:"id"`
			Name     string          `json:"name"`
			Input    json.RawMessage `json:"input"`
		}
		if err := json.Unmarshal(rawItem, &item); err != nil {
			continue
		}
		switch item.Type {
		case "text":
			msg.Content = append(msg.Content, TextBlock{Text: item.Text})
		case "thinking":
			msg.Content = append(msg.Content, ThinkingBlock{Thinking: item.Thinking})
		case "tool_use":
			msg.Content = append(msg.Content, ToolUseBlock{
				ID:    item.ID,
				Name:  item.Name,
				Input: item.Input,
			})
		}
	}
	return msg, true
}

func toSnapshotMessage(entry RawEntry, meta EntryMeta) (Message, bool) {
	if entry.Snapshot == nil {
		return nil, false
	}

	var snapshot struct {
		MessageID          string                `json:"messageId"`
		TrackedFileBackups map[string]FileBackup `json:"trackedFileBackups"`
	}
	if err := json.Unmarshal(entry.Snapshot, &snapshot); err != nil {
		return nil, false
	}

	messageID := snapshot.MessageID
	if messageID == "" {
		messageID = entry.MessageID
	}
	return FileHistorySnapshotMessage{
		EntryMeta: meta,
		MessageID: messageID,
		Backups:   snapshot.TrackedFileBackups,
	}, true
}
