package session

import (
	"time"

	"github.com/grovetools/agsess/internal/transcript"
)

// SessionInfo is the internal index record for one discovered session file.
// It is rebuilt on every discovery call and never persisted.
type SessionInfo struct {
	ID          string    `json:"sessionId"`
	FilePath    string    `json:"filePath"`
	ProjectPath string    `json:"projectPath"`
	EncodedPath string    `json:"encodedPath"`
	IsAgent     bool      `json:"isAgent"`
	AgentID     string    `json:"agentId,omitempty"`
	ModTime     time.Time `json:"modTime"`
}

// SessionSummary is the listing view of a session, built from the
// metadata-only parse.
type SessionSummary struct {
	ID             string    `json:"sessionId"`
	ProjectPath    string    `json:"projectPath"`
	Summary        string    `json:"summary,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
	LastActivityAt time.Time `json:"lastActivityAt"`
	MessageCount   int       `json:"messageCount"`
	GitBranch      string    `json:"gitBranch,omitempty"`
	Version        string    `json:"version,omitempty"`
	AgentIDs       []string  `json:"agentIds,omitempty"`
}

// Session is the fully parsed, read-only aggregate. Messages keep on-disk
// line order; aggregate fields are recomputed from the parsed messages on
// every load.
type Session struct {
	ID             string                    `json:"sessionId"`
	ProjectPath    string                    `json:"projectPath"`
	EncodedPath    string                    `json:"encodedPath"`
	Summary        string                    `json:"summary,omitempty"`
	Timestamp      time.Time                 `json:"timestamp"`
	LastActivityAt time.Time                 `json:"lastActivityAt"`
	MessageCount   int                       `json:"messageCount"`
	GitBranch      string                    `json:"gitBranch,omitempty"`
	Version        string                    `json:"version,omitempty"`
	AgentIDs       []string                  `json:"agentIds,omitempty"`
	Messages       []transcript.Message      `json:"messages,omitempty"`
	Warnings       []transcript.ParseWarning `json:"-"`
}

// Pagination is the page envelope returned to callers.
type Pagination struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"hasMore"`
}

// NewPagination computes the envelope for a page over total items.
func NewPagination(total, limit, offset int) Pagination {
	return Pagination{
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: offset+limit < total,
	}
}

// ListResult is one page of session summaries.
type ListResult struct {
	Sessions   []SessionSummary `json:"sessions"`
	Pagination Pagination       `json:"pagination"`
}
