// Package search provides case-insensitive full-text search over session
// transcripts with surrounding-line context.
package search

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/grovetools/agsess/internal/logging"
	"github.com/grovetools/agsess/internal/session"
	"github.com/sirupsen/logrus"
)

// Match is one occurrence of the query inside a message text block.
type Match struct {
	SessionID      string   `json:"sessionId"`
	SessionSummary string   `json:"sessionSummary,omitempty"`
	ProjectPath    string   `json:"projectPath"`
	MessageUUID    string   `json:"messageUuid"`
	MessageType    string   `json:"messageType"`
	Match          string   `json:"match"`
	Context        []string `json:"context"`
	LineNumber     int      `json:"lineNumber"`
}

// Options controls search scope, context size, and pagination.
type Options struct {
	Workspace    string
	Limit        int
	Offset       int
	ContextLines int
}

func (o Options) validate() error {
	if o.Limit < 0 {
		return fmt.Errorf("limit must be non-negative, got %d", o.Limit)
	}
	if o.Offset < 0 {
		return fmt.Errorf("offset must be non-negative, got %d", o.Offset)
	}
	if o.ContextLines < 0 {
		return fmt.Errorf("context lines must be non-negative, got %d", o.ContextLines)
	}
	return nil
}

// Result is one page of matches. Pagination.Total is the true match count
// across all sessions, independent of Limit and Offset.
type Result struct {
	Matches    []Match            `json:"matches"`
	Pagination session.Pagination `json:"pagination"`
}

// Engine searches sessions through a store. Every search re-parses the
// source files.
type Engine struct {
	store *session.Store
	log   *logrus.Entry
}

// NewEngine creates a search engine over the given store.
func NewEngine(store *session.Store) *Engine {
	return &Engine{
		store: store,
		log:   logging.NewLogger("search"),
	}
}

// SearchSessions scans every non-agent session for the query. An empty or
// whitespace-only query returns an empty zero-total page without touching
// disk. A session that fails to parse is skipped, not fatal. The full match
// list is collected before the page is sliced out.
func (e *Engine) SearchSessions(query string, opts Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	if strings.TrimSpace(query) == "" {
		return &Result{
			Matches:    []Match{},
			Pagination: session.NewPagination(0, opts.Limit, opts.Offset),
		}, nil
	}

	infos, err := e.store.Discover(opts.Workspace)
	if err != nil {
		return nil, err
	}

	var all []Match
	for _, info := range session.SortMains(infos) {
		sess, err := e.store.Load(info, infos)
		if err != nil {
			e.log.WithError(err).WithField("session", info.ID).Warn("skipping unparsable session")
			continue
		}
		all = append(all, e.searchSession(sess, query, opts.ContextLines)...)
	}

	total := len(all)
	start := opts.Offset
	if start > total {
		start = total
	}
	end := start + opts.Limit
	if end > total {
		end = total
	}

	return &Result{
		Matches:    all[start:end],
		Pagination: session.NewPagination(total, opts.Limit, opts.Offset),
	}, nil
}

// SearchInSession resolves one session and returns all its matches,
// unpaginated.
func (e *Engine) SearchInSession(identifier, query string, opts Options) ([]Match, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	sess, err := e.store.Get(identifier, session.ListOptions{Workspace: opts.Workspace})
	if err != nil {
		return nil, err
	}

	return e.searchSession(sess, query, opts.ContextLines), nil
}

// searchSession collects matches from every message of a session in
// message order.
func (e *Engine) searchSession(sess *session.Session, query string, contextLines int) []Match {
	var matches []Match
	for _, msg := range sess.Messages {
		for _, block := range ExtractBlocks(msg) {
			for _, s := range findAll(block, query) {
				context, lineNumber := contextWindow(block, s.start, contextLines)
				matches = append(matches, Match{
					SessionID:      sess.ID,
					SessionSummary: sess.Summary,
					ProjectPath:    sess.ProjectPath,
					MessageUUID:    msg.Meta().UUID,
					MessageType:    string(msg.Kind()),
					Match:          block[s.start:s.end],
					Context:        context,
					LineNumber:     lineNumber,
				})
			}
		}
	}
	return matches
}

// span is one matched byte range within a block.
type span struct {
	start, end int
}

// findAll returns the byte span of every case-insensitive occurrence of
// query in block. The scan tries every rune start, so overlapping
// occurrences are each reported. Matching folds rune by rune against the
// original string; spans stay valid even when a case mapping changes byte
// length, which lowercasing the whole block first would not guarantee.
func findAll(block, query string) []span {
	if query == "" {
		return nil
	}
	var spans []span
	for i := range block {
		if n := foldMatchLen(block[i:], query); n >= 0 {
			spans = append(spans, span{start: i, end: i + n})
		}
	}
	return spans
}

// foldMatchLen returns the byte length of the prefix of s that matches query
// case-insensitively, or -1 if there is no such prefix.
func foldMatchLen(s, query string) int {
	n := 0
	for _, qr := range query {
		r, size := utf8.DecodeRuneInString(s[n:])
		if size == 0 {
			return -1
		}
		if r != qr && unicode.ToLower(r) != unicode.ToLower(qr) {
			return -1
		}
		n += size
	}
	return n
}

// contextWindow locates the line containing a byte offset and returns the
// surrounding lines clamped to the block bounds, plus the 1-based line
// number of the match line. Line spans count the trailing newline.
func contextWindow(block string, offset, contextLines int) ([]string, int) {
	lines := strings.Split(block, "\n")

	matchLine := len(lines) - 1
	pos := 0
	for i, line := range lines {
		end := pos + len(line) + 1
		if offset < end {
			matchLine = i
			break
		}
		pos = end
	}

	start := matchLine - contextLines
	if start < 0 {
		start = 0
	}
	end := matchLine + contextLines
	if end > len(lines)-1 {
		end = len(lines) - 1
	}

	return lines[start : end+1], matchLine + 1
}
