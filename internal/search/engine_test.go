package search

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/grovetools/agsess/internal/pathenc"
	"github.com/grovetools/agsess/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sessionID = "44444444-4444-4444-4444-444444444444"

func fixtureStore(t *testing.T) *session.Store {
	t.Helper()
	dataDir := t.TempDir()

	dir := filepath.Join(dataDir, "projects", pathenc.Encode("/tmp/proj"))
	require.NoError(t, os.MkdirAll(dir, 0o755))

	content := `{"type":"summary","summary":"Searching things"}
{"type":"user","uuid":"u1","timestamp":"2025-02-01T09:00:00Z","message":{"role":"user","content":"Line1\nLine2\nthe NEEDLE is here\nLine4\nLine5"}}
{"type":"assistant","uuid":"a1","timestamp":"2025-02-01T09:01:00Z","message":{"role":"assistant","content":[{"type":"thinking","thinking":"needle in thoughts"},{"type":"tool_use","id":"t1","name":"Grep","input":{"pattern":"needle"}}]}}
{"type":"user","uuid":"u2","timestamp":"2025-02-01T09:02:00Z","message":{"role":"user","content":"nothing to see"}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, sessionID+".jsonl"), []byte(content), 0o644))

	return session.NewStore(dataDir)
}

func TestSearchSessionsCaseInsensitive(t *testing.T) {
	engine := NewEngine(fixtureStore(t))

	result, err := engine.SearchSessions("needle", Options{Limit: 10, ContextLines: 1})
	require.NoError(t, err)

	// One hit in the user text, one in the thinking block, one in the
	// stringified tool input.
	assert.Equal(t, 3, result.Pagination.Total)
	require.Len(t, result.Matches, 3)

	first := result.Matches[0]
	assert.Equal(t, sessionID, first.SessionID)
	assert.Equal(t, "Searching things", first.SessionSummary)
	assert.Equal(t, "u1", first.MessageUUID)
	assert.Equal(t, "user", first.MessageType)
	assert.Equal(t, "NEEDLE", first.Match)
	assert.Equal(t, 3, first.LineNumber)
	assert.Equal(t, []string{"Line2", "the NEEDLE is here", "Line4"}, first.Context)
}

func TestSearchSessionsPaginates(t *testing.T) {
	engine := NewEngine(fixtureStore(t))

	page, err := engine.SearchSessions("needle", Options{Limit: 1, Offset: 1, ContextLines: 0})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Pagination.Total)
	require.Len(t, page.Matches, 1)
	assert.True(t, page.Pagination.HasMore)

	beyond, err := engine.SearchSessions("needle", Options{Limit: 10, Offset: 50})
	require.NoError(t, err)
	assert.Empty(t, beyond.Matches)
	assert.Equal(t, 3, beyond.Pagination.Total)
}

func TestSearchSessionsBlankQuery(t *testing.T) {
	engine := NewEngine(fixtureStore(t))

	result, err := engine.SearchSessions("   ", Options{Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, result.Matches)
	assert.Equal(t, 0, result.Pagination.Total)
}

func TestSearchInSession(t *testing.T) {
	engine := NewEngine(fixtureStore(t))

	matches, err := engine.SearchInSession("4444", "nothing", Options{ContextLines: 2})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "u2", matches[0].MessageUUID)
	assert.Equal(t, 1, matches[0].LineNumber)
	assert.Equal(t, []string{"nothing to see"}, matches[0].Context)
}

func TestSearchRejectsNegativeOptions(t *testing.T) {
	engine := NewEngine(fixtureStore(t))

	bad := []Options{
		{Limit: -1},
		{Limit: 10, Offset: -1},
		{Limit: 10, ContextLines: -1},
	}
	for _, opts := range bad {
		_, err := engine.SearchSessions("needle", opts)
		assert.Error(t, err)
		_, err = engine.SearchInSession("4444", "needle", opts)
		assert.Error(t, err)
	}
}

func TestFindAllOverlapping(t *testing.T) {
	spans := findAll("aaaa", "aa")
	assert.Equal(t, []span{{0, 2}, {1, 3}, {2, 4}}, spans)

	assert.Empty(t, findAll("abc", "xyz"))
	assert.Empty(t, findAll("abc", ""))
}

func TestFindAllFoldedByteLengths(t *testing.T) {
	// U+0130 folds to "i" but is two bytes wide; the span must still index
	// the original string correctly.
	block := "visit İstanbul today"
	spans := findAll(block, "istanbul")
	require.Len(t, spans, 1)
	assert.Equal(t, "İstanbul", block[spans[0].start:spans[0].end])
}

func TestContextWindowClamping(t *testing.T) {
	block := "one\ntwo\nthree"

	// Match on the first line; the window cannot extend above it.
	lines, lineNumber := contextWindow(block, 0, 2)
	assert.Equal(t, []string{"one", "two", "three"}, lines)
	assert.Equal(t, 1, lineNumber)

	// Match on the last line.
	lines, lineNumber = contextWindow(block, len(block)-1, 1)
	assert.Equal(t, []string{"two", "three"}, lines)
	assert.Equal(t, 3, lineNumber)
}
