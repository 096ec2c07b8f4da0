package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/grovetools/agsess/internal/migrate"
	"github.com/grovetools/agsess/internal/pathenc"
	"github.com/grovetools/agsess/internal/search"
	"github.com/grovetools/agsess/internal/session"
	"github.com/grovetools/agsess/pkg/sessionlogs"
)

const (
	alphaID = "11111111-1111-1111-1111-111111111111"
	betaID  = "22222222-2222-2222-2222-222222222222"
)

// setupDataDir creates a data root with two workspaces, two main sessions,
// and one agent session.
func setupDataDir(ctx *Context) error {
	dataDir := ctx.NewDir("claude")

	alphaDir := filepath.Join(dataDir, "projects", pathenc.Encode("/tmp/alpha"))
	alpha := strings.Join([]string{
		`{"type":"summary","summary":"Fixing the login flow","leafUuid":"a4"}`,
		`{"type":"user","uuid":"a1","timestamp":"2025-01-01T12:00:00Z","sessionId":"` + alphaID + `","cwd":"/tmp/alpha","gitBranch":"main","message":{"role":"user","content":"Hello, please fix the login bug"}}`,
		`{"type":"assistant","uuid":"a2","parentUuid":"a1","timestamp":"2025-01-01T12:00:01Z","message":{"role":"assistant","model":"m1","content":[{"type":"text","text":"Looking at the login handler now"}]}}`,
		`not valid json at all`,
		`{"type":"user","uuid":"a3","timestamp":"2025-01-01T12:00:02Z","message":{"role":"user","content":"Line1\nneedle here\nLine3"}}`,
		`{"type":"assistant","uuid":"a4","parentUuid":"a3","timestamp":"2025-01-01T12:00:03Z","message":{"role":"assistant","content":[{"type":"tool_use","id":"t1","name":"Read","input":{"file_path":"/tmp/alpha/auth.go"}}]}}`,
	}, "\n")
	if err := writeFile(filepath.Join(alphaDir, alphaID+".jsonl"), alpha); err != nil {
		return err
	}

	agent := `{"type":"user","uuid":"g1","timestamp":"2025-01-01T12:05:00Z","message":{"role":"user","content":"Subtask: scan the repo"}}`
	if err := writeFile(filepath.Join(alphaDir, "agent-abc123.jsonl"), agent); err != nil {
		return err
	}

	betaDir := filepath.Join(dataDir, "projects", pathenc.Encode("/tmp/beta"))
	beta := `{"type":"user","uuid":"b1","timestamp":"2025-01-02T10:00:00Z","sessionId":"` + betaID + `","cwd":"/tmp/beta","message":{"role":"user","content":"Test message"}}`
	if err := writeFile(filepath.Join(betaDir, betaID+".jsonl"), beta); err != nil {
		return err
	}

	// Beta modified last so it sorts first.
	ctx.Set("data_dir", dataDir)
	return nil
}

// ListScenario checks discovery, ordering, agent exclusion, and pagination.
func ListScenario() *Scenario {
	return &Scenario{
		Name: "list-sessions",
		Steps: []Step{
			{Name: "setup data dir", Fn: setupDataDir},
			{Name: "list all sessions", Fn: func(ctx *Context) error {
				store := sessionlogs.NewStore(ctx.Get("data_dir"))
				result, err := store.List(session.ListOptions{Limit: 20})
				if err != nil {
					return err
				}
				if err := assertEqual(result.Pagination.Total, 2, "total sessions"); err != nil {
					return err
				}
				if err := assertEqual(len(result.Sessions), 2, "page size"); err != nil {
					return err
				}
				for _, s := range result.Sessions {
					if strings.HasPrefix(s.ID, "agent-") {
						return fmt.Errorf("agent session %s leaked into the listing", s.ID)
					}
				}
				return nil
			}},
			{Name: "filter by workspace", Fn: func(ctx *Context) error {
				store := sessionlogs.NewStore(ctx.Get("data_dir"))
				result, err := store.List(session.ListOptions{Workspace: "/tmp/alpha", Limit: 20})
				if err != nil {
					return err
				}
				if err := assertEqual(result.Pagination.Total, 1, "filtered total"); err != nil {
					return err
				}
				if err := assertEqual(result.Sessions[0].ID, alphaID, "filtered session id"); err != nil {
					return err
				}
				return assertContains(result.Sessions[0].Summary, "login flow", "summary from metadata pass")
			}},
			{Name: "paginate past the end", Fn: func(ctx *Context) error {
				store := sessionlogs.NewStore(ctx.Get("data_dir"))
				result, err := store.List(session.ListOptions{Limit: 20, Offset: 10})
				if err != nil {
					return err
				}
				if err := assertEqual(len(result.Sessions), 0, "page beyond end is empty"); err != nil {
					return err
				}
				return assertEqual(result.Pagination.HasMore, false, "hasMore beyond end")
			}},
		},
	}
}

// ResolveScenario checks every identifier shape against the same fixture.
func ResolveScenario() *Scenario {
	return &Scenario{
		Name: "resolve-identifiers",
		Steps: []Step{
			{Name: "setup data dir", Fn: setupDataDir},
			{Name: "resolve by uuid, prefix, and agent id", Fn: func(ctx *Context) error {
				store := sessionlogs.NewStore(ctx.Get("data_dir"))

				sess, err := store.Get(alphaID, session.ListOptions{})
				if err != nil {
					return err
				}
				if err := assertEqual(sess.ID, alphaID, "uuid lookup"); err != nil {
					return err
				}
				if err := assertEqual(sess.MessageCount, 4, "message count excludes summary"); err != nil {
					return err
				}
				if err := assertEqual(len(sess.Warnings), 1, "malformed line warning"); err != nil {
					return err
				}

				sess, err = store.Get("2222", session.ListOptions{})
				if err != nil {
					return err
				}
				if err := assertEqual(sess.ID, betaID, "prefix lookup"); err != nil {
					return err
				}

				sess, err = store.Get("agent-abc123", session.ListOptions{})
				if err != nil {
					return err
				}
				return assertEqual(sess.ID, "agent-abc123", "agent lookup")
			}},
			{Name: "unknown identifier is a typed error", Fn: func(ctx *Context) error {
				store := sessionlogs.NewStore(ctx.Get("data_dir"))
				_, err := store.Get("deadbeef", session.ListOptions{})
				var notFound *session.SessionNotFoundError
				if !errors.As(err, &notFound) {
					return fmt.Errorf("expected SessionNotFoundError, got %v", err)
				}
				return nil
			}},
		},
	}
}

// SearchScenario checks cross-session search with context windows.
func SearchScenario() *Scenario {
	return &Scenario{
		Name: "search-sessions",
		Steps: []Step{
			{Name: "setup data dir", Fn: setupDataDir},
			{Name: "search across sessions", Fn: func(ctx *Context) error {
				store := sessionlogs.NewStore(ctx.Get("data_dir"))
				engine := search.NewEngine(store.Store)
				result, err := engine.SearchSessions("NEEDLE", search.Options{Limit: 20, ContextLines: 2})
				if err != nil {
					return err
				}
				if err := assertEqual(result.Pagination.Total, 1, "match count"); err != nil {
					return err
				}
				m := result.Matches[0]
				if err := assertEqual(m.Match, "needle", "original casing preserved"); err != nil {
					return err
				}
				if err := assertEqual(m.LineNumber, 2, "1-based line number"); err != nil {
					return err
				}
				return assertEqual(len(m.Context), 3, "context clamped to block")
			}},
			{Name: "blank query returns empty page", Fn: func(ctx *Context) error {
				store := sessionlogs.NewStore(ctx.Get("data_dir"))
				engine := search.NewEngine(store.Store)
				result, err := engine.SearchSessions("   ", search.Options{Limit: 20})
				if err != nil {
					return err
				}
				return assertEqual(result.Pagination.Total, 0, "blank query total")
			}},
		},
	}
}

// MigrateScenario checks copy and move migration with path rewriting.
func MigrateScenario() *Scenario {
	return &Scenario{
		Name: "migrate-sessions",
		Steps: []Step{
			{Name: "setup data dir", Fn: setupDataDir},
			{Name: "migrate one session by id", Fn: func(ctx *Context) error {
				store := sessionlogs.NewStore(ctx.Get("data_dir"))
				engine := migrate.NewEngine(store.Store)
				result, err := engine.MigrateSession(migrate.SessionOptions{
					Identifiers:   []string{alphaID},
					DestWorkspace: "/srv/alpha",
				})
				if err != nil {
					return err
				}
				if err := assertEqual(result.SuccessCount, 1, "success count"); err != nil {
					return err
				}

				destPath := filepath.Join(ctx.Get("data_dir"), "projects",
					pathenc.Encode("/srv/alpha"), alphaID+".jsonl")
				data, err := os.ReadFile(destPath)
				if err != nil {
					return fmt.Errorf("destination file missing: %w", err)
				}
				if err := assertContains(string(data), "/srv/alpha/auth.go", "tool input rewritten"); err != nil {
					return err
				}
				if strings.Contains(string(data), `"cwd":"/tmp/alpha"`) {
					return fmt.Errorf("cwd not rewritten in destination file")
				}
				return assertContains(string(data), "not valid json at all", "malformed line carried over")
			}},
			{Name: "partial failure keeps going", Fn: func(ctx *Context) error {
				store := sessionlogs.NewStore(ctx.Get("data_dir"))
				engine := migrate.NewEngine(store.Store)
				result, err := engine.MigrateSession(migrate.SessionOptions{
					Identifiers:   []string{"no-such-session", betaID},
					DestWorkspace: "/srv/beta",
				})
				if err != nil {
					return err
				}
				if err := assertEqual(result.FailureCount, 1, "failure count"); err != nil {
					return err
				}
				return assertEqual(result.SuccessCount, 1, "success count after failure")
			}},
			{Name: "workspace move deletes sources", Fn: func(ctx *Context) error {
				store := sessionlogs.NewStore(ctx.Get("data_dir"))
				engine := migrate.NewEngine(store.Store)
				result, err := engine.MigrateWorkspace(migrate.WorkspaceOptions{
					SourceWorkspace: "/tmp/alpha",
					DestWorkspace:   "/srv/alphamoved",
					Move:            true,
				})
				if err != nil {
					return err
				}
				// Main session plus its agent session.
				if err := assertEqual(result.SuccessCount, 2, "moved file count"); err != nil {
					return err
				}

				srcPath := filepath.Join(ctx.Get("data_dir"), "projects",
					pathenc.Encode("/tmp/alpha"), alphaID+".jsonl")
				if _, err := os.Stat(srcPath); !os.IsNotExist(err) {
					return fmt.Errorf("source file still present after move")
				}
				return nil
			}},
		},
	}
}
