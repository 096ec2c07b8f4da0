// Package migrate relocates session files between workspaces, rewriting
// the absolute paths embedded in their records.
package migrate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/grovetools/agsess/internal/logging"
	"github.com/grovetools/agsess/internal/pathenc"
	"github.com/grovetools/agsess/internal/session"
	"github.com/sirupsen/logrus"
)

// ItemError records one failed item of a batch migration.
type ItemError struct {
	Identifier string `json:"identifier"`
	Message    string `json:"error"`
}

// Result accumulates per-item outcomes of a batch migration. A failed item
// never aborts the batch.
type Result struct {
	SuccessCount int         `json:"successCount"`
	FailureCount int         `json:"failureCount"`
	Errors       []ItemError `json:"errors,omitempty"`
	Migrated     []string    `json:"migrated,omitempty"`
}

func (r *Result) fail(identifier string, err error) {
	r.FailureCount++
	r.Errors = append(r.Errors, ItemError{Identifier: identifier, Message: err.Error()})
}

func (r *Result) ok(identifier string) {
	r.SuccessCount++
	r.Migrated = append(r.Migrated, identifier)
}

// SessionOptions configures a migration of individually identified
// sessions.
type SessionOptions struct {
	Identifiers   []string
	DestWorkspace string
	DestDataDir   string // defaults to the store's data root
	Move          bool
}

// WorkspaceOptions configures a bulk migration of a whole workspace.
type WorkspaceOptions struct {
	SourceWorkspace string
	DestWorkspace   string
	DestDataDir     string // defaults to the store's data root
	Move            bool
}

// Engine migrates session files through a store.
type Engine struct {
	store *session.Store
	log   *logrus.Entry
}

// NewEngine creates a migration engine over the given store.
func NewEngine(store *session.Store) *Engine {
	return &Engine{
		store: store,
		log:   logging.NewLogger("migrate"),
	}
}

// MigrateSession migrates each identified session independently. Failures
// are recorded per item; the call itself only errors on an invalid
// destination or an unreadable data root. The whole batch is resolved
// against one discovery snapshot before anything moves: migrating an item
// changes the listing, which would otherwise shift later index identifiers.
func (e *Engine) MigrateSession(opts SessionOptions) (*Result, error) {
	if strings.TrimRight(opts.DestWorkspace, "/") == "" {
		return nil, fmt.Errorf("destination workspace is required")
	}

	infos, err := e.store.Discover("")
	if err != nil {
		return nil, err
	}

	type item struct {
		identifier string
		info       session.SessionInfo
	}
	result := &Result{}
	var batch []item
	for _, identifier := range opts.Identifiers {
		info, err := session.ResolveInfo(identifier, infos)
		if err != nil {
			result.fail(identifier, err)
			continue
		}
		batch = append(batch, item{identifier: identifier, info: info})
	}

	for _, it := range batch {
		if err := e.migrateFile(it.info, opts.DestWorkspace, opts.DestDataDir, opts.Move); err != nil {
			result.fail(it.identifier, err)
			continue
		}
		result.ok(it.info.ID)
	}
	return result, nil
}

// MigrateWorkspace migrates every session file, agent sessions included,
// found in the source workspace's directory. The source is resolved from
// its encoded directory name directly, without going through discovery; a
// missing directory is a WorkspaceNotFoundError.
func (e *Engine) MigrateWorkspace(opts WorkspaceOptions) (*Result, error) {
	if strings.TrimRight(opts.DestWorkspace, "/") == "" {
		return nil, fmt.Errorf("destination workspace is required")
	}

	srcDir := filepath.Join(e.store.DataDir(), "projects", pathenc.Encode(opts.SourceWorkspace))
	files, err := os.ReadDir(srcDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &session.WorkspaceNotFoundError{WorkspacePath: opts.SourceWorkspace}
		}
		return nil, fmt.Errorf("failed to read workspace directory: %w", err)
	}

	result := &Result{}
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		fi, ok := pathenc.ClassifyFile(file.Name())
		if !ok {
			continue
		}
		info := session.SessionInfo{
			ID:          fi.SessionID,
			FilePath:    filepath.Join(srcDir, file.Name()),
			ProjectPath: strings.TrimRight(opts.SourceWorkspace, "/"),
			IsAgent:     fi.IsAgent,
			AgentID:     fi.AgentID,
		}
		if err := e.migrateFile(info, opts.DestWorkspace, opts.DestDataDir, opts.Move); err != nil {
			result.fail(info.ID, err)
			continue
		}
		result.ok(info.ID)
	}
	return result, nil
}

// migrateFile rewrites a whole session file line by line and writes it
// under the destination workspace. Lines that fail to parse are carried
// over byte-identical. In move mode the source is deleted only after the
// destination write succeeds; a crash in between leaves both copies, which
// loses nothing.
func (e *Engine) migrateFile(info session.SessionInfo, destWorkspace, destDataDir string, move bool) error {
	data, err := os.ReadFile(info.FilePath)
	if err != nil {
		return fmt.Errorf("failed to read session file: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		lines[i] = rewriteLine(line, info.ProjectPath, destWorkspace)
	}

	if destDataDir == "" {
		destDataDir = e.store.DataDir()
	}
	destDir := filepath.Join(destDataDir, "projects", pathenc.Encode(destWorkspace))
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	destPath := filepath.Join(destDir, info.ID+".jsonl")
	if err := os.WriteFile(destPath, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		return fmt.Errorf("failed to write destination file: %w", err)
	}

	e.log.WithFields(logrus.Fields{
		"session": info.ID,
		"dest":    destPath,
		"move":    move,
	}).Debug("migrated session file")

	if move {
		if err := os.Remove(info.FilePath); err != nil {
			return fmt.Errorf("failed to remove source file: %w", err)
		}
	}
	return nil
}

// rewriteLine rewrites one JSONL line. A line that does not decode is
// returned unchanged rather than dropped.
func rewriteLine(line, srcWorkspace, destWorkspace string) string {
	if strings.TrimSpace(line) == "" {
		return line
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		return line
	}
	rewriteEntry(entry, srcWorkspace, destWorkspace)
	out, err := json.Marshal(entry)
	if err != nil {
		return line
	}
	return string(out)
}
