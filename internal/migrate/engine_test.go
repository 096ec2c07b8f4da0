package migrate

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/grovetools/agsess/internal/pathenc"
	"github.com/grovetools/agsess/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mainID = "55555555-5555-5555-5555-555555555555"

func fixtureStore(t *testing.T) (*session.Store, string) {
	t.Helper()
	dataDir := t.TempDir()

	dir := filepath.Join(dataDir, "projects", pathenc.Encode("/test/project"))
	require.NoError(t, os.MkdirAll(dir, 0o755))

	content := strings.Join([]string{
		`{"type":"user","uuid":"u1","cwd":"/test/project","timestamp":"2025-02-01T09:00:00Z","message":{"role":"user","content":"start"}}`,
		`{"type":"assistant","uuid":"a1","message":{"role":"assistant","content":[{"type":"tool_use","id":"t1","name":"Read","input":{"file_path":"/test/project/main.go"}}]}}`,
		`broken json line`,
	}, "\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, mainID+".jsonl"), []byte(content), 0o644))

	agent := `{"type":"user","uuid":"g1","cwd":"/test/project","message":{"role":"user","content":"subtask"}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "agent-w1.jsonl"), []byte(agent), 0o644))

	return session.NewStore(dataDir), dataDir
}

func TestMigrateSessionRewritesPaths(t *testing.T) {
	store, dataDir := fixtureStore(t)
	engine := NewEngine(store)

	result, err := engine.MigrateSession(SessionOptions{
		Identifiers:   []string{mainID},
		DestWorkspace: "/new/project",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 0, result.FailureCount)
	assert.Equal(t, []string{mainID}, result.Migrated)

	destPath := filepath.Join(dataDir, "projects", pathenc.Encode("/new/project"), mainID+".jsonl")
	data, err := os.ReadFile(destPath)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, `"cwd":"/new/project"`)
	assert.Contains(t, out, `/new/project/main.go`)
	assert.NotContains(t, out, "/test/project")
	assert.Contains(t, out, "broken json line")

	// Copy mode keeps the source.
	srcPath := filepath.Join(dataDir, "projects", pathenc.Encode("/test/project"), mainID+".jsonl")
	_, err = os.Stat(srcPath)
	assert.NoError(t, err)
}

func TestMigrateSessionPartialFailure(t *testing.T) {
	store, _ := fixtureStore(t)
	engine := NewEngine(store)

	result, err := engine.MigrateSession(SessionOptions{
		Identifiers:   []string{"missing-one", mainID},
		DestWorkspace: "/new/project",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 1, result.FailureCount)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "missing-one", result.Errors[0].Identifier)
}

func TestMigrateSessionIndexBatchMove(t *testing.T) {
	dataDir := t.TempDir()
	dir := filepath.Join(dataDir, "projects", pathenc.Encode("/test/project"))
	require.NoError(t, os.MkdirAll(dir, 0o755))

	newestID := "66666666-6666-6666-6666-666666666666"
	base := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	for _, s := range []struct {
		id  string
		mod time.Time
	}{
		{mainID, base},
		{newestID, base.Add(time.Hour)},
	} {
		path := filepath.Join(dir, s.id+".jsonl")
		line := `{"type":"user","uuid":"u1","cwd":"/test/project","message":{"role":"user","content":"hi"}}`
		require.NoError(t, os.WriteFile(path, []byte(line), 0o644))
		require.NoError(t, os.Chtimes(path, s.mod, s.mod))
	}

	engine := NewEngine(session.NewStore(dataDir))

	// Moving index 0 must not shift what index 1 refers to.
	result, err := engine.MigrateSession(SessionOptions{
		Identifiers:   []string{"0", "1"},
		DestWorkspace: "/new/project",
		Move:          true,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 0, result.FailureCount)
	assert.ElementsMatch(t, []string{newestID, mainID}, result.Migrated)

	destDir := filepath.Join(dataDir, "projects", pathenc.Encode("/new/project"))
	for _, id := range []string{mainID, newestID} {
		_, err := os.Stat(filepath.Join(destDir, id+".jsonl"))
		assert.NoError(t, err, id)
		_, err = os.Stat(filepath.Join(dir, id+".jsonl"))
		assert.True(t, os.IsNotExist(err), id)
	}
}

func TestMigrateSessionRequiresDestination(t *testing.T) {
	store, _ := fixtureStore(t)
	engine := NewEngine(store)

	_, err := engine.MigrateSession(SessionOptions{Identifiers: []string{mainID}})
	assert.Error(t, err)

	_, err = engine.MigrateSession(SessionOptions{Identifiers: []string{mainID}, DestWorkspace: "///"})
	assert.Error(t, err)
}

func TestMigrateWorkspaceMovesEverything(t *testing.T) {
	store, dataDir := fixtureStore(t)
	engine := NewEngine(store)

	result, err := engine.MigrateWorkspace(WorkspaceOptions{
		SourceWorkspace: "/test/project",
		DestWorkspace:   "/new/project",
		Move:            true,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.SuccessCount)

	destDir := filepath.Join(dataDir, "projects", pathenc.Encode("/new/project"))
	for _, name := range []string{mainID + ".jsonl", "agent-w1.jsonl"} {
		_, err := os.Stat(filepath.Join(destDir, name))
		assert.NoError(t, err, name)
	}

	srcDir := filepath.Join(dataDir, "projects", pathenc.Encode("/test/project"))
	for _, name := range []string{mainID + ".jsonl", "agent-w1.jsonl"} {
		_, err := os.Stat(filepath.Join(srcDir, name))
		assert.True(t, os.IsNotExist(err), name)
	}
}

func TestMigrateWorkspaceMissingSource(t *testing.T) {
	store, _ := fixtureStore(t)
	engine := NewEngine(store)

	_, err := engine.MigrateWorkspace(WorkspaceOptions{
		SourceWorkspace: "/does/not/exist",
		DestWorkspace:   "/new/project",
	})
	var notFound *session.WorkspaceNotFoundError
	require.True(t, errors.As(err, &notFound))
}

func TestMigrateSessionToOtherDataDir(t *testing.T) {
	store, _ := fixtureStore(t)
	engine := NewEngine(store)
	otherDataDir := t.TempDir()

	result, err := engine.MigrateSession(SessionOptions{
		Identifiers:   []string{mainID},
		DestWorkspace: "/new/project",
		DestDataDir:   otherDataDir,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessCount)

	destPath := filepath.Join(otherDataDir, "projects", pathenc.Encode("/new/project"), mainID+".jsonl")
	_, err = os.Stat(destPath)
	assert.NoError(t, err)
}
