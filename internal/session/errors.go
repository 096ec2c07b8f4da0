package session

import "fmt"

// DataNotFoundError reports a missing data root directory.
type DataNotFoundError struct {
	DataPath string
}

func (e *DataNotFoundError) Error() string {
	return fmt.Sprintf("data directory not found: %s", e.DataPath)
}

// SessionNotFoundError reports an identifier that resolved to no session.
type SessionNotFoundError struct {
	Identifier string
}

func (e *SessionNotFoundError) Error() string {
	return fmt.Sprintf("session not found: %s", e.Identifier)
}

// WorkspaceNotFoundError reports a workspace directory that does not exist
// under the data root.
type WorkspaceNotFoundError struct {
	WorkspacePath string
}

func (e *WorkspaceNotFoundError) Error() string {
	return fmt.Sprintf("workspace not found: %s", e.WorkspacePath)
}
