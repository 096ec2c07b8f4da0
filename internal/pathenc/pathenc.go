// Package pathenc maps workspace paths to the directory names used under
// the data root's projects/ folder, and classifies session file names.
package pathenc

import (
	"strings"

	"github.com/google/uuid"
)

// AgentPrefix is the file-name prefix marking an agent sub-session.
const AgentPrefix = "agent-"

// sessionExt is the required extension for session files.
const sessionExt = ".jsonl"

// Encode converts a workspace path to its on-disk directory name.
// Trailing slashes are stripped and every "/" becomes "-".
func Encode(workspacePath string) string {
	trimmed := strings.TrimRight(workspacePath, "/")
	return strings.ReplaceAll(trimmed, "/", "-")
}

// Decode converts a directory name back to a workspace path by replacing
// every "-" with "/". The mapping is lossy: a hyphen that was part of the
// original path is indistinguishable from an encoded separator. This
// matches the on-disk format and must not be "fixed" here.
func Decode(dirName string) string {
	return strings.ReplaceAll(dirName, "-", "/")
}

// IsUUID reports whether s is a canonical 36-character hyphenated UUID
// (8-4-4-4-12 hex groups), case-insensitively. Other forms accepted by
// uuid.Parse (braced, URN, bare 32-hex) are rejected.
func IsUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	if s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// FileInfo describes a classified session file name.
type FileInfo struct {
	SessionID string
	IsAgent   bool
	AgentID   string
}

// ClassifyFile inspects a file name and reports whether it is a session
// file. Agent files are named agent-<id>.jsonl; regular sessions must have
// a UUID base name. Anything else returns ok=false and is skipped by the
// store.
func ClassifyFile(name string) (FileInfo, bool) {
	stem, found := strings.CutSuffix(name, sessionExt)
	if !found {
		return FileInfo{}, false
	}
	if rest, isAgent := strings.CutPrefix(stem, AgentPrefix); isAgent {
		if rest == "" {
			return FileInfo{}, false
		}
		return FileInfo{SessionID: stem, IsAgent: true, AgentID: rest}, true
	}
	if !IsUUID(stem) {
		return FileInfo{}, false
	}
	return FileInfo{SessionID: stem}, true
}
