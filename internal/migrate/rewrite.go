package migrate

import "strings"

// RewritePath replaces the source-workspace prefix of an absolute path with
// the destination workspace. Trailing slashes are normalized off both
// workspaces first. Paths outside the source workspace are returned
// unchanged; not every path in a session belongs to the migrated workspace.
func RewritePath(path, sourceWorkspace, destWorkspace string) string {
	src := strings.TrimRight(sourceWorkspace, "/")
	dst := strings.TrimRight(destWorkspace, "/")
	if src == "" || !strings.HasPrefix(path, src) {
		return path
	}
	return dst + path[len(src):]
}

// pathKeys is the allow-list of object keys whose string values are
// rewritten inside tool_use inputs. Walking an allow-list avoids mutating
// unrelated fields that merely look path-like.
var pathKeys = map[string]bool{
	"file_path": true,
	"path":      true,
}

// rewriteTree walks a decoded JSON object, rewriting allow-listed string
// values and recursing into nested objects. Arrays are left untouched.
func rewriteTree(node map[string]any, src, dst string) {
	for key, value := range node {
		switch v := value.(type) {
		case string:
			if pathKeys[key] {
				node[key] = RewritePath(v, src, dst)
			}
		case map[string]any:
			rewriteTree(v, src, dst)
		}
	}
}

// rewriteEntry rewrites the workspace-path references of one decoded JSONL
// entry in place: the cwd field, tool_use inputs under message.content, and
// the keys of a snapshot's trackedFileBackups map.
func rewriteEntry(entry map[string]any, src, dst string) {
	if cwd, ok := entry["cwd"].(string); ok {
		entry["cwd"] = RewritePath(cwd, src, dst)
	}

	if msg, ok := entry["message"].(map[string]any); ok {
		if content, ok := msg["content"].([]any); ok {
			for _, item := range content {
				block, ok := item.(map[string]any)
				if !ok || block["type"] != "tool_use" {
					continue
				}
				if input, ok := block["input"].(map[string]any); ok {
					rewriteTree(input, src, dst)
				}
			}
		}
	}

	if entry["type"] == "file-history-snapshot" {
		snapshot, ok := entry["snapshot"].(map[string]any)
		if !ok {
			return
		}
		backups, ok := snapshot["trackedFileBackups"].(map[string]any)
		if !ok {
			return
		}
		rewritten := make(map[string]any, len(backups))
		for path, descriptor := range backups {
			// Only the key moves; the backup descriptor stays as-is.
			rewritten[RewritePath(path, src, dst)] = descriptor
		}
		snapshot["trackedFileBackups"] = rewritten
	}
}
