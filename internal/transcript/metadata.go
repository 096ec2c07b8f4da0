package transcript

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/tidwall/gjson"
)

// Metadata is the result of the fast metadata-only pass over a transcript.
// Listing uses it to avoid materializing every message of every session.
type Metadata struct {
	Summary        string
	Version        string
	GitBranch      string
	SessionID      string
	AgentID        string
	FirstTimestamp time.Time
	LastTimestamp  time.Time
	MessageCount   int
}

// ScanMetadata extracts session metadata in a single streaming traversal:
// the first non-empty summary/version/gitBranch/sessionId/agentId, and the
// min/max timestamp plus count over user and assistant entries only.
// Malformed lines are skipped without warnings; this pass trades diagnostics
// for speed.
func (p *Parser) ScanMetadata(path string) (Metadata, error) {
	file, err := os.Open(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var meta Metadata

	scanner := bufio.NewScanner(file)
	const maxScanTokenSize = 1024 * 1024 // 1MB
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, maxScanTokenSize)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 || !gjson.ValidBytes(line) {
			continue
		}

		if meta.Summary == "" {
			if s := gjson.GetBytes(line, "summary"); s.Type == gjson.String {
				meta.Summary = s.Str
			}
		}
		if meta.Version == "" {
			meta.Version = gjson.GetBytes(line, "version").Str
		}
		if meta.GitBranch == "" {
			meta.GitBranch = gjson.GetBytes(line, "gitBranch").Str
		}
		if meta.SessionID == "" {
			meta.SessionID = gjson.GetBytes(line, "sessionId").Str
		}
		if meta.AgentID == "" {
			meta.AgentID = gjson.GetBytes(line, "agentId").Str
		}

		entryType := gjson.GetBytes(line, "type").Str
		if entryType != "user" && entryType != "assistant" {
			continue
		}
		meta.MessageCount++

		ts, err := time.Parse(time.RFC3339Nano, gjson.GetBytes(line, "timestamp").Str)
		if err != nil {
			continue
		}
		if meta.FirstTimestamp.IsZero() || ts.Before(meta.FirstTimestamp) {
			meta.FirstTimestamp = ts
		}
		if meta.LastTimestamp.IsZero() || ts.After(meta.LastTimestamp) {
			meta.LastTimestamp = ts
		}
	}

	if err := scanner.Err(); err != nil {
		return meta, fmt.Errorf("scanner error: %w", err)
	}

	return meta, nil
}
