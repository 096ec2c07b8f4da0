// Package session discovers and indexes conversation session files stored
// as JSONL under a data root, one directory per workspace.
package session

import (
	"fmt"
	"sort"
	"strings"

	"github.com/grovetools/agsess/internal/logging"
	"github.com/grovetools/agsess/internal/pathenc"
	"github.com/grovetools/agsess/internal/transcript"
	"github.com/sirupsen/logrus"
)

// Store reads sessions from a data root. Every call re-reads from disk;
// nothing is cached between calls.
type Store struct {
	dataDir string
	parser  *transcript.Parser
	log     *logrus.Entry
}

// NewStore creates a store over the given data root.
func NewStore(dataDir string) *Store {
	return &Store{
		dataDir: dataDir,
		parser:  transcript.NewParser(),
		log:     logging.NewLogger("session"),
	}
}

// DataDir returns the data root this store reads from.
func (s *Store) DataDir() string { return s.dataDir }

// Parser returns the transcript parser used by this store.
func (s *Store) Parser() *transcript.Parser { return s.parser }

// ListOptions controls listing and lookups.
type ListOptions struct {
	Workspace string
	Limit     int
	Offset    int
}

func (o ListOptions) validate() error {
	if o.Limit < 0 {
		return fmt.Errorf("limit must be non-negative, got %d", o.Limit)
	}
	if o.Offset < 0 {
		return fmt.Errorf("offset must be non-negative, got %d", o.Offset)
	}
	return nil
}

// SortMains filters out agent sessions and orders the remainder by
// modification time descending, breaking ties by id so the order is stable
// within a run. Listing, index resolution, and cross-session search all use
// this order.
func SortMains(infos []SessionInfo) []SessionInfo {
	var mains []SessionInfo
	for _, info := range infos {
		if !info.IsAgent {
			mains = append(mains, info)
		}
	}
	sort.Slice(mains, func(i, j int) bool {
		if !mains[i].ModTime.Equal(mains[j].ModTime) {
			return mains[i].ModTime.After(mains[j].ModTime)
		}
		return mains[i].ID < mains[j].ID
	})
	return mains
}

// agentIDsFor collects the ids of agent sessions sharing a workspace
// directory. This is every agent session in the workspace, not strictly
// the ones spawned by the given session; the linkage is a documented
// approximation.
func agentIDsFor(info SessionInfo, all []SessionInfo) []string {
	var ids []string
	for _, other := range all {
		if other.IsAgent && other.EncodedPath == info.EncodedPath {
			ids = append(ids, other.ID)
		}
	}
	sort.Strings(ids)
	return ids
}

// List returns one page of non-agent session summaries, most recently
// modified first.
func (s *Store) List(opts ListOptions) (*ListResult, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	infos, err := s.Discover(opts.Workspace)
	if err != nil {
		return nil, err
	}

	mains := SortMains(infos)
	total := len(mains)

	start := opts.Offset
	if start > total {
		start = total
	}
	end := start + opts.Limit
	if end > total {
		end = total
	}

	summaries := make([]SessionSummary, 0, end-start)
	for _, info := range mains[start:end] {
		meta, err := s.parser.ScanMetadata(info.FilePath)
		if err != nil {
			s.log.WithError(err).WithField("session", info.ID).Warn("failed to scan session metadata")
			meta = transcript.Metadata{}
		}
		summaries = append(summaries, SessionSummary{
			ID:             info.ID,
			ProjectPath:    info.ProjectPath,
			Summary:        meta.Summary,
			Timestamp:      meta.FirstTimestamp,
			LastActivityAt: meta.LastTimestamp,
			MessageCount:   meta.MessageCount,
			GitBranch:      meta.GitBranch,
			Version:        meta.Version,
			AgentIDs:       agentIDsFor(info, infos),
		})
	}

	return &ListResult{
		Sessions:   summaries,
		Pagination: NewPagination(total, opts.Limit, opts.Offset),
	}, nil
}

// Get resolves an identifier (index, UUID, UUID prefix, or agent id) and
// fully parses the matching session.
func (s *Store) Get(identifier string, opts ListOptions) (*Session, error) {
	infos, err := s.Discover(opts.Workspace)
	if err != nil {
		return nil, err
	}

	info, ok := resolve(ParseIdentifier(identifier), SortMains(infos), infos)
	if !ok {
		return nil, &SessionNotFoundError{Identifier: identifier}
	}

	return s.Load(info, infos)
}

// GetAgentSession looks up an agent session by id, accepting either the
// bare id or the full agent-<id> form.
func (s *Store) GetAgentSession(agentID string, opts ListOptions) (*Session, error) {
	full := agentID
	if !strings.HasPrefix(agentID, pathenc.AgentPrefix) {
		full = pathenc.AgentPrefix + agentID
	}

	infos, err := s.Discover(opts.Workspace)
	if err != nil {
		return nil, err
	}

	for _, info := range infos {
		if info.ID == full {
			return s.Load(info, infos)
		}
	}
	return nil, &SessionNotFoundError{Identifier: agentID}
}

// Resolve maps an identifier to its index record without parsing the file.
func (s *Store) Resolve(identifier string, opts ListOptions) (SessionInfo, error) {
	infos, err := s.Discover(opts.Workspace)
	if err != nil {
		return SessionInfo{}, err
	}
	return ResolveInfo(identifier, infos)
}

// ResolveInfo maps an identifier to its index record within an already
// discovered snapshot. Batch operations resolve every identifier against the
// same snapshot so that acting on one item cannot shift what a later index
// identifier refers to.
func ResolveInfo(identifier string, infos []SessionInfo) (SessionInfo, error) {
	info, ok := resolve(ParseIdentifier(identifier), SortMains(infos), infos)
	if !ok {
		return SessionInfo{}, &SessionNotFoundError{Identifier: identifier}
	}
	return info, nil
}

// Load fully parses a session file and recomputes the aggregate fields
// from its messages.
func (s *Store) Load(info SessionInfo, all []SessionInfo) (*Session, error) {
	entries, warnings, err := s.parser.ParseFile(info.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse session %s: %w", info.ID, err)
	}

	sess := &Session{
		ID:          info.ID,
		ProjectPath: info.ProjectPath,
		EncodedPath: info.EncodedPath,
		AgentIDs:    agentIDsFor(info, all),
		Warnings:    warnings,
	}

	for _, entry := range entries {
		if sess.Summary == "" && entry.Type == "summary" {
			sess.Summary = entry.Summary
		}
		if sess.GitBranch == "" {
			sess.GitBranch = entry.GitBranch
		}
		if sess.Version == "" {
			sess.Version = entry.Version
		}

		msg, ok := transcript.ToMessage(entry)
		if !ok {
			continue
		}
		sess.Messages = append(sess.Messages, msg)

		kind := msg.Kind()
		if kind != transcript.KindUser && kind != transcript.KindAssistant {
			continue
		}
		sess.MessageCount++
		ts := msg.Meta().Timestamp
		if sess.Timestamp.IsZero() || ts.Before(sess.Timestamp) {
			sess.Timestamp = ts
		}
		if sess.LastActivityAt.IsZero() || ts.After(sess.LastActivityAt) {
			sess.LastActivityAt = ts
		}
	}

	return sess, nil
}
