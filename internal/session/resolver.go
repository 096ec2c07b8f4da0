package session

import (
	"strconv"
	"strings"

	"github.com/grovetools/agsess/internal/pathenc"
)

// IdentifierKind enumerates the shapes a caller-supplied session
// identifier can take. The shape is decided once, up front, so lookup
// logic branches on a closed set of cases.
type IdentifierKind int

const (
	// IdentifierIndex is a numeric position in the sorted non-agent list.
	IdentifierIndex IdentifierKind = iota
	// IdentifierUUID is a full canonical session UUID.
	IdentifierUUID
	// IdentifierAgent is an agent-<id> session id.
	IdentifierAgent
	// IdentifierPrefix is a partial UUID matched against session ids.
	IdentifierPrefix
)

// Identifier is a parsed session identifier.
type Identifier struct {
	Kind  IdentifierKind
	Index int
	Value string
}

// ParseIdentifier classifies a raw identifier string. Integers (including
// negative ones, which never resolve) become indexes, canonical UUIDs are
// exact ids, agent- prefixed strings are agent ids, and everything else is
// treated as a UUID prefix.
func ParseIdentifier(raw string) Identifier {
	if idx, err := strconv.Atoi(raw); err == nil {
		return Identifier{Kind: IdentifierIndex, Index: idx, Value: raw}
	}
	if pathenc.IsUUID(raw) {
		return Identifier{Kind: IdentifierUUID, Value: raw}
	}
	if strings.HasPrefix(raw, pathenc.AgentPrefix) {
		return Identifier{Kind: IdentifierAgent, Value: raw}
	}
	return Identifier{Kind: IdentifierPrefix, Value: raw}
}

// resolve finds the session info an identifier refers to. Indexes and
// prefixes resolve against the sorted non-agent list; agent ids resolve
// against the full set.
func resolve(id Identifier, sorted []SessionInfo, all []SessionInfo) (SessionInfo, bool) {
	switch id.Kind {
	case IdentifierIndex:
		if id.Index < 0 || id.Index >= len(sorted) {
			return SessionInfo{}, false
		}
		return sorted[id.Index], true
	case IdentifierUUID:
		for _, info := range sorted {
			if info.ID == id.Value {
				return info, true
			}
		}
	case IdentifierAgent:
		for _, info := range all {
			if info.ID == id.Value {
				return info, true
			}
		}
	case IdentifierPrefix:
		for _, info := range sorted {
			if strings.HasPrefix(info.ID, id.Value) {
				return info, true
			}
		}
	}
	return SessionInfo{}, false
}
