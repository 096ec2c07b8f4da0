package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIdentifier(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Identifier
	}{
		{"index", "3", Identifier{Kind: IdentifierIndex, Index: 3, Value: "3"}},
		{"negative index", "-2", Identifier{Kind: IdentifierIndex, Index: -2, Value: "-2"}},
		{"uuid", "a1b2c3d4-e5f6-7890-abcd-ef1234567890", Identifier{Kind: IdentifierUUID, Value: "a1b2c3d4-e5f6-7890-abcd-ef1234567890"}},
		{"agent id", "agent-xyz", Identifier{Kind: IdentifierAgent, Value: "agent-xyz"}},
		{"prefix", "a1b2", Identifier{Kind: IdentifierPrefix, Value: "a1b2"}},
		{"almost uuid is a prefix", "a1b2c3d4-e5f6", Identifier{Kind: IdentifierPrefix, Value: "a1b2c3d4-e5f6"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseIdentifier(tt.raw))
		})
	}
}

func TestResolvePrefixPicksFirstInSortedOrder(t *testing.T) {
	sorted := []SessionInfo{
		{ID: "aaaa1111-0000-0000-0000-000000000000"},
		{ID: "aaaa2222-0000-0000-0000-000000000000"},
	}

	info, ok := resolve(ParseIdentifier("aaaa"), sorted, sorted)
	assert.True(t, ok)
	assert.Equal(t, sorted[0].ID, info.ID)
}

func TestResolveAgentSearchesFullSet(t *testing.T) {
	all := []SessionInfo{
		{ID: "aaaa1111-0000-0000-0000-000000000000"},
		{ID: "agent-w1", IsAgent: true},
	}
	sorted := all[:1]

	info, ok := resolve(ParseIdentifier("agent-w1"), sorted, all)
	assert.True(t, ok)
	assert.True(t, info.IsAgent)

	// Agent ids never match against the non-agent list.
	_, ok = resolve(ParseIdentifier("agent-w1"), sorted, sorted)
	assert.False(t, ok)
}
