package pathenc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"simple path", "/home/user/work", "-home-user-work"},
		{"trailing slash stripped", "/home/user/work/", "-home-user-work"},
		{"hyphen in segment kept", "/home/my-app", "-home-my-app"},
		{"root", "/", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Encode(tt.path))
		})
	}
}

func TestDecodeIsLossy(t *testing.T) {
	// Encoded separators and literal hyphens collapse to the same byte, so
	// decoding a hyphenated path yields a different path.
	encoded := Encode("/home/my-app")
	assert.Equal(t, "/home/my/app", Decode(encoded))

	// Hyphen-free paths round-trip.
	assert.Equal(t, "/home/user/work", Decode(Encode("/home/user/work")))
}

func TestIsUUID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"canonical", "a1b2c3d4-e5f6-7890-abcd-ef1234567890", true},
		{"uppercase", "A1B2C3D4-E5F6-7890-ABCD-EF1234567890", true},
		{"too short", "a1b2c3d4", false},
		{"bare 32 hex", "a1b2c3d4e5f67890abcdef1234567890", false},
		{"braced", "{a1b2c3d4-e5f6-7890-abcd-ef1234567890}", false},
		{"misplaced hyphens", "a1b2c3d4e-5f6-7890-abcd-ef1234567890", false},
		{"non-hex", "z1b2c3d4-e5f6-7890-abcd-ef1234567890", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUUID(tt.in))
		})
	}
}

func TestClassifyFile(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		want   FileInfo
		wantOK bool
	}{
		{
			name:   "regular session",
			file:   "a1b2c3d4-e5f6-7890-abcd-ef1234567890.jsonl",
			want:   FileInfo{SessionID: "a1b2c3d4-e5f6-7890-abcd-ef1234567890"},
			wantOK: true,
		},
		{
			name:   "agent session",
			file:   "agent-xyz789.jsonl",
			want:   FileInfo{SessionID: "agent-xyz789", IsAgent: true, AgentID: "xyz789"},
			wantOK: true,
		},
		{name: "non-uuid base name", file: "notes.jsonl"},
		{name: "wrong extension", file: "a1b2c3d4-e5f6-7890-abcd-ef1234567890.json"},
		{name: "agent prefix with empty id", file: "agent-.jsonl"},
		{name: "no extension", file: "agent-xyz789"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ClassifyFile(tt.file)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
