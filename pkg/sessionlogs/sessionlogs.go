// Package sessionlogs is the public API for reading agent session
// transcripts. It wraps the internal parser and store so external programs
// do not depend on internal packages.
package sessionlogs

import (
	"github.com/grovetools/agsess/internal/session"
	"github.com/grovetools/agsess/internal/transcript"
)

// Parser wraps the internal transcript parser.
type Parser struct {
	*transcript.Parser
}

// NewParser creates a new transcript parser.
func NewParser() *Parser {
	return &Parser{
		Parser: transcript.NewParser(),
	}
}

// ParseMessages parses a transcript file into typed messages.
func (p *Parser) ParseMessages(path string) ([]transcript.Message, []transcript.ParseWarning, error) {
	return p.Parser.ParseMessages(path)
}

// ParseFileFromOffset parses a file starting from a byte offset and returns
// the new offset, for incremental tailing.
func (p *Parser) ParseFileFromOffset(path string, offset int64) ([]transcript.RawEntry, []transcript.ParseWarning, int64, error) {
	return p.Parser.ParseFileFromOffset(path, offset)
}

// Store wraps the internal session store.
type Store struct {
	*session.Store
}

// NewStore opens a session store over a data root.
func NewStore(dataDir string) *Store {
	return &Store{Store: session.NewStore(dataDir)}
}

// List returns one page of session summaries.
func (s *Store) List(opts session.ListOptions) (*session.ListResult, error) {
	return s.Store.List(opts)
}

// Get resolves an identifier and fully parses the matching session.
func (s *Store) Get(identifier string, opts session.ListOptions) (*session.Session, error) {
	return s.Store.Get(identifier, opts)
}
