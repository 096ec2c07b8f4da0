// Package transcript parses session JSONL files into a typed message model.
package transcript

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/grovetools/agsess/internal/logging"
)

var log = logging.NewLogger("transcript")

// maxWarningContent bounds how much of a bad line a warning carries.
const maxWarningContent = 100

// ParseWarning records a line that could not be decoded. Parsing continues
// past it.
type ParseWarning struct {
	Line    int    `json:"line"`
	Reason  string `json:"reason"`
	Content string `json:"content"`
}

// Parser handles JSONL transcript parsing.
type Parser struct{}

// NewParser creates a new transcript parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile decodes every line of a JSONL file. Malformed lines become
// warnings, blank lines are dropped silently, and decoding never aborts on
// a bad line.
func (p *Parser) ParseFile(path string) ([]RawEntry, []ParseWarning, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return p.parseFromReader(file)
}

// ParseFileFromOffset decodes a JSONL file starting at a byte offset and
// returns the new offset, allowing incremental tailing of a growing file.
// Warning line numbers are relative to the resume point.
func (p *Parser) ParseFileFromOffset(path string, offset int64) ([]RawEntry, []ParseWarning, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, offset, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if offset > 0 {
		if _, err := file.Seek(offset, 0); err != nil {
			return nil, nil, offset, fmt.Errorf("failed to seek to offset %d: %w", offset, err)
		}
	}

	entries, warnings, err := p.parseFromReader(file)
	if err != nil {
		return nil, nil, offset, err
	}

	newOffset, err := file.Seek(0, 1)
	if err != nil {
		return entries, warnings, offset, fmt.Errorf("failed to get new offset: %w", err)
	}

	return entries, warnings, newOffset, nil
}

// ParseMessages parses a file and transforms each entry into its typed
// message. Entries with unrecognized types yield no message.
func (p *Parser) ParseMessages(path string) ([]Message, []ParseWarning, error) {
	entries, warnings, err := p.ParseFile(path)
	if err != nil {
		return nil, nil, err
	}

	var messages []Message
	for _, entry := range entries {
		if msg, ok := ToMessage(entry); ok {
			messages = append(messages, msg)
		}
	}
	return messages, warnings, nil
}

func (p *Parser) parseFromReader(file *os.File) ([]RawEntry, []ParseWarning, error) {
	var entries []RawEntry
	var warnings []ParseWarning

	scanner := bufio.NewScanner(file)

	// Increase buffer size for large JSON lines
	const maxScanTokenSize = 1024 * 1024 // 1MB
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, maxScanTokenSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()

		if len(line) == 0 {
			continue
		}

		var entry RawEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			content := string(line)
			if len(content) > maxWarningContent {
				content = content[:maxWarningContent]
			}
			warnings = append(warnings, ParseWarning{
				Line:    lineNum,
				Reason:  err.Error(),
				Content: content,
			})
			log.WithField("line", lineNum).WithError(err).Debug("skipping malformed line")
			continue
		}

		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return entries, warnings, fmt.Errorf("scanner error: %w", err)
	}

	return entries, warnings, nil
}
