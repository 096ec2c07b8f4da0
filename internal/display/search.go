package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/grovetools/agsess/internal/search"
)

// PrintSearchMatches renders search matches with their context windows.
func PrintSearchMatches(matches []search.Match, w io.Writer) {
	for _, m := range matches {
		header := fmt.Sprintf("%s  %s  line %d", m.SessionID, m.MessageType, m.LineNumber)
		if m.SessionSummary != "" {
			header += "  (" + truncate(m.SessionSummary, 40) + ")"
		}
		fmt.Fprintln(w, mutedStyle.Render(header))
		for _, line := range m.Context {
			rendered := line
			if idx := strings.Index(strings.ToLower(line), strings.ToLower(m.Match)); idx >= 0 {
				rendered = line[:idx] + matchStyle.Render(line[idx:idx+len(m.Match)]) + line[idx+len(m.Match):]
			}
			fmt.Fprintf(w, "  %s\n", rendered)
		}
		fmt.Fprintln(w)
	}
}
