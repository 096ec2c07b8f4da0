package display

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/grovetools/agsess/internal/session"
)

// PrintSessionsTable prints one page of session summaries in a formatted
// table.
func PrintSessionsTable(result *session.ListResult, writer io.Writer) {
	w := tabwriter.NewWriter(writer, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "SESSION ID\tPROJECT\tMESSAGES\tAGENTS\tLAST ACTIVITY\tSUMMARY")
	for _, s := range result.Sessions {
		lastActivity := ""
		if !s.LastActivityAt.IsZero() {
			lastActivity = s.LastActivityAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\n",
			s.ID, s.ProjectPath, s.MessageCount, len(s.AgentIDs), lastActivity,
			truncate(s.Summary, 60))
	}
	w.Flush()

	p := result.Pagination
	fmt.Fprintf(writer, "\nShowing %d of %d sessions (offset %d)", len(result.Sessions), p.Total, p.Offset)
	if p.HasMore {
		fmt.Fprintf(writer, "; more available with --offset %d", p.Offset+p.Limit)
	}
	fmt.Fprintln(writer)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
