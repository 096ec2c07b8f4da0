package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/grovetools/agsess/internal/display"
	"github.com/grovetools/agsess/internal/formatters"
	"github.com/grovetools/agsess/internal/session"
	"github.com/spf13/cobra"
)

// defaultToolFormatters returns the per-tool renderers used by show and tail.
func defaultToolFormatters() map[string]formatters.ToolFormatter {
	return map[string]formatters.ToolFormatter{
		"Write":     formatters.MakeWriteFormatter(5),
		"Edit":      formatters.MakeWriteFormatter(5),
		"Read":      formatters.FormatReadTool,
		"TodoWrite": formatters.FormatTodoWriteTool,
	}
}

func newShowCmd() *cobra.Command {
	var jsonOutput bool
	var workspace string
	var detailLevel string
	var agent bool

	cmd := &cobra.Command{
		Use:   "show <identifier>",
		Short: "Show a session transcript",
		Long: "Show a session transcript. The identifier can be a list index, a full " +
			"session UUID, a UUID prefix, or an agent-<id> session id.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := buildStore(cmd)
			if err != nil {
				return err
			}

			opts := session.ListOptions{Workspace: workspace}
			var sess *session.Session
			if agent {
				sess, err = store.GetAgentSession(args[0], opts)
			} else {
				sess, err = store.Get(args[0], opts)
			}
			if err != nil {
				return err
			}

			if jsonOutput {
				data, err := json.MarshalIndent(sess, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal session to JSON: %w", err)
				}
				fmt.Println(string(data))
				return nil
			}

			if sess.Summary != "" {
				fmt.Printf("Session %s: %s\n\n", sess.ID, sess.Summary)
			} else {
				fmt.Printf("Session %s\n\n", sess.ID)
			}

			toolFormatters := defaultToolFormatters()
			for _, msg := range sess.Messages {
				display.PrintMessage(os.Stdout, msg, detailLevel, toolFormatters)
			}

			if len(sess.Warnings) > 0 {
				fmt.Fprintf(os.Stderr, "\n%d malformed lines were skipped\n", len(sess.Warnings))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Resolve the identifier within this workspace path only")
	cmd.Flags().StringVar(&detailLevel, "detail", "summary", "Detail level: summary or full")
	cmd.Flags().BoolVar(&agent, "agent", false, "Treat the identifier as an agent session id")

	return cmd
}
