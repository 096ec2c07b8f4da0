package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/grovetools/agsess/internal/display"
	"github.com/grovetools/agsess/internal/session"
	"github.com/grovetools/agsess/internal/transcript"
	"github.com/spf13/cobra"
)

func newTailCmd() *cobra.Command {
	var workspace string
	var follow bool
	var lines int
	var interval time.Duration
	var detailLevel string

	cmd := &cobra.Command{
		Use:   "tail <identifier>",
		Short: "Tail messages from a session transcript",
		Long:  "Show the last messages of a session transcript. With --follow, keep polling the file and print new messages as they are appended.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := buildStore(cmd)
			if err != nil {
				return err
			}

			info, err := store.Resolve(args[0], session.ListOptions{Workspace: workspace})
			if err != nil {
				return err
			}

			parser := store.Parser()
			toolFormatters := defaultToolFormatters()

			entries, _, offset, err := parser.ParseFileFromOffset(info.FilePath, 0)
			if err != nil {
				return fmt.Errorf("failed to parse transcript: %w", err)
			}

			messages := toMessages(entries)
			start := 0
			if len(messages) > lines {
				start = len(messages) - lines
			}
			fmt.Printf("Showing last %d messages from session %s:\n\n", len(messages)-start, info.ID)
			for _, msg := range messages[start:] {
				display.PrintMessage(os.Stdout, msg, detailLevel, toolFormatters)
			}

			if !follow {
				return nil
			}

			for {
				time.Sleep(interval)
				entries, _, newOffset, err := parser.ParseFileFromOffset(info.FilePath, offset)
				if err != nil {
					return fmt.Errorf("failed to parse transcript: %w", err)
				}
				offset = newOffset
				for _, msg := range toMessages(entries) {
					display.PrintMessage(os.Stdout, msg, detailLevel, toolFormatters)
				}
			}
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Resolve the identifier within this workspace path only")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep polling for new messages")
	cmd.Flags().IntVarP(&lines, "lines", "n", 10, "Number of trailing messages to show initially")
	cmd.Flags().DurationVar(&interval, "interval", 2*time.Second, "Polling interval in follow mode")
	cmd.Flags().StringVar(&detailLevel, "detail", "summary", "Detail level: summary or full")

	return cmd
}

func toMessages(entries []transcript.RawEntry) []transcript.Message {
	var messages []transcript.Message
	for _, entry := range entries {
		if msg, ok := transcript.ToMessage(entry); ok {
			messages = append(messages, msg)
		}
	}
	return messages
}
