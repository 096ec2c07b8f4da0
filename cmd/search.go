package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/grovetools/agsess/internal/display"
	"github.com/grovetools/agsess/internal/search"
	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	var jsonOutput bool
	var workspace string
	var sessionID string
	var limit, offset, contextLines int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search session transcripts for text",
		Long:  "Case-insensitive full-text search across session transcripts, with surrounding context lines for each match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cfg, err := buildStore(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("limit") {
				limit = cfg.DefaultLimit
			}
			if !cmd.Flags().Changed("context") {
				contextLines = cfg.ContextLines
			}

			engine := search.NewEngine(store)
			opts := search.Options{
				Workspace:    workspace,
				Limit:        limit,
				Offset:       offset,
				ContextLines: contextLines,
			}

			if sessionID != "" {
				matches, err := engine.SearchInSession(sessionID, args[0], opts)
				if err != nil {
					return err
				}
				return printMatches(matches, jsonOutput)
			}

			result, err := engine.SearchSessions(args[0], opts)
			if err != nil {
				return err
			}

			if jsonOutput {
				data, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal matches to JSON: %w", err)
				}
				fmt.Println(string(data))
				return nil
			}

			if result.Pagination.Total == 0 {
				fmt.Println("No matches found.")
				return nil
			}
			display.PrintSearchMatches(result.Matches, os.Stdout)
			fmt.Printf("Showing %d of %d matches (offset %d)\n",
				len(result.Matches), result.Pagination.Total, result.Pagination.Offset)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Only search sessions for this workspace path")
	cmd.Flags().StringVarP(&sessionID, "session", "s", "", "Search within a single session (identifier, prefix, or agent id)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum matches to show (defaults to the configured default_limit)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of matches to skip")
	cmd.Flags().IntVar(&contextLines, "context", 0, "Context lines on each side of a match")

	return cmd
}

func printMatches(matches []search.Match, jsonOutput bool) error {
	if jsonOutput {
		if matches == nil {
			matches = []search.Match{}
		}
		data, err := json.MarshalIndent(matches, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal matches to JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}
	if len(matches) == 0 {
		fmt.Println("No matches found.")
		return nil
	}
	display.PrintSearchMatches(matches, os.Stdout)
	fmt.Printf("%d matches\n", len(matches))
	return nil
}
