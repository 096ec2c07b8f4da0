package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/grovetools/agsess/internal/display"
	"github.com/grovetools/agsess/internal/session"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var jsonOutput bool
	var workspace string
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list [flags]",
		Short: "List available session transcripts",
		Long:  "List available session transcripts, most recently active first, optionally filtered by workspace path",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cfg, err := buildStore(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("limit") {
				limit = cfg.DefaultLimit
			}

			result, err := store.List(session.ListOptions{
				Workspace: workspace,
				Limit:     limit,
				Offset:    offset,
			})
			if err != nil {
				return fmt.Errorf("failed to list sessions: %w", err)
			}

			if jsonOutput {
				data, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal sessions to JSON: %w", err)
				}
				fmt.Println(string(data))
				return nil
			}

			if result.Pagination.Total == 0 {
				if workspace != "" {
					fmt.Printf("No session transcripts found for workspace '%s'\n", workspace)
				} else {
					fmt.Println("No session transcripts found.")
				}
				return nil
			}

			display.PrintSessionsTable(result, os.Stdout)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Only list sessions for this workspace path (exact match)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Page size (defaults to the configured default_limit)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of sessions to skip")

	return cmd
}
