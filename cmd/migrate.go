package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/grovetools/agsess/internal/migrate"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	var jsonOutput bool
	var sourceWorkspace string
	var destWorkspace string
	var destDataDir string
	var move bool

	cmd := &cobra.Command{
		Use:   "migrate [identifiers...] --dest <workspace>",
		Short: "Migrate sessions to another workspace",
		Long: "Copy or move session files to another workspace, rewriting the absolute " +
			"paths embedded in them. Pass session identifiers to migrate individual " +
			"sessions, or --workspace to migrate every session of a workspace.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && sourceWorkspace == "" {
				return fmt.Errorf("pass session identifiers or --workspace")
			}
			if len(args) > 0 && sourceWorkspace != "" {
				return fmt.Errorf("identifiers and --workspace are mutually exclusive")
			}

			store, _, err := buildStore(cmd)
			if err != nil {
				return err
			}
			engine := migrate.NewEngine(store)

			var result *migrate.Result
			if sourceWorkspace != "" {
				result, err = engine.MigrateWorkspace(migrate.WorkspaceOptions{
					SourceWorkspace: sourceWorkspace,
					DestWorkspace:   destWorkspace,
					DestDataDir:     destDataDir,
					Move:            move,
				})
			} else {
				result, err = engine.MigrateSession(migrate.SessionOptions{
					Identifiers:   args,
					DestWorkspace: destWorkspace,
					DestDataDir:   destDataDir,
					Move:          move,
				})
			}
			if err != nil {
				return err
			}

			// Partial failures are reported in the output, not as a
			// command error.
			if jsonOutput {
				data, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal result to JSON: %w", err)
				}
				fmt.Println(string(data))
				return nil
			}
			fmt.Printf("Migrated %d sessions, %d failed\n", result.SuccessCount, result.FailureCount)
			for _, item := range result.Errors {
				fmt.Printf("  %s: %s\n", item.Identifier, item.Message)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	cmd.Flags().StringVarP(&sourceWorkspace, "workspace", "w", "", "Migrate every session of this workspace path")
	cmd.Flags().StringVarP(&destWorkspace, "dest", "d", "", "Destination workspace path (required)")
	cmd.Flags().StringVar(&destDataDir, "dest-data-dir", "", "Destination data root (defaults to the source data root)")
	cmd.Flags().BoolVar(&move, "move", false, "Remove source files after a successful copy")
	cmd.MarkFlagRequired("dest")

	return cmd
}
