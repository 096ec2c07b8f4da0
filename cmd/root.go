// Package cmd wires the agsess CLI together.
package cmd

import (
	"fmt"

	"github.com/grovetools/agsess/config"
	"github.com/grovetools/agsess/internal/logging"
	"github.com/grovetools/agsess/internal/session"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for agsess.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "agsess",
		Short:         "Browse, search, and migrate agent conversation sessions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("data-dir", "", "Session data root (defaults to $CLAUDE_CONFIG_DIR or ~/.claude)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newTailCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// buildStore resolves configuration and opens a store for a subcommand.
func buildStore(cmd *cobra.Command) (*session.Store, config.Config, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logging.SetVerbose(verbose)

	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, err
	}

	dataDirFlag, _ := cmd.Flags().GetString("data-dir")
	dataDir, err := cfg.ResolveDataDir(dataDirFlag)
	if err != nil {
		return nil, cfg, fmt.Errorf("failed to resolve data directory: %w", err)
	}

	return session.NewStore(dataDir), cfg, nil
}
