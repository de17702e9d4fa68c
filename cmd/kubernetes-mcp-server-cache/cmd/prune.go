package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manusa/kubernetes-mcp-server-launcher/internal/service/maintenance"
)

const defaultKeep = 3

var pruneOptions maintenance.PruneOptions

var pruneCmd = &cobra.Command{
	Use:   "prune [version...]",
	Short: "Remove old cached versions",
	Long: "Remove cached versions. Without arguments all but the newest --keep semantic versions are removed " +
		"and the configured version is kept. Named versions are removed unconditionally.",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := pruneOptions
		opts.Config = cfg
		opts.Versions = args

		removed, err := maintenance.Prune(cmd.Context(), &opts)
		for _, v := range removed {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), v)
		}

		return err
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	pruneCmd.Flags().IntVarP(&pruneOptions.Keep, "keep", "k", defaultKeep, "number of newest versions to keep")
	pruneCmd.Flags().BoolVarP(&pruneOptions.Force, "force", "f", false, "prune even while kubernetes-mcp-server is running")
	pruneCmd.Flags().BoolVarP(&pruneOptions.DryRun, "dry-run", "n", false, "only print what would be removed")

	rootCmd.AddCommand(pruneCmd)
}
