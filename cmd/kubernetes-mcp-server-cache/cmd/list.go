package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manusa/kubernetes-mcp-server-launcher/internal/service/maintenance"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List cached versions and artifacts",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return maintenance.List(cmd.Context(), cmd.OutOrStdout(), cfg)
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.AddCommand(listCmd)
}
