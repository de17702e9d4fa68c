package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manusa/kubernetes-mcp-server-launcher/internal/service/maintenance"
)

var checksumCmd = &cobra.Command{
	Use:   "checksum [version]",
	Short: "Print SHA-256 digests of cached artifacts",
	Long:  "Print SHA-256 digests of cached artifacts in sha256sum format. A digest can be pinned with the sha256 setting.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var version string
		if len(args) > 0 {
			version = args[0]
		}

		return maintenance.Checksum(cmd.Context(), cmd.OutOrStdout(), cfg, version)
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.AddCommand(checksumCmd)
}
