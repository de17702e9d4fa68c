package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manusa/kubernetes-mcp-server-launcher/internal/service/maintenance"
)

var pathOptions maintenance.PathOptions

var pathCmd = &cobra.Command{
	Use:   "path [version]",
	Short: "Print the cached artifact path for this platform",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := pathOptions
		opts.Config = cfg

		if len(args) > 0 {
			opts.Version = args[0]
		}

		path, err := maintenance.Path(cmd.Context(), &opts)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), path)

		return err
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	pathCmd.Flags().BoolVarP(&pathOptions.Ensure, "ensure", "e", false, "download the artifact when it is not cached")
	pathCmd.Flags().StringVar(&pathOptions.OS, "os", "", "operating system (default host)")
	pathCmd.Flags().StringVar(&pathOptions.Arch, "arch", "", "architecture (default host)")

	rootCmd.AddCommand(pathCmd)
}
