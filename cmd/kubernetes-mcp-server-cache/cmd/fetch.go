package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manusa/kubernetes-mcp-server-launcher/internal/service/maintenance"
)

var fetchOptions maintenance.FetchOptions

// fetchCmd downloads artifacts ahead of the first launch.
var fetchCmd = &cobra.Command{
	Use:   "fetch [version...]",
	Short: "Download artifacts into the cache without running them",
	Long: "Download kubernetes-mcp-server artifacts into the cache. Without versions the configured " +
		"one is fetched. --all-platforms seeds the cache for every supported platform.",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := fetchOptions
		opts.Config = cfg
		opts.Versions = args

		paths, err := maintenance.Fetch(cmd.Context(), &opts)
		if err != nil {
			return err
		}

		for _, path := range paths {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
		}

		return nil
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	fetchCmd.Flags().BoolVarP(&fetchOptions.AllPlatforms, "all-platforms", "a", false, "fetch the artifact of every supported platform")
	fetchCmd.Flags().IntVar(&fetchOptions.Concurrency, "concurrency", maintenance.DefaultConcurrency, "maximum parallel downloads")
	fetchCmd.Flags().StringVar(&fetchOptions.OS, "os", "", "operating system to fetch for (default host)")
	fetchCmd.Flags().StringVar(&fetchOptions.Arch, "arch", "", "architecture to fetch for (default host)")

	rootCmd.AddCommand(fetchCmd)
}
