package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manusa/kubernetes-mcp-server-launcher/internal/logger"
	"github.com/manusa/kubernetes-mcp-server-launcher/internal/service/maintenance"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or persist launcher settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings, after environment overrides",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return maintenance.ShowConfig(cmd.OutOrStdout(), cfg)
	},
}

var configSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Write the effective settings to the configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, err := maintenance.SaveConfig(configPath, cfg)
		if err != nil {
			return err
		}

		logger.InfoKV(cmd.Context(), "Settings saved", "path", path)

		return nil
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	configCmd.AddCommand(configShowCmd, configSaveCmd)
	rootCmd.AddCommand(configCmd)
}
