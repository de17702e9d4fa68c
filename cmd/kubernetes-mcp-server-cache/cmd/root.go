package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/manusa/kubernetes-mcp-server-launcher/internal/config"
	"github.com/manusa/kubernetes-mcp-server-launcher/internal/logger"
	"github.com/manusa/kubernetes-mcp-server-launcher/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string

	// cfg is loaded before any subcommand runs.
	cfg *config.Config

	// rootCmd represents the base command for inspecting and maintaining the artifact cache.
	rootCmd = &cobra.Command{
		Use:           "kubernetes-mcp-server-cache",
		Short:         "Manage the kubernetes-mcp-server artifact cache",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Build metadata must stay readable even with broken settings.
			if cmd.Name() == "version" {
				return nil
			}

			var err error

			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}

			if level, ok := logger.ParseLogLevel(cfg.LogLevel); ok {
				logger.SetLevel(level)
			}

			return nil
		},
	}
)

// Execute runs the kubernetes-mcp-server-cache CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	// Setup graceful shutdown handling.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		logger.ErrorKV(ctx, "Command failed", "error", err)
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"path to configuration file (default $"+config.EnvConfig+" or ~/.kubernetes-mcp-server/"+config.DefaultConfigFilename+")")
}
