package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/manusa/kubernetes-mcp-server-launcher/internal/config"
	"github.com/manusa/kubernetes-mcp-server-launcher/internal/logger"
	"github.com/manusa/kubernetes-mcp-server-launcher/internal/service/launcher"
)

var (
	// exitCode is what the process terminates with once the command returns.
	exitCode int

	// rootCmd forwards every argument to the cached kubernetes-mcp-server binary.
	// Flags, help and completion belong to the server, so cobra must not interpret them.
	rootCmd = &cobra.Command{
		Use:                "kubernetes-mcp-server [server arguments]",
		Short:              "Download, cache and run kubernetes-mcp-server for this platform",
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		Run: func(cmd *cobra.Command, args []string) {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			exitCode = run(ctx, args, launcher.Streams{
				Stdin:  cmd.InOrStdin(),
				Stdout: cmd.OutOrStdout(),
				Stderr: cmd.ErrOrStderr(),
			})
		},
	}
)

// Execute runs the launcher and exits with the status of kubernetes-mcp-server.
func Execute() {
	// Command dispatch is skipped: it answers __complete requests itself, and
	// those belong to the server's own completion.
	rootCmd.Run(rootCmd, os.Args[1:])

	os.Exit(exitCode)
}

func run(ctx context.Context, args []string, streams launcher.Streams) int {
	cfg, err := config.Load("")
	if err != nil {
		logger.ErrorKV(ctx, "Error executing kubernetes-mcp-server", "error", err)
		return launcher.FailureExitCode
	}

	if level, ok := logger.ParseLogLevel(cfg.LogLevel); ok {
		logger.SetLevel(level)
	}

	return launcher.Run(ctx, &launcher.Options{
		Args:    args,
		Config:  cfg,
		Streams: streams,
	})
}
