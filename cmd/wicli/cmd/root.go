// Package cmd provides the CLI commands for wicli.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/wicli/internal/config"
	werrors "github.com/Aman-CERP/wicli/internal/errors"
	"github.com/Aman-CERP/wicli/internal/logging"
	"github.com/Aman-CERP/wicli/pkg/version"
)

// Debug logging flag
var (
	debugMode      bool
	loggingCleanup func()
)

// NewRootCmd creates the root command for the wicli CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wicli",
		Short: "Find every file that contains a term, across all your sources",
		Long: `wicli searches every regular file under a set of registered roots
(local directories and shallow-cloned git repositories) for a literal,
case-sensitive substring, and lets you browse the matching files.

Get started:
  wicli sources add ~/notes
  wicli sources add https://github.com/user/repo.git
  wicli search "TODO"`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetVersionTemplate("wicli version {{.Version}}\n")

	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.wicli/logs/")

	cmd.PersistentPreRunE = startLogging
	cmd.PersistentPostRunE = stopLogging

	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newSourcesCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newLogsCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// startLogging installs the file logger with --debug; otherwise warnings
// go to stderr so per-file read failures reach the user, unless log.level
// asks for errors only.
func startLogging(cmd *cobra.Command, _ []string) error {
	if debugMode {
		cleanup, err := logging.SetupDebug()
		if err != nil {
			return fmt.Errorf("failed to setup debug logging: %w", err)
		}
		loggingCleanup = cleanup
		return nil
	}

	slog.SetDefault(logging.NewStderrLogger(cmd.ErrOrStderr(), stderrLevel()))
	return nil
}

// stderrLevel is the configured log level, never below warn. A config that
// fails to load is reported by the command itself.
func stderrLevel() string {
	cfg, err := config.Load()
	if err != nil || logging.LevelFromString(cfg.Log.Level) < slog.LevelWarn {
		return "warn"
	}
	return cfg.Log.Level
}

func stopLogging(_ *cobra.Command, _ []string) error {
	if loggingCleanup != nil {
		slog.Debug("debug_logging_stopped")
		loggingCleanup()
		loggingCleanup = nil
	}
	return nil
}

// Execute runs the root command, cancelling on SIGINT/SIGTERM.
// Errors are printed to stderr in the CLI error format.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCmd()
	err := root.ExecuteContext(ctx)
	if err != nil {
		_, _ = fmt.Fprint(root.ErrOrStderr(), werrors.FormatForCLI(err))
	}
	return err
}
