package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/wicli/internal/config"
	"github.com/Aman-CERP/wicli/internal/logging"
	"github.com/Aman-CERP/wicli/internal/mcp"
	"github.com/Aman-CERP/wicli/internal/search"
)

func newServeCmd() *cobra.Command {
	var transport string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start a Model Context Protocol server exposing the 'search' and
'list_sources' tools to AI clients.

Stdout carries JSON-RPC, so logs go to ~/.wicli/logs/wicli.log.`,
		Example: `  # Claude Desktop / Cursor configuration
  {"command": "wicli", "args": ["serve"]}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), transport)
		},
	}

	cmd.Flags().StringVar(&transport, "transport", "stdio", "Transport: stdio")

	return cmd
}

func runServe(ctx context.Context, transport string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if loggingCleanup == nil {
		cleanup, err := logging.SetupServe(cfg.Log.Level)
		if err != nil {
			return fmt.Errorf("failed to setup logging: %w", err)
		}
		defer cleanup()
	}

	srv, err := mcp.NewServer(search.New(cfg.SearchOptions()), newManager(cfg))
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	slog.Info("serve_started",
		slog.String("transport", transport),
		slog.String("data_dir", cfg.Sources.DataDir))
	return srv.Serve(ctx, transport)
}
