package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/wicli/internal/config"
	"github.com/Aman-CERP/wicli/internal/output"
	"github.com/Aman-CERP/wicli/internal/sources"
)

// newManager builds the source manager for the configured data directory.
func newManager(cfg *config.Config) *sources.Manager {
	return sources.NewManager(cfg.Sources.DataDir, sources.NewGitCloner())
}

func newSourcesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Manage search roots",
		Long: `Manage the roots searched by 'wicli search'.

A source is a local directory or a git URL ending in .git. Git sources
are shallow-cloned into the data directory (~/.wicli by default) when
added, and the clone is searched from then on.`,
		Example: `  wicli sources add ~/projects/notes
  wicli sources add https://github.com/user/repo.git
  wicli sources list
  wicli sources remove ~/projects/notes`,
	}

	cmd.AddCommand(newSourcesAddCmd())
	cmd.AddCommand(newSourcesListCmd())
	cmd.AddCommand(newSourcesRemoveCmd())

	return cmd
}

func newSourcesAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <path-or-git-url>",
		Short: "Register a local directory or clone a git repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSourcesAdd(cmd.Context(), cmd, args[0])
		},
	}
}

func newSourcesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List registered roots",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSourcesList(cmd)
		},
	}
}

func newSourcesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <path>",
		Aliases: []string{"rm"},
		Short:   "Unregister a root (cloned files are kept)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSourcesRemove(cmd.Context(), cmd, args[0])
		},
	}
}

func runSourcesAdd(ctx context.Context, cmd *cobra.Command, spec string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	out := output.New(cmd.OutOrStdout())
	root, err := newManager(cfg).Add(ctx, spec)
	if err != nil {
		return err
	}

	out.Successf("Added %s", root)
	return nil
}

func runSourcesList(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	roots, err := newManager(cfg).List()
	if err != nil {
		return err
	}

	if len(roots) == 0 {
		output.New(cmd.ErrOrStderr()).Status("", "No sources configured. Add one with 'wicli sources add <path-or-git-url>'.")
		return nil
	}

	out := output.New(cmd.OutOrStdout())
	for _, r := range roots {
		out.Line(r)
	}
	return nil
}

func runSourcesRemove(ctx context.Context, cmd *cobra.Command, root string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := newManager(cfg).Remove(ctx, root); err != nil {
		return err
	}

	output.New(cmd.OutOrStdout()).Successf("Removed %s", root)
	return nil
}
