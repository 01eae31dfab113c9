package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/wicli/internal/browser"
	"github.com/Aman-CERP/wicli/internal/config"
	"github.com/Aman-CERP/wicli/internal/output"
	"github.com/Aman-CERP/wicli/internal/search"
)

// searchOptions holds CLI flags for search.
type searchOptions struct {
	plain   bool   // print results instead of opening the browser
	count   bool   // print only the number of matches
	format  string // "text", "json"
	noColor bool
}

// searchResult is the --format json document.
type searchResult struct {
	Term    string         `json:"term"`
	Roots   []string       `json:"roots"`
	Matches []search.Match `json:"matches"`
	Stats   search.Stats   `json:"stats"`
}

func newSearchCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Find files containing a term",
		Long: `Search every regular file under the registered sources for a literal,
case-sensitive substring. Multiple arguments are joined with spaces.

On a terminal the matches open in an interactive browser (↑/k, ↓/j to move,
q or Esc to quit). When output is piped, matches are printed instead.

Examples:
  wicli search "func main"
  wicli search TODO --plain
  wicli search deadline --count
  wicli search "" --format json   # every readable file`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.Context(), cmd, strings.Join(args, " "), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.plain, "plain", false, "Print matches instead of opening the browser")
	cmd.Flags().BoolVarP(&opts.count, "count", "c", false, "Print only the number of matching files")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colors in the browser")

	return cmd
}

func runSearch(ctx context.Context, cmd *cobra.Command, term string, opts searchOptions) error {
	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("unknown format %q (supported: text, json)", opts.format)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	roots, err := newManager(cfg).List()
	if err != nil {
		return err
	}

	engine := search.New(cfg.SearchOptions())
	matches, stats, err := engine.SearchWithStats(ctx, term, roots)
	if err != nil {
		return err
	}

	out := output.New(cmd.OutOrStdout())
	errOut := output.New(cmd.ErrOrStderr())

	switch {
	case opts.count:
		out.Line(fmt.Sprint(len(matches)))
		return nil
	case opts.format == "json":
		if matches == nil {
			matches = []search.Match{}
		}
		return out.JSON(searchResult{Term: term, Roots: roots, Matches: matches, Stats: stats})
	}

	if len(matches) == 0 {
		errOut.Warningf("No files contain %q (%d files searched)", term, stats.FilesVisited)
		return nil
	}

	if !opts.plain && browser.IsTTY(cmd.OutOrStdout()) && browser.IsTTY(cmd.InOrStdin()) {
		return browser.Run(ctx, matches, browser.Options{
			Input:   cmd.InOrStdin(),
			Output:  cmd.OutOrStdout(),
			NoColor: opts.noColor || browser.DetectNoColor(),
		})
	}

	for i, m := range matches {
		out.Match(i+1, m.Path, m.Content)
	}
	return nil
}
