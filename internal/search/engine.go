package search

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	werrors "github.com/Aman-CERP/wicli/internal/errors"
)

// Engine runs literal-term searches over source roots.
// An Engine holds no per-search state and is safe for concurrent use.
type Engine struct {
	opts    Options
	exclude map[string]struct{}
}

// New creates an Engine, filling in defaults for zero-valued options.
func New(opts Options) *Engine {
	if opts.TraversalWorkers <= 0 {
		opts.TraversalWorkers = DefaultTraversalWorkers
	}
	if opts.ContentWorkers <= 0 {
		opts.ContentWorkers = runtime.NumCPU()
	}

	exclude := make(map[string]struct{}, len(opts.ExcludeDirs))
	for _, d := range opts.ExcludeDirs {
		exclude[d] = struct{}{}
	}

	return &Engine{opts: opts, exclude: exclude}
}

// Options returns the effective options.
func (e *Engine) Options() Options {
	return e.opts
}

// Search returns every regular file under roots whose content contains term.
// It fails only when roots is empty or ctx is cancelled; unreadable files and
// directories are skipped.
func (e *Engine) Search(ctx context.Context, term string, roots []string) ([]Match, error) {
	matches, _, err := e.SearchWithStats(ctx, term, roots)
	return matches, err
}

// counters are shared by the walkers and content workers of one search.
type counters struct {
	visited      atomic.Int64
	read         atomic.Int64
	readFailures atomic.Int64
	entryErrors  atomic.Int64
}

// SearchWithStats is Search plus a summary of the work done.
func (e *Engine) SearchWithStats(ctx context.Context, term string, roots []string) ([]Match, Stats, error) {
	if len(roots) == 0 {
		return nil, Stats{}, ErrNoSourcesConfigured
	}

	start := time.Now()
	slog.Debug("search_started",
		slog.String("term", term),
		slog.Int("roots", len(roots)),
		slog.Int("traversal_workers", e.opts.TraversalWorkers),
		slog.Int("content_workers", e.opts.ContentWorkers))

	var c counters
	candidates := make(chan Candidate, e.opts.ContentWorkers*16)

	var walkers errgroup.Group
	for _, root := range roots {
		walkers.Go(func() error {
			c.entryErrors.Add(walkRoot(ctx, root, e.opts.TraversalWorkers, e.exclude, candidates))
			return nil
		})
	}
	go func() {
		_ = walkers.Wait()
		close(candidates)
	}()

	local := make([][]Match, e.opts.ContentWorkers)
	var workers sync.WaitGroup
	for i := range local {
		workers.Add(1)
		go func() {
			defer workers.Done()
			local[i] = e.process(ctx, term, candidates, &c)
		}()
	}
	workers.Wait()

	var matches []Match
	for _, l := range local {
		matches = append(matches, l...)
	}

	stats := Stats{
		Roots:        len(roots),
		FilesVisited: c.visited.Load(),
		FilesRead:    c.read.Load(),
		ReadFailures: c.readFailures.Load(),
		EntryErrors:  c.entryErrors.Load(),
		Matches:      len(matches),
		Duration:     time.Since(start),
	}

	if err := ctx.Err(); err != nil {
		slog.Debug("search_cancelled", slog.String("term", term), slog.String("error", err.Error()))
		return nil, stats, err
	}

	slog.Info("search_complete",
		slog.Int("roots", stats.Roots),
		slog.Int64("files_visited", stats.FilesVisited),
		slog.Int64("files_read", stats.FilesRead),
		slog.Int64("read_failures", stats.ReadFailures),
		slog.Int64("entry_errors", stats.EntryErrors),
		slog.Int("matches", stats.Matches),
		slog.Duration("duration", stats.Duration))

	return matches, stats, nil
}

// process drains in, returning the candidates whose content contains term.
// After cancellation it keeps draining without doing any work.
func (e *Engine) process(ctx context.Context, term string, in <-chan Candidate, c *counters) []Match {
	var found []Match
	for cand := range in {
		if ctx.Err() != nil {
			continue
		}
		c.visited.Add(1)

		if !isRegularFile(cand.Path) {
			continue
		}

		content, err := loadContent(cand.Path, e.opts.MaxFileSize)
		if err != nil {
			// A failed load never matches, not even the empty term.
			c.readFailures.Add(1)
			e.reportReadFailure(cand, err)
			continue
		}
		c.read.Add(1)

		if Contains(content, term) {
			found = append(found, Match{Content: content, Path: cand.Path, Root: cand.Root})
		}
	}
	return found
}

func (e *Engine) reportReadFailure(cand Candidate, err error) {
	attrs := []slog.Attr{
		slog.String("path", cand.Path),
		slog.String("root", cand.Root),
		slog.String("error_code", werrors.GetCode(err)),
		slog.String("error", err.Error()),
	}
	if cause := errors.Unwrap(err); cause != nil {
		attrs = append(attrs, slog.String("cause", cause.Error()))
	}
	slog.LogAttrs(context.Background(), slog.LevelWarn, "file_read_failed", attrs...)

	if e.opts.OnReadFailure != nil {
		e.opts.OnReadFailure(cand.Path, err)
	}
}
