package search

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// walkRoot sends every non-directory entry under root to out and returns the
// number of entries that could not be enumerated. Such entries are dropped
// and their siblings are still walked.
//
// Exactly workers goroutines read directories, pulling from a shared queue.
// Subdirectories are queued rather than given their own goroutine, so the goroutine
// count stays fixed however wide or deep the tree is.
func walkRoot(ctx context.Context, root string, workers int, exclude map[string]struct{}, out chan<- Candidate) int64 {
	if workers <= 0 {
		workers = DefaultTraversalWorkers
	}

	q := newDirQueue()
	q.push(root)

	var failed atomic.Int64
	visit := func(dir string) {
		if ctx.Err() != nil {
			return
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			// ReadDir may return the entries it read before failing.
			failed.Add(1)
		}
		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			if entry.IsDir() {
				if _, skip := exclude[entry.Name()]; skip {
					continue
				}
				q.push(path)
				continue
			}
			select {
			case out <- Candidate{Path: path, Root: root}:
			case <-ctx.Done():
				return
			}
		}
	}

	var g errgroup.Group
	for range workers {
		g.Go(func() error {
			for {
				dir, ok := q.pop()
				if !ok {
					return nil
				}
				visit(dir)
				q.done()
			}
		})
	}
	_ = g.Wait()
	return failed.Load()
}

// dirQueue is an unbounded LIFO of directories still to be read.
// It closes itself once every pushed directory has been marked done.
type dirQueue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	dirs    []string
	pending int
}

func newDirQueue() *dirQueue {
	q := &dirQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

func (q *dirQueue) push(dir string) {
	q.mu.Lock()
	q.dirs = append(q.dirs, dir)
	q.pending++
	q.mu.Unlock()
	q.cond.Signal()
}

// pop blocks until a directory is available, or returns false once the
// walk is finished.
func (q *dirQueue) pop() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.dirs) == 0 && q.pending > 0 {
		q.cond.Wait()
	}
	if len(q.dirs) == 0 {
		return "", false
	}
	dir := q.dirs[len(q.dirs)-1]
	q.dirs = q.dirs[:len(q.dirs)-1]
	return dir, true
}

// done marks one popped directory as fully visited.
func (q *dirQueue) done() {
	q.mu.Lock()
	q.pending--
	finished := q.pending == 0
	q.mu.Unlock()
	if finished {
		q.cond.Broadcast()
	}
}
