package search

import (
	"time"

	werrors "github.com/Aman-CERP/wicli/internal/errors"
)

// DefaultTraversalWorkers bounds concurrent directory reads per root.
const DefaultTraversalWorkers = 5

// ErrNoSourcesConfigured is returned by Search when there are no roots.
var ErrNoSourcesConfigured = werrors.New(werrors.ErrCodeNoSources, "no sources configured", nil).
	WithSuggestion("add one with 'wicli sources add <path-or-git-url>'")

// Match is the content of one file that contains the search term,
// together with the file it came from.
type Match struct {
	Content string `json:"content"`
	Path    string `json:"path"`
	Root    string `json:"root"`
}

// Contents returns the content-only view of matches.
func Contents(matches []Match) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Content
	}
	return out
}

// Candidate is a non-directory entry found while walking a root.
type Candidate struct {
	Path string
	Root string
}

// Stats summarises one search.
type Stats struct {
	Roots        int           `json:"roots"`
	FilesVisited int64         `json:"files_visited"`
	FilesRead    int64         `json:"files_read"`
	ReadFailures int64         `json:"read_failures"`
	EntryErrors  int64         `json:"entry_errors"`
	Matches      int           `json:"matches"`
	Duration     time.Duration `json:"duration"`
}

// Options configures an Engine. Zero values select defaults.
type Options struct {
	// TraversalWorkers bounds concurrent directory reads within one root.
	TraversalWorkers int

	// ContentWorkers is the size of the shared content pool.
	ContentWorkers int

	// MaxFileSize skips larger files as read failures. 0 disables the limit.
	MaxFileSize int64

	// ExcludeDirs lists directory base names that are never descended into.
	ExcludeDirs []string

	// OnReadFailure, if set, receives every file that could not be loaded.
	// It is called concurrently from content workers.
	OnReadFailure func(path string, err error)
}
