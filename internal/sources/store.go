// Package sources manages the list of roots wicli searches.
//
// The list lives in <data dir>/wicli.json as {"sources": [...]}. It is read
// into an in-memory List, changed there and written back explicitly; Update
// wraps that cycle in a cross-process lock and an atomic file replace.
package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/gofrs/flock"

	werrors "github.com/Aman-CERP/wicli/internal/errors"
)

// FileName is the source list file name inside the data directory.
const FileName = "wicli.json"

// lockRetryDelay is how often Update retries a held lock.
const lockRetryDelay = 50 * time.Millisecond

// List is a snapshot of the configured source roots.
type List struct {
	Sources []string `json:"sources"`
}

// StorePath returns the source list path for a data directory.
func StorePath(dataDir string) string {
	return filepath.Join(dataDir, FileName)
}

// Load reads the list at path. A missing file is an empty list;
// a file that is not valid JSON is an error, never silently reset.
func Load(path string) (*List, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &List{Sources: []string{}}, nil
	}
	if err != nil {
		return nil, werrors.New(werrors.ErrCodeFileRead, "unable to read source list", err).
			WithDetail("path", path)
	}

	var l List
	if len(data) > 0 {
		if err := json.Unmarshal(data, &l); err != nil {
			return nil, werrors.New(werrors.ErrCodeConfigInvalid, "source list is not valid JSON", err).
				WithDetail("path", path).
				WithSuggestion("fix or delete " + path)
		}
	}
	if l.Sources == nil {
		l.Sources = []string{}
	}
	return &l, nil
}

// Save writes the list to path atomically.
func (l *List) Save(path string) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal source list: %w", err)
	}
	return atomicWrite(path, append(data, '\n'))
}

// Add appends root and reports whether it was not already present.
func (l *List) Add(root string) bool {
	if l.Contains(root) {
		return false
	}
	l.Sources = append(l.Sources, root)
	return true
}

// Remove deletes root and reports whether it was present.
func (l *List) Remove(root string) bool {
	i := slices.Index(l.Sources, root)
	if i < 0 {
		return false
	}
	l.Sources = slices.Delete(l.Sources, i, i+1)
	return true
}

// Contains reports whether root is in the list.
func (l *List) Contains(root string) bool {
	return slices.Contains(l.Sources, root)
}

// Paths returns a copy of the roots in insertion order.
func (l *List) Paths() []string {
	return slices.Clone(l.Sources)
}

// Update locks path, loads it, applies fn and saves the result.
// Nothing is written if fn fails. The lock is released on every path out.
func Update(ctx context.Context, path string, fn func(*List) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil || !locked {
		return werrors.New(werrors.ErrCodeLockFailed, "unable to lock source list", err).
			WithDetail("path", path)
	}
	defer func() { _ = lock.Unlock() }()

	l, err := Load(path)
	if err != nil {
		return err
	}
	if err := fn(l); err != nil {
		return err
	}
	return l.Save(path)
}

// atomicWrite replaces path with data via a temp file in the same directory.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".wicli-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	committed = true
	return nil
}
