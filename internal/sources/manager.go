package sources

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	werrors "github.com/Aman-CERP/wicli/internal/errors"
)

// Manager registers, lists and removes source roots.
type Manager struct {
	storePath string
	cloneDir  string
	cloner    Cloner
}

// NewManager manages the source list in dataDir. Remote sources are cloned
// into dataDir using cloner.
func NewManager(dataDir string, cloner Cloner) *Manager {
	return &Manager{
		storePath: StorePath(dataDir),
		cloneDir:  dataDir,
		cloner:    cloner,
	}
}

// StorePath returns the source list file path.
func (m *Manager) StorePath() string {
	return m.storePath
}

// Add resolves spec, materializes it and records its root.
// Adding a root that is already present is an error.
func (m *Manager) Add(ctx context.Context, spec string) (string, error) {
	src, err := Parse(spec)
	if err != nil {
		return "", err
	}

	root := src.Root(m.cloneDir)
	current, err := Load(m.storePath)
	if err != nil {
		return "", err
	}
	if current.Contains(root) {
		return "", existsError(root)
	}

	root, err = src.Materialize(ctx, m.cloner, m.cloneDir)
	if err != nil {
		return "", err
	}

	err = Update(ctx, m.storePath, func(l *List) error {
		if !l.Add(root) {
			return existsError(root)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	slog.Info("source_added",
		slog.String("root", root),
		slog.String("kind", string(src.Kind())),
		slog.String("spec", src.String()))
	return root, nil
}

// Remove deletes root from the list. Cloned directories are left on disk.
// root may be given relative to the working directory.
func (m *Manager) Remove(ctx context.Context, root string) error {
	var removed string
	err := Update(ctx, m.storePath, func(l *List) error {
		if l.Remove(root) {
			removed = root
			return nil
		}
		if abs, err := filepath.Abs(root); err == nil && l.Remove(abs) {
			removed = abs
			return nil
		}
		return werrors.New(werrors.ErrCodeSourceNotFound, fmt.Sprintf("%s is not a configured source", root), nil).
			WithSuggestion("run 'wicli sources list' to see configured sources")
	})
	if err != nil {
		return err
	}

	slog.Info("source_removed", slog.String("root", removed))
	return nil
}

// List returns the configured roots in insertion order.
func (m *Manager) List() ([]string, error) {
	l, err := Load(m.storePath)
	if err != nil {
		return nil, err
	}
	return l.Paths(), nil
}

func existsError(root string) error {
	return werrors.New(werrors.ErrCodeSourceExists, fmt.Sprintf("%s is already a source", root), nil).
		WithDetail("root", root)
}
