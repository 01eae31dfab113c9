package sources

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	werrors "github.com/Aman-CERP/wicli/internal/errors"
)

// Kind distinguishes how a source root is obtained.
type Kind string

const (
	// KindLocal is an existing local directory.
	KindLocal Kind = "local"
	// KindGit is a remote git repository cloned into the data directory.
	KindGit Kind = "git"
)

// Source is a registered location that resolves to a searchable root.
type Source interface {
	// Kind reports the source variant.
	Kind() Kind

	// Root returns the root directory the source will occupy, without side effects.
	Root(cloneDir string) string

	// Materialize makes the root available on disk and returns it.
	Materialize(ctx context.Context, cloner Cloner, cloneDir string) (string, error)

	String() string
}

// Parse resolves a user-supplied spec. Specs ending in ".git" are remote
// repositories and must be absolute URLs; everything else is a local path.
func Parse(spec string) (Source, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, werrors.New(werrors.ErrCodeInvalidInput, "source must not be empty", nil)
	}

	if !strings.HasSuffix(spec, ".git") {
		abs, err := filepath.Abs(spec)
		if err != nil {
			return nil, werrors.New(werrors.ErrCodeInvalidPath, "unable to resolve path", err).
				WithDetail("path", spec)
		}
		return &LocalSource{Path: abs}, nil
	}

	u, err := url.Parse(spec)
	if err != nil || u.Scheme == "" || strings.Trim(u.Path, "/") == "" {
		return nil, werrors.New(werrors.ErrCodeInvalidURL, fmt.Sprintf("%q is not a repository URL", spec), err).
			WithSuggestion("use a full URL such as https://github.com/owner/repo.git")
	}
	return &RemoteSource{URL: u}, nil
}

// LocalSource is a directory already on disk.
type LocalSource struct {
	Path string
}

// Kind implements Source.
func (s *LocalSource) Kind() Kind { return KindLocal }

// Root implements Source.
func (s *LocalSource) Root(string) string { return s.Path }

func (s *LocalSource) String() string { return s.Path }

// Materialize checks that the path exists and is a directory.
func (s *LocalSource) Materialize(context.Context, Cloner, string) (string, error) {
	info, err := os.Stat(s.Path)
	if err != nil {
		return "", werrors.New(werrors.ErrCodeInvalidPath, fmt.Sprintf("%s does not exist", s.Path), err).
			WithDetail("path", s.Path)
	}
	if !info.IsDir() {
		return "", werrors.New(werrors.ErrCodeNotADirectory, fmt.Sprintf("%s is not a directory", s.Path), nil).
			WithDetail("path", s.Path)
	}
	return s.Path, nil
}

// RemoteSource is a git repository that is shallow-cloned on registration.
type RemoteSource struct {
	URL *url.URL
}

// Kind implements Source.
func (s *RemoteSource) Kind() Kind { return KindGit }

// Root implements Source.
func (s *RemoteSource) Root(cloneDir string) string { return ClonePath(cloneDir, s.URL) }

func (s *RemoteSource) String() string { return s.URL.String() }

// Materialize clones the repository unless its directory already exists.
func (s *RemoteSource) Materialize(ctx context.Context, cloner Cloner, cloneDir string) (string, error) {
	dir := s.Root(cloneDir)

	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		slog.Info("clone_reused", slog.String("url", s.URL.String()), slog.String("dir", dir))
		return dir, nil
	}

	if cloner == nil {
		return "", werrors.InternalError("no cloner configured", nil)
	}
	if err := cloner.Clone(ctx, s.URL.String(), dir); err != nil {
		return "", err
	}
	return dir, nil
}

// ClonePath maps a repository URL to its directory under cloneDir:
// the URL path with the leading "/" trimmed and "/" replaced by "-".
// https://host/owner/repo.git becomes <cloneDir>/owner-repo.git.
func ClonePath(cloneDir string, u *url.URL) string {
	name := strings.ReplaceAll(strings.TrimLeft(u.Path, "/"), "/", "-")
	return filepath.Join(cloneDir, name)
}
