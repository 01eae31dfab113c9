package sources

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	werrors "github.com/Aman-CERP/wicli/internal/errors"
)

// Cloner fetches a remote repository into dir.
type Cloner interface {
	Clone(ctx context.Context, url, dir string) error
}

// GitCloner shells out to git for a shallow clone.
type GitCloner struct {
	// Git is the git executable. Empty means "git" on PATH.
	Git string

	// Retry controls retries of transient clone failures.
	Retry werrors.RetryConfig
}

// NewGitCloner returns a GitCloner with the default retry policy.
func NewGitCloner() *GitCloner {
	return &GitCloner{Git: "git", Retry: werrors.DefaultRetryConfig()}
}

// Clone runs `git clone --depth 1 -- url dir`.
func (g *GitCloner) Clone(ctx context.Context, url, dir string) error {
	if strings.HasPrefix(url, "-") {
		return werrors.New(werrors.ErrCodeInvalidURL, "repository URL must not begin with '-'", nil)
	}
	if err := os.MkdirAll(filepath.Dir(dir), 0o755); err != nil {
		return fmt.Errorf("failed to create clone directory: %w", err)
	}

	bin := g.Git
	if bin == "" {
		bin = "git"
	}

	slog.Info("clone_started", slog.String("url", url), slog.String("dir", dir))
	return werrors.Retry(ctx, g.Retry, func() error {
		cmd := exec.CommandContext(ctx, bin, "clone", "--depth", "1", "--", url, dir)
		out, err := cmd.CombinedOutput()
		if err == nil {
			return nil
		}

		we := werrors.New(werrors.ErrCodeCloneFailed, fmt.Sprintf("git clone of %s failed", url),
			fmt.Errorf("%w; output was:\n%s", err, strings.TrimSpace(string(out)))).
			WithDetail("url", url).
			WithDetail("dir", dir)
		switch {
		case errors.Is(err, exec.ErrNotFound):
			we.Retryable = false
			we.Suggestion = "make sure git is installed and on PATH"
		case ctx.Err() != nil:
			we.Retryable = false
		}
		slog.Warn("clone_failed", slog.String("url", url), slog.String("error", we.Cause.Error()))
		return we
	})
}
