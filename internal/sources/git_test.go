package sources

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	werrors "github.com/Aman-CERP/wicli/internal/errors"
)

func requireGit(t *testing.T) string {
	t.Helper()
	git, err := exec.LookPath("git")
	if err != nil {
		t.Skip("git not installed")
	}
	return git
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
		"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))
}

func noRetry() werrors.RetryConfig {
	return werrors.RetryConfig{MaxRetries: 0, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1}
}

func TestGitCloner_ShallowClone(t *testing.T) {
	git := requireGit(t)

	// Given: a local repository with one commit
	origin := t.TempDir()
	runGit(t, origin, "init", "-q")
	require.NoError(t, os.WriteFile(filepath.Join(origin, "README.md"), []byte("hello from origin"), 0o644))
	runGit(t, origin, "add", ".")
	runGit(t, origin, "commit", "-q", "-m", "init")

	// When: cloning it
	dir := filepath.Join(t.TempDir(), "clones", "origin.git")
	cloner := &GitCloner{Git: git, Retry: noRetry()}
	err := cloner.Clone(context.Background(), "file://"+origin, dir)

	// Then: the working tree is present
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dir, "README.md"))
	require.NoError(t, err)
	assert.Equal(t, "hello from origin", string(data))
}

func TestGitCloner_FailureCarriesOutput(t *testing.T) {
	git := requireGit(t)
	cloner := &GitCloner{Git: git, Retry: noRetry()}

	err := cloner.Clone(context.Background(), "file:///nonexistent/repo.git", filepath.Join(t.TempDir(), "x"))

	require.Error(t, err)
	assert.Equal(t, werrors.ErrCodeCloneFailed, werrors.GetCode(err))
	assert.Contains(t, err.Error(), "after 0 retries")
}

func TestGitCloner_MissingBinaryNotRetried(t *testing.T) {
	cloner := &GitCloner{Git: "wicli-no-such-git", Retry: werrors.RetryConfig{
		MaxRetries: 3, InitialDelay: time.Hour, MaxDelay: time.Hour, Multiplier: 1,
	}}

	err := cloner.Clone(context.Background(), "https://example.com/x.git", filepath.Join(t.TempDir(), "x"))

	require.Error(t, err)
	assert.False(t, werrors.IsRetryable(err))
	assert.Equal(t, werrors.ErrCodeCloneFailed, werrors.GetCode(err))
}

func TestGitCloner_RejectsOptionLikeURL(t *testing.T) {
	err := NewGitCloner().Clone(context.Background(), "--upload-pack=evil", t.TempDir())

	assert.Equal(t, werrors.ErrCodeInvalidURL, werrors.GetCode(err))
}
