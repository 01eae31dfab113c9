package cmd

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	werrors "github.com/Aman-CERP/wicli/internal/errors"
)

func addSources(t *testing.T, roots ...string) {
	t.Helper()
	for _, r := range roots {
		_, _, err := execute(t, "sources", "add", r)
		require.NoError(t, err)
	}
}

func TestSearchCmd_NoSources(t *testing.T) {
	// Given: nothing registered
	isolate(t)

	// When: searching
	_, _, err := execute(t, "search", "x")

	// Then: the no-sources error carries a hint
	require.Error(t, err)
	assert.True(t, werrors.HasCode(err, werrors.ErrCodeNoSources))
	assert.Contains(t, werrors.FormatForCLI(err), "wicli sources add")
}

func TestSearchCmd_PlainOutput(t *testing.T) {
	// Given: two roots, one of which has a match
	isolate(t)
	r1 := writeTree(t, map[string]string{"a.txt": "a", "sub/b.txt": "b"})
	r2 := writeTree(t, map[string]string{"d.txt": "d", "e.txt": "e"})
	addSources(t, r1, r2)

	// When: searching with non-TTY output
	stdout, _, err := execute(t, "search", "b")

	// Then: the single match is printed with path and content
	require.NoError(t, err)
	assert.Contains(t, stdout, "1. "+filepath.Join(r1, "sub", "b.txt"))
	assert.Contains(t, stdout, "  b\n")
	assert.NotContains(t, stdout, "2. ")
}

func TestSearchCmd_Count(t *testing.T) {
	isolate(t)
	root := writeTree(t, map[string]string{"a.txt": "x", "b.txt": "x", "c.txt": "y"})
	addSources(t, root)

	stdout, _, err := execute(t, "search", "x", "--count")

	require.NoError(t, err)
	assert.Equal(t, "2", strings.TrimSpace(stdout))
}

func TestSearchCmd_JoinsArguments(t *testing.T) {
	isolate(t)
	root := writeTree(t, map[string]string{"a.txt": "func main()", "b.txt": "func"})
	addSources(t, root)

	stdout, _, err := execute(t, "search", "func", "main", "--count")

	require.NoError(t, err)
	assert.Equal(t, "1", strings.TrimSpace(stdout))
}

func TestSearchCmd_JSON(t *testing.T) {
	// Given: a root with three files
	isolate(t)
	root := writeTree(t, map[string]string{"a.txt": "alpha", "b.txt": "beta", "c.txt": "gamma"})
	addSources(t, root)

	// When: searching for the empty term as JSON
	stdout, _, err := execute(t, "search", "", "--format", "json")

	// Then: every file is a match and stats are included
	require.NoError(t, err)
	var got struct {
		Term    string   `json:"term"`
		Roots   []string `json:"roots"`
		Matches []struct {
			Content string `json:"content"`
			Path    string `json:"path"`
			Root    string `json:"root"`
		} `json:"matches"`
		Stats struct {
			FilesRead int `json:"files_read"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, []string{root}, got.Roots)
	require.Len(t, got.Matches, 3)
	assert.Equal(t, 3, got.Stats.FilesRead)

	contents := []string{}
	for _, m := range got.Matches {
		contents = append(contents, m.Content)
		assert.Equal(t, root, m.Root)
	}
	assert.ElementsMatch(t, []string{"alpha", "beta", "gamma"}, contents)
}

func TestSearchCmd_NoMatches(t *testing.T) {
	isolate(t)
	root := writeTree(t, map[string]string{"a.txt": "a"})
	addSources(t, root)

	stdout, stderr, err := execute(t, "search", "zzz")

	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, `No files contain "zzz"`)
}

func TestSearchCmd_InvalidFormat(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "search", "x", "--format", "xml")

	assert.ErrorContains(t, err, "unknown format")
}

func TestSearchCmd_HonorsExcludeDirsEnv(t *testing.T) {
	isolate(t)
	root := writeTree(t, map[string]string{"keep/a.txt": "x", "vendor/b.txt": "x"})
	addSources(t, root)
	t.Setenv("WICLI_EXCLUDE_DIRS", "vendor")

	stdout, _, err := execute(t, "search", "x", "--count")

	require.NoError(t, err)
	assert.Equal(t, "1", strings.TrimSpace(stdout))
}
