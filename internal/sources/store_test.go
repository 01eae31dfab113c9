package sources

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	werrors "github.com/Aman-CERP/wicli/internal/errors"
)

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	l, err := Load(filepath.Join(t.TempDir(), FileName))

	require.NoError(t, err)
	assert.Empty(t, l.Paths())
	assert.NotNil(t, l.Sources)
}

func TestLoad_ExistingFile(t *testing.T) {
	// Given: a file written by hand
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(`{
	"sources": ["/src/one", "/src/two"]
}`), 0o644))

	// When: loading
	l, err := Load(path)

	// Then: roots are read in order
	require.NoError(t, err)
	assert.Equal(t, []string{"/src/one", "/src/two"}, l.Paths())
}

func TestLoad_NullAndEmpty(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty file", ""},
		{"null sources", `{"sources": null}`},
		{"no sources key", `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))

			l, err := Load(path)

			require.NoError(t, err)
			assert.Empty(t, l.Paths())
		})
	}
}

func TestLoad_CorruptFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(`{"sources": [`), 0o644))

	_, err := Load(path)

	require.Error(t, err)
	assert.Equal(t, werrors.ErrCodeConfigInvalid, werrors.GetCode(err))
}

func TestList_AddRemoveContains(t *testing.T) {
	l := &List{}

	assert.True(t, l.Add("/a"))
	assert.True(t, l.Add("/b"))
	assert.False(t, l.Add("/a"))
	assert.True(t, l.Contains("/b"))

	assert.True(t, l.Remove("/a"))
	assert.False(t, l.Remove("/a"))
	assert.Equal(t, []string{"/b"}, l.Paths())

	// Paths is a copy.
	l.Paths()[0] = "/mutated"
	assert.Equal(t, []string{"/b"}, l.Paths())
}

func TestSave_RoundTripAndNoTempFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	path := filepath.Join(dir, FileName)

	l := &List{Sources: []string{"/x", "/y"}}
	require.NoError(t, l.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, l.Paths(), loaded.Paths())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, FileName, entries[0].Name())
}

func TestUpdate_AppliesAndReleasesLock(t *testing.T) {
	// Given: an empty store
	path := filepath.Join(t.TempDir(), FileName)

	// When: updating
	err := Update(context.Background(), path, func(l *List) error {
		l.Add("/r")
		return nil
	})

	// Then: the change is persisted and the lock is free again
	require.NoError(t, err)
	l, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"/r"}, l.Paths())

	probe := flock.New(path + ".lock")
	ok, err := probe.TryLock()
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, probe.Unlock())
}

func TestUpdate_FailureWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, (&List{Sources: []string{"/keep"}}).Save(path))
	boom := errors.New("boom")

	err := Update(context.Background(), path, func(l *List) error {
		l.Add("/discard")
		return boom
	})

	assert.ErrorIs(t, err, boom)
	l, _ := Load(path)
	assert.Equal(t, []string{"/keep"}, l.Paths())

	// The lock was released on the error path too.
	require.NoError(t, Update(context.Background(), path, func(*List) error { return nil }))
}

func TestUpdate_CorruptFileNotOverwritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	err := Update(context.Background(), path, func(l *List) error {
		l.Add("/x")
		return nil
	})

	assert.True(t, werrors.HasCode(err, werrors.ErrCodeConfigInvalid))
	data, _ := os.ReadFile(path)
	assert.Equal(t, "not json", string(data))
}

func TestUpdate_HeldLockHonoursContext(t *testing.T) {
	// Given: another holder of the lock
	path := filepath.Join(t.TempDir(), FileName)
	holder := flock.New(path + ".lock")
	require.NoError(t, holder.Lock())
	defer func() { _ = holder.Unlock() }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// When: updating with a cancelled context
	err := Update(ctx, path, func(*List) error { return nil })

	// Then: the update gives up with a lock error
	assert.True(t, werrors.HasCode(err, werrors.ErrCodeLockFailed))
}

func TestUpdate_ConcurrentWritersLoseNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := Update(context.Background(), path, func(l *List) error {
				l.Add(filepath.Join("/root", string(rune('a'+i))))
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	l, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, l.Paths(), 10)
}
