package sink_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segctl/segctl/internal/sink"
)

func TestCreateAppendRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bin")
	s, err := sink.Create(path)
	require.NoError(t, err)
	assert.Equal(t, path, s.Path())

	require.NoError(t, s.Append([]byte("first-")))
	require.NoError(t, s.Append([]byte("second-")))
	require.NoError(t, s.Append([]byte("third")))
	require.NoError(t, s.Release())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first-second-third", string(content))
}

func TestCreateRefusesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bin")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0644))

	_, err := sink.Create(path)
	require.ErrorIs(t, err, sink.ErrAlreadyExists)

	content, rerr := os.ReadFile(path)
	require.NoError(t, rerr)
	assert.Equal(t, "original", string(content), "existing file must not be touched")
}

func TestCreateMakesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "c", "out.bin")
	s, err := sink.Create(path)
	require.NoError(t, err)
	require.NoError(t, s.Release())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestReleaseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bin")
	s, err := sink.Create(path)
	require.NoError(t, err)

	require.NoError(t, s.Release())
	require.NoError(t, s.Release())
}

func TestCreateDirectoryFailure(t *testing.T) {
	// parent path component is a file, so MkdirAll must fail
	base := t.TempDir()
	blocker := filepath.Join(base, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	_, err := sink.Create(filepath.Join(blocker, "out.bin"))
	require.ErrorIs(t, err, sink.ErrIO)
}
