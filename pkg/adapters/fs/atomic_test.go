package fs_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/inkpad/pkg/adapters/fs"
)

func TestWriteFile(t *testing.T) {
	t.Run("Creates New File", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "note.md")

		require.NoError(t, fs.WriteFile(filename, []byte("hello atomic"), 0o644))

		got, err := os.ReadFile(filename)
		require.NoError(t, err)
		assert.Equal(t, "hello atomic", string(got))
	})

	t.Run("Overwrites Existing File", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "note.md")
		require.NoError(t, os.WriteFile(filename, []byte("initial"), 0o644))

		require.NoError(t, fs.WriteFile(filename, []byte("overwritten"), 0o644))

		got, err := os.ReadFile(filename)
		require.NoError(t, err)
		assert.Equal(t, "overwritten", string(got))
	})

	t.Run("Creates Parent Directories", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "exports", "2025", "note.txt")

		require.NoError(t, fs.WriteFile(filename, []byte("x"), 0o644))
		assert.FileExists(t, filename)
	})

	t.Run("Respects Permissions", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("unix permissions")
		}
		filename := filepath.Join(t.TempDir(), "private.md")

		require.NoError(t, fs.WriteFile(filename, []byte("secret"), 0o600))

		info, err := os.Stat(filename)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})
}

func TestWriteStream_FailureKeepsTarget(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "notes.zip")
	require.NoError(t, os.WriteFile(filename, []byte("previous"), 0o644))

	boom := errors.New("boom")
	err := fs.WriteStream(filename, 0o644, func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), fs.TempFilePrefix), "temp file left behind: %s", e.Name())
	}
}
