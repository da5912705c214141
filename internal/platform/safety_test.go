package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveDBPath(t *testing.T) {
	t.Run("No force keeps the path", func(t *testing.T) {
		assert.Equal(t, "/srv/notes/inkpad.db", ResolveDBPath("/srv/notes/inkpad.db", false))
		assert.Equal(t, DBFile, ResolveDBPath("", false))
	})

	t.Run("Memory is never re-rooted", func(t *testing.T) {
		assert.Equal(t, ":memory:", ResolveDBPath(":memory:", true))
	})

	t.Run("Temp paths are trusted", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "x.db")
		assert.Equal(t, p, ResolveDBPath(p, true))
	})

	t.Run("Other paths move under the dev sandbox", func(t *testing.T) {
		got := ResolveDBPath("/home/someone/notes/inkpad.db", true)
		assert.Equal(t, filepath.Join(os.TempDir(), "inkpad-dev", "notes", "inkpad.db"), got)
	})
}

func TestIsDevRun_UnderGoTest(t *testing.T) {
	assert.True(t, IsDevRun())
}
