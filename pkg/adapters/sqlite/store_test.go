package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/inkpad/pkg/adapters/sqlite"
	"github.com/aretw0/inkpad/pkg/core"
)

// setupStore creates an initialized store in a temp directory.
func setupStore(t *testing.T, opts ...func(*sqlite.Config)) (*sqlite.Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data", "inkpad.db")
	cfg := sqlite.Config{Path: path}
	for _, opt := range opts {
		opt(&cfg)
	}

	store, err := sqlite.New(cfg)
	require.NoError(t, err)
	require.NoError(t, store.Initialize(context.Background()))
	t.Cleanup(func() { store.Close() })
	return store, path
}

func TestNotes_CRUD(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	note := core.Note{ID: "1700000000000", Name: "First", Content: "hello", Tags: []string{"a", "b"}}
	require.NoError(t, store.PutNote(ctx, note))

	got, found, err := store.GetNote(ctx, note.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, note, got)

	note.Name = "Renamed"
	note.Tags = nil
	require.NoError(t, store.PutNote(ctx, note))
	got, _, err = store.GetNote(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Empty(t, got.Tags)

	require.NoError(t, store.DeleteNote(ctx, note.ID))
	_, found, err = store.GetNote(ctx, note.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNotes_GetMissingIsNotAnError(t *testing.T) {
	store, _ := setupStore(t)

	_, found, err := store.GetNote(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = store.GetCurrent(context.Background())
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNotes_BulkPutAndListOrder(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	notes := []core.Note{
		{ID: "1700000000300", Name: "c"},
		{ID: "999", Name: "short"},
		{ID: "1700000000100", Name: "a"},
	}
	require.NoError(t, store.BulkPutNotes(ctx, notes))

	list, err := store.ListNotes(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "999", list[0].ID)
	assert.Equal(t, "1700000000100", list[1].ID)
	assert.Equal(t, "1700000000300", list[2].ID)

	require.NoError(t, store.ClearNotes(ctx))
	list, err = store.ListNotes(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestNotes_BulkPutRejectsMissingID(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	err := store.BulkPutNotes(ctx, []core.Note{{ID: "1", Name: "ok"}, {Name: "broken"}})
	require.Error(t, err)
	assert.True(t, core.IsStorageError(err))

	list, err := store.ListNotes(ctx)
	require.NoError(t, err)
	assert.Empty(t, list, "failed bulk put must not leave partial rows")
}

func TestCurrent_PutAndClear(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutCurrent(ctx, "1"))
	require.NoError(t, store.PutCurrent(ctx, "2"))

	id, found, err := store.GetCurrent(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "2", id)

	require.NoError(t, store.ClearCurrent(ctx))
	_, found, err = store.GetCurrent(ctx)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestTemplates_CRUD(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	created := time.UnixMilli(1700000000000)
	tpl := core.Template{ID: core.TemplateID(created), Name: "Daily", Content: "# Today", CreatedAt: created}
	require.NoError(t, store.PutTemplate(ctx, tpl))

	got, found, err := store.GetTemplate(ctx, tpl.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "template-1700000000000", got.ID)
	assert.True(t, got.CreatedAt.Equal(created))

	list, err := store.ListTemplates(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, store.DeleteTemplate(ctx, tpl.ID))
	_, found, err = store.GetTemplate(ctx, tpl.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSettings_LazyCreation(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	_, found, err := store.GetSettings(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	settings := core.DefaultSettings()
	settings.Editor.DefaultNoteName = "Scratch"
	require.NoError(t, store.PutSettings(ctx, settings))

	got, found, err := store.GetSettings(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Scratch", got.Editor.DefaultNoteName)
	assert.True(t, got.Editor.ShowRecentNotes)
}

func TestSchema_AddsSettingsTableWithoutDataLoss(t *testing.T) {
	ctx := context.Background()

	// An older database that predates the settings table.
	old, path := setupStore(t, func(c *sqlite.Config) { c.SchemaVersion = 1 })
	require.Equal(t, 1, old.SchemaVersion())
	require.NoError(t, old.PutNote(ctx, core.Note{ID: "1", Name: "keep me"}))

	_, found, err := old.GetSettings(ctx)
	require.NoError(t, err)
	assert.False(t, found, "missing table reads as not found")

	require.NoError(t, old.PutSettings(ctx, core.DefaultSettings()))
	assert.Equal(t, 2, old.SchemaVersion())
	require.NoError(t, old.Close())

	reopened, err := sqlite.New(sqlite.Config{Path: path})
	require.NoError(t, err)
	defer reopened.Close()
	require.NoError(t, reopened.Initialize(ctx))
	assert.Equal(t, 2, reopened.SchemaVersion())

	note, found, err := reopened.GetNote(ctx, "1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "keep me", note.Name)

	_, found, err = reopened.GetSettings(ctx)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestStore_ErrorsAreStorageErrors(t *testing.T) {
	store, _ := setupStore(t)
	require.NoError(t, store.Close())

	err := store.PutNote(context.Background(), core.Note{ID: "1"})
	require.Error(t, err)

	var se *core.StorageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, core.TableNotes, se.Table)
	assert.Equal(t, "put", se.Op)
}

func TestStore_State(t *testing.T) {
	store, path := setupStore(t)
	require.NoError(t, store.PutNote(context.Background(), core.Note{ID: "1"}))

	state, ok := store.State().(sqlite.StoreState)
	require.True(t, ok)
	assert.Equal(t, path, state.Path)
	assert.Equal(t, 2, state.SchemaVersion)
	assert.Equal(t, 1, state.Rows[core.TableNotes])
	assert.Equal(t, "sqlite-store", store.ComponentType())
}
