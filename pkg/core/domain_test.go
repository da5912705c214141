package core_test

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/inkpad/pkg/core"
)

func TestNoteID_RoundTripsCreationTime(t *testing.T) {
	at := time.Date(2025, time.April, 6, 9, 30, 0, 0, time.UTC)
	n := core.Note{ID: core.NoteID(at)}

	assert.Equal(t, "1743931800000", n.ID)
	assert.True(t, n.CreatedAt().Equal(at))
	assert.True(t, core.Note{ID: "legacy"}.CreatedAt().IsZero())
}

func TestTemplateID_IsPrefixed(t *testing.T) {
	id := core.TemplateID(time.UnixMilli(42))
	assert.Equal(t, core.TemplatePrefix+"42", id)
}

func TestNote_CloneDoesNotShareTags(t *testing.T) {
	n := core.Note{ID: "1", Tags: []string{"a"}}
	c := n.Clone()
	c.Tags[0] = "b"

	assert.Equal(t, "a", n.Tags[0])
	assert.True(t, n.HasTag("a"))
	assert.False(t, n.HasTag("A"), "tags match exactly")
}

func TestSettings_Normalize(t *testing.T) {
	s := core.Settings{Editor: core.EditorSettings{ShowRecentNotes: false}}.Normalize()

	assert.Equal(t, core.DefaultNoteName, s.Editor.DefaultNoteName)
	assert.Equal(t, core.DefaultFileType, s.Editor.DefaultFileType)
	assert.False(t, s.Editor.ShowRecentNotes, "booleans are kept as given")

	custom := core.Settings{Editor: core.EditorSettings{DefaultNoteName: "Scratch", DefaultFileType: ".txt"}}
	assert.Equal(t, custom, custom.Normalize())
}

func TestStorageError(t *testing.T) {
	assert.NoError(t, core.NewStorageError("put", core.TableNotes, nil))

	cause := errors.New("disk full")
	err := core.NewStorageError("put", core.TableNotes, cause)
	assert.EqualError(t, err, "storage put notes: disk full")
	assert.ErrorIs(t, err, cause)
	assert.True(t, core.IsStorageError(err))

	wrapped := fmt.Errorf("saving: %w", err)
	assert.True(t, core.IsStorageError(wrapped))
	assert.Same(t, err, core.NewStorageError("flush", "", err), "already wrapped errors are kept")

	assert.EqualError(t, core.NewStorageError("flush", "", cause), "storage flush: disk full")
	assert.False(t, core.IsStorageError(cause))
}

func TestUnsupportedFileError(t *testing.T) {
	var err error = &core.UnsupportedFileError{Name: "scan.pdf", Ext: ".pdf"}
	assert.Contains(t, err.Error(), "scan.pdf")

	var target *core.UnsupportedFileError
	require.True(t, errors.As(fmt.Errorf("import: %w", err), &target))
	assert.Equal(t, ".pdf", target.Ext)
}

func TestNotification_String(t *testing.T) {
	assert.Equal(t, "[info] Saved", core.Notification{Level: core.LevelInfo, Message: "Saved"}.String())
	assert.Equal(t, "[error] Failed: boom",
		core.Notification{Level: core.LevelError, Message: "Failed", Err: errors.New("boom")}.String())
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := core.LogNotifier{Logger: slog.New(slog.NewTextHandler(&buf, nil))}

	n.Notify(core.Notification{Level: core.LevelWarning, Message: "Nothing to copy", Err: core.ErrEmptyContent})

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "Nothing to copy")
	assert.Contains(t, out, "note content is empty")
}

func TestRecorder_ReturnsSnapshot(t *testing.T) {
	rec := &core.Recorder{}
	rec.Notify(core.Notification{Level: core.LevelInfo, Message: "one"})

	got := rec.Notifications()
	rec.Notify(core.Notification{Level: core.LevelInfo, Message: "two"})

	assert.Len(t, got, 1)
	assert.Len(t, rec.Notifications(), 2)
}
