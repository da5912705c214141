// Package core holds the inkpad domain model and the ports the rest of the
// module is written against.
package core

import (
	"strconv"
	"time"
)

const (
	// DefaultNoteName is used when the settings do not override it.
	DefaultNoteName = "New Note"

	// DefaultFileType is the extension used for exports when none is chosen.
	DefaultFileType = ".md"

	// CurrentKey is the fixed primary key of the current-note row.
	CurrentKey = "current"

	// SettingsKey is the fixed primary key of the settings row.
	SettingsKey = "user-settings"

	// TemplatePrefix distinguishes template ids from note ids.
	TemplatePrefix = "template-"
)

// Note is a single user document.
// The ID is the creation time in milliseconds since the epoch.
type Note struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty"`
}

// CreatedAt decodes the creation time embedded in the note id.
// Ids that are not numeric yield the zero time.
func (n Note) CreatedAt() time.Time {
	ms, err := strconv.ParseInt(n.ID, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

// HasTag reports whether the note carries tag exactly.
func (n Note) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no slice memory with n.
func (n Note) Clone() Note {
	if n.Tags != nil {
		n.Tags = append([]string(nil), n.Tags...)
	}
	return n
}

// NoteID renders a creation time as a note id.
func NoteID(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

// Template is a reusable content seed for new notes.
type Template struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// TemplateID renders a creation time as a template id.
func TemplateID(t time.Time) string {
	return TemplatePrefix + strconv.FormatInt(t.UnixMilli(), 10)
}

// EditorSettings are the user's editor preferences.
type EditorSettings struct {
	DefaultNoteName    string `json:"defaultNoteName" yaml:"defaultNoteName"`
	DefaultFileType    string `json:"defaultFileType" yaml:"defaultFileType"`
	DefaultPreviewMode bool   `json:"defaultPreviewMode" yaml:"defaultPreviewMode"`
	ShowRecentNotes    bool   `json:"showRecentNotes" yaml:"showRecentNotes"`
}

// Settings is the persisted settings singleton.
type Settings struct {
	Editor EditorSettings `json:"editor" yaml:"editor"`
}

// DefaultSettings returns the settings used before the user saves any.
func DefaultSettings() Settings {
	return Settings{
		Editor: EditorSettings{
			DefaultNoteName:    DefaultNoteName,
			DefaultFileType:    DefaultFileType,
			DefaultPreviewMode: false,
			ShowRecentNotes:    true,
		},
	}
}

// Normalize fills blank fields with their defaults.
func (s Settings) Normalize() Settings {
	def := DefaultSettings()
	if s.Editor.DefaultNoteName == "" {
		s.Editor.DefaultNoteName = def.Editor.DefaultNoteName
	}
	if s.Editor.DefaultFileType == "" {
		s.Editor.DefaultFileType = def.Editor.DefaultFileType
	}
	return s
}
