// Package storetest provides an in-memory core.Store for tests, with
// switchable failures.
package storetest

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/aretw0/inkpad/pkg/core"
)

// ErrInjected is returned by every operation while the store is failing.
var ErrInjected = errors.New("injected storage failure")

// Memory is a core.Store backed by maps.
type Memory struct {
	mu        sync.Mutex
	notes     map[string]core.Note
	current   string
	templates map[string]core.Template
	settings  *core.Settings
	failing   bool
	calls     []string
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{
		notes:     make(map[string]core.Note),
		templates: make(map[string]core.Template),
	}
}

// Fail toggles failure injection.
func (m *Memory) Fail(on bool) {
	m.mu.Lock()
	m.failing = on
	m.mu.Unlock()
}

// Calls returns the operations applied so far, in order.
func (m *Memory) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// Notes returns the stored notes ordered by id.
func (m *Memory) Notes() []core.Note {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sortedNotes()
}

// CurrentID returns the stored current pointer.
func (m *Memory) CurrentID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

func (m *Memory) begin(op string) error {
	m.mu.Lock()
	m.calls = append(m.calls, op)
	if m.failing {
		m.mu.Unlock()
		return ErrInjected
	}
	return nil
}

func (m *Memory) Initialize(ctx context.Context) error {
	if err := m.begin("initialize"); err != nil {
		return err
	}
	m.mu.Unlock()
	return nil
}

func (m *Memory) Close() error { return nil }

func (m *Memory) PutNote(ctx context.Context, n core.Note) error {
	if err := m.begin("put-note"); err != nil {
		return err
	}
	defer m.mu.Unlock()
	m.notes[n.ID] = n.Clone()
	return nil
}

func (m *Memory) BulkPutNotes(ctx context.Context, notes []core.Note) error {
	if err := m.begin("bulk-put-notes"); err != nil {
		return err
	}
	defer m.mu.Unlock()
	for _, n := range notes {
		m.notes[n.ID] = n.Clone()
	}
	return nil
}

func (m *Memory) GetNote(ctx context.Context, id string) (core.Note, bool, error) {
	if err := m.begin("get-note"); err != nil {
		return core.Note{}, false, err
	}
	defer m.mu.Unlock()
	n, ok := m.notes[id]
	return n.Clone(), ok, nil
}

func (m *Memory) ListNotes(ctx context.Context) ([]core.Note, error) {
	if err := m.begin("list-notes"); err != nil {
		return nil, err
	}
	defer m.mu.Unlock()
	return m.sortedNotes(), nil
}

func (m *Memory) sortedNotes() []core.Note {
	out := make([]core.Note, 0, len(m.notes))
	for _, n := range m.notes {
		out = append(out, n.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i].ID) != len(out[j].ID) {
			return len(out[i].ID) < len(out[j].ID)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (m *Memory) DeleteNote(ctx context.Context, id string) error {
	if err := m.begin("delete-note"); err != nil {
		return err
	}
	defer m.mu.Unlock()
	delete(m.notes, id)
	return nil
}

func (m *Memory) ClearNotes(ctx context.Context) error {
	if err := m.begin("clear-notes"); err != nil {
		return err
	}
	defer m.mu.Unlock()
	m.notes = make(map[string]core.Note)
	return nil
}

func (m *Memory) GetCurrent(ctx context.Context) (string, bool, error) {
	if err := m.begin("get-current"); err != nil {
		return "", false, err
	}
	defer m.mu.Unlock()
	return m.current, m.current != "", nil
}

func (m *Memory) PutCurrent(ctx context.Context, id string) error {
	if err := m.begin("put-current"); err != nil {
		return err
	}
	defer m.mu.Unlock()
	m.current = id
	return nil
}

func (m *Memory) ClearCurrent(ctx context.Context) error {
	if err := m.begin("clear-current"); err != nil {
		return err
	}
	defer m.mu.Unlock()
	m.current = ""
	return nil
}

func (m *Memory) PutTemplate(ctx context.Context, t core.Template) error {
	if err := m.begin("put-template"); err != nil {
		return err
	}
	defer m.mu.Unlock()
	m.templates[t.ID] = t
	return nil
}

func (m *Memory) GetTemplate(ctx context.Context, id string) (core.Template, bool, error) {
	if err := m.begin("get-template"); err != nil {
		return core.Template{}, false, err
	}
	defer m.mu.Unlock()
	t, ok := m.templates[id]
	return t, ok, nil
}

func (m *Memory) ListTemplates(ctx context.Context) ([]core.Template, error) {
	if err := m.begin("list-templates"); err != nil {
		return nil, err
	}
	defer m.mu.Unlock()
	out := make([]core.Template, 0, len(m.templates))
	for _, t := range m.templates {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) DeleteTemplate(ctx context.Context, id string) error {
	if err := m.begin("delete-template"); err != nil {
		return err
	}
	defer m.mu.Unlock()
	delete(m.templates, id)
	return nil
}

func (m *Memory) GetSettings(ctx context.Context) (core.Settings, bool, error) {
	if err := m.begin("get-settings"); err != nil {
		return core.Settings{}, false, err
	}
	defer m.mu.Unlock()
	if m.settings == nil {
		return core.Settings{}, false, nil
	}
	return *m.settings, true, nil
}

func (m *Memory) PutSettings(ctx context.Context, s core.Settings) error {
	if err := m.begin("put-settings"); err != nil {
		return err
	}
	defer m.mu.Unlock()
	m.settings = &s
	return nil
}

var _ core.Store = (*Memory)(nil)
