package notes

import "sync"

// Selection is the current-note pointer of a session. It is shared between
// the repository and whoever drives the editor.
type Selection struct {
	mu sync.RWMutex
	id string
}

// Get returns the selected id, or "" when nothing is selected.
func (s *Selection) Get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id
}

// Set replaces the selected id.
func (s *Selection) Set(id string) {
	s.mu.Lock()
	s.id = id
	s.mu.Unlock()
}
