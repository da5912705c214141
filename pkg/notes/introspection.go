package notes

import "github.com/aretw0/introspection"

// RepositoryState is the observable state of a Repository.
type RepositoryState struct {
	Count           int    `json:"count"`
	Current         string `json:"current,omitempty"`
	RecreatePending bool   `json:"recreate_pending"`
	QueuedWrites    int    `json:"queued_writes"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.Lock()
	st := RepositoryState{
		Count:           len(r.order),
		Current:         r.selection.Get(),
		RecreatePending: r.recreateTimer != nil,
	}
	r.mu.Unlock()

	r.writer.mu.Lock()
	st.QueuedWrites = len(r.writer.queue)
	r.writer.mu.Unlock()
	return st
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "note-repository"
}

var (
	_ introspection.Introspectable = (*Repository)(nil)
	_ introspection.Component      = (*Repository)(nil)
)
