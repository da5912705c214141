package session

import (
	"github.com/aretw0/introspection"

	"github.com/aretw0/inkpad/pkg/core"
)

// State is the observable state of a session.
type State struct {
	Current    string        `json:"current,omitempty"`
	Settings   core.Settings `json:"settings"`
	Repository any           `json:"repository"`
	Store      any           `json:"store,omitempty"`
}

// State implements introspection.Introspectable.
func (c *Controller) State() any {
	st := State{
		Current:    c.selection.Get(),
		Settings:   c.Settings(),
		Repository: c.repo.State(),
	}
	if s, ok := c.store.(introspection.Introspectable); ok {
		st.Store = s.State()
	}
	return st
}

// ComponentType implements introspection.Component.
func (c *Controller) ComponentType() string {
	return "session"
}

var (
	_ introspection.Introspectable = (*Controller)(nil)
	_ introspection.Component      = (*Controller)(nil)
)
