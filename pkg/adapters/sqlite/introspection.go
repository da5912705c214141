package sqlite

import (
	"context"
	"fmt"

	"github.com/aretw0/introspection"

	"github.com/aretw0/inkpad/pkg/core"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Path          string         `json:"path"`
	SchemaVersion int            `json:"schema_version"`
	Rows          map[string]int `json:"rows"`
	Error         string         `json:"error,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	state := StoreState{
		Path:          s.Path,
		SchemaVersion: s.SchemaVersion(),
		Rows:          make(map[string]int),
	}
	ctx := context.Background()
	for _, table := range []string{core.TableNotes, core.TableCurrent, core.TableTemplates, core.TableSettings} {
		n, err := s.count(ctx, table)
		if err != nil {
			state.Error = err.Error()
			continue
		}
		if n >= 0 {
			state.Rows[table] = n
		}
	}
	return state
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "sqlite-store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)

// count returns -1 for tables the schema does not have yet.
func (s *Store) count(ctx context.Context, table string) (int, error) {
	exists, err := s.tableExists(ctx, table)
	if err != nil {
		return 0, err
	}
	if !exists {
		return -1, nil
	}
	var n int
	// table names come from the fixed core constants above.
	if err := s.queryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
