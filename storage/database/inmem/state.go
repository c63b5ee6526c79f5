package inmemdb

import (
	"context"

	"github.com/trezcool/masomo-console/core/navigation"
)

type stateStore struct {
	db *stateTable
}

var (
	_ navigation.StateStore   = (*stateStore)(nil)
	_ navigation.StateToggler = (*stateStore)(nil)
)

// NewStateStore keeps expanded states for the lifetime of the process.
func NewStateStore(db *DB) *stateStore {
	return &stateStore{db: db.state}
}

func (store *stateStore) LoadState(_ context.Context, sessionKey string) (navigation.ExpandedState, error) {
	store.db.RLock()
	defer store.db.RUnlock()

	return navigation.NewExpandedState(store.db.table[sessionKey].IDs()...), nil
}

func (store *stateStore) SaveState(_ context.Context, sessionKey string, state navigation.ExpandedState) error {
	store.db.Lock()
	defer store.db.Unlock()

	if len(state) == 0 {
		delete(store.db.table, sessionKey)
		return nil
	}
	store.db.table[sessionKey] = navigation.NewExpandedState(state.IDs()...)
	return nil
}

func (store *stateStore) ToggleState(_ context.Context, sessionKey, id string) (navigation.ExpandedState, error) {
	store.db.Lock()
	defer store.db.Unlock()

	state := navigation.NewExpandedState(store.db.table[sessionKey].IDs()...)
	state.Toggle(id)
	if len(state) == 0 {
		delete(store.db.table, sessionKey)
	} else {
		store.db.table[sessionKey] = state
	}
	return navigation.NewExpandedState(state.IDs()...), nil
}
