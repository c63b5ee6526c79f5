package navigation

import (
	"context"
	"sort"
)

// ExpandedState is the set of parent node ids expanded in one UI session.
// The zero value is an empty, usable set for reads; use NewExpandedState before writing.
type ExpandedState map[string]struct{}

func NewExpandedState(ids ...string) ExpandedState {
	s := make(ExpandedState, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s ExpandedState) IsExpanded(id string) bool {
	_, ok := s[id]
	return ok
}

func (s ExpandedState) Expand(id string) { s[id] = struct{}{} }

func (s ExpandedState) Collapse(id string) { delete(s, id) }

// Toggle flips id and returns whether it is now expanded.
func (s ExpandedState) Toggle(id string) bool {
	if s.IsExpanded(id) {
		s.Collapse(id)
		return false
	}
	s.Expand(id)
	return true
}

// IDs returns the expanded ids, sorted.
func (s ExpandedState) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// StateStore keeps ExpandedState per UI session. Missing sessions load as an empty state.
type StateStore interface {
	LoadState(ctx context.Context, sessionKey string) (ExpandedState, error)
	SaveState(ctx context.Context, sessionKey string, state ExpandedState) error
}

// StateToggler is implemented by stores that flip one id in a single atomic step.
// Service.Toggle prefers it over LoadState followed by SaveState.
type StateToggler interface {
	ToggleState(ctx context.Context, sessionKey, id string) (ExpandedState, error)
}
