package navigation

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testutil "github.com/trezcool/masomo-console/tests"
)

type mapStore struct {
	states  map[string]ExpandedState
	loadErr error
	saveErr error
}

func (s *mapStore) LoadState(_ context.Context, key string) (ExpandedState, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return NewExpandedState(s.states[key].IDs()...), nil
}

func (s *mapStore) SaveState(_ context.Context, key string, state ExpandedState) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	if s.states == nil {
		s.states = make(map[string]ExpandedState)
	}
	s.states[key] = NewExpandedState(state.IDs()...)
	return nil
}

func setupService(t *testing.T) (*Service, *mapStore, *testutil.Logger, *testutil.Metrics) {
	t.Helper()
	store := &mapStore{}
	logger := new(testutil.Logger)
	metrics := new(testutil.Metrics)
	svc := NewService(testutil.Fetcher(sampleFeatures()), NewBuilder("/school", true), store, logger, metrics)
	return svc, store, logger, metrics
}

func TestService_Toggle(t *testing.T) {
	svc, store, _, _ := setupService(t)
	ctx := context.Background()
	sess := testutil.SchoolAdmin("s1")

	tests := []struct {
		name    string
		id      string
		want    []string
		wantErr error
	}{
		{name: "unknown node", id: "nope", wantErr: ErrNodeNotFound},
		{name: "leaf node", id: "feature-f4", wantErr: ErrNodeNotFound},
		{name: "fixed leaf", id: DashboardID, wantErr: ErrNodeNotFound},
		{name: "child node", id: "feature-f1#list", wantErr: ErrNodeNotFound},
		{name: "disabled feature", id: "feature-f3", wantErr: ErrNodeNotFound},
		{name: "expand", id: "feature-f1", want: []string{"feature-f1"}},
		{name: "expand another", id: "feature-f2", want: []string{"feature-f1", "feature-f2"}},
		{name: "collapse", id: "feature-f1", want: []string{"feature-f2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Toggle(ctx, sess, tt.id)
			if err != tt.wantErr {
				t.Fatalf("Toggle() error = %v; wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr == nil {
				assert.Equal(t, tt.want, got)
			}
		})
	}

	// other sessions are untouched
	other := testutil.SchoolAdmin("s2")
	expanded, err := svc.Expanded(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, expanded)
	assert.Len(t, store.states, 1)
}

func TestService_Toggle_storeErrors(t *testing.T) {
	svc, store, _, _ := setupService(t)
	sess := testutil.SchoolAdmin("s1")

	store.saveErr = errors.New("redis down")
	_, err := svc.Toggle(context.Background(), sess, "feature-f1")
	assert.Error(t, err)
	assert.Equal(t, store.saveErr, errors.Cause(err))
}

// togglingStore flips ids itself; SaveState always fails so tests catch a fallback to load then save.
type togglingStore struct {
	mapStore
	toggles int
}

func (s *togglingStore) ToggleState(_ context.Context, key, id string) (ExpandedState, error) {
	s.toggles++
	if s.states == nil {
		s.states = make(map[string]ExpandedState)
	}
	state := NewExpandedState(s.states[key].IDs()...)
	state.Toggle(id)
	s.states[key] = state
	return NewExpandedState(state.IDs()...), nil
}

func TestService_Toggle_usesStateToggler(t *testing.T) {
	store := &togglingStore{mapStore: mapStore{saveErr: errors.New("not atomic")}}
	svc := NewService(testutil.Fetcher(sampleFeatures()), NewBuilder("/school", true), store, new(testutil.Logger), new(testutil.Metrics))
	ctx := context.Background()
	sess := testutil.SchoolAdmin("s1")

	got, err := svc.Toggle(ctx, sess, "feature-f1")
	require.NoError(t, err)
	assert.Equal(t, []string{"feature-f1"}, got)

	got, err = svc.Toggle(ctx, sess, "feature-f1")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 2, store.toggles)

	_, err = svc.Toggle(ctx, sess, "feature-f4")
	assert.Equal(t, ErrNodeNotFound, err)
	assert.Equal(t, 2, store.toggles)
}

func TestService_Menu(t *testing.T) {
	svc, store, logger, metrics := setupService(t)
	ctx := context.Background()
	sess := testutil.SchoolAdmin("s1")

	_, err := svc.Toggle(ctx, sess, "feature-f2")
	require.NoError(t, err)

	menu := svc.Menu(ctx, sess, "student", "/school/features/f2")
	require.Len(t, menu.Nodes, 1)
	assert.Equal(t, "feature-f2", menu.Nodes[0].ID)
	assert.True(t, menu.Nodes[0].Active)
	assert.True(t, menu.Nodes[0].Expanded)
	assert.Equal(t, []string{"feature-f2"}, menu.Expanded)
	assert.Equal(t, 2, metrics.Builds) // toggle + menu

	t.Run("state store down renders collapsed", func(t *testing.T) {
		store.loadErr = errors.New("redis down")
		defer func() { store.loadErr = nil }()

		menu := svc.Menu(ctx, sess, "", "")
		assert.Len(t, menu.Nodes, 7)
		assert.Empty(t, menu.Expanded)
		assert.Equal(t, 1, logger.Count("warn"))
	})
}
