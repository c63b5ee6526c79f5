package navigation

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-console/core"
	"github.com/trezcool/masomo-console/core/feature"
	"github.com/trezcool/masomo-console/core/session"
)

var ErrNodeNotFound = errors.New("navigation node not found")

// Menu is the sidebar as served to the front-end.
type Menu struct {
	Nodes    []NodeView `json:"nodes" yaml:"nodes"`
	Expanded []string   `json:"expanded" yaml:"expanded"`
}

type Service struct {
	features feature.Fetcher
	builder  Builder
	matcher  Matcher
	states   StateStore
	logger   core.Logger
	metrics  core.Metrics
}

func NewService(features feature.Fetcher, builder Builder, states StateStore, logger core.Logger, metrics core.Metrics) *Service {
	if metrics == nil {
		metrics = core.NopMetrics{}
	}
	return &Service{
		features: features,
		builder:  builder,
		matcher:  Matcher{RootPath: builder.RootPath},
		states:   states,
		logger:   logger,
		metrics:  metrics,
	}
}

// Tree derives the bare tree for sess, filtered by query.
func (svc *Service) Tree(ctx context.Context, sess session.Session, query string) []Node {
	nodes := svc.builder.Build(svc.features.FetchEnabled(ctx, sess), query)
	svc.metrics.NavigationBuilt(len(nodes))
	return nodes
}

// Menu derives the tree for sess and annotates it for location and the session's expanded state.
func (svc *Service) Menu(ctx context.Context, sess session.Session, query, location string) Menu {
	nodes := svc.Tree(ctx, sess, query)
	state := svc.loadState(ctx, sess)
	return Menu{
		Nodes:    svc.matcher.Annotate(nodes, location, state),
		Expanded: state.IDs(),
	}
}

// Expanded returns the ids expanded in sess.
func (svc *Service) Expanded(ctx context.Context, sess session.Session) ([]string, error) {
	state, err := svc.states.LoadState(ctx, sess.StateKey())
	if err != nil {
		return nil, errors.Wrap(err, "loading expanded state")
	}
	return state.IDs(), nil
}

// Toggle expands or collapses the parent node id in sess and returns the expanded ids.
// Only nodes with children in the session's unfiltered tree can be toggled.
func (svc *Service) Toggle(ctx context.Context, sess session.Session, id string) ([]string, error) {
	n, ok := Find(svc.Tree(ctx, sess, ""), id)
	if !ok || !n.HasChildren() {
		return nil, ErrNodeNotFound
	}

	key := sess.StateKey()
	if toggler, ok := svc.states.(StateToggler); ok {
		state, err := toggler.ToggleState(ctx, key, id)
		if err != nil {
			return nil, errors.Wrap(err, "toggling expanded state")
		}
		return state.IDs(), nil
	}

	state, err := svc.states.LoadState(ctx, key)
	if err != nil {
		return nil, errors.Wrap(err, "loading expanded state")
	}
	if state == nil {
		state = NewExpandedState()
	}
	state.Toggle(id)
	if err = svc.states.SaveState(ctx, key, state); err != nil {
		return nil, errors.Wrap(err, "saving expanded state")
	}
	return state.IDs(), nil
}

// loadState never fails: the menu renders collapsed when the state store is down.
func (svc *Service) loadState(ctx context.Context, sess session.Session) ExpandedState {
	state, err := svc.states.LoadState(ctx, sess.StateKey())
	if err != nil {
		svc.logger.Warn(fmt.Sprintf("loading expanded state: %v", err), err, sess)
		return NewExpandedState()
	}
	if state == nil {
		return NewExpandedState()
	}
	return state
}
