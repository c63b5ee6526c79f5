package dashboard

import (
	"context"

	"github.com/trezcool/masomo-console/core/feature"
	"github.com/trezcool/masomo-console/core/session"
)

// roleRule forces an action onto the dashboard of a role.
type roleRule struct {
	role   string
	action func(rootPath string) QuickAction
}

// forcedRules are applied in order, after the feature actions.
var forcedRules = []roleRule{
	{role: session.RoleSchoolAdmin, action: schoolSetupAction},
}

type Resolver struct {
	RootPath string
}

// Resolve returns the shortcuts of the enabled features, in order, followed by the actions
// forced for role. No two actions share a target path.
func (r Resolver) Resolve(features []feature.Feature, role string) []QuickAction {
	actions := make([]QuickAction, 0, len(features)+len(forcedRules))
	for _, f := range features {
		if !f.Enabled {
			continue
		}
		if action, ok := catalogAction(r.RootPath, FeatureKey(f.Key)); ok {
			actions = appendUnique(actions, action)
		}
	}
	for _, rule := range forcedRules {
		if rule.role == role {
			actions = appendUnique(actions, rule.action(r.RootPath))
		}
	}
	return actions
}

func appendUnique(actions []QuickAction, action QuickAction) []QuickAction {
	for _, a := range actions {
		if a.TargetPath == action.TargetPath {
			return actions
		}
	}
	return append(actions, action)
}

type Service struct {
	features feature.Fetcher
	resolver Resolver
}

func NewService(features feature.Fetcher, resolver Resolver) *Service {
	return &Service{features: features, resolver: resolver}
}

// QuickActions resolves the dashboard shortcuts of sess. An empty list is a valid result.
func (svc *Service) QuickActions(ctx context.Context, sess session.Session) []QuickAction {
	return svc.resolver.Resolve(svc.features.FetchEnabled(ctx, sess), sess.Role)
}
