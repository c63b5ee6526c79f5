package feature

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-console/core"
	"github.com/trezcool/masomo-console/core/session"
)

var ErrNotFound = errors.New("feature not found")

type (
	// Catalog returns the features applicable to a school, in server order.
	Catalog interface {
		EnabledFeatures(ctx context.Context, tenant session.Tenant) ([]Feature, error)
	}

	// Assigner bulk assigns catalog features to a school.
	Assigner interface {
		AssignFeatures(ctx context.Context, tenant session.Tenant, keys []string) error
	}

	Service struct {
		catalog  Catalog
		source   string
		validate *validator.Validate
		logger   core.Logger
		metrics  core.Metrics
	}
)

func NewService(catalog Catalog, source string, validate *validator.Validate, logger core.Logger, metrics core.Metrics) *Service {
	if metrics == nil {
		metrics = core.NopMetrics{}
	}
	return &Service{
		catalog:  catalog,
		source:   source,
		validate: validate,
		logger:   logger,
		metrics:  metrics,
	}
}

// FetchEnabled returns the school's feature list, or an empty list whenever the catalog is unavailable.
// Navigation must keep rendering, so failures are logged and never returned.
func (svc *Service) FetchEnabled(ctx context.Context, sess session.Session) []Feature {
	if sess.Tenant.IsZero() {
		return []Feature{}
	}
	features, err := svc.catalog.EnabledFeatures(ctx, sess.Tenant)
	if err != nil {
		svc.metrics.CatalogUnavailable(svc.source)
		svc.logger.Warn(
			fmt.Sprintf("feature catalog unavailable for school %q", sess.Tenant.SchoolID),
			core.CatalogError(err, "fetching enabled features"),
			map[string]interface{}{"source": svc.source},
			sess,
		)
		return []Feature{}
	}
	return svc.clean(features)
}

// clean drops entries without an id, keeps the first of duplicated ids and fills blanks.
func (svc *Service) clean(features []Feature) []Feature {
	seen := make(map[string]bool, len(features))
	cleaned := make([]Feature, 0, len(features))
	for _, f := range features {
		f.ID = core.CleanString(f.ID)
		f.Key = core.CleanString(f.Key, true /* lower */)
		f.Name = core.CleanString(f.Name)
		if err := svc.validate.Struct(f); err != nil {
			svc.logger.Debug(fmt.Sprintf("dropping malformed feature %q", f.ID), err)
			continue
		}
		if seen[f.ID] {
			continue
		}
		seen[f.ID] = true
		if f.Name == "" {
			f.Name = f.Key
		}
		cleaned = append(cleaned, f)
	}
	return cleaned
}

// Fetcher is what the navigation and dashboard services need from this package.
type Fetcher interface {
	FetchEnabled(ctx context.Context, sess session.Session) []Feature
}

var _ Fetcher = (*Service)(nil)
