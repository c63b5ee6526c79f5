package inmemdb

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-console/core/feature"
	"github.com/trezcool/masomo-console/core/session"
)

type featureRepository struct {
	db *featureTable
}

var (
	_ feature.Catalog  = (*featureRepository)(nil)
	_ feature.Assigner = (*featureRepository)(nil)
)

func NewFeatureRepository(db *DB) *featureRepository {
	return &featureRepository{db: db.feature}
}

// AllFeatures returns the whole catalog, in seed order.
func (repo *featureRepository) AllFeatures() []feature.Feature {
	repo.db.RLock()
	defer repo.db.RUnlock()

	features := make([]feature.Feature, 0, len(repo.db.order))
	for _, key := range repo.db.order {
		features = append(features, *repo.db.table[key])
	}
	return features
}

func (repo *featureRepository) EnabledFeatures(ctx context.Context, tenant session.Tenant) ([]feature.Feature, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo.db.RLock()
	defer repo.db.RUnlock()

	keys := repo.db.schools[tenant.SchoolID]
	features := make([]feature.Feature, 0, len(keys))
	for _, key := range keys {
		f := *repo.db.table[key]
		f.Enabled = true
		features = append(features, f)
	}
	return features, nil
}

// AssignFeatures replaces the school's features with keys, in the given order.
func (repo *featureRepository) AssignFeatures(ctx context.Context, tenant session.Tenant, keys []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	repo.db.Lock()
	defer repo.db.Unlock()

	assigned := make([]string, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	for _, key := range keys {
		if _, ok := repo.db.table[key]; !ok {
			return errors.Wrap(feature.ErrNotFound, fmt.Sprintf("key %q", key))
		}
		if !seen[key] {
			seen[key] = true
			assigned = append(assigned, key)
		}
	}
	repo.db.schools[tenant.SchoolID] = assigned
	return nil
}
