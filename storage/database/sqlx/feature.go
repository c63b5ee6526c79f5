package sqlxrepos

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-console/core/feature"
	"github.com/trezcool/masomo-console/core/session"
)

type featureRepository struct {
	db *sqlx.DB
}

var (
	_ feature.Catalog  = (*featureRepository)(nil) // interface compliance check
	_ feature.Assigner = (*featureRepository)(nil)
)

func NewFeatureRepository(db *sqlx.DB) *featureRepository {
	return &featureRepository{db: db}
}

type featureRow struct {
	ID           string         `db:"id"`
	Key          string         `db:"key"`
	Name         string         `db:"name"`
	Description  string         `db:"description"`
	Enabled      bool           `db:"enabled"`
	Capabilities pq.StringArray `db:"capabilities"`
}

func (r featureRow) feature() feature.Feature {
	f := feature.Feature{
		ID:          r.ID,
		Key:         r.Key,
		Name:        r.Name,
		Description: r.Description,
		Enabled:     r.Enabled,
	}
	for _, c := range r.Capabilities {
		f.Capabilities = append(f.Capabilities, feature.Capability(c))
	}
	return f
}

const enabledFeaturesQuery = `
SELECT f.id, f.key, f.name, f.description, sf.enabled, f.capabilities
FROM school_feature sf
JOIN feature f ON f.id = sf.feature_id
WHERE sf.school_id = $1 AND sf.enabled
ORDER BY sf.position, f.name`

func (repo featureRepository) EnabledFeatures(ctx context.Context, tenant session.Tenant) ([]feature.Feature, error) {
	var rows []featureRow
	if err := repo.db.SelectContext(ctx, &rows, enabledFeaturesQuery, tenant.SchoolID); err != nil {
		return nil, errors.Wrap(err, "selecting school features")
	}
	features := make([]feature.Feature, 0, len(rows))
	for _, r := range rows {
		features = append(features, r.feature())
	}
	return features, nil
}

// AssignFeatures replaces the school's features with keys, in the given order.
func (repo featureRepository) AssignFeatures(ctx context.Context, tenant session.Tenant, keys []string) (err error) {
	var found []struct {
		ID  string `db:"id"`
		Key string `db:"key"`
	}
	if err = repo.db.SelectContext(ctx, &found, "SELECT id, key FROM feature WHERE key = ANY($1)", pq.Array(keys)); err != nil {
		return errors.Wrap(err, "selecting features")
	}
	ids := make(map[string]string, len(found))
	for _, f := range found {
		ids[f.Key] = f.ID
	}
	for _, key := range keys {
		if _, ok := ids[key]; !ok {
			return errors.Wrap(feature.ErrNotFound, fmt.Sprintf("key %q", key))
		}
	}

	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "starting transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM school_feature WHERE school_id = $1", tenant.SchoolID); err != nil {
		return errors.Wrap(err, "clearing school features")
	}
	for pos, key := range keys {
		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO school_feature (school_id, feature_id, enabled, position) VALUES ($1, $2, true, $3)
			ON CONFLICT (school_id, feature_id) DO NOTHING`,
			tenant.SchoolID, ids[key], pos,
		)
		if err != nil {
			return errors.Wrap(err, "inserting school feature")
		}
	}
	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "committing school features")
	}
	return nil
}
