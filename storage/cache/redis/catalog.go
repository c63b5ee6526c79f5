package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/trezcool/masomo-console/core"
	"github.com/trezcool/masomo-console/core/feature"
	"github.com/trezcool/masomo-console/core/session"
)

// CachedCatalog caches another catalog's answers per school.
type CachedCatalog struct {
	next   feature.Catalog
	client redis.Cmdable
	ttl    time.Duration
	logger core.Logger
}

var _ feature.Catalog = (*CachedCatalog)(nil)

func NewCachedCatalog(next feature.Catalog, client redis.Cmdable, ttl time.Duration, logger core.Logger) *CachedCatalog {
	return &CachedCatalog{next: next, client: client, ttl: ttl, logger: logger}
}

// FeaturesKey is the cache key of a school's feature list.
func FeaturesKey(tenant session.Tenant) string {
	return keyPrefix + "features:" + tenant.SchoolID
}

// EnabledFeatures serves from the cache when possible. Cache failures fall through to the wrapped
// catalog; errors of the wrapped catalog are never cached.
func (c *CachedCatalog) EnabledFeatures(ctx context.Context, tenant session.Tenant) ([]feature.Feature, error) {
	key := FeaturesKey(tenant)

	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var features []feature.Feature
		if err = json.Unmarshal(data, &features); err == nil {
			return features, nil
		}
		c.logger.Warn(fmt.Sprintf("dropping corrupted cache entry %q", key), err)
	case err != redis.Nil:
		c.logger.Warn("reading features cache", errors.Wrap(err, key))
	}

	features, err := c.next.EnabledFeatures(ctx, tenant)
	if err != nil {
		return nil, err
	}
	if data, err = json.Marshal(features); err != nil {
		return features, nil
	}
	if err = c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("writing features cache", errors.Wrap(err, key))
	}
	return features, nil
}

// Invalidate drops the cached feature list of tenant.
func (c *CachedCatalog) Invalidate(ctx context.Context, tenant session.Tenant) error {
	if err := c.client.Del(ctx, FeaturesKey(tenant)).Err(); err != nil {
		return errors.Wrap(err, "invalidating features cache")
	}
	return nil
}
