package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/threat-tracker/incident-api/internal/core/domain"
)

const (
	orgCacheKey = "organizations:all"
	orgCacheTTL = 5 * time.Minute
)

// OrganizationCache caches the read-only organization list. A cache miss is
// reported as (nil, nil) so the service can fall through to the store.
type OrganizationCache struct {
	client *redis.Client
}

func NewOrganizationCache(client *redis.Client) *OrganizationCache {
	return &OrganizationCache{client: client}
}

func (c *OrganizationCache) Get(ctx context.Context) ([]*domain.Organization, error) {
	raw, err := c.client.Get(ctx, orgCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("organization cache get: %w", err)
	}

	var orgs []*domain.Organization
	if err := json.Unmarshal(raw, &orgs); err != nil {
		return nil, fmt.Errorf("organization cache decode: %w", err)
	}
	return orgs, nil
}

func (c *OrganizationCache) Set(ctx context.Context, orgs []*domain.Organization) error {
	raw, err := json.Marshal(orgs)
	if err != nil {
		return fmt.Errorf("organization cache encode: %w", err)
	}
	return c.client.Set(ctx, orgCacheKey, raw, orgCacheTTL).Err()
}
