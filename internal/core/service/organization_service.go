package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/threat-tracker/incident-api/internal/core/domain"
	"github.com/threat-tracker/incident-api/internal/core/ports"
)

// OrganizationCache abstracts the cache for the organization list (Redis).
// A miss is reported as (nil, nil).
type OrganizationCache interface {
	Get(ctx context.Context) ([]*domain.Organization, error)
	Set(ctx context.Context, orgs []*domain.Organization) error
}

// OrganizationService serves the read-only organization list with a
// cache-aside read through the cache. Cache failures degrade to the store.
type OrganizationService struct {
	orgs  ports.OrganizationRepository
	cache OrganizationCache
	log   zerolog.Logger
}

func NewOrganizationService(orgs ports.OrganizationRepository, cache OrganizationCache, log zerolog.Logger) *OrganizationService {
	return &OrganizationService{orgs: orgs, cache: cache, log: log}
}

func (s *OrganizationService) List(ctx context.Context) ([]*domain.Organization, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("organization cache read failed, falling back to store")
		} else if cached != nil {
			return cached, nil
		}
	}

	orgs, err := s.orgs.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, orgs); err != nil {
			s.log.Warn().Err(err).Msg("failed to populate organization cache")
		}
	}

	return orgs, nil
}
