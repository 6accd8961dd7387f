package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/threat-tracker/incident-api/internal/core/domain"
)

type stubOrgRepo struct {
	orgs  []*domain.Organization
	calls int
}

func (r *stubOrgRepo) List(_ context.Context) ([]*domain.Organization, error) {
	r.calls++
	return r.orgs, nil
}

type stubOrgCache struct {
	stored []*domain.Organization
	err    error
}

func (c *stubOrgCache) Get(_ context.Context) ([]*domain.Organization, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.stored, nil
}

func (c *stubOrgCache) Set(_ context.Context, orgs []*domain.Organization) error {
	if c.err != nil {
		return c.err
	}
	c.stored = orgs
	return nil
}

func TestOrganizationService_CacheMissThenHit(t *testing.T) {
	repo := &stubOrgRepo{orgs: []*domain.Organization{{ID: "507f1f77bcf86cd799439011", Name: "Acme"}}}
	cache := &stubOrgCache{}
	svc := NewOrganizationService(repo, cache, zerolog.Nop())
	ctx := context.Background()

	orgs, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(orgs) != 1 || orgs[0].Name != "Acme" {
		t.Fatalf("unexpected orgs: %+v", orgs)
	}
	if repo.calls != 1 {
		t.Fatalf("expected one store read, got %d", repo.calls)
	}
	if cache.stored == nil {
		t.Fatalf("cache not populated after miss")
	}

	if _, err := svc.List(ctx); err != nil {
		t.Fatalf("second list: %v", err)
	}
	if repo.calls != 1 {
		t.Fatalf("cache hit should not hit the store, got %d reads", repo.calls)
	}
}

func TestOrganizationService_CacheFailureFallsBack(t *testing.T) {
	repo := &stubOrgRepo{orgs: []*domain.Organization{{ID: "507f1f77bcf86cd799439011", Name: "Acme"}}}
	cache := &stubOrgCache{err: errors.New("redis down")}
	svc := NewOrganizationService(repo, cache, zerolog.Nop())

	orgs, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list should degrade to store: %v", err)
	}
	if len(orgs) != 1 {
		t.Fatalf("unexpected orgs: %+v", orgs)
	}
}

func TestOrganizationService_NilCache(t *testing.T) {
	repo := &stubOrgRepo{}
	svc := NewOrganizationService(repo, nil, zerolog.Nop())

	if _, err := svc.List(context.Background()); err != nil {
		t.Fatalf("list without cache: %v", err)
	}
	if repo.calls != 1 {
		t.Fatalf("expected store read, got %d", repo.calls)
	}
}
