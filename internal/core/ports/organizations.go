package ports

import (
	"context"

	"github.com/threat-tracker/incident-api/internal/core/domain"
)

type OrganizationRepository interface {
	List(ctx context.Context) ([]*domain.Organization, error)
}

type OrganizationService interface {
	List(ctx context.Context) ([]*domain.Organization, error)
}
