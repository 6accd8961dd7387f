package ports

import (
	"context"

	"github.com/threat-tracker/incident-api/internal/core/domain"
)

// AlertFilter narrows alert listings. OrganizationID, when non-empty, must
// parse as a canonical reference or the query fails with domain.ErrInvalidID.
type AlertFilter struct {
	OrganizationID string
	Status         domain.AlertStatus
}

// AlertRepository defines persistence operations for alerts. Status and
// classification updates are single atomic document updates; a zero match
// count surfaces as domain.ErrAlertNotFound.
type AlertRepository interface {
	Insert(ctx context.Context, alert *domain.Alert) error
	FindByID(ctx context.Context, id string) (*domain.Alert, error)
	List(ctx context.Context, filter AlertFilter) ([]*domain.Alert, error)
	SetClassification(ctx context.Context, id, alertType string) error
	SetReviewed(ctx context.Context, id string) error
}

// AlertService is the alert workflow engine: creation, classification,
// review, and listing.
type AlertService interface {
	Create(ctx context.Context, userID, message string) (*domain.Alert, error)
	List(ctx context.Context, organizationID string) ([]*domain.Alert, error)
	ListClassified(ctx context.Context, organizationID string) ([]*domain.Alert, error)
	Classify(ctx context.Context, alertID, alertType string) error
	Review(ctx context.Context, alertID string) error
}
