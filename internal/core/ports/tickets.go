package ports

import (
	"context"

	"github.com/threat-tracker/incident-api/internal/core/domain"
)

// TicketRepository defines persistence operations for tickets.
type TicketRepository interface {
	Insert(ctx context.Context, ticket *domain.Ticket) error
	// List optionally filters by organization; unparsable ids fail with
	// domain.ErrInvalidID.
	List(ctx context.Context, organizationID string) ([]*domain.Ticket, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type TicketService interface {
	// Create derives a ticket from an existing alert, copying the alert's
	// organization reference verbatim.
	Create(ctx context.Context, alertID, description string) (*domain.Ticket, error)
	List(ctx context.Context, organizationID string) ([]*domain.Ticket, error)
	UpdateStatus(ctx context.Context, ticketID, status string) error
}
