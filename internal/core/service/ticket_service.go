package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/threat-tracker/incident-api/internal/api/metrics"
	"github.com/threat-tracker/incident-api/internal/core/domain"
	"github.com/threat-tracker/incident-api/internal/core/ports"
)

// TicketService converts reviewed alerts into status-tracked tickets.
type TicketService struct {
	tickets ports.TicketRepository
	alerts  ports.AlertRepository
	log     zerolog.Logger
}

func NewTicketService(tickets ports.TicketRepository, alerts ports.AlertRepository, log zerolog.Logger) *TicketService {
	return &TicketService{tickets: tickets, alerts: alerts, log: log}
}

// Create derives a ticket from an existing alert. The alert's organization
// reference is copied verbatim without re-validation; ticket creation and the
// alert read are not transactionally linked.
func (s *TicketService) Create(ctx context.Context, alertID, description string) (*domain.Ticket, error) {
	alert, err := s.alerts.FindByID(ctx, alertID)
	if err != nil {
		return nil, fmt.Errorf("resolve alert: %w", err)
	}

	ticket := &domain.Ticket{
		AlertID:        alert.ID,
		OrganizationID: alert.OrganizationID,
		Description:    description,
		Status:         domain.TicketStatusOpen,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.tickets.Insert(ctx, ticket); err != nil {
		s.log.Error().Err(err).Str("alert_id", alert.ID).Msg("failed to insert ticket")
		return nil, err
	}

	metrics.TicketsCreatedTotal.Inc()
	s.log.Info().Str("ticket_id", ticket.ID).Str("alert_id", alert.ID).Msg("ticket created")

	return ticket, nil
}

// List returns all tickets, optionally narrowed to one organization.
func (s *TicketService) List(ctx context.Context, organizationID string) ([]*domain.Ticket, error) {
	return s.tickets.List(ctx, organizationID)
}

// UpdateStatus sets the ticket's free-form status in a single atomic update.
func (s *TicketService) UpdateStatus(ctx context.Context, ticketID, status string) error {
	if status == "" {
		return fmt.Errorf("status: %w", domain.ErrMissingFields)
	}

	if err := s.tickets.UpdateStatus(ctx, ticketID, status); err != nil {
		return err
	}

	s.log.Info().Str("ticket_id", ticketID).Str("status", status).Msg("ticket updated")
	return nil
}
