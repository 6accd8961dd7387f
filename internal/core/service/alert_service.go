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

// AlertService is the alert workflow engine. An alert starts New, gains a
// type when classified, and ends Reviewed. Classify and review only require
// the alert to exist; they do not inspect its current status, so
// re-classifying or reviewing an unclassified alert is allowed.
type AlertService struct {
	alerts ports.AlertRepository
	users  ports.UserRepository
	log    zerolog.Logger
}

func NewAlertService(alerts ports.AlertRepository, users ports.UserRepository, log zerolog.Logger) *AlertService {
	return &AlertService{alerts: alerts, users: users, log: log}
}

// Create resolves the submitting user, requires them to belong to an
// organization, and persists a New alert stamped with the current UTC time.
// The alert inherits the user's organization reference.
func (s *AlertService) Create(ctx context.Context, userID, message string) (*domain.Alert, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	if user.OrganizationID == "" {
		return nil, domain.ErrNoOrganization
	}

	alert := &domain.Alert{
		UserID:         user.ID,
		OrganizationID: user.OrganizationID,
		Message:        message,
		Status:         domain.AlertStatusNew,
		Type:           nil,
		TriggeredAt:    time.Now().UTC(),
	}

	if err := s.alerts.Insert(ctx, alert); err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("failed to insert alert")
		return nil, err
	}

	metrics.AlertsCreatedTotal.Inc()
	s.log.Info().
		Str("alert_id", alert.ID).
		Str("organization_id", alert.OrganizationID).
		Msg("alert created")

	return alert, nil
}

// List returns all alerts, optionally narrowed to one organization.
func (s *AlertService) List(ctx context.Context, organizationID string) ([]*domain.Alert, error) {
	return s.alerts.List(ctx, ports.AlertFilter{OrganizationID: organizationID})
}

// ListClassified returns alerts awaiting review.
func (s *AlertService) ListClassified(ctx context.Context, organizationID string) ([]*domain.Alert, error) {
	return s.alerts.List(ctx, ports.AlertFilter{
		OrganizationID: organizationID,
		Status:         domain.AlertStatusClassified,
	})
}

// Classify assigns a type and advances the alert to Classified in a single
// atomic update.
func (s *AlertService) Classify(ctx context.Context, alertID, alertType string) error {
	if err := s.alerts.SetClassification(ctx, alertID, alertType); err != nil {
		return err
	}

	metrics.AlertTransitionsTotal.WithLabelValues(string(domain.AlertStatusClassified)).Inc()
	s.log.Info().Str("alert_id", alertID).Str("type", alertType).Msg("alert classified")
	return nil
}

// Review advances the alert to Reviewed in a single atomic update.
func (s *AlertService) Review(ctx context.Context, alertID string) error {
	if err := s.alerts.SetReviewed(ctx, alertID); err != nil {
		return err
	}

	metrics.AlertTransitionsTotal.WithLabelValues(string(domain.AlertStatusReviewed)).Inc()
	s.log.Info().Str("alert_id", alertID).Msg("alert reviewed")
	return nil
}
