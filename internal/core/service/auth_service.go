package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/threat-tracker/incident-api/internal/api/metrics"
	"github.com/threat-tracker/incident-api/internal/core/domain"
	"github.com/threat-tracker/incident-api/internal/core/ports"
	"github.com/threat-tracker/incident-api/internal/core/token"
)

// AuthService implements login, registration, and password changes.
type AuthService struct {
	users  ports.UserRepository
	issuer *token.Issuer
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, issuer *token.Issuer, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, issuer: issuer, log: log}
}

// Login checks credentials and, for organization-bound roles, that the
// supplied organization id matches the stored one. A malformed organization
// id is a client error, distinct from a mismatch.
func (s *AuthService) Login(ctx context.Context, username, password, organizationID string) (string, *ports.UserInfo, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		if errors.Is(err, domain.ErrUserNotFound) {
			// Do not reveal whether the account exists.
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	if user.Role == domain.RoleUser || user.Role == domain.RoleIT {
		if organizationID == "" {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return "", nil, domain.ErrOrganizationRequired
		}
		oid, err := primitive.ObjectIDFromHex(organizationID)
		if err != nil {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return "", nil, fmt.Errorf("organization id: %w", domain.ErrInvalidID)
		}
		if oid.Hex() != user.OrganizationID {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return "", nil, domain.ErrOrganizationMismatch
		}
	}

	info := &ports.UserInfo{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	}
	claims := token.Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}
	if user.OrganizationID != "" {
		info.OrganizationID = user.OrganizationID
		claims.OrganizationID = user.OrganizationID

		// The creator privilege only travels with Analysts that are bound
		// to an organization.
		if user.Role == domain.RoleAnalyst {
			canCreate := user.CanCreateUsers
			info.CanCreateUsers = &canCreate
			claims.CanCreateUsers = canCreate
		}
	}

	signed, err := s.issuer.Issue(claims)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("username", user.Username).Str("role", user.Role).Msg("login")

	return signed, info, nil
}

// Register creates a new account. The caller's privilege to register is
// enforced by the policy layer before this runs.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) error {
	if in.Username == "" || in.Password == "" || in.Role == "" {
		return domain.ErrMissingFields
	}
	if !domain.ValidRole(in.Role) {
		return fmt.Errorf("unknown role %q: %w", in.Role, domain.ErrMissingFields)
	}

	user := &domain.User{
		Username: in.Username,
		Role:     in.Role,
	}
	if domain.RequiresOrganization(in.Role) {
		if in.OrganizationID == "" {
			return domain.ErrOrganizationRequired
		}
		oid, err := primitive.ObjectIDFromHex(in.OrganizationID)
		if err != nil {
			return fmt.Errorf("organization id: %w", domain.ErrInvalidID)
		}
		user.OrganizationID = oid.Hex()
	}

	if _, err := s.users.FindByUsername(ctx, in.Username); err == nil {
		return domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)

	if err := s.users.Create(ctx, user); err != nil {
		return err
	}

	metrics.UsersRegisteredTotal.WithLabelValues(in.Role).Inc()
	s.log.Info().Str("username", in.Username).Str("role", in.Role).Msg("user registered")
	return nil
}

// ChangePassword swaps the stored hash after verifying the old password.
func (s *AuthService) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return fmt.Errorf("old password is incorrect: %w", domain.ErrInvalidCredentials)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}

	s.log.Info().Str("username", username).Msg("password changed")
	return nil
}
