package ports

import (
	"context"

	"github.com/threat-tracker/incident-api/internal/core/domain"
)

// UserRepository defines persistence operations against the credential store.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindByID resolves a user by its hex id; unparsable ids fail with
	// domain.ErrInvalidID.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
}

// RegisterInput carries the fields of a registration request. The caller's
// privilege to register is checked at the policy layer, not here.
type RegisterInput struct {
	Username       string
	Password       string
	Role           string
	OrganizationID string
}

// UserInfo is the public identity view returned by login; it is also the
// source of the token claims. CanCreateUsers is a pointer so the field is
// omitted entirely for roles it does not apply to.
type UserInfo struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	Role           string `json:"role"`
	OrganizationID string `json:"organizationId,omitempty"`
	CanCreateUsers *bool  `json:"can_create_users,omitempty"`
}

type AuthService interface {
	// Login authenticates username/password. User and IT roles must supply
	// the organization id stored on their account.
	Login(ctx context.Context, username, password, organizationID string) (string, *UserInfo, error)
	Register(ctx context.Context, in RegisterInput) error
	ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error
}
