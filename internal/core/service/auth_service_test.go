package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/threat-tracker/incident-api/internal/core/domain"
	"github.com/threat-tracker/incident-api/internal/core/ports"
	"github.com/threat-tracker/incident-api/internal/core/token"
)

const testOrgID = "507f1f77bcf86cd799439011"

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by username
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if u, ok := r.users[username]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if len(id) != 24 {
		return nil, domain.ErrInvalidID
	}
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	if _, exists := r.users[user.Username]; exists {
		return domain.ErrUserExists
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		r.nextID++
		copy.ID = "507f1f77bcf86cd79943a000"
	}
	r.users[copy.Username] = copy
	return nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id string, passwordHash string) error {
	for _, u := range r.users {
		if u.ID == id {
			u.PasswordHash = passwordHash
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return string(hash)
}

func newAuthService(repo *stubUserRepo) *AuthService {
	return NewAuthService(repo, token.NewIssuer("secret", time.Hour), zerolog.Nop())
}

func TestAuthService_Login_UserWithOrganization(t *testing.T) {
	repo := newStubUserRepo()
	repo.users["bob"] = &domain.User{
		ID:             "507f1f77bcf86cd799439012",
		Username:       "bob",
		PasswordHash:   mustHash(t, "s3cret"),
		Role:           domain.RoleUser,
		OrganizationID: testOrgID,
	}
	svc := newAuthService(repo)

	signed, info, err := svc.Login(context.Background(), "bob", "s3cret", testOrgID)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if signed == "" {
		t.Fatalf("expected token, got empty")
	}
	if info.OrganizationID != testOrgID {
		t.Fatalf("expected organization in user info, got %q", info.OrganizationID)
	}
	if info.CanCreateUsers != nil {
		t.Fatalf("can_create_users should not be set for role User")
	}

	claims, err := token.NewIssuer("secret", time.Hour).Verify(signed)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if claims.Role != domain.RoleUser || claims.OrganizationID != testOrgID {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Login_OrganizationChecks(t *testing.T) {
	repo := newStubUserRepo()
	repo.users["ops"] = &domain.User{
		ID:             "507f1f77bcf86cd799439013",
		Username:       "ops",
		PasswordHash:   mustHash(t, "pw"),
		Role:           domain.RoleIT,
		OrganizationID: testOrgID,
	}
	svc := newAuthService(repo)

	if _, _, err := svc.Login(context.Background(), "ops", "pw", ""); !errors.Is(err, domain.ErrOrganizationRequired) {
		t.Fatalf("expected ErrOrganizationRequired, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "ops", "pw", "not-an-id"); !errors.Is(err, domain.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "ops", "pw", "507f1f77bcf86cd799439099"); !errors.Is(err, domain.ErrOrganizationMismatch) {
		t.Fatalf("expected ErrOrganizationMismatch, got %v", err)
	}
}

func TestAuthService_Login_AnalystWithoutOrganization(t *testing.T) {
	repo := newStubUserRepo()
	repo.users["lead"] = &domain.User{
		ID:             "507f1f77bcf86cd799439014",
		Username:       "lead",
		PasswordHash:   mustHash(t, "pw"),
		Role:           domain.RoleAnalyst,
		CanCreateUsers: true,
	}
	svc := newAuthService(repo)

	signed, info, err := svc.Login(context.Background(), "lead", "pw", "")
	if err != nil {
		t.Fatalf("analyst login failed: %v", err)
	}
	// Without an organization the creator flag stays out of the token.
	if info.CanCreateUsers != nil {
		t.Fatalf("expected no can_create_users without organization")
	}
	claims, err := token.NewIssuer("secret", time.Hour).Verify(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.CanCreateUsers {
		t.Fatalf("creator claim should not be set without organization")
	}
}

func TestAuthService_Login_AnalystWithOrganization(t *testing.T) {
	repo := newStubUserRepo()
	repo.users["lead"] = &domain.User{
		ID:             "507f1f77bcf86cd799439014",
		Username:       "lead",
		PasswordHash:   mustHash(t, "pw"),
		Role:           domain.RoleAnalyst,
		OrganizationID: testOrgID,
		CanCreateUsers: true,
	}
	svc := newAuthService(repo)

	signed, info, err := svc.Login(context.Background(), "lead", "pw", "")
	if err != nil {
		t.Fatalf("analyst login failed: %v", err)
	}
	if info.CanCreateUsers == nil || !*info.CanCreateUsers {
		t.Fatalf("expected can_create_users=true in user info")
	}
	claims, err := token.NewIssuer("secret", time.Hour).Verify(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !claims.CanCreateUsers || claims.OrganizationID != testOrgID {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Login_BadCredentials(t *testing.T) {
	repo := newStubUserRepo()
	repo.users["bob"] = &domain.User{
		ID:           "507f1f77bcf86cd799439012",
		Username:     "bob",
		PasswordHash: mustHash(t, "right"),
		Role:         domain.RoleAnalyst,
	}
	svc := newAuthService(repo)

	if _, _, err := svc.Login(context.Background(), "bob", "wrong", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	// Unknown user yields the same error as a bad password.
	if _, _, err := svc.Login(context.Background(), "ghost", "pw", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestAuthService_Register(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice", Password: "pw", Role: domain.RoleUser, OrganizationID: testOrgID,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	stored := repo.users["alice"]
	if stored == nil {
		t.Fatalf("user not persisted")
	}
	if stored.PasswordHash == "pw" {
		t.Fatalf("password stored unhashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pw")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if stored.OrganizationID != testOrgID {
		t.Fatalf("organization not stored: %q", stored.OrganizationID)
	}
}

func TestAuthService_Register_AnalystNeedsNoOrganization(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	if err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "lead", Password: "pw", Role: domain.RoleAnalyst,
	}); err != nil {
		t.Fatalf("analyst register failed: %v", err)
	}
	if repo.users["lead"].OrganizationID != "" {
		t.Fatalf("analyst should not carry an organization")
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)
	ctx := context.Background()

	if err := svc.Register(ctx, ports.RegisterInput{Username: "", Password: "pw", Role: domain.RoleUser}); !errors.Is(err, domain.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if err := svc.Register(ctx, ports.RegisterInput{Username: "x", Password: "pw", Role: "Wizard"}); !errors.Is(err, domain.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields for bad role, got %v", err)
	}
	if err := svc.Register(ctx, ports.RegisterInput{Username: "x", Password: "pw", Role: domain.RoleIT}); !errors.Is(err, domain.ErrOrganizationRequired) {
		t.Fatalf("expected ErrOrganizationRequired, got %v", err)
	}
	if err := svc.Register(ctx, ports.RegisterInput{Username: "x", Password: "pw", Role: domain.RoleIT, OrganizationID: "nope"}); !errors.Is(err, domain.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)
	ctx := context.Background()

	in := ports.RegisterInput{Username: "bob", Password: "pw", Role: domain.RoleUser, OrganizationID: testOrgID}
	if err := svc.Register(ctx, in); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if err := svc.Register(ctx, in); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	repo := newStubUserRepo()
	repo.users["bob"] = &domain.User{
		ID:           "507f1f77bcf86cd799439012",
		Username:     "bob",
		PasswordHash: mustHash(t, "old"),
		Role:         domain.RoleUser,
	}
	svc := newAuthService(repo)
	ctx := context.Background()

	if err := svc.ChangePassword(ctx, "bob", "old", "new"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(repo.users["bob"].PasswordHash), []byte("new")); err != nil {
		t.Fatalf("new password not stored: %v", err)
	}

	if err := svc.ChangePassword(ctx, "bob", "wrong", "x"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if err := svc.ChangePassword(ctx, "ghost", "old", "x"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
