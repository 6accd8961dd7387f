// Package token issues and verifies the signed identity assertions used by
// the API. Tokens are HS256 JWTs carrying role and organization claims with a
// fixed expiry window.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is how long an issued token stays valid.
const DefaultTTL = 86400 * time.Second

var (
	// ErrMissing means no token was supplied at all.
	ErrMissing = errors.New("token is missing")
	// ErrExpired means the token was valid but its expiry has passed.
	ErrExpired = errors.New("token has expired")
	// ErrInvalid covers malformed, tampered, or wrongly signed tokens.
	ErrInvalid = errors.New("invalid token")
)

// Claims is the identity payload embedded in every token. JSON keys mirror
// the wire format consumed by the frontend.
type Claims struct {
	UserID         string `json:"id"`
	Username       string `json:"username"`
	Role           string `json:"role"`
	OrganizationID string `json:"organizationId,omitempty"`
	CanCreateUsers bool   `json:"can_create_users,omitempty"`
	jwt.RegisteredClaims
}

// Issuer creates and validates tokens with a shared secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// Issue signs claims with an expiry ttl from now. The input is copied; the
// caller's claims are not mutated.
func (i *Issuer) Issue(claims Claims) (string, error) {
	now := time.Now().UTC()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(i.ttl))

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

// Verify parses and validates raw, returning the embedded claims.
// Expired and malformed tokens surface as distinct errors.
func (i *Issuer) Verify(raw string) (*Claims, error) {
	if raw == "" {
		return nil, ErrMissing
	}

	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}
	if !tkn.Valid {
		return nil, ErrInvalid
	}
	return claims, nil
}
