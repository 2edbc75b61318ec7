package types

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/tomaspeirotti/gastro-genius-ai/internal/models"
)

// Token types carried in the "type" claim. Access tokens authorize API calls;
// refresh tokens are only accepted by the refresh endpoint.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// TokenClaims is the set of claims embedded in a signed token. The subject is
// the username; user id and role ride along so downstream authorization never
// needs a store lookup to know who is calling.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID    uuid.UUID       `json:"user_id"`
	Role      models.UserRole `json:"role"`
	TokenType string          `json:"type"`
}

// Username returns the token subject.
func (c *TokenClaims) Username() string {
	return c.Subject
}

// IsRefresh reports whether the claims describe a refresh token.
func (c *TokenClaims) IsRefresh() bool {
	return c.TokenType == TokenTypeRefresh
}
