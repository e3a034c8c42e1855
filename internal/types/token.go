package types

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims represents the claims in a JWT token. RegisteredClaims.ID
// carries the token id used for revocation.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
}

// Principal is the authenticated identity acting on a request.
type Principal struct {
	UserID   uuid.UUID
	Username string
}

// Principal returns the identity carried by the token
func (c *TokenClaims) Principal() *Principal {
	return &Principal{UserID: c.UserID, Username: c.Username}
}
