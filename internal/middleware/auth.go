package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Nathan-Omenge/recipe-management-api/internal/apperr"
	"github.com/Nathan-Omenge/recipe-management-api/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ContextUserID holds the authenticated user's uuid.UUID
	ContextUserID = "user_id"
	// ContextClaims holds the validated *types.TokenClaims
	ContextClaims = "claims"
)

// TokenValidator is an interface for validating JWT tokens
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*types.TokenClaims, error)
}

// AuthMiddleware creates a middleware that rejects requests without a valid
// bearer token
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}
		if !authenticate(c, validator, authHeader) {
			return
		}
		c.Next()
	}
}

// OptionalAuth authenticates the request when a token is supplied and lets
// anonymous requests through. A malformed or invalid token is still rejected.
func OptionalAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && !authenticate(c, validator, authHeader) {
			return
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, validator TokenValidator, authHeader string) bool {
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
		return false
	}

	claims, err := validator.ValidateToken(c.Request.Context(), parts[1])
	if err != nil {
		msg := "invalid or expired token"
		if errors.Is(err, apperr.ErrUnauthorized) {
			msg = apperr.Message(err)
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
		return false
	}

	// Store user info in context
	c.Set(ContextUserID, claims.UserID)
	c.Set("username", claims.Username)
	c.Set(ContextClaims, claims)
	return true
}

// Claims returns the validated token claims, or nil for anonymous requests
func Claims(c *gin.Context) *types.TokenClaims {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*types.TokenClaims)
	return claims
}

// Principal returns the caller's identity, or nil for anonymous requests
func Principal(c *gin.Context) *types.Principal {
	claims := Claims(c)
	if claims == nil {
		return nil
	}
	return claims.Principal()
}

// UserID returns the authenticated user's id
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
