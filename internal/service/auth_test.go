package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Nathan-Omenge/recipe-management-api/internal/apperr"
	"github.com/Nathan-Omenge/recipe-management-api/internal/service"
	"github.com/Nathan-Omenge/recipe-management-api/internal/testhelpers"
	"github.com/Nathan-Omenge/recipe-management-api/internal/types"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func setupAuthTest(t *testing.T) (*service.AuthService, func()) {
	db := testhelpers.SetupTestDatabase(t)
	client, mr := testhelpers.SetupRedis(t)
	return service.NewAuthService(db, testSecret, time.Hour, client, nil), mr.Close
}

func registerRequest(username string) *types.RegisterRequest {
	return &types.RegisterRequest{
		Username:  username,
		Email:     username + "@example.com",
		Password:  "password123",
		FirstName: "Test",
	}
}

func TestRegister(t *testing.T) {
	authSvc, _ := setupAuthTest(t)
	ctx := context.Background()

	resp, err := authSvc.Register(ctx, registerRequest("alice"))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice", resp.User.Username)
	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.Equal(t, "Test", resp.User.FirstName)
	assert.NotEqual(t, uuid.Nil, resp.User.ID)

	claims, err := authSvc.ValidateToken(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.NotEmpty(t, claims.ID)
}

func TestRegisterDuplicate(t *testing.T) {
	authSvc, _ := setupAuthTest(t)
	ctx := context.Background()

	_, err := authSvc.Register(ctx, registerRequest("alice"))
	require.NoError(t, err)

	_, err = authSvc.Register(ctx, registerRequest("alice"))
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	sameEmail := registerRequest("bob")
	sameEmail.Email = "ALICE@example.com"
	_, err = authSvc.Register(ctx, sameEmail)
	assert.True(t, errors.Is(err, apperr.ErrConflict))
}

func TestRegisterValidation(t *testing.T) {
	authSvc, _ := setupAuthTest(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(r *types.RegisterRequest)
	}{
		{"short username", func(r *types.RegisterRequest) { r.Username = "ab" }},
		{"bad email", func(r *types.RegisterRequest) { r.Email = "not-an-email" }},
		{"short password", func(r *types.RegisterRequest) { r.Password = "short" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := registerRequest("carol")
			tt.mutate(req)
			_, err := authSvc.Register(ctx, req)
			assert.True(t, errors.Is(err, apperr.ErrInvalidArgument), "got %v", err)
		})
	}
}

func TestLogin(t *testing.T) {
	authSvc, _ := setupAuthTest(t)
	ctx := context.Background()

	_, err := authSvc.Register(ctx, registerRequest("alice"))
	require.NoError(t, err)

	resp, err := authSvc.Login(ctx, &types.LoginRequest{Username: "alice", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice", resp.User.Username)
}

func TestLoginInvalidCredentials(t *testing.T) {
	authSvc, _ := setupAuthTest(t)
	ctx := context.Background()

	_, err := authSvc.Register(ctx, registerRequest("alice"))
	require.NoError(t, err)

	_, err = authSvc.Login(ctx, &types.LoginRequest{Username: "alice", Password: "wrong-password"})
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	_, err = authSvc.Login(ctx, &types.LoginRequest{Username: "nobody", Password: "password123"})
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	_, err = authSvc.Login(ctx, &types.LoginRequest{Username: "alice"})
	assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))
}

func TestLogoutRevokesToken(t *testing.T) {
	authSvc, _ := setupAuthTest(t)
	ctx := context.Background()

	resp, err := authSvc.Register(ctx, registerRequest("alice"))
	require.NoError(t, err)
	claims, err := authSvc.ValidateToken(ctx, resp.Token)
	require.NoError(t, err)

	authSvc.Logout(ctx, claims)

	_, err = authSvc.ValidateToken(ctx, resp.Token)
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	// a fresh login is unaffected
	again, err := authSvc.Login(ctx, &types.LoginRequest{Username: "alice", Password: "password123"})
	require.NoError(t, err)
	_, err = authSvc.ValidateToken(ctx, again.Token)
	assert.NoError(t, err)
}

func TestValidateTokenFailsOpenWithoutRedis(t *testing.T) {
	authSvc, stopRedis := setupAuthTest(t)
	ctx := context.Background()

	resp, err := authSvc.Register(ctx, registerRequest("alice"))
	require.NoError(t, err)

	stopRedis()

	claims, err := authSvc.ValidateToken(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)

	// logout still returns when the revocation store is down
	authSvc.Logout(ctx, claims)
}

func TestValidateTokenInvalid(t *testing.T) {
	authSvc, _ := setupAuthTest(t)
	ctx := context.Background()

	_, err := authSvc.ValidateToken(ctx, "invalid-token")
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	other := service.NewAuthService(nil, "other-secret", time.Hour, nil, nil)
	foreign, err := other.GenerateToken(testUser())
	require.NoError(t, err)
	_, err = authSvc.ValidateToken(ctx, foreign)
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))
}

func TestValidateTokenExpired(t *testing.T) {
	authSvc, _ := setupAuthTest(t)
	user := testUser()

	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
		UserID:   user.ID,
		Username: user.Username,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = authSvc.ValidateToken(context.Background(), token)
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))
}

func TestValidateTokenRejectsOtherAlgorithms(t *testing.T) {
	authSvc, _ := setupAuthTest(t)
	user := testUser()

	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID:   user.ID,
		Username: user.Username,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = authSvc.ValidateToken(context.Background(), token)
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))
}
