package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Nathan-Omenge/recipe-management-api/internal/apperr"
	"github.com/Nathan-Omenge/recipe-management-api/internal/models"
	"github.com/Nathan-Omenge/recipe-management-api/internal/service"
	"github.com/Nathan-Omenge/recipe-management-api/internal/testhelpers"
	"github.com/Nathan-Omenge/recipe-management-api/internal/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *models.User {
	return &models.User{ID: uuid.New(), Username: "testuser"}
}

func strPtr(s string) *string { return &s }

func TestGetProfile(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	profiles := service.NewProfileService(db)
	user := testhelpers.CreateUser(t, db, "alice")

	profile, err := profiles.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, profile.ID)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, "alice@example.com", profile.Email)

	_, err = profiles.GetProfile(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestUpdateProfile(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	profiles := service.NewProfileService(db)
	user := testhelpers.CreateUser(t, db, "alice")
	ctx := context.Background()

	updated, err := profiles.UpdateProfile(ctx, user.ID, &types.UpdateProfileRequest{
		FirstName: strPtr("Alice"),
		Bio:       strPtr("  Bakes on weekends "),
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice", updated.FirstName)
	assert.Equal(t, "Bakes on weekends", updated.Bio)
	assert.Equal(t, "alice@example.com", updated.Email)

	updated, err = profiles.UpdateProfile(ctx, user.ID, &types.UpdateProfileRequest{
		Email: strPtr("Alice@Example.org"),
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.org", updated.Email)
	assert.Equal(t, "Alice", updated.FirstName)
	assert.Equal(t, "Bakes on weekends", updated.Bio)
}

func TestUpdateProfileCreatesMissingProfile(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	profiles := service.NewProfileService(db)
	user := testhelpers.CreateUser(t, db, "alice")
	require.NoError(t, db.Where("user_id = ?", user.ID).Delete(&models.UserProfile{}).Error)

	updated, err := profiles.UpdateProfile(context.Background(), user.ID, &types.UpdateProfileRequest{
		Bio: strPtr("hello"),
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", updated.Bio)
}

func TestUpdateProfileErrors(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	profiles := service.NewProfileService(db)
	alice := testhelpers.CreateUser(t, db, "alice")
	testhelpers.CreateUser(t, db, "bob")
	ctx := context.Background()

	_, err := profiles.UpdateProfile(ctx, alice.ID, &types.UpdateProfileRequest{Email: strPtr("bob@example.com")})
	assert.True(t, errors.Is(err, apperr.ErrConflict), "got %v", err)

	_, err = profiles.UpdateProfile(ctx, alice.ID, &types.UpdateProfileRequest{Email: strPtr("nope")})
	assert.True(t, errors.Is(err, apperr.ErrInvalidArgument), "got %v", err)

	_, err = profiles.UpdateProfile(ctx, uuid.New(), &types.UpdateProfileRequest{Bio: strPtr("x")})
	assert.True(t, errors.Is(err, apperr.ErrNotFound), "got %v", err)
}
