package types

import (
	"time"

	"github.com/Nathan-Omenge/recipe-management-api/internal/models"
	"github.com/google/uuid"
)

// UserProfile represents a user's profile
type UserProfile struct {
	ID         uuid.UUID `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Bio        string    `json:"bio"`
	DateJoined time.Time `json:"date_joined"`
}

// UpdateProfileRequest represents a request to update a user's profile
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name" validate:"omitempty,max=150"`
	Email     *string `json:"email" validate:"omitempty,email,max=254"`
	Bio       *string `json:"bio"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

// NewUserProfile builds the public view of a user
func NewUserProfile(user *models.User) UserProfile {
	p := UserProfile{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		DateJoined: user.CreatedAt,
	}
	if user.Profile != nil {
		p.Bio = user.Profile.Bio
	}
	return p
}
