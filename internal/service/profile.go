package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Nathan-Omenge/recipe-management-api/internal/apperr"
	"github.com/Nathan-Omenge/recipe-management-api/internal/models"
	"github.com/Nathan-Omenge/recipe-management-api/internal/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileService handles profile operations
type ProfileService struct {
	db *gorm.DB
}

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// GetProfile retrieves a user's profile
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*types.UserProfile, error) {
	user, err := s.user(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	p := types.NewUserProfile(user)
	return &p, nil
}

// UpdateProfile updates the supplied fields of a user's profile
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*types.UserProfile, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	userUpdates := make(map[string]any)
	if req.FirstName != nil {
		userUpdates["first_name"] = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		userUpdates["last_name"] = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" {
			return nil, apperr.InvalidArgument("email may not be blank")
		}
		userUpdates["email"] = email
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := s.user(ctx, tx, userID)
		if err != nil {
			return err
		}
		if len(userUpdates) > 0 {
			if err := tx.Model(&models.User{}).Where("id = ?", user.ID).Omit(clause.Associations).Updates(userUpdates).Error; err != nil {
				return err
			}
		}
		if req.Bio != nil {
			profile := user.Profile
			if profile == nil {
				profile = &models.UserProfile{UserID: user.ID}
			}
			profile.Bio = strings.TrimSpace(*req.Bio)
			if err := tx.Save(profile).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Conflict("email is already registered")
		}
		return nil, err
	}

	return s.GetProfile(ctx, userID)
}

// DeleteAccount removes the user with their profile, recipes and recipe lines
func (s *ProfileService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := tx.Model(&models.Recipe{}).Select("id").Where("user_id = ?", userID)
		if err := tx.Where("recipe_id IN (?)", owned).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return fmt.Errorf("delete recipe lines: %w", err)
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Recipe{}).Error; err != nil {
			return fmt.Errorf("delete recipes: %w", err)
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserProfile{}).Error; err != nil {
			return fmt.Errorf("delete profile: %w", err)
		}
		res := tx.Where("id = ?", userID).Delete(&models.User{})
		if res.Error != nil {
			return fmt.Errorf("delete user: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("user not found")
		}
		return nil
	})
}

func (s *ProfileService) user(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := db.WithContext(ctx).Preload("Profile").First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}
