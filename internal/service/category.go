package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Nathan-Omenge/recipe-management-api/internal/apperr"
	"github.com/Nathan-Omenge/recipe-management-api/internal/models"
	"github.com/Nathan-Omenge/recipe-management-api/internal/types"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	categoryCacheKeyPrefix = "category:"
	allCategoriesCacheKey  = "categories:all"
	categoryCacheTTL       = 30 * time.Minute
)

// CategoryService manages category reference data. Reads go through Redis
// when a client is configured; writes invalidate the cached entries.
type CategoryService struct {
	db     *gorm.DB
	cache  *redis.Client
	logger *zap.Logger
}

// NewCategoryService creates a CategoryService. cache may be nil.
func NewCategoryService(db *gorm.DB, cache *redis.Client, logger *zap.Logger) *CategoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CategoryService{db: db, cache: cache, logger: logger}
}

func categoryCacheKey(id uuid.UUID) string {
	return categoryCacheKeyPrefix + id.String()
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if s.getCached(ctx, allCategoriesCacheKey, &categories) {
		return categories, nil
	}

	if err := s.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	s.setCached(ctx, allCategoriesCacheKey, categories)
	return categories, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	key := categoryCacheKey(id)
	if s.getCached(ctx, key, &category) {
		return &category, nil
	}

	if err := s.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "category")
	}
	s.setCached(ctx, key, category)
	return &category, nil
}

func (s *CategoryService) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := s.GetCategory(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, req *types.CreateCategoryRequest) (*models.Category, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	category := models.Category{Name: req.Name, Description: strings.TrimSpace(req.Description)}
	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Conflict("category %q already exists", req.Name)
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	s.invalidate(ctx, allCategoriesCacheKey)
	return &category, nil
}

// DeleteCategory removes the category and clears it from every recipe that
// referenced it. Recipes themselves are kept.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Recipe{}).
			Where("category_id = ?", id).
			UpdateColumn("category_id", nil).Error
		if err != nil {
			return fmt.Errorf("clear recipe categories: %w", err)
		}
		res := tx.Where("id = ?", id).Delete(&models.Category{})
		if res.Error != nil {
			return fmt.Errorf("delete category: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("category not found")
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx, allCategoriesCacheKey, categoryCacheKey(id))
	return nil
}

// getCached decodes key into dst. Any cache failure is a miss.
func (s *CategoryService) getCached(ctx context.Context, key string, dst any) bool {
	if s.cache == nil {
		return false
	}
	data, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("category cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		s.logger.Warn("category cache entry unreadable", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *CategoryService) setCached(ctx context.Context, key string, v any) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, categoryCacheTTL).Err(); err != nil {
		s.logger.Warn("category cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *CategoryService) invalidate(ctx context.Context, keys ...string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, keys...).Err(); err != nil {
		s.logger.Warn("category cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
