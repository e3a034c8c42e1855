package main

import (
	"context"
	"testing"

	"github.com/Nathan-Omenge/recipe-management-api/internal/models"
	"github.com/Nathan-Omenge/recipe-management-api/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSeedIsIdempotent(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	ctx := context.Background()

	first, err := seed(ctx, db, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, len(defaultCategories), first.Categories)
	assert.Equal(t, len(defaultIngredients), first.Ingredients)

	second, err := seed(ctx, db, zap.NewNop())
	require.NoError(t, err)
	assert.Zero(t, second.Categories)
	assert.Zero(t, second.Ingredients)

	var count int64
	require.NoError(t, db.Model(&models.Ingredient{}).Count(&count).Error)
	assert.Equal(t, int64(len(defaultIngredients)), count)

	var salt models.Ingredient
	require.NoError(t, db.Where("name = ?", "Salt").First(&salt).Error)
	assert.Equal(t, "tsp", salt.DefaultUnit)
}
