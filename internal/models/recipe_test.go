package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecipeTotalTime(t *testing.T) {
	tests := []struct {
		prep, cook, want int
	}{
		{0, 0, 0},
		{10, 20, 30},
		{0, 45, 45},
		{90, 0, 90},
	}
	for _, tt := range tests {
		r := Recipe{PrepTime: tt.prep, CookTime: tt.cook}
		assert.Equal(t, tt.want, r.TotalTime())
	}
}

func TestDifficultyValid(t *testing.T) {
	assert.True(t, DifficultyEasy.Valid())
	assert.True(t, DifficultyMedium.Valid())
	assert.True(t, DifficultyHard.Valid())
	assert.False(t, Difficulty("").Valid())
	assert.False(t, Difficulty("Easy").Valid())
	assert.False(t, Difficulty("expert").Valid())
}
