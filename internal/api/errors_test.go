package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Nathan-Omenge/recipe-management-api/internal/apperr"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperr.InvalidArgument("bad"), http.StatusBadRequest},
		{apperr.Unauthorized("who"), http.StatusUnauthorized},
		{apperr.Forbidden("no"), http.StatusForbidden},
		{apperr.NotFound("gone"), http.StatusNotFound},
		{apperr.Conflict("dup"), http.StatusConflict},
		{fmt.Errorf("create recipe: %w", apperr.Conflict("dup")), http.StatusConflict},
		{errors.New("database is on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

func TestRespondErrorHidesInternalErrors(t *testing.T) {
	router := newTestRouter()
	var recorded []*gin.Error
	router.GET("/", func(c *gin.Context) {
		respondError(c, errors.New("pq: connection refused"))
		recorded = c.Errors
	})

	w := performRequest(router, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
	assert.Len(t, recorded, 1)
}

func TestRespondErrorUsesMessage(t *testing.T) {
	router := newTestRouter()
	router.GET("/", func(c *gin.Context) {
		respondError(c, apperr.Conflict("you already have a recipe named %q", "Soup"))
	})

	w := performRequest(router, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"you already have a recipe named \"Soup\""}`, w.Body.String())
}
