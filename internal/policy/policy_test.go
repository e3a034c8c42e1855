package policy

import (
	"errors"
	"testing"

	"github.com/Nathan-Omenge/recipe-management-api/config"
	"github.com/Nathan-Omenge/recipe-management-api/internal/apperr"
	"github.com/Nathan-Omenge/recipe-management-api/internal/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	p, err := New("")
	require.NoError(t, err)
	assert.Equal(t, config.VisibilityOwnerPrivate, p.Mode())

	p, err = New(config.VisibilityPublicRead)
	require.NoError(t, err)
	assert.Equal(t, config.VisibilityPublicRead, p.Mode())

	_, err = New("world-writable")
	assert.Error(t, err)
}

func TestPolicies(t *testing.T) {
	owner := &types.Principal{UserID: uuid.New(), Username: "u1"}
	other := &types.Principal{UserID: uuid.New(), Username: "u2"}

	tests := []struct {
		name      string
		mode      string
		principal *types.Principal
		readErr   error
		writeErr  error
		scoped    bool
		scopeErr  error
	}{
		{"owner-private owner", config.VisibilityOwnerPrivate, owner, nil, nil, true, nil},
		{"owner-private other", config.VisibilityOwnerPrivate, other, apperr.ErrNotFound, apperr.ErrForbidden, true, nil},
		{"owner-private anonymous", config.VisibilityOwnerPrivate, nil, apperr.ErrUnauthorized, apperr.ErrUnauthorized, false, apperr.ErrUnauthorized},
		{"public-read owner", config.VisibilityPublicRead, owner, nil, nil, false, nil},
		{"public-read other", config.VisibilityPublicRead, other, nil, apperr.ErrForbidden, false, nil},
		{"public-read anonymous", config.VisibilityPublicRead, nil, nil, apperr.ErrUnauthorized, false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.mode)
			require.NoError(t, err)

			assertKind(t, tt.readErr, p.CanRead(tt.principal, owner.UserID))
			assertKind(t, tt.writeErr, p.CanWrite(tt.principal, owner.UserID))

			scope, err := p.Scope(tt.principal)
			assertKind(t, tt.scopeErr, err)
			if tt.scoped {
				require.NotNil(t, scope)
				assert.Equal(t, tt.principal.UserID, *scope)
			} else {
				assert.Nil(t, scope)
			}
		})
	}
}

func assertKind(t *testing.T, want, got error) {
	t.Helper()
	if want == nil {
		assert.NoError(t, got)
		return
	}
	assert.True(t, errors.Is(got, want), "expected %v, got %v", want, got)
}
