// Package policy decides whether a principal may read or mutate a recipe.
// One mode is configured per deployment and applied to every operation.
package policy

import (
	"fmt"

	"github.com/Nathan-Omenge/recipe-management-api/config"
	"github.com/Nathan-Omenge/recipe-management-api/internal/apperr"
	"github.com/Nathan-Omenge/recipe-management-api/internal/types"
	"github.com/google/uuid"
)

// Policy is a stateless access decision function
type Policy interface {
	Mode() string
	// CanRead returns nil when principal may see a recipe owned by owner.
	CanRead(principal *types.Principal, owner uuid.UUID) error
	// CanWrite returns nil when principal may mutate a recipe owned by owner.
	CanWrite(principal *types.Principal, owner uuid.UUID) error
	// Scope returns the owner that list results must be restricted to, or
	// nil when every recipe is visible.
	Scope(principal *types.Principal) (*uuid.UUID, error)
}

// New returns the policy for the given visibility mode
func New(mode string) (Policy, error) {
	switch mode {
	case config.VisibilityOwnerPrivate, "":
		return ownerPrivate{}, nil
	case config.VisibilityPublicRead:
		return publicRead{}, nil
	default:
		return nil, fmt.Errorf("unknown recipe visibility mode %q", mode)
	}
}

func canWrite(principal *types.Principal, owner uuid.UUID) error {
	if principal == nil {
		return apperr.Unauthorized("authentication required")
	}
	if principal.UserID != owner {
		return apperr.Forbidden("only the owner can modify this recipe")
	}
	return nil
}

type ownerPrivate struct{}

func (ownerPrivate) Mode() string { return config.VisibilityOwnerPrivate }

// Non-owners get NotFound so the existence of other users' recipes is not revealed.
func (ownerPrivate) CanRead(principal *types.Principal, owner uuid.UUID) error {
	if principal == nil {
		return apperr.Unauthorized("authentication required")
	}
	if principal.UserID != owner {
		return apperr.NotFound("recipe not found")
	}
	return nil
}

func (ownerPrivate) CanWrite(principal *types.Principal, owner uuid.UUID) error {
	return canWrite(principal, owner)
}

func (ownerPrivate) Scope(principal *types.Principal) (*uuid.UUID, error) {
	if principal == nil {
		return nil, apperr.Unauthorized("authentication required")
	}
	id := principal.UserID
	return &id, nil
}

type publicRead struct{}

func (publicRead) Mode() string { return config.VisibilityPublicRead }

func (publicRead) CanRead(*types.Principal, uuid.UUID) error { return nil }

func (publicRead) CanWrite(principal *types.Principal, owner uuid.UUID) error {
	return canWrite(principal, owner)
}

func (publicRead) Scope(*types.Principal) (*uuid.UUID, error) { return nil, nil }
