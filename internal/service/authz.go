package service

import (
	"github.com/daniel-got/uas-paw-kelompok-6/internal/models"
	"github.com/google/uuid"
)

// Caller is the authenticated identity behind a request.
type Caller struct {
	ID   uuid.UUID
	Role models.Role
}

// authorize allows the call when the caller has role and, if owner is
// non-nil, is that owner.
func authorize(caller Caller, role models.Role, owner *uuid.UUID) error {
	if caller.Role != role {
		return ErrForbidden
	}
	if owner != nil && *owner != caller.ID {
		return ErrForbidden
	}
	return nil
}
