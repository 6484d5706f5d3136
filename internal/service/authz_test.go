package service

import (
	"fmt"
	"testing"

	"github.com/daniel-got/uas-paw-kelompok-6/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestAuthorize(t *testing.T) {
	me := Caller{ID: uuid.New(), Role: models.RoleAgent}
	other := uuid.New()

	assert.NoError(t, authorize(me, models.RoleAgent, nil))
	assert.NoError(t, authorize(me, models.RoleAgent, &me.ID))
	assert.ErrorIs(t, authorize(me, models.RoleTourist, nil), ErrForbidden)
	assert.ErrorIs(t, authorize(me, models.RoleAgent, &other), ErrForbidden)
	assert.ErrorIs(t, authorize(Caller{}, models.RoleAgent, nil), ErrForbidden)
}

func TestStoreError(t *testing.T) {
	assert.ErrorIs(t, storeError("op", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), ErrPackageExists), ErrPackageExists)
	assert.ErrorIs(t, storeError("op", gorm.ErrForeignKeyViolated, ErrPackageExists), ErrInvalidReference)

	err := storeError("create booking", assert.AnError, ErrConflict)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NotErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "create booking")
}
