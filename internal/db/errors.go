package db

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrConstraint = errors.New("constraint violation")
)

var constraintMarkers = []string{
	"constraint failed",
	"unique constraint",
	"foreign key constraint",
	"not null constraint",
	"check constraint",
}

// translateError maps driver and gorm failures onto the package sentinels.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConstraint) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	if IsConstraintError(err) {
		return fmt.Errorf("%w: %w", ErrConstraint, err)
	}
	return err
}

func IsConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrConstraint) || errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	message := strings.ToLower(err.Error())
	for _, marker := range constraintMarkers {
		if strings.Contains(message, marker) {
			return true
		}
	}
	return false
}
