package services

import (
	"errors"

	"hvac-backend/internal/repositories"
)

var errRecordNotFound = repositories.ErrNotFound

func uniqueViolation(constraint string) error {
	return &repositories.ConstraintError{
		Kind:       repositories.ErrUniqueViolation,
		Constraint: constraint,
		Err:        errors.New("duplicate key value violates unique constraint"),
	}
}

func foreignKeyViolation(constraint string) error {
	return &repositories.ConstraintError{
		Kind:       repositories.ErrForeignKeyViolation,
		Constraint: constraint,
		Err:        errors.New("insert or update violates foreign key constraint"),
	}
}

func invalidDataError(column string) error {
	return &repositories.ConstraintError{
		Kind:   repositories.ErrInvalidData,
		Column: column,
		Err:    errors.New("value too long for type character varying(255)"),
	}
}

func intPtr(v int) *int {
	return &v
}

func strPtr(s string) *string {
	return &s
}
