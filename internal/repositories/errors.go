package repositories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound            = errors.New("record not found")
	ErrUniqueViolation     = errors.New("unique constraint violation")
	ErrForeignKeyViolation = errors.New("foreign key violation")
	// ErrInvalidData is a value the column cannot hold: text longer than the
	// column or a number out of range.
	ErrInvalidData         = errors.New("invalid data for column")
)

// ConstraintError reports which constraint (or column, when PostgreSQL
// names one) rejected a write.
type ConstraintError struct {
	Kind       error
	Constraint string
	Column     string
	Err        error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%v (%s): %v", e.Kind, e.Constraint, e.Err)
}

func (e *ConstraintError) Is(target error) bool {
	return target == e.Kind
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

// translate maps driver errors onto the package sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return &ConstraintError{Kind: ErrUniqueViolation, Constraint: pgErr.ConstraintName, Err: err}
		case "23503":
			return &ConstraintError{Kind: ErrForeignKeyViolation, Constraint: pgErr.ConstraintName, Err: err}
		case "22001", "22003":
			return &ConstraintError{Kind: ErrInvalidData, Column: pgErr.ColumnName, Err: err}
		}
	}
	return err
}

// ViolatedConstraint returns the constraint name when err is a ConstraintError.
func ViolatedConstraint(err error) string {
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return ce.Constraint
	}
	return ""
}

// filterBuilder accumulates WHERE clauses with positional arguments.
// Conditions use %d where the placeholder number goes, e.g. "sr.status = $%d".
type filterBuilder struct {
	clauses []string
	args    []any
}

func (f *filterBuilder) add(cond string, arg any) {
	f.args = append(f.args, arg)
	f.clauses = append(f.clauses, fmt.Sprintf(cond, len(f.args)))
}

func (f *filterBuilder) where() string {
	if len(f.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(f.clauses, " AND ")
}

func nullIfEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
