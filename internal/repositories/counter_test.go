package repositories

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDocumentNumber(t *testing.T) {
	assert.Equal(t, "PMOC-000001", FormatDocumentNumber(PMOCPrefix, 1))
	assert.Equal(t, "PMOC-000002", FormatDocumentNumber(PMOCPrefix, 2))
	assert.Equal(t, "REC-000123", FormatDocumentNumber(ReceiptPrefix, 123))
	assert.Equal(t, "REC-1234567", FormatDocumentNumber(ReceiptPrefix, 1234567))
}

func TestTranslate(t *testing.T) {
	assert.Nil(t, translate(nil))
	assert.ErrorIs(t, translate(pgx.ErrNoRows), ErrNotFound)

	unique := translate(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
	assert.ErrorIs(t, unique, ErrUniqueViolation)
	assert.NotErrorIs(t, unique, ErrForeignKeyViolation)
	assert.Equal(t, "users_email_key", ViolatedConstraint(unique))

	fk := translate(&pgconn.PgError{Code: "23503", ConstraintName: "equipment_client_id_fkey"})
	assert.ErrorIs(t, fk, ErrForeignKeyViolation)

	tooLong := translate(&pgconn.PgError{Code: "22001", Message: "value too long for type character varying(255)"})
	assert.ErrorIs(t, tooLong, ErrInvalidData)
	assert.NotErrorIs(t, tooLong, ErrUniqueViolation)

	overflow := translate(&pgconn.PgError{Code: "22003", ColumnName: "amount"})
	assert.ErrorIs(t, overflow, ErrInvalidData)
	var ce *ConstraintError
	require.ErrorAs(t, overflow, &ce)
	assert.Equal(t, "amount", ce.Column)

	other := errors.New("connection reset")
	assert.Equal(t, other, translate(other))
	assert.Equal(t, "", ViolatedConstraint(other))
}

func TestFilterBuilder(t *testing.T) {
	var f filterBuilder
	assert.Equal(t, "", f.where())

	f.add("sr.status = $%d", "pending")
	f.add("sr.client_id = $%d", 7)
	assert.Equal(t, " WHERE sr.status = $1 AND sr.client_id = $2", f.where())
	assert.Equal(t, []any{"pending", 7}, f.args)
}
