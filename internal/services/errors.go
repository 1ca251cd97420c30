package services

import (
	"errors"
	"fmt"
	"strings"

	"hvac-backend/internal/repositories"
)

var (
	ErrMissingField       = errors.New("missing required field")
	ErrInvalidValue       = errors.New("invalid value")
	ErrInvalidNumber      = errors.New("invalid number")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotFound           = errors.New("not found")
	ErrUnsupportedType    = errors.New("unsupported file type")
	ErrTooLarge           = errors.New("file too large")
	ErrDuplicateNumber    = errors.New("document number already used")
	ErrImageProcessing    = errors.New("image could not be processed")
)

// FieldError attaches the offending field and a user-facing message to one
// of the sentinels above. errors.Is matches the sentinel.
type FieldError struct {
	Kind    error
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

func (e *FieldError) Unwrap() error {
	return e.Kind
}

func missingFields(fields ...string) error {
	return &FieldError{
		Kind:    ErrMissingField,
		Field:   strings.Join(fields, ","),
		Message: "Campos obrigatórios não preenchidos: " + strings.Join(fields, ", "),
	}
}

func invalidValue(field, value string) error {
	return &FieldError{
		Kind:    ErrInvalidValue,
		Field:   field,
		Message: fmt.Sprintf("Valor inválido para %s: %q", field, value),
	}
}

func invalidNumber(field, value string) error {
	return &FieldError{
		Kind:    ErrInvalidNumber,
		Field:   field,
		Message: fmt.Sprintf("Valor numérico inválido para %s: %q", field, value),
	}
}

func invalidReference(field string) error {
	return &FieldError{
		Kind:    ErrInvalidValue,
		Field:   field,
		Message: fmt.Sprintf("Registro referenciado em %s não existe", field),
	}
}

// referenceError turns a foreign key violation into an InvalidValue naming
// the request field behind the constraint. Other errors pass through.
func referenceError(err error, fields map[string]string) error {
	err = invalidData(err)
	if !errors.Is(err, repositories.ErrForeignKeyViolation) {
		return err
	}
	if field, ok := fields[repositories.ViolatedConstraint(err)]; ok {
		return invalidReference(field)
	}
	return invalidReference("referência")
}

// invalidData turns a value the database column cannot hold into an
// InvalidValue. Other errors pass through.
func invalidData(err error) error {
	var ce *repositories.ConstraintError
	if !errors.As(err, &ce) || ce.Kind != repositories.ErrInvalidData {
		return err
	}
	field := ce.Column
	if field == "" {
		field = "dados"
	}
	return &FieldError{
		Kind:    ErrInvalidValue,
		Field:   field,
		Message: "Valor excede o tamanho ou o limite permitido",
	}
}

// notFound maps the repository sentinel onto the service one.
func notFound(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
