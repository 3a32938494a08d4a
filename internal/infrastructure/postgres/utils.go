package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/relief-inventory-api/internal/domain"
)

// Códigos SQLSTATE que el adaptador traduce a errores de dominio.
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeInvalidTextRepr      = "22P02"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	if code := pgCode(err); code != "" {
		return code == codeUniqueViolation
	}
	return strings.Contains(err.Error(), codeUniqueViolation)
}

// isForeignKeyViolation verifica si un error es una violación de FK (23503).
func isForeignKeyViolation(err error) bool {
	return pgCode(err) == codeForeignKeyViolation
}

// isConcurrencyConflict deadlock (40P01) o fallo de serialización (40001).
func isConcurrencyConflict(err error) bool {
	code := pgCode(err)
	return code == codeDeadlockDetected || code == codeSerializationFailure
}

// translate convierte errores de PostgreSQL a errores de dominio; op describe la operación.
func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrDuplicate)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%s: %w: referencia inexistente", op, domain.ErrNotFound)
	case isConcurrencyConflict(err):
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	case pgCode(err) == codeInvalidTextRepr:
		return fmt.Errorf("%s: %w: identificador con formato inválido", op, domain.ErrInvalidInput)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// nullString convierte "" en NULL.
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func fromNull(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
