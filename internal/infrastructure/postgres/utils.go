package postgres

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/stock-ledger/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// checkViolation devuelve el constraint violado si el error es un CHECK (23514).
func checkViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23514" {
		return pgErr.ConstraintName, true
	}
	return "", false
}

// pgCode código SQLSTATE del error, "" si no viene de PostgreSQL.
func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// mapWriteError traduce violaciones de constraints a errores de dominio; nil si no es una de ellas.
func mapWriteError(err error, what string) error {
	if pgCode(err) == "22003" { // numeric_value_out_of_range
		return domain.Invalid("%s: la cantidad excede el máximo representable", what)
	}
	if isUniqueViolation(err) {
		return domain.Conflict("%s: registro duplicado", what)
	}
	if constraint, ok := checkViolation(err); ok {
		if constraint == "stock_levels_quantity_check" {
			return domain.InsufficientStock("%s: la cantidad quedaría negativa", what)
		}
		return domain.Invalid("%s: viola %s", what, constraint)
	}
	return nil
}

// mapConcurrencyError deadlock (40P01) o fallo de serialización (40001) como conflicto reintentable.
func mapConcurrencyError(err error) error {
	switch pgCode(err) {
	case "40P01", "40001":
		return domain.Conflict("operación concurrente sobre el mismo stock, reintente")
	}
	return nil
}

// validID los IDs son UUID; un ID mal formado no puede existir en la BD.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
