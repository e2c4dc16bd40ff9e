package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/medicamentos-api/internal/domain"
)

// Códigos SQLSTATE que la carga traduce a errores de dominio.
const (
	sqlstateUndefinedTable  = "42P01"
	sqlstateUndefinedColumn = "42703"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// classifyLoadError envuelve los errores de esquema como errores de dominio:
// tabla inexistente → domain.ErrNotFound, columna faltante → domain.ErrMissingColumn.
func classifyLoadError(table string, err error) error {
	switch pgCode(err) {
	case sqlstateUndefinedTable:
		return fmt.Errorf("tabla %q: %w (%v)", table, domain.ErrNotFound, err)
	case sqlstateUndefinedColumn:
		return fmt.Errorf("tabla %q: %w (%v)", table, domain.ErrMissingColumn, err)
	default:
		return err
	}
}
