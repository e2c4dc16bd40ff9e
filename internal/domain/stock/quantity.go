package stock

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/medicamentos-api/internal/domain"
)

// ParseError error de normalización de una celda de cantidad.
// Line es 1-based e incluye la cabecera (0 cuando el origen no tiene líneas, ej. PostgreSQL).
type ParseError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("línea %d, columna %s: %q: %v", e.Line, e.Column, e.Value, e.Err)
	}
	return fmt.Sprintf("columna %s: %q: %v", e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseQuantity normaliza una cantidad en formato pt-BR: toda coma se reemplaza por
// punto y el resultado se interpreta como decimal. "1.234,5" no es válido (dos puntos).
func ParseQuantity(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if s == "" {
		return decimal.Zero, domain.ErrParse
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	return CheckQuantity(d)
}

// CheckQuantity valida una cantidad ya numérica (ej. NUMERIC leído de PostgreSQL).
func CheckQuantity(d decimal.Decimal) (decimal.Decimal, error) {
	if d.IsNegative() {
		return decimal.Zero, domain.ErrNegativeQuantity
	}
	return d, nil
}
