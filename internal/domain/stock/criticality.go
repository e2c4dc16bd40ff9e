// Package stock contiene las reglas de dominio del estoque de medicamentos:
// normalización de cantidades y clasificación por criticidad.
package stock

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/medicamentos-api/internal/domain"
)

// AlertThreshold cantidad máxima (inclusive) considerada en alerta.
const AlertThreshold = 150

var alertThreshold = decimal.NewFromInt(AlertThreshold)

// Criticality nivel de criticidad del estoque de un producto en una unidad.
// El orden de declaración es el orden de presentación.
type Criticality int

const (
	Critical Criticality = iota + 1 // estoque cero
	Alert                           // 0 < q <= 150
	Stocked                         // q > 150
)

// AllFilter valor centinela de los selectores: sin restricción.
const AllFilter = "all"

// Criticalities devuelve los tres niveles en orden de presentación.
func Criticalities() []Criticality {
	return []Criticality{Critical, Alert, Stocked}
}

// Categorize clasifica una cantidad total (ya sumada por unidad+producto).
// Función total: toda cantidad no negativa cae en exactamente un nivel.
func Categorize(quantity decimal.Decimal) Criticality {
	switch {
	case quantity.IsZero():
		return Critical
	case quantity.LessThanOrEqual(alertThreshold):
		return Alert
	default:
		return Stocked
	}
}

// Code código estable usado en parámetros de consulta y JSON.
func (c Criticality) Code() string {
	switch c {
	case Critical:
		return "critical"
	case Alert:
		return "alert"
	case Stocked:
		return "stocked"
	default:
		return ""
	}
}

// Label etiqueta de presentación (pt-BR), la misma que muestra el tablero.
func (c Criticality) Label() string {
	switch c {
	case Critical:
		return "Crítico"
	case Alert:
		return "Alerta"
	case Stocked:
		return "Abastecido"
	default:
		return ""
	}
}

func (c Criticality) String() string { return c.Label() }

// IsAll indica si el valor de un selector es el centinela "todos".
func IsAll(s string) bool {
	s = strings.TrimSpace(strings.ToLower(s))
	return s == "" || s == AllFilter || s == "todos"
}

// ParseCriticality acepta código o etiqueta sin distinguir mayúsculas.
// Devuelve (0, nil) para el centinela "todos".
func ParseCriticality(s string) (Criticality, error) {
	if IsAll(s) {
		return 0, nil
	}
	needle := strings.TrimSpace(s)
	for _, c := range Criticalities() {
		if strings.EqualFold(needle, c.Code()) || strings.EqualFold(needle, c.Label()) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("criticidad %q: %w", s, domain.ErrInvalidInput)
}
