package entity

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/medicamentos-api/internal/domain/stock"
)

// UnitStock es el estoque total de un producto en una unidad (suma de todas sus filas),
// clasificado por criticidad y con el distrito adjuntado vía la tabla unidad→distrito.
// HasDistrict es false cuando la unidad no aparece en la tabla (left join sin match).
type UnitStock struct {
	Unit        string
	Product     string
	Quantity    decimal.Decimal
	Criticality stock.Criticality
	District    string
	HasDistrict bool
}
