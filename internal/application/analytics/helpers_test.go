package analytics_test

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/medicamentos-api/internal/domain/entity"
)

// rec construye un registro con cantidad decimal en notación con punto.
func rec(unit, district, product, qty string) entity.StockRecord {
	return entity.StockRecord{
		Unit:     unit,
		District: district,
		Product:  product,
		Quantity: decimal.RequireFromString(qty),
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// fixture: dos distritos, productos con totales conocidos.
//
//	DS I : Losartana 700, Metformina 400, Enalapril 300, Dipirona 50
//	DS II: Losartana 200, Insulina 0
func fixture() []entity.StockRecord {
	return []entity.StockRecord{
		rec("USF Alto", "DS I", "Losartana", "500"),
		rec("USF Alto", "DS I", "Losartana", "200"),
		rec("USF Alto", "DS I", "Metformina", "400"),
		rec("USF Baixo", "DS I", "Enalapril", "300"),
		rec("USF Baixo", "DS I", "Dipirona", "50"),
		rec("USF Centro", "DS II", "Losartana", "200"),
		rec("USF Centro", "DS II", "Insulina", "0"),
	}
}
