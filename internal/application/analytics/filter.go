package analytics

import (
	"sort"

	"github.com/jhoicas/medicamentos-api/internal/domain/entity"
	"github.com/jhoicas/medicamentos-api/internal/domain/stock"
)

// DistrictConflict unidad asociada a más de un distrito en el snapshot.
// Districts está en orden de primera aparición; el join usa Districts[0].
type DistrictConflict struct {
	Unit      string
	Districts []string
}

// StockFilter filtros opcionales de la tabla de criticidad. Los campos vacíos (o
// Criticality == 0) no restringen; los activos se combinan con AND.
type StockFilter struct {
	District    string
	Unit        string
	Criticality stock.Criticality
}

// FilterByDistrict devuelve las filas cuyo distrito coincide exactamente.
// Siempre devuelve un slice nuevo; records no se modifica.
func FilterByDistrict(records []entity.StockRecord, district string) []entity.StockRecord {
	out := make([]entity.StockRecord, 0)
	for _, r := range records {
		if r.District == district {
			out = append(out, r)
		}
	}
	return out
}

// UnitDistrictLookup proyección deduplicada unidad→distrito con semántica de primera
// aparición. Las unidades con más de un distrito se devuelven como conflictos,
// ordenados por unidad. Filas con unidad o distrito vacío no participan.
func UnitDistrictLookup(records []entity.StockRecord) (map[string]string, []DistrictConflict) {
	lookup := make(map[string]string)
	seen := make(map[string][]string)
	for _, r := range records {
		if r.Unit == "" || r.District == "" {
			continue
		}
		if _, ok := lookup[r.Unit]; !ok {
			lookup[r.Unit] = r.District
		}
		if !contains(seen[r.Unit], r.District) {
			seen[r.Unit] = append(seen[r.Unit], r.District)
		}
	}

	var conflicts []DistrictConflict
	for unit, districts := range seen {
		if len(districts) > 1 {
			conflicts = append(conflicts, DistrictConflict{Unit: unit, Districts: districts})
		}
	}
	names := newNameOrder()
	sort.Slice(conflicts, func(i, j int) bool {
		return names.compare(conflicts[i].Unit, conflicts[j].Unit) < 0
	})
	return lookup, conflicts
}

// ClassifyUnits suma por (unidad, producto), clasifica cada total y adjunta el distrito
// con un left join: toda fila clasificada se conserva aunque la unidad no tenga distrito.
func ClassifyUnits(records []entity.StockRecord) ([]entity.UnitStock, []DistrictConflict) {
	lookup, conflicts := UnitDistrictLookup(records)
	totals := UnitStocks(records)

	rows := make([]entity.UnitStock, 0, len(totals))
	for _, t := range totals {
		district, ok := lookup[t.Unit]
		rows = append(rows, entity.UnitStock{
			Unit:        t.Unit,
			Product:     t.Product,
			Quantity:    t.Quantity,
			Criticality: stock.Categorize(t.Quantity),
			District:    district,
			HasDistrict: ok,
		})
	}
	return rows, conflicts
}

// ApplyStockFilter selecciona las filas que cumplen todos los filtros activos.
// Un resultado vacío no es un error.
func ApplyStockFilter(rows []entity.UnitStock, f StockFilter) []entity.UnitStock {
	out := make([]entity.UnitStock, 0, len(rows))
	for _, r := range rows {
		if f.District != "" && (!r.HasDistrict || r.District != f.District) {
			continue
		}
		if f.Unit != "" && r.Unit != f.Unit {
			continue
		}
		if f.Criticality != 0 && r.Criticality != f.Criticality {
			continue
		}
		out = append(out, r)
	}
	return out
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
