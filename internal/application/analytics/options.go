package analytics

import (
	"sort"

	"github.com/jhoicas/medicamentos-api/internal/domain/entity"
	"github.com/jhoicas/medicamentos-api/internal/domain/stock"
)

// Districts distritos distintos no vacíos del snapshot, en orden alfabético pt-BR.
func Districts(records []entity.StockRecord) []string {
	values := make([]string, 0, len(records))
	for _, r := range records {
		values = append(values, r.District)
	}
	return distinctSorted(values)
}

// Units unidades distintas no vacías de la tabla clasificada, en orden alfabético pt-BR.
func Units(rows []entity.UnitStock) []string {
	values := make([]string, 0, len(rows))
	for _, r := range rows {
		values = append(values, r.Unit)
	}
	return distinctSorted(values)
}

// Criticalities niveles presentes en la tabla clasificada, ordenados alfabéticamente
// por etiqueta (Abastecido, Alerta, Crítico) como el selector del tablero.
func Criticalities(rows []entity.UnitStock) []stock.Criticality {
	present := make(map[stock.Criticality]bool, 3)
	for _, r := range rows {
		present[r.Criticality] = true
	}
	out := make([]stock.Criticality, 0, len(present))
	for _, c := range stock.Criticalities() {
		if present[c] {
			out = append(out, c)
		}
	}
	names := newNameOrder()
	sort.SliceStable(out, func(i, j int) bool { return names.compare(out[i].Label(), out[j].Label()) < 0 })
	return out
}

func distinctSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0)
	for _, s := range values {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	newNameOrder().sortNames(out)
	return out
}
