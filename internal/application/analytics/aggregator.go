package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/medicamentos-api/internal/domain/entity"
	"github.com/jhoicas/medicamentos-api/internal/domain/stock"
)

// Tamaños por defecto de los rankings del tablero.
const (
	DefaultTopN           = 10
	DefaultTopPerDistrict = 3
)

// ProductTotal cantidad sumada de un producto.
type ProductTotal struct {
	Product  string
	Quantity decimal.Decimal
}

// DistrictProductTotal cantidad sumada de un producto dentro de un distrito.
type DistrictProductTotal struct {
	District string
	Product  string
	Quantity decimal.Decimal
}

// UnitProductTotal cantidad sumada de un producto en una unidad (entrada del clasificador).
type UnitProductTotal struct {
	Unit     string
	Product  string
	Quantity decimal.Decimal
}

// CriticalityCount número de pares (unidad, producto) de un distrito en un nivel.
type CriticalityCount struct {
	District    string
	Criticality stock.Criticality
	Count       int
}

type pairKey struct{ a, b string }

// sumPairs agrupa por la clave devuelta por key y suma. Filas cuya clave no es válida
// (algún valor de agrupación vacío) se excluyen. Conserva el orden de primera aparición.
func sumPairs(records []entity.StockRecord, key func(entity.StockRecord) (pairKey, bool)) ([]pairKey, map[pairKey]decimal.Decimal) {
	sums := make(map[pairKey]decimal.Decimal)
	var order []pairKey
	for _, r := range records {
		k, ok := key(r)
		if !ok {
			continue
		}
		cur, seen := sums[k]
		if !seen {
			order = append(order, k)
		}
		sums[k] = cur.Add(r.Quantity)
	}
	return order, sums
}

// TopProducts agrupa por producto, suma, ordena de mayor a menor y devuelve los n primeros.
// Empates en cantidad se resuelven por nombre de producto. n <= 0 usa DefaultTopN.
func TopProducts(records []entity.StockRecord, n int) []ProductTotal {
	if n <= 0 {
		n = DefaultTopN
	}
	order, sums := sumPairs(records, func(r entity.StockRecord) (pairKey, bool) {
		return pairKey{a: r.Product}, r.Product != ""
	})

	totals := make([]ProductTotal, 0, len(order))
	for _, k := range order {
		totals = append(totals, ProductTotal{Product: k.a, Quantity: sums[k]})
	}

	names := newNameOrder()
	sort.SliceStable(totals, func(i, j int) bool {
		if c := totals[i].Quantity.Cmp(totals[j].Quantity); c != 0 {
			return c > 0
		}
		return names.compare(totals[i].Product, totals[j].Product) < 0
	})

	if len(totals) > n {
		totals = totals[:n]
	}
	return totals
}

// TopProductsInDistrict es TopProducts restringido a las filas de un distrito.
func TopProductsInDistrict(records []entity.StockRecord, district string, n int) []ProductTotal {
	return TopProducts(FilterByDistrict(records, district), n)
}

// TopProductsPerDistrict agrupa por (distrito, producto), suma y conserva los k mayores
// de cada distrito. Salida ordenada por distrito y, dentro de él, por cantidad descendente.
// k <= 0 usa DefaultTopPerDistrict.
func TopProductsPerDistrict(records []entity.StockRecord, k int) []DistrictProductTotal {
	if k <= 0 {
		k = DefaultTopPerDistrict
	}
	order, sums := sumPairs(records, func(r entity.StockRecord) (pairKey, bool) {
		return pairKey{a: r.District, b: r.Product}, r.District != "" && r.Product != ""
	})

	all := make([]DistrictProductTotal, 0, len(order))
	for _, key := range order {
		all = append(all, DistrictProductTotal{District: key.a, Product: key.b, Quantity: sums[key]})
	}

	names := newNameOrder()
	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if c := names.compare(a.District, b.District); c != 0 {
			return c < 0
		}
		if c := a.Quantity.Cmp(b.Quantity); c != 0 {
			return c > 0
		}
		return names.compare(a.Product, b.Product) < 0
	})

	out := make([]DistrictProductTotal, 0, len(all))
	var current string
	taken := 0
	for _, t := range all {
		if t.District != current {
			current, taken = t.District, 0
		}
		if taken < k {
			out = append(out, t)
			taken++
		}
	}
	return out
}

// UnitStocks agrupa por (unidad, producto) y suma las filas duplicadas.
// Ordenado por unidad y producto.
func UnitStocks(records []entity.StockRecord) []UnitProductTotal {
	order, sums := sumPairs(records, func(r entity.StockRecord) (pairKey, bool) {
		return pairKey{a: r.Unit, b: r.Product}, r.Unit != "" && r.Product != ""
	})

	out := make([]UnitProductTotal, 0, len(order))
	for _, k := range order {
		out = append(out, UnitProductTotal{Unit: k.a, Product: k.b, Quantity: sums[k]})
	}

	names := newNameOrder()
	sort.SliceStable(out, func(i, j int) bool {
		if c := names.compare(out[i].Unit, out[j].Unit); c != 0 {
			return c < 0
		}
		return names.compare(out[i].Product, out[j].Product) < 0
	})
	return out
}

// CriticalityByDistrict cuenta productos por (distrito, criticidad) sobre la tabla
// clasificada. Filas sin distrito no se cuentan.
func CriticalityByDistrict(rows []entity.UnitStock) []CriticalityCount {
	type key struct {
		district string
		crit     stock.Criticality
	}
	counts := make(map[key]int)
	var order []key
	for _, r := range rows {
		if !r.HasDistrict {
			continue
		}
		k := key{r.District, r.Criticality}
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}

	out := make([]CriticalityCount, 0, len(order))
	for _, k := range order {
		out = append(out, CriticalityCount{District: k.district, Criticality: k.crit, Count: counts[k]})
	}

	names := newNameOrder()
	sort.SliceStable(out, func(i, j int) bool {
		if c := names.compare(out[i].District, out[j].District); c != 0 {
			return c < 0
		}
		return out[i].Criticality < out[j].Criticality
	})
	return out
}
