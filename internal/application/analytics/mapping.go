package analytics

import (
	"fmt"
	"strings"

	"github.com/jhoicas/medicamentos-api/internal/application/dto"
	"github.com/jhoicas/medicamentos-api/internal/domain/entity"
	"github.com/jhoicas/medicamentos-api/internal/domain/stock"
)

func buildOptions(records []entity.StockRecord, rows []entity.UnitStock) dto.OptionsDTO {
	units := append([]string{stock.AllFilter}, Units(rows)...)

	crits := []dto.CriticalityOption{{Code: stock.AllFilter, Label: "Todos"}}
	for _, c := range Criticalities(rows) {
		crits = append(crits, dto.CriticalityOption{Code: c.Code(), Label: c.Label()})
	}

	return dto.OptionsDTO{
		Districts:     Districts(records),
		Units:         units,
		Criticalities: crits,
	}
}

func productTotalsDTO(totals []ProductTotal) []dto.ProductTotalDTO {
	out := make([]dto.ProductTotalDTO, 0, len(totals))
	for i, t := range totals {
		out = append(out, dto.ProductTotalDTO{Rank: i + 1, Product: t.Product, Quantity: t.Quantity})
	}
	return out
}

func districtTotalsDTO(totals []DistrictProductTotal) []dto.DistrictProductTotalDTO {
	out := make([]dto.DistrictProductTotalDTO, 0, len(totals))
	rank := 0
	for i, t := range totals {
		if i == 0 || totals[i-1].District != t.District {
			rank = 0
		}
		rank++
		out = append(out, dto.DistrictProductTotalDTO{
			District: t.District,
			Rank:     rank,
			Product:  t.Product,
			Quantity: t.Quantity,
		})
	}
	return out
}

func unitStocksDTO(rows []entity.UnitStock) []dto.UnitStockDTO {
	out := make([]dto.UnitStockDTO, 0, len(rows))
	for _, r := range rows {
		var district *string
		if r.HasDistrict {
			d := r.District
			district = &d
		}
		out = append(out, dto.UnitStockDTO{
			Unit:            r.Unit,
			Product:         r.Product,
			Quantity:        r.Quantity,
			Criticality:     r.Criticality.Label(),
			CriticalityCode: r.Criticality.Code(),
			District:        district,
		})
	}
	return out
}

func criticalityCountsDTO(counts []CriticalityCount) []dto.CriticalityCountDTO {
	out := make([]dto.CriticalityCountDTO, 0, len(counts))
	for _, c := range counts {
		out = append(out, dto.CriticalityCountDTO{
			District:        c.District,
			Criticality:     c.Criticality.Label(),
			CriticalityCode: c.Criticality.Code(),
			Count:           c.Count,
		})
	}
	return out
}

func conflictWarnings(conflicts []DistrictConflict) []dto.DataWarningDTO {
	out := make([]dto.DataWarningDTO, 0, len(conflicts))
	for _, c := range conflicts {
		out = append(out, dto.DataWarningDTO{
			Code:      warnUnitMultipleDistricts,
			Unit:      c.Unit,
			Districts: c.Districts,
			Message: fmt.Sprintf("unidad %q aparece en los distritos %s; se usa %q",
				c.Unit, strings.Join(c.Districts, ", "), c.Districts[0]),
		})
	}
	return out
}
