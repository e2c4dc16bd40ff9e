// Package analytics contiene los casos de uso del tablero de distribución de
// medicamentos: rankings por producto y distrito, clasificación de criticidad por
// unidad y los filtros del tablero.
package analytics

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/medicamentos-api/internal/application/dto"
	"github.com/jhoicas/medicamentos-api/internal/domain"
	"github.com/jhoicas/medicamentos-api/internal/domain/entity"
	"github.com/jhoicas/medicamentos-api/internal/domain/stock"
	"github.com/jhoicas/medicamentos-api/pkg/logger"
)

const (
	maxTopN = 200

	warnUnitMultipleDistricts = "UNIT_MULTIPLE_DISTRICTS"
)

// Limits tamaños por defecto de los rankings (REPORT_TOP_N, REPORT_TOP_PER_DISTRICT).
type Limits struct {
	TopN           int
	TopPerDistrict int
}

// DashboardUseCase calcula las vistas del tablero sobre el snapshot inmutable.
//
// No hay caché: cada llamada recalcula desde table.Records(), que devuelve una copia,
// así que ninguna vista derivada puede alterar el snapshot.
type DashboardUseCase struct {
	table  *entity.StockTable
	limits Limits
	log    *logger.Logger
}

// NewDashboardUseCase construye el caso de uso y registra los avisos de calidad de datos
// del snapshot (unidades con más de un distrito).
func NewDashboardUseCase(table *entity.StockTable, limits Limits, log *logger.Logger) *DashboardUseCase {
	if limits.TopN <= 0 {
		limits.TopN = DefaultTopN
	}
	if limits.TopPerDistrict <= 0 {
		limits.TopPerDistrict = DefaultTopPerDistrict
	}
	if log == nil {
		log = logger.Nop()
	}

	records := table.Records()
	rows, conflicts := ClassifyUnits(records)
	log.Info().
		Int("records", len(records)).
		Int("districts", len(Districts(records))).
		Int("units", len(Units(rows))).
		Int("unit_products", len(rows)).
		Msg("tablero listo")
	for _, c := range conflicts {
		log.Warn().
			Str("unit", c.Unit).
			Strs("districts", c.Districts).
			Str("used", c.Districts[0]).
			Msg("unidad asociada a más de un distrito; se usa el primero")
	}

	return &DashboardUseCase{table: table, limits: limits, log: log}
}

// Snapshot metadatos del snapshot cargado.
func (uc *DashboardUseCase) Snapshot() dto.SnapshotDTO {
	return dto.SnapshotDTO{
		ID:       uc.table.SnapshotID,
		Source:   uc.table.Source,
		LoadedAt: uc.table.LoadedAt,
		Records:  uc.table.Len(),
	}
}

// GetOptions valores de los selectores: distritos, unidades ("all" primero) y criticidades.
func (uc *DashboardUseCase) GetOptions(ctx context.Context) (*dto.OptionsDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	records := uc.table.Records()
	rows, _ := ClassifyUnits(records)
	opts := buildOptions(records, rows)
	return &opts, nil
}

// GetDashboard construye la respuesta completa del tablero para una combinación de filtros.
//
//  1. Distrito: obligatorio; vacío = primero en orden alfabético.
//  2. Top N general, top 3 por distrito y top N del distrito seleccionado.
//  3. Tabla de criticidad (suma unidad+producto → clasificación → join de distrito)
//     filtrada por distrito, unidad y criticidad.
//  4. Conteo de criticidad por distrito sobre la tabla sin filtrar.
func (uc *DashboardUseCase) GetDashboard(ctx context.Context, req dto.DashboardRequest) (*dto.DashboardDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	records := uc.table.Records()
	rows, conflicts := ClassifyUnits(records)
	districts := Districts(records)

	district := strings.TrimSpace(req.District)
	if stock.IsAll(district) {
		district = ""
		if len(districts) > 0 {
			district = districts[0]
		}
	} else if !contains(districts, district) {
		return nil, fmt.Errorf("dashboard: %q: %w", district, domain.ErrUnknownDistrict)
	}

	filter, selection, err := resolveStockFilter(rows, dto.StockRequest{Unit: req.Unit, Criticality: req.Criticality})
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	filter.District = district
	selection.District = district

	topN := uc.topN(req.TopN)
	out := &dto.DashboardDTO{
		Snapshot:              uc.Snapshot(),
		Selection:             selection,
		Options:               buildOptions(records, rows),
		TopProducts:           productTotalsDTO(TopProducts(records, topN)),
		TopPerDistrict:        districtTotalsDTO(TopProductsPerDistrict(records, uc.limits.TopPerDistrict)),
		DistrictTopProducts:   productTotalsDTO(TopProductsInDistrict(records, district, topN)),
		Stock:                 unitStocksDTO(ApplyStockFilter(rows, filter)),
		CriticalityByDistrict: criticalityCountsDTO(CriticalityByDistrict(rows)),
		Warnings:              conflictWarnings(conflicts),
	}

	uc.log.Debug().
		Str("district", district).
		Str("unit", selection.Unit).
		Str("criticality", selection.Criticality).
		Int("stock_rows", len(out.Stock)).
		Msg("dashboard calculado")

	return out, nil
}

// GetTopProducts top N general por cantidad total.
func (uc *DashboardUseCase) GetTopProducts(ctx context.Context, n int) ([]dto.ProductTotalDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return productTotalsDTO(TopProducts(uc.table.Records(), uc.topN(n))), nil
}

// GetTopPerDistrict top k de cada distrito.
func (uc *DashboardUseCase) GetTopPerDistrict(ctx context.Context, k int) ([]dto.DistrictProductTotalDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if k <= 0 {
		k = uc.limits.TopPerDistrict
	}
	if k > maxTopN {
		k = maxTopN
	}
	return districtTotalsDTO(TopProductsPerDistrict(uc.table.Records(), k)), nil
}

// GetDistrictTopProducts top N dentro de un distrito existente.
func (uc *DashboardUseCase) GetDistrictTopProducts(ctx context.Context, district string, n int) ([]dto.ProductTotalDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	records := uc.table.Records()
	if !contains(Districts(records), district) {
		return nil, fmt.Errorf("top por distrito: %q: %w", district, domain.ErrUnknownDistrict)
	}
	return productTotalsDTO(TopProductsInDistrict(records, district, uc.topN(n))), nil
}

// GetStock tabla de criticidad con los filtros opcionales de distrito, unidad y criticidad.
func (uc *DashboardUseCase) GetStock(ctx context.Context, req dto.StockRequest) (*dto.StockTableDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	records := uc.table.Records()
	rows, conflicts := ClassifyUnits(records)

	filter, selection, err := resolveStockFilter(rows, req)
	if err != nil {
		return nil, fmt.Errorf("stock: %w", err)
	}
	if d := strings.TrimSpace(req.District); !stock.IsAll(d) {
		if !contains(Districts(records), d) {
			return nil, fmt.Errorf("stock: %q: %w", d, domain.ErrUnknownDistrict)
		}
		filter.District = d
		selection.District = d
	}

	filtered := ApplyStockFilter(rows, filter)
	return &dto.StockTableDTO{
		Filters:  selection,
		Total:    len(filtered),
		Rows:     unitStocksDTO(filtered),
		Warnings: conflictWarnings(conflicts),
	}, nil
}

// GetCriticalityByDistrict número de productos por distrito y nivel de criticidad.
func (uc *DashboardUseCase) GetCriticalityByDistrict(ctx context.Context) ([]dto.CriticalityCountDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, _ := ClassifyUnits(uc.table.Records())
	return criticalityCountsDTO(CriticalityByDistrict(rows)), nil
}

func (uc *DashboardUseCase) topN(n int) int {
	if n <= 0 {
		return uc.limits.TopN
	}
	if n > maxTopN {
		return maxTopN
	}
	return n
}

// resolveStockFilter valida unidad y criticidad contra la tabla clasificada.
// El distrito lo resuelve cada llamador (obligatorio en el tablero, opcional en /stock).
func resolveStockFilter(rows []entity.UnitStock, req dto.StockRequest) (StockFilter, dto.SelectionDTO, error) {
	f := StockFilter{}
	sel := dto.SelectionDTO{District: stock.AllFilter, Unit: stock.AllFilter, Criticality: stock.AllFilter}

	if u := strings.TrimSpace(req.Unit); !stock.IsAll(u) {
		if !contains(Units(rows), u) {
			return f, sel, fmt.Errorf("unidad %q: %w", u, domain.ErrInvalidInput)
		}
		f.Unit = u
		sel.Unit = u
	}

	crit, err := stock.ParseCriticality(req.Criticality)
	if err != nil {
		return f, sel, err
	}
	if crit != 0 {
		f.Criticality = crit
		sel.Criticality = crit.Code()
	}
	return f, sel, nil
}
