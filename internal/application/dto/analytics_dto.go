package dto

import "github.com/shopspring/decimal"

// ── Query parameters ──────────────────────────────────────────────────────────

// TopProductsRequest parámetros para GET /api/products/top y /api/districts/:district/top-products.
type TopProductsRequest struct {
	N int `query:"n"` // default REPORT_TOP_N (10)
}

// TopPerDistrictRequest parámetros para GET /api/districts/top-products.
type TopPerDistrictRequest struct {
	K int `query:"k"` // default REPORT_TOP_PER_DISTRICT (3)
}

// StockRequest filtros de la tabla de criticidad. Vacío o "all" = sin restricción.
type StockRequest struct {
	District    string `query:"district"`
	Unit        string `query:"unit"`
	Criticality string `query:"criticality"` // critical|alert|stocked o etiqueta pt-BR
}

// ── Rankings ──────────────────────────────────────────────────────────────────

// ProductTotalDTO cantidad total de un medicamento (barra de gráfico).
type ProductTotalDTO struct {
	Rank     int             `json:"rank"` // 1 = mayor cantidad
	Product  string          `json:"product"`
	Quantity decimal.Decimal `json:"quantity"`
}

// DistrictProductTotalDTO cantidad total de un medicamento dentro de un distrito.
type DistrictProductTotalDTO struct {
	District string          `json:"district"`
	Rank     int             `json:"rank"` // posición dentro del distrito
	Product  string          `json:"product"`
	Quantity decimal.Decimal `json:"quantity"`
}

// ── Criticidad ────────────────────────────────────────────────────────────────

// UnitStockDTO fila de la tabla filtrable: estoque total de un producto en una unidad.
// District es null cuando la unidad no tiene distrito conocido.
type UnitStockDTO struct {
	Unit            string          `json:"unit"`
	Product         string          `json:"product"`
	Quantity        decimal.Decimal `json:"quantity"`
	Criticality     string          `json:"criticality"`      // Crítico|Alerta|Abastecido
	CriticalityCode string          `json:"criticality_code"` // critical|alert|stocked
	District        *string         `json:"district"`
}

// CriticalityCountDTO número de productos de un distrito en un nivel de criticidad.
type CriticalityCountDTO struct {
	District        string `json:"district"`
	Criticality     string `json:"criticality"`
	CriticalityCode string `json:"criticality_code"`
	Count           int    `json:"count"`
}

// StockTableDTO respuesta de GET /api/stock.
type StockTableDTO struct {
	Filters  SelectionDTO     `json:"filters"`
	Total    int              `json:"total"`
	Rows     []UnitStockDTO   `json:"rows"`
	Warnings []DataWarningDTO `json:"warnings"`
}

// ── Calidad de datos ──────────────────────────────────────────────────────────

// DataWarningDTO aviso de calidad de datos detectado en el snapshot.
type DataWarningDTO struct {
	Code      string   `json:"code"` // UNIT_MULTIPLE_DISTRICTS
	Unit      string   `json:"unit"`
	Districts []string `json:"districts"` // el primero es el que se usa en el join
	Message   string   `json:"message"`
}
