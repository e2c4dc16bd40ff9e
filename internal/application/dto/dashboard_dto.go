package dto

import "time"

// DashboardRequest parámetros para GET /api/dashboard y /api/report.pdf.
type DashboardRequest struct {
	District    string `query:"district"` // vacío = primer distrito (orden alfabético)
	Unit        string `query:"unit"`
	Criticality string `query:"criticality"`
	TopN        int    `query:"top_n"`
}

// DashboardDTO respuesta de GET /api/dashboard: todo lo que muestra el tablero para una
// combinación de filtros, recalculado desde el snapshot en cada petición.
type DashboardDTO struct {
	Snapshot  SnapshotDTO  `json:"snapshot"`
	Selection SelectionDTO `json:"selection"`
	Options   OptionsDTO   `json:"options"`

	// Top N general (todos los distritos)
	TopProducts []ProductTotalDTO `json:"top_products"`
	// Top 3 de cada distrito
	TopPerDistrict []DistrictProductTotalDTO `json:"top_per_district"`
	// Top N del distrito seleccionado
	DistrictTopProducts []ProductTotalDTO `json:"district_top_products"`

	// Tabla de criticidad filtrada por distrito, unidad y criticidad
	Stock []UnitStockDTO `json:"stock"`
	// Conteo de productos por distrito y criticidad (sin filtrar)
	CriticalityByDistrict []CriticalityCountDTO `json:"criticality_by_district"`

	Warnings []DataWarningDTO `json:"warnings"`
}

// SnapshotDTO metadatos del snapshot cargado.
type SnapshotDTO struct {
	ID       string    `json:"id"`
	Source   string    `json:"source"`
	LoadedAt time.Time `json:"loaded_at"`
	Records  int       `json:"records"`
}

// SelectionDTO filtros efectivamente aplicados ("all" = sin restricción).
type SelectionDTO struct {
	District    string `json:"district"`
	Unit        string `json:"unit"`
	Criticality string `json:"criticality"`
}

// OptionsDTO valores disponibles para los selectores del tablero.
// Units y Criticalities empiezan con el centinela "all".
type OptionsDTO struct {
	Districts     []string            `json:"districts"`
	Units         []string            `json:"units"`
	Criticalities []CriticalityOption `json:"criticalities"`
}

// CriticalityOption opción del selector de criticidad.
type CriticalityOption struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}
