package analytics

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/medicamentos-api/internal/application/dto"
)

// ReportUseCase exporta el tablero como PDF con los mismos filtros que GET /api/dashboard.
type ReportUseCase struct {
	dashboard *DashboardUseCase
	generator DashboardPDFGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(dashboard *DashboardUseCase, generator DashboardPDFGenerator) *ReportUseCase {
	return &ReportUseCase{dashboard: dashboard, generator: generator}
}

// ExportPDF calcula el tablero y lo renderiza.
//
// Retorna:
//   - (pdfBytes, filename, nil)      si todo sale bien.
//   - domain.ErrUnknownDistrict      si el distrito no existe.
//   - domain.ErrInvalidInput         si unidad o criticidad no son válidas.
func (uc *ReportUseCase) ExportPDF(ctx context.Context, req dto.DashboardRequest) (pdfBytes []byte, filename string, err error) {
	dash, err := uc.dashboard.GetDashboard(ctx, req)
	if err != nil {
		return nil, "", err
	}

	pdfBytes, err = uc.generator.GenerateDashboardPDF(ctx, dash)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generar PDF: %w", err)
	}
	return pdfBytes, reportFilename(dash.Selection.District), nil
}

// reportFilename ej: "medicamentos_DS_IV.pdf".
func reportFilename(district string) string {
	if district == "" {
		return "medicamentos.pdf"
	}
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, district)
	return "medicamentos_" + slug + ".pdf"
}
