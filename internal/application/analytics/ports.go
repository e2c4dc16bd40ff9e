package analytics

import (
	"context"

	"github.com/jhoicas/medicamentos-api/internal/application/dto"
)

// DashboardPDFGenerator puerto de salida: genera el reporte PDF del tablero.
// La implementación concreta (Maroto) vive en infrastructure/pdf.
type DashboardPDFGenerator interface {
	GenerateDashboardPDF(ctx context.Context, dashboard *dto.DashboardDTO) ([]byte, error)
}
