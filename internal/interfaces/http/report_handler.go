package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/medicamentos-api/internal/application/analytics"
	"github.com/jhoicas/medicamentos-api/internal/application/dto"
	"github.com/jhoicas/medicamentos-api/pkg/logger"
)

// ReportHandler exporta el tablero en PDF.
type ReportHandler struct {
	uc  *appanalytics.ReportUseCase
	log *logger.Logger
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *appanalytics.ReportUseCase, log *logger.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, log: log}
}

// DownloadPDF godoc
// @Summary      Reporte PDF del tablero
// @Tags         report
// @Produce      application/pdf
// @Param        district     query  string  false  "Distrito (default: primero en orden alfabético)"
// @Param        unit         query  string  false  "Unidad o 'all'"
// @Param        criticality  query  string  false  "critical|alert|stocked o 'all'"
// @Param        top_n        query  int     false  "Tamaño de los rankings"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/report.pdf [get]
func (h *ReportHandler) DownloadPDF(c *fiber.Ctx) error {
	var req dto.DashboardRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c)
	}
	b, filename, err := h.uc.ExportPDF(c.Context(), req)
	if err != nil {
		h.log.Error().Err(err).Msg("exportar PDF")
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(b)
}
