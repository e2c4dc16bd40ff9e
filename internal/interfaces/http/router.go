package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/medicamentos-api/internal/application/analytics"
	"github.com/jhoicas/medicamentos-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	DashboardUC *appanalytics.DashboardUseCase
	ReportUC    *appanalytics.ReportUseCase
	Log         *logger.Logger
}

// Router registra las rutas de la API. Todas son de solo lectura (GET).
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api")

	dashboardHandler := NewDashboardHandler(deps.DashboardUC, log)
	api.Get("/options", dashboardHandler.GetOptions)
	api.Get("/dashboard", dashboardHandler.GetDashboard)

	// Rankings
	api.Get("/products/top", dashboardHandler.GetTopProducts)
	districts := api.Group("/districts")
	districts.Get("/top-products", dashboardHandler.GetTopPerDistrict)
	districts.Get("/:district/top-products", dashboardHandler.GetDistrictTopProducts)

	// Criticidad
	stockGroup := api.Group("/stock")
	stockGroup.Get("/", dashboardHandler.GetStock)
	stockGroup.Get("/criticality-by-district", dashboardHandler.GetCriticalityByDistrict)

	// Exportación
	if deps.ReportUC != nil {
		reportHandler := NewReportHandler(deps.ReportUC, log)
		api.Get("/report.pdf", reportHandler.DownloadPDF)
	}
}
