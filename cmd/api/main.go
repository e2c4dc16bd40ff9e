package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/medicamentos-api/internal/application/analytics"
	infrapdf "github.com/jhoicas/medicamentos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/medicamentos-api/internal/infrastructure/snapshot"
	httpRouter "github.com/jhoicas/medicamentos-api/internal/interfaces/http"
	"github.com/jhoicas/medicamentos-api/pkg/config"
	"github.com/jhoicas/medicamentos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("source", cfg.Data.Source).
		Msg("iniciando aplicación")

	// El snapshot se carga una vez; si falla, el servicio no arranca.
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 2*time.Minute)
	table, err := snapshot.OpenAndLoad(loadCtx, *cfg, log)
	cancelLoad()
	if err != nil {
		log.Fatal().Err(err).Msg("carga del snapshot")
	}

	dashboardUC := appanalytics.NewDashboardUseCase(table, appanalytics.Limits{
		TopN:           cfg.Report.TopN,
		TopPerDistrict: cfg.Report.TopPerDistrict,
	}, log)
	reportUC := appanalytics.NewReportUseCase(dashboardUC, infrapdf.NewMarotoDashboardGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Medicamentos API",
		}))
	} else {
		log.Warn().Str("file", cfg.HTTP.SwaggerFile).Msg("swagger no disponible")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "ok",
			"service":  cfg.App.Name,
			"snapshot": dashboardUC.Snapshot(),
		})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		DashboardUC: dashboardUC,
		ReportUC:    reportUC,
		Log:         log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
