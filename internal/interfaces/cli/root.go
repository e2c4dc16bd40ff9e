// Package cli expone los casos de uso del tablero como comandos de terminal (medreport).
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jhoicas/medicamentos-api/internal/application/analytics"
	infrapdf "github.com/jhoicas/medicamentos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/medicamentos-api/internal/infrastructure/snapshot"
	"github.com/jhoicas/medicamentos-api/pkg/config"
	"github.com/jhoicas/medicamentos-api/pkg/logger"
)

// Services casos de uso que usan los subcomandos.
type Services struct {
	Dashboard *analytics.DashboardUseCase
	Report    *analytics.ReportUseCase
}

// Loader construye los servicios; se invoca una sola vez antes del subcomando.
type Loader func(ctx context.Context) (*Services, error)

// NewRootCmd construye el comando raíz con todos los subcomandos.
func NewRootCmd(load Loader) *cobra.Command {
	var svc *Services

	root := &cobra.Command{
		Use:           "medreport",
		Short:         "Reportes de distribución de medicamentos por unidad de salud",
		Long:          `medreport carga el snapshot configurado (CSV o PostgreSQL) e imprime los rankings y la tabla de criticidad del tablero.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			s, err := load(cmd.Context())
			if err != nil {
				return err
			}
			svc = s
			return nil
		},
	}

	get := func() *Services { return svc }
	root.AddCommand(
		newTopCmd(get),
		newDistrictsCmd(get),
		newStockCmd(get),
		newCriticalityCmd(get),
		newPDFCmd(get),
	)
	return root
}

// DefaultLoader lee la configuración desde el entorno y carga el snapshot.
func DefaultLoader(ctx context.Context) (*Services, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	// Los logs van a stderr para no mezclarse con las tablas.
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr})

	table, err := snapshot.OpenAndLoad(ctx, *cfg, log)
	if err != nil {
		return nil, err
	}
	dashboard := analytics.NewDashboardUseCase(table, analytics.Limits{
		TopN:           cfg.Report.TopN,
		TopPerDistrict: cfg.Report.TopPerDistrict,
	}, log)
	return &Services{
		Dashboard: dashboard,
		Report:    analytics.NewReportUseCase(dashboard, infrapdf.NewMarotoDashboardGenerator()),
	}, nil
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}
