// Package snapshot elige la fuente configurada (CSV o PostgreSQL) y carga el snapshot
// de distribución una única vez al arrancar.
package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/medicamentos-api/internal/domain/entity"
	"github.com/jhoicas/medicamentos-api/internal/domain/repository"
	"github.com/jhoicas/medicamentos-api/internal/infrastructure/csvsource"
	"github.com/jhoicas/medicamentos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/medicamentos-api/pkg/config"
	"github.com/jhoicas/medicamentos-api/pkg/logger"
)

// OpenSource devuelve la fuente de datos configurada y una función de cierre
// (no-op para CSV, cierre del pool para PostgreSQL).
func OpenSource(ctx context.Context, cfg config.Config) (repository.StockSource, func(), error) {
	switch cfg.Data.Source {
	case config.SourcePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("snapshot: conexión a PostgreSQL: %w", err)
		}
		return postgres.NewStockRepository(pool, cfg.DB.StockTable), pool.Close, nil
	case config.SourceCSV, "":
		return csvsource.NewStockLoader(cfg.Data.CSVPath, cfg.Data.CSVEncoding), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("snapshot: fuente desconocida %q", cfg.Data.Source)
	}
}

// Load carga el snapshot desde src y registra su tamaño y duración.
func Load(ctx context.Context, src repository.StockSource, log *logger.Logger) (*entity.StockTable, error) {
	start := time.Now()
	table, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("snapshot_id", table.SnapshotID).
		Str("source", table.Source).
		Int("records", table.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("snapshot de distribución cargado")
	return table, nil
}

// OpenAndLoad combina OpenSource y Load; la fuente se cierra antes de retornar
// porque el snapshot queda en memoria.
func OpenAndLoad(ctx context.Context, cfg config.Config, log *logger.Logger) (*entity.StockTable, error) {
	src, closeFn, err := OpenSource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer closeFn()
	return Load(ctx, src, log)
}
