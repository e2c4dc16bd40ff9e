package repository

import (
	"context"

	"github.com/jhoicas/medicamentos-api/internal/domain/entity"
)

// StockSource define el puerto de carga del snapshot de distribución.
// Las implementaciones son read-only y todo-o-nada: devuelven la tabla completa o un error,
// nunca una tabla parcial.
type StockSource interface {
	Load(ctx context.Context) (*entity.StockTable, error)
}
