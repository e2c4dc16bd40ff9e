package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/medicamentos-api/internal/domain"
	"github.com/jhoicas/medicamentos-api/internal/domain/entity"
	"github.com/jhoicas/medicamentos-api/internal/domain/repository"
	"github.com/jhoicas/medicamentos-api/internal/domain/stock"
)

var _ repository.StockSource = (*StockRepo)(nil)

// Querier subconjunto de pgxpool.Pool que usa el repositorio.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// StockRepo lee el snapshot desde una tabla con las mismas columnas que el CSV.
// Solo ejecuta un SELECT; nunca escribe.
type StockRepo struct {
	db    Querier
	table string
}

// NewStockRepository construye el adaptador. table puede incluir esquema ("public.estoque").
func NewStockRepository(db Querier, table string) *StockRepo {
	return &StockRepo{db: db, table: table}
}

// Load ejecuta la consulta y normaliza cada cantidad igual que el cargador CSV.
// quantidade puede ser NUMERIC (llega como decimal.Decimal vía pgx-shopspring-decimal)
// o texto con coma decimal (pasa por stock.ParseQuantity).
func (r *StockRepo) Load(ctx context.Context) (*entity.StockTable, error) {
	rows, err := r.db.Query(ctx, stockQuery(r.table))
	if err != nil {
		return nil, fmt.Errorf("postgres.StockRepo.Load: %w", classifyLoadError(r.table, err))
	}
	defer rows.Close()

	var records []entity.StockRecord
	for rows.Next() {
		var (
			unit, district, product string
			raw                     any
		)
		if err := rows.Scan(&unit, &district, &product, &raw); err != nil {
			return nil, fmt.Errorf("postgres.StockRepo.Load scan: %w", err)
		}
		qty, err := quantityFromValue(raw)
		if err != nil {
			return nil, &stock.ParseError{Column: "quantidade", Value: fmt.Sprint(raw), Err: err}
		}
		records = append(records, entity.StockRecord{
			Unit:     unit,
			District: district,
			Product:  product,
			Quantity: qty,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres.StockRepo.Load rows: %w", err)
	}

	return entity.NewStockTable(uuid.NewString(), "postgres:"+r.table, time.Now(), records), nil
}

// quantityFromValue convierte el valor escaneado según el tipo de la columna.
func quantityFromValue(v any) (decimal.Decimal, error) {
	switch q := v.(type) {
	case decimal.Decimal:
		return stock.CheckQuantity(q)
	case string:
		return stock.ParseQuantity(q)
	case []byte:
		return stock.ParseQuantity(string(q))
	case int16:
		return stock.CheckQuantity(decimal.NewFromInt(int64(q)))
	case int32:
		return stock.CheckQuantity(decimal.NewFromInt32(q))
	case int64:
		return stock.CheckQuantity(decimal.NewFromInt(q))
	case float32:
		return stock.CheckQuantity(decimal.NewFromFloat32(q))
	case float64:
		return stock.CheckQuantity(decimal.NewFromFloat(q))
	case nil:
		return decimal.Zero, domain.ErrParse
	default:
		return decimal.Zero, fmt.Errorf("%w: tipo %T", domain.ErrParse, v)
	}
}

// stockQuery arma el SELECT con el nombre de tabla escapado como identificador.
func stockQuery(table string) string {
	ident := pgx.Identifier(splitQualified(table)).Sanitize()
	return `
	SELECT
	    TRIM(COALESCE(unidade,  ''))       AS unidade,
	    TRIM(COALESCE(distrito, ''))       AS distrito,
	    TRIM(COALESCE(produto,  ''))       AS produto,
	    quantidade
	FROM ` + ident
}

func splitQualified(table string) []string {
	if schema, name, ok := strings.Cut(table, "."); ok {
		return []string{schema, name}
	}
	return []string{table}
}
