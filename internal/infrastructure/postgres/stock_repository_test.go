package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/medicamentos-api/internal/domain"
	"github.com/jhoicas/medicamentos-api/internal/domain/stock"
)

// fakeRows implementa pgx.Rows sobre filas en memoria (unidade, distrito, produto, quantidade).
type fakeRows struct {
	data [][4]any
	pos  int
	err  error
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return nil, nil }

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.data) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.pos-1]
	for i := range dest {
		switch d := dest[i].(type) {
		case *string:
			*d = row[i].(string)
		case *any:
			*d = row[i]
		default:
			return fmt.Errorf("destino no soportado %T", dest[i])
		}
	}
	return nil
}

type fakeQuerier struct {
	rows    *fakeRows
	err     error
	lastSQL string
}

func (q *fakeQuerier) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	q.lastSQL = sql
	if q.err != nil {
		return nil, q.err
	}
	return q.rows, nil
}

func TestStockRepo_Load(t *testing.T) {
	q := &fakeQuerier{rows: &fakeRows{data: [][4]any{
		{"U1", "D1", "X", "100,0"},
		{"U1", "D1", "X", "50.0"},
		{"U2", "D1", "X", "0"},
	}}}

	table, err := NewStockRepository(q, "public.estoque").Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, table.Len())
	assert.Equal(t, "postgres:public.estoque", table.Source)
	assert.Equal(t, "100", table.Records()[0].Quantity.String())
	assert.Contains(t, q.lastSQL, `FROM "public"."estoque"`)
}

func TestStockRepo_Load_ColumnaNumeric(t *testing.T) {
	q := &fakeQuerier{rows: &fakeRows{data: [][4]any{
		{"U1", "D1", "X", decimal.RequireFromString("150.00")},
		{"U1", "D1", "Y", int64(3)},
		{"U2", "D1", "X", "0,5"},
	}}}

	table, err := NewStockRepository(q, "estoque").Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, table.Len())
	recs := table.Records()
	assert.True(t, decimal.NewFromInt(150).Equal(recs[0].Quantity), "NUMERIC llega como decimal.Decimal")
	assert.True(t, decimal.NewFromInt(3).Equal(recs[1].Quantity))
	assert.Equal(t, "0.5", recs[2].Quantity.String())
	assert.NotContains(t, q.lastSQL, "::TEXT", "quantidade se lee con su tipo nativo")
}

func TestStockRepo_Load_NumericNegativo(t *testing.T) {
	q := &fakeQuerier{rows: &fakeRows{data: [][4]any{{"U1", "D1", "X", decimal.RequireFromString("-1")}}}}

	_, err := NewStockRepository(q, "estoque").Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrNegativeQuantity)

	var pe *stock.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "-1", pe.Value)
}

func TestStockRepo_Load_CantidadNula(t *testing.T) {
	q := &fakeQuerier{rows: &fakeRows{data: [][4]any{{"U1", "D1", "X", nil}}}}

	_, err := NewStockRepository(q, "estoque").Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrParse)
}

func TestStockRepo_Load_CantidadInvalida(t *testing.T) {
	q := &fakeQuerier{rows: &fakeRows{data: [][4]any{{"U1", "D1", "X", "n/d"}}}}

	_, err := NewStockRepository(q, "estoque").Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrParse)

	var pe *stock.ParseError
	assert.True(t, errors.As(err, &pe))
}

func TestStockRepo_Load_ErrorDeConsulta(t *testing.T) {
	boom := errors.New("conexión rechazada")
	_, err := NewStockRepository(&fakeQuerier{err: boom}, "estoque").Load(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestStockRepo_Load_ErroresDeEsquema(t *testing.T) {
	cases := map[string]struct {
		code string
		want error
	}{
		"tabla inexistente":   {code: "42P01", want: domain.ErrNotFound},
		"columna inexistente": {code: "42703", want: domain.ErrMissingColumn},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			q := &fakeQuerier{err: &pgconn.PgError{Code: tc.code, Message: name}}
			_, err := NewStockRepository(q, "estoque").Load(context.Background())
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestStockQuery_EscapaIdentificador(t *testing.T) {
	assert.Contains(t, stockQuery(`estoque"; DROP TABLE x; --`), `FROM "estoque""; DROP TABLE x; --"`)
	assert.Contains(t, stockQuery("estoque"), `FROM "estoque"`)
}
