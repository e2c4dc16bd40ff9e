package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/medicamentos-api/internal/application/dto"
)

func sampleDashboard() *dto.DashboardDTO {
	ds := "DS I"
	return &dto.DashboardDTO{
		Snapshot:  dto.SnapshotDTO{ID: "0f8c2d7e-aaaa-bbbb-cccc-000000000000", Source: "estoque.csv", LoadedAt: time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC), Records: 3},
		Selection: dto.SelectionDTO{District: "DS I", Unit: "all", Criticality: "all"},
		TopProducts: []dto.ProductTotalDTO{
			{Rank: 1, Product: "Losartana 50mg", Quantity: decimal.NewFromInt(3_000_000)},
		},
		DistrictTopProducts: []dto.ProductTotalDTO{
			{Rank: 1, Product: "Losartana 50mg", Quantity: decimal.NewFromInt(150)},
		},
		TopPerDistrict: []dto.DistrictProductTotalDTO{
			{District: "DS I", Rank: 1, Product: "Losartana 50mg", Quantity: decimal.NewFromInt(150)},
		},
		Stock: []dto.UnitStockDTO{
			{Unit: "U1", Product: "Losartana 50mg", Quantity: decimal.NewFromInt(150), Criticality: "Alerta", CriticalityCode: "alert", District: &ds},
			{Unit: "U2", Product: "Insulina", Quantity: decimal.Zero, Criticality: "Crítico", CriticalityCode: "critical"},
		},
		CriticalityByDistrict: []dto.CriticalityCountDTO{
			{District: "DS I", Criticality: "Alerta", CriticalityCode: "alert", Count: 1},
		},
		Warnings: []dto.DataWarningDTO{{Code: "UNIT_MULTIPLE_DISTRICTS", Unit: "U1", Message: "unidad U1 en DS I, DS II"}},
	}
}

func TestGenerateDashboardPDF(t *testing.T) {
	b, err := NewMarotoDashboardGenerator().GenerateDashboardPDF(context.Background(), sampleDashboard())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")), "debe producir un documento PDF")
}

func TestGenerateDashboardPDF_SinDatos(t *testing.T) {
	b, err := NewMarotoDashboardGenerator().GenerateDashboardPDF(context.Background(), &dto.DashboardDTO{})
	require.NoError(t, err)
	assert.NotEmpty(t, b)
}

func TestGenerateDashboardPDF_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMarotoDashboardGenerator().GenerateDashboardPDF(ctx, sampleDashboard())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFormatter_PtBR(t *testing.T) {
	f := newFormatter()
	assert.Equal(t, "1.234.567", f.quantity(decimal.NewFromInt(1_234_567)))
	assert.Equal(t, "0", f.quantity(decimal.Zero))
	assert.Equal(t, "150", f.quantity(decimal.RequireFromString("150.000")))
	assert.Equal(t, "12.000", f.count(12000))
}
