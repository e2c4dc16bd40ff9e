package analytics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/medicamentos-api/internal/application/analytics"
	"github.com/jhoicas/medicamentos-api/internal/application/dto"
	"github.com/jhoicas/medicamentos-api/internal/domain"
)

type stubGenerator struct {
	got *dto.DashboardDTO
	err error
}

func (s *stubGenerator) GenerateDashboardPDF(_ context.Context, d *dto.DashboardDTO) ([]byte, error) {
	s.got = d
	if s.err != nil {
		return nil, s.err
	}
	return []byte("%PDF-stub"), nil
}

func TestExportPDF(t *testing.T) {
	gen := &stubGenerator{}
	uc := analytics.NewReportUseCase(newUseCase(t, fixture()), gen)

	b, name, err := uc.ExportPDF(context.Background(), dto.DashboardRequest{District: "DS II"})
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-stub"), b)
	assert.Equal(t, "medicamentos_DS_II.pdf", name)
	require.NotNil(t, gen.got)
	assert.Equal(t, "DS II", gen.got.Selection.District)
}

func TestExportPDF_Errores(t *testing.T) {
	uc := analytics.NewReportUseCase(newUseCase(t, fixture()), &stubGenerator{})
	_, _, err := uc.ExportPDF(context.Background(), dto.DashboardRequest{District: "DS IX"})
	assert.ErrorIs(t, err, domain.ErrUnknownDistrict)

	boom := errors.New("fuente ausente")
	uc = analytics.NewReportUseCase(newUseCase(t, fixture()), &stubGenerator{err: boom})
	_, _, err = uc.ExportPDF(context.Background(), dto.DashboardRequest{})
	assert.ErrorIs(t, err, boom)
}
