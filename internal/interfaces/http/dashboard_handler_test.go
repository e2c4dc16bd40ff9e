package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/medicamentos-api/internal/application/analytics"
	"github.com/jhoicas/medicamentos-api/internal/application/dto"
	"github.com/jhoicas/medicamentos-api/internal/domain/entity"
	apphttp "github.com/jhoicas/medicamentos-api/internal/interfaces/http"
	"github.com/jhoicas/medicamentos-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fakePDF struct {
	err  error
	last *dto.DashboardDTO
}

func (f *fakePDF) GenerateDashboardPDF(_ context.Context, d *dto.DashboardDTO) ([]byte, error) {
	f.last = d
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.3 fake"), nil
}

func rec(unit, district, product, qty string) entity.StockRecord {
	return entity.StockRecord{Unit: unit, District: district, Product: product, Quantity: decimal.RequireFromString(qty)}
}

// buildTestApp monta el router sobre un snapshot pequeño:
//
//	DS I : Losartana 700, Metformina 400
//	DS II: Insulina 0, Losartana 200
//	USF Centro aparece en DS II y DS III (conflicto de distrito).
func buildTestApp(t *testing.T, gen *fakePDF) *fiber.App {
	t.Helper()
	table := entity.NewStockTable("snap-http", "test.csv", time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC), []entity.StockRecord{
		rec("USF Alto", "DS I", "Losartana", "700"),
		rec("USF Alto", "DS I", "Metformina", "400"),
		rec("USF Centro", "DS II", "Losartana", "200"),
		rec("USF Centro", "DS II", "Insulina", "0"),
		rec("USF Centro", "DS III", "Dipirona", "10"),
	})
	log := logger.Nop()
	dashboard := analytics.NewDashboardUseCase(table, analytics.Limits{TopN: 10, TopPerDistrict: 3}, log)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		DashboardUC: dashboard,
		ReportUC:    analytics.NewReportUseCase(dashboard, gen),
		Log:         log,
	})
	return app
}

func doGet(t *testing.T, app *fiber.App, target string) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestGetOptions(t *testing.T) {
	app := buildTestApp(t, &fakePDF{})

	resp := doGet(t, app, "/api/options")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.OptionsDTO
	decodeJSON(t, resp, &out)
	assert.Equal(t, []string{"DS I", "DS II", "DS III"}, out.Districts)
	assert.Equal(t, []string{"all", "USF Alto", "USF Centro"}, out.Units)
	require.Len(t, out.Criticalities, 4)
	assert.Equal(t, "all", out.Criticalities[0].Code)
	labels := []string{out.Criticalities[1].Label, out.Criticalities[2].Label, out.Criticalities[3].Label}
	assert.Equal(t, []string{"Abastecido", "Alerta", "Crítico"}, labels, "etiquetas en orden alfabético")
}

func TestGetDashboard_Defaults(t *testing.T) {
	app := buildTestApp(t, &fakePDF{})

	resp := doGet(t, app, "/api/dashboard")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.DashboardDTO
	decodeJSON(t, resp, &out)
	assert.Equal(t, "DS I", out.Selection.District)
	assert.Equal(t, "snap-http", out.Snapshot.ID)
	require.NotEmpty(t, out.TopProducts)
	assert.Equal(t, "Losartana", out.TopProducts[0].Product)
	assert.True(t, decimal.NewFromInt(900).Equal(out.TopProducts[0].Quantity))
	require.Len(t, out.Warnings, 1)
	assert.Equal(t, "UNIT_MULTIPLE_DISTRICTS", out.Warnings[0].Code)
}

func TestGetDashboard_StockFiltradoPorDistrito(t *testing.T) {
	app := buildTestApp(t, &fakePDF{})

	cases := map[string]struct {
		target   string
		district string
		want     []string
	}{
		"distrito + criticidad": {
			target:   "/api/dashboard?district=DS%20I&criticality=critical",
			district: "DS I",
			want:     []string{},
		},
		"distrito + unidad + criticidad": {
			target:   "/api/dashboard?district=DS%20II&unit=USF%20Centro&criticality=critical",
			district: "DS II",
			want:     []string{"Insulina"},
		},
		"distrito + criticidad abastecido": {
			target:   "/api/dashboard?district=DS%20I&criticality=stocked",
			district: "DS I",
			want:     []string{"Losartana", "Metformina"},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			resp := doGet(t, app, tc.target)
			require.Equal(t, fiber.StatusOK, resp.StatusCode)

			var out dto.DashboardDTO
			decodeJSON(t, resp, &out)
			assert.Equal(t, tc.district, out.Selection.District)

			got := make([]string, 0, len(out.Stock))
			for _, r := range out.Stock {
				require.NotNil(t, r.District)
				assert.Equal(t, tc.district, *r.District)
				got = append(got, r.Product)
			}
			assert.ElementsMatch(t, tc.want, got)
		})
	}
}

func TestGetDashboard_DistritoDesconocido(t *testing.T) {
	app := buildTestApp(t, &fakePDF{})

	resp := doGet(t, app, "/api/dashboard?district=DS%20IX")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var body dto.ErrorResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, "UNKNOWN_DISTRICT", body.Code)
}

func TestGetDashboard_CriticidadInvalida(t *testing.T) {
	app := buildTestApp(t, &fakePDF{})

	resp := doGet(t, app, "/api/dashboard?criticality=urgente")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body dto.ErrorResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, "INVALID_PARAMS", body.Code)
}

func TestGetDashboard_TopNNoNumerico(t *testing.T) {
	app := buildTestApp(t, &fakePDF{})

	resp := doGet(t, app, "/api/dashboard?top_n=diez")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetTopProducts_N(t *testing.T) {
	app := buildTestApp(t, &fakePDF{})

	resp := doGet(t, app, "/api/products/top?n=2")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out []dto.ProductTotalDTO
	decodeJSON(t, resp, &out)
	require.Len(t, out, 2)
	assert.Equal(t, "Losartana", out[0].Product)
	assert.Equal(t, "Metformina", out[1].Product)
	assert.Equal(t, 2, out[1].Rank)
}

func TestGetDistrictTopProducts_PathConEspacios(t *testing.T) {
	app := buildTestApp(t, &fakePDF{})

	resp := doGet(t, app, "/api/districts/DS%20II/top-products")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out []dto.ProductTotalDTO
	decodeJSON(t, resp, &out)
	require.Len(t, out, 2)
	assert.Equal(t, "Losartana", out[0].Product)
	assert.Equal(t, "Insulina", out[1].Product)
}

func TestGetDistrictTopProducts_Desconocido(t *testing.T) {
	app := buildTestApp(t, &fakePDF{})

	resp := doGet(t, app, "/api/districts/Norte/top-products")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetTopPerDistrict(t *testing.T) {
	app := buildTestApp(t, &fakePDF{})

	resp := doGet(t, app, "/api/districts/top-products?k=1")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out []dto.DistrictProductTotalDTO
	decodeJSON(t, resp, &out)
	require.Len(t, out, 3, "uno por distrito")
	assert.Equal(t, "DS I", out[0].District)
	assert.Equal(t, "Losartana", out[0].Product)
}

func TestGetStock_FiltroCriticidad(t *testing.T) {
	app := buildTestApp(t, &fakePDF{})

	resp := doGet(t, app, "/api/stock?criticality=critical")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.StockTableDTO
	decodeJSON(t, resp, &out)
	require.Equal(t, 1, out.Total)
	assert.Equal(t, "Insulina", out.Rows[0].Product)
	assert.Equal(t, "Crítico", out.Rows[0].Criticality)
	require.NotNil(t, out.Rows[0].District)
	assert.Equal(t, "DS II", *out.Rows[0].District, "la unidad en conflicto usa el primer distrito")
}

func TestGetStock_UnidadDesconocida(t *testing.T) {
	app := buildTestApp(t, &fakePDF{})

	resp := doGet(t, app, "/api/stock?unit=USF%20Nada")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetCriticalityByDistrict(t *testing.T) {
	app := buildTestApp(t, &fakePDF{})

	resp := doGet(t, app, "/api/stock/criticality-by-district")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out []dto.CriticalityCountDTO
	decodeJSON(t, resp, &out)
	assert.NotEmpty(t, out)
	for _, c := range out {
		assert.NotEqual(t, "DS III", c.District, "las filas de USF Centro se asocian a DS II")
	}
}

func TestReportPDF(t *testing.T) {
	gen := &fakePDF{}
	app := buildTestApp(t, gen)

	resp := doGet(t, app, "/api/report.pdf?district=DS%20II")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), `filename="medicamentos_DS_II.pdf"`)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3 fake", string(body))
	require.NotNil(t, gen.last)
	assert.Equal(t, "DS II", gen.last.Selection.District)
}

func TestReportPDF_ErrorGenerador(t *testing.T) {
	app := buildTestApp(t, &fakePDF{err: errors.New("sin fuente")})

	resp := doGet(t, app, "/api/report.pdf")
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var body dto.ErrorResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, "INTERNAL", body.Code)
}
