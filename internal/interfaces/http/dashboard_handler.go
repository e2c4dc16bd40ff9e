package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/medicamentos-api/internal/application/analytics"
	"github.com/jhoicas/medicamentos-api/internal/application/dto"
	"github.com/jhoicas/medicamentos-api/pkg/logger"
)

// DashboardHandler maneja los endpoints del tablero de distribución de medicamentos.
// Cada petición recalcula las vistas desde el snapshot con los filtros recibidos.
type DashboardHandler struct {
	uc  *appanalytics.DashboardUseCase
	log *logger.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: log}
}

// GetOptions godoc
// @Summary      Valores de los selectores (distritos, unidades, criticidades)
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.OptionsDTO
// @Router       /api/options [get]
func (h *DashboardHandler) GetOptions(c *fiber.Ctx) error {
	out, err := h.uc.GetOptions(c.Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// GetDashboard godoc
// @Summary      Tablero completo para una combinación de filtros
// @Description  Top N general, top 3 por distrito, top N del distrito, tabla de criticidad
// @Description  filtrada y conteo de criticidad por distrito.
// @Tags         dashboard
// @Produce      json
// @Param        district     query  string  false  "Distrito (default: primero en orden alfabético)"
// @Param        unit         query  string  false  "Unidad o 'all'"
// @Param        criticality  query  string  false  "critical|alert|stocked o 'all'"
// @Param        top_n        query  int     false  "Tamaño de los rankings (default 10, max 200)"
// @Success      200  {object}  dto.DashboardDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	var req dto.DashboardRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c)
	}
	out, err := h.uc.GetDashboard(c.Context(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// GetTopProducts godoc
// @Summary      Top N medicamentos más distribuidos
// @Tags         products
// @Produce      json
// @Param        n  query  int  false  "Cantidad (default 10, max 200)"
// @Success      200  {array}  dto.ProductTotalDTO
// @Router       /api/products/top [get]
func (h *DashboardHandler) GetTopProducts(c *fiber.Ctx) error {
	var req dto.TopProductsRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c)
	}
	out, err := h.uc.GetTopProducts(c.Context(), req.N)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// GetTopPerDistrict godoc
// @Summary      Top K medicamentos de cada distrito
// @Tags         districts
// @Produce      json
// @Param        k  query  int  false  "Cantidad por distrito (default 3)"
// @Success      200  {array}  dto.DistrictProductTotalDTO
// @Router       /api/districts/top-products [get]
func (h *DashboardHandler) GetTopPerDistrict(c *fiber.Ctx) error {
	var req dto.TopPerDistrictRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c)
	}
	out, err := h.uc.GetTopPerDistrict(c.Context(), req.K)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// GetDistrictTopProducts godoc
// @Summary      Top N medicamentos dentro de un distrito
// @Tags         districts
// @Produce      json
// @Param        district  path   string  true   "Distrito"
// @Param        n         query  int     false  "Cantidad (default 10, max 200)"
// @Success      200  {array}   dto.ProductTotalDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/districts/{district}/top-products [get]
func (h *DashboardHandler) GetDistrictTopProducts(c *fiber.Ctx) error {
	district, err := url.PathUnescape(c.Params("district"))
	if err != nil || district == "" {
		return invalidParams(c)
	}
	var req dto.TopProductsRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c)
	}
	out, err := h.uc.GetDistrictTopProducts(c.Context(), district, req.N)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// GetStock godoc
// @Summary      Tabla de criticidad por unidad y producto
// @Tags         stock
// @Produce      json
// @Param        district     query  string  false  "Distrito o 'all'"
// @Param        unit         query  string  false  "Unidad o 'all'"
// @Param        criticality  query  string  false  "critical|alert|stocked o 'all'"
// @Success      200  {object}  dto.StockTableDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock [get]
func (h *DashboardHandler) GetStock(c *fiber.Ctx) error {
	var req dto.StockRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c)
	}
	out, err := h.uc.GetStock(c.Context(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// GetCriticalityByDistrict godoc
// @Summary      Número de productos por distrito y criticidad
// @Tags         stock
// @Produce      json
// @Success      200  {array}  dto.CriticalityCountDTO
// @Router       /api/stock/criticality-by-district [get]
func (h *DashboardHandler) GetCriticalityByDistrict(c *fiber.Ctx) error {
	out, err := h.uc.GetCriticalityByDistrict(c.Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

func (h *DashboardHandler) fail(c *fiber.Ctx, err error) error {
	h.log.Warn().Err(err).Str("path", c.Path()).Msg("petición rechazada")
	return writeError(c, err)
}
