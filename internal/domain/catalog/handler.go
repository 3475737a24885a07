package catalog

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/occuhealth/clinic/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/catalog", auth.RequireRole("admin", "physician", "nurse", "receptionist"))
	g.GET("/diagnosis-codes", h.SearchDiagnosisCodes)
	g.GET("/procedure-codes", h.SearchProcedureCodes)
	g.GET("/specialties", h.ListSpecialties)
	g.GET("/locations", h.ListLocations)
	g.GET("/products", h.SearchProducts)
}

func searchParams(c echo.Context) (string, int) {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return c.QueryParam("q"), limit
}

func (h *Handler) SearchDiagnosisCodes(c echo.Context) error {
	query, limit := searchParams(c)
	codes, err := h.svc.SearchDiagnosisCodes(c.Request().Context(), query, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, codes)
}

func (h *Handler) SearchProcedureCodes(c echo.Context) error {
	query, limit := searchParams(c)
	codes, err := h.svc.SearchProcedureCodes(c.Request().Context(), query, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, codes)
}

func (h *Handler) ListSpecialties(c echo.Context) error {
	specs, err := h.svc.ListSpecialties(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, specs)
}

func (h *Handler) ListLocations(c echo.Context) error {
	locs, err := h.svc.ListLocations(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, locs)
}

func (h *Handler) SearchProducts(c echo.Context) error {
	query, limit := searchParams(c)
	products, err := h.svc.SearchProducts(c.Request().Context(), query, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, products)
}
