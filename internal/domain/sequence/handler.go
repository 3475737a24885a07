package sequence

import (
	"net/http"
	"time"

	"github.com/google/uuid"
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
	g := api.Group("", auth.RequireRole("admin", "physician"))
	g.POST("/sequences/prescription-number", h.AllocatePrescriptionNumber)
}

// AllocatePrescriptionNumber issues the next prescription document number
// for the caller's location in the current year. Used by callers that
// must know the number before finalizing a print artifact.
func (h *Handler) AllocatePrescriptionNumber(c echo.Context) error {
	var body struct {
		LocationID uuid.UUID `json:"location_id"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if body.LocationID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "location_id is required")
	}

	year := time.Now().UTC().Year()
	number, err := h.svc.Allocate(c.Request().Context(), year, body.LocationID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"sequential": number})
}
