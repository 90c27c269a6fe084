package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cabin-reservation/internal/booking"
)

// AvailabilityHandler serves the public cabin search.
type AvailabilityHandler struct {
	Engine *booking.Engine
}

func NewAvailabilityHandler(e *booking.Engine) *AvailabilityHandler {
	return &AvailabilityHandler{Engine: e}
}

// parseDate accepts calendar dates in YYYY-MM-DD form.
func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// Find handles GET /v1/availability?check_in=...&check_out=...&guests=N.
// It returns every cabin free for the whole half-open stay window,
// each with a total price for the requested party.
func (h *AvailabilityHandler) Find(c echo.Context) error {
	checkIn, err := parseDate(c.QueryParam("check_in"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in must be YYYY-MM-DD"})
	}
	checkOut, err := parseDate(c.QueryParam("check_out"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be YYYY-MM-DD"})
	}
	guests := 1
	if raw := c.QueryParam("guests"); raw != "" {
		guests, err = strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "guests must be an integer"})
		}
	}

	out, err := h.Engine.FindAvailable(c.Request().Context(), checkIn, checkOut, guests)
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"cabins": out, "count": len(out)})
}
