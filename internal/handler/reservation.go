package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cabin-reservation/internal/booking"
	"github.com/iliyamo/cabin-reservation/internal/repository"
)

// ReservationHandler serves booking creation, lookup, listing and
// status transitions.  Every method delegates to one engine operation;
// authorization decisions are the engine's, not the handler's.
type ReservationHandler struct {
	Engine *booking.Engine
}

func NewReservationHandler(e *booking.Engine) *ReservationHandler {
	if e == nil {
		panic("nil engine passed to NewReservationHandler")
	}
	return &ReservationHandler{Engine: e}
}

type createReservationReq struct {
	CheckIn    string   `json:"check_in"`  // YYYY-MM-DD
	CheckOut   string   `json:"check_out"` // YYYY-MM-DD
	GuestCount int      `json:"guest_count"`
	CabinIDs   []uint64 `json:"cabin_ids"`
	ServiceIDs []uint64 `json:"service_ids"`
}

type transitionReq struct {
	Status string `json:"status"`
}

// Create handles POST /v1/reservations.  The booked stay is the
// half-open range [check_in, check_out); both bounds are calendar
// dates.
func (h *ReservationHandler) Create(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in must be YYYY-MM-DD"})
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be YYYY-MM-DD"})
	}

	detail, err := h.Engine.CreateReservation(c.Request().Context(), booking.CreateReservationInput{
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		GuestCount: req.GuestCount,
		CabinIDs:   req.CabinIDs,
		ServiceIDs: req.ServiceIDs,
	}, actor)
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.JSON(http.StatusCreated, detail)
}

// Get handles GET /v1/reservations/:id.
func (h *ReservationHandler) Get(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	detail, err := h.Engine.GetReservation(c.Request().Context(), id, actor)
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

// List handles GET /v1/reservations with optional filters: status,
// paid, code, from, to, limit, offset.  Guests only ever see their own
// reservations regardless of filters.
func (h *ReservationHandler) List(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var f repository.ReservationFilter
	f.Status = strings.ToUpper(strings.TrimSpace(c.QueryParam("status")))
	f.Code = strings.TrimSpace(c.QueryParam("code"))
	if raw := c.QueryParam("paid"); raw != "" {
		paid, err := strconv.ParseBool(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "paid must be a boolean"})
		}
		f.IsFullyPaid = &paid
	}
	var err error
	if f.From, err = optionalDate(c.QueryParam("from")); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "from must be YYYY-MM-DD"})
	}
	if f.To, err = optionalDate(c.QueryParam("to")); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "to must be YYYY-MM-DD"})
	}
	f.Limit, _ = strconv.Atoi(c.QueryParam("limit"))
	f.Offset, _ = strconv.Atoi(c.QueryParam("offset"))

	out, err := h.Engine.ListReservations(c.Request().Context(), f, actor)
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": out, "count": len(out)})
}

// Status handles POST /v1/reservations/:id/status.  Guests may only
// cancel their own reservation and only outside the 24 hour window
// before check-in; staff drive the full state machine.
func (h *ReservationHandler) Status(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var req transitionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	target := strings.ToUpper(strings.TrimSpace(req.Status))
	if target == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status is required"})
	}

	detail, err := h.Engine.Transition(c.Request().Context(), id, target, actor)
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

// optionalDate parses an optional YYYY-MM-DD query value.
func optionalDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := parseDate(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
