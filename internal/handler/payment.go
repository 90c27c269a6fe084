package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/cabin-reservation/internal/booking"
	"github.com/iliyamo/cabin-reservation/internal/model"
	"github.com/iliyamo/cabin-reservation/internal/repository"
)

// PaymentHandler serves the payment ledger.  Recording and reversing
// are staff operations; guests can read entries on their own
// reservations.
type PaymentHandler struct {
	Engine *booking.Engine
}

func NewPaymentHandler(e *booking.Engine) *PaymentHandler {
	if e == nil {
		panic("nil engine passed to NewPaymentHandler")
	}
	return &PaymentHandler{Engine: e}
}

type recordPaymentReq struct {
	Amount string `json:"amount"` // decimal string, e.g. "120.50"
	Method string `json:"method"` // CASH | CARD | TRANSFER
	PaidOn string `json:"paid_on,omitempty"`
}

type paymentResp struct {
	ID              uint64          `json:"id"`
	ReservationID   uint64          `json:"reservation_id"`
	ReservationCode string          `json:"reservation_code,omitempty"`
	OwnerID         uint64          `json:"owner_id,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Method          string          `json:"method"`
	PaidOn          string          `json:"paid_on"`
	IsActive        bool            `json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func paymentFrom(p model.Payment) paymentResp {
	return paymentResp{
		ID:            p.ID,
		ReservationID: p.ReservationID,
		Amount:        p.Amount,
		Method:        p.Method,
		PaidOn:        p.PaidOn.Format("2006-01-02"),
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func paymentRowFrom(row repository.PaymentRow) paymentResp {
	out := paymentFrom(row.Payment)
	out.ReservationCode = row.ReservationCode
	out.OwnerID = row.OwnerID
	return out
}

// Record handles POST /v1/reservations/:id/payments.
func (h *PaymentHandler) Record(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	reservationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || reservationID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var req recordPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount must be a decimal string"})
	}

	in := booking.RecordPaymentInput{
		ReservationID: reservationID,
		Amount:        amount,
		Method:        strings.ToUpper(strings.TrimSpace(req.Method)),
	}
	if req.PaidOn != "" {
		paidOn, err := parseDate(req.PaidOn)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "paid_on must be YYYY-MM-DD"})
		}
		in.PaidOn = &paidOn
	}

	p, err := h.Engine.RecordPayment(c.Request().Context(), in, actor)
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.JSON(http.StatusCreated, paymentFrom(*p))
}

// Reverse handles POST /v1/payments/:id/reverse.
func (h *PaymentHandler) Reverse(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	paymentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || paymentID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payment id"})
	}
	p, err := h.Engine.ReversePayment(c.Request().Context(), paymentID, actor)
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.JSON(http.StatusOK, paymentFrom(*p))
}

// Get handles GET /v1/payments/:id.
func (h *PaymentHandler) Get(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	paymentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || paymentID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payment id"})
	}
	row, err := h.Engine.GetPayment(c.Request().Context(), paymentID, actor)
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.JSON(http.StatusOK, paymentRowFrom(*row))
}

// List handles GET /v1/payments with optional filters: reservation_id,
// method, active, code, paid_from, paid_to, limit, offset.  Guests are
// scoped to their own reservations.
func (h *PaymentHandler) List(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var f repository.PaymentFilter
	f.Method = strings.ToUpper(strings.TrimSpace(c.QueryParam("method")))
	f.Code = strings.TrimSpace(c.QueryParam("code"))
	if raw := c.QueryParam("reservation_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "reservation_id must be an integer"})
		}
		f.ReservationID = id
	}
	if raw := c.QueryParam("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "active must be a boolean"})
		}
		f.IsActive = &active
	}
	var err error
	if f.PaidFrom, err = optionalDate(c.QueryParam("paid_from")); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "paid_from must be YYYY-MM-DD"})
	}
	if f.PaidTo, err = optionalDate(c.QueryParam("paid_to")); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "paid_to must be YYYY-MM-DD"})
	}
	f.Limit, _ = strconv.Atoi(c.QueryParam("limit"))
	f.Offset, _ = strconv.Atoi(c.QueryParam("offset"))

	out, err := h.Engine.ListPayments(c.Request().Context(), f, actor)
	if err != nil {
		return writeEngineError(c, err)
	}
	rows := make([]paymentResp, 0, len(out))
	for _, row := range out {
		rows = append(rows, paymentRowFrom(row))
	}
	return c.JSON(http.StatusOK, echo.Map{"payments": rows, "count": len(rows)})
}
