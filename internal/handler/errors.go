// Package handler exposes the HTTP surface of the reservation engine.
// Handlers stay thin: they bind input, call one engine operation and
// translate the outcome.  All business rules live in internal/booking.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cabin-reservation/internal/booking"
)

// currentActor rebuilds the acting user from the claims JWTAuth stored
// in the context.
func currentActor(c echo.Context) (booking.Actor, bool) {
	id, ok := c.Get("user_id").(uint64)
	if !ok || id == 0 {
		return booking.Actor{}, false
	}
	role, _ := c.Get("role").(string)
	return booking.Actor{UserID: id, Role: booking.Role(role)}, true
}

// engineStatus maps an engine error kind to an HTTP status.  Anything
// that is not an engine error is a server fault.
func engineStatus(k booking.Kind) int {
	switch k {
	case booking.KindValidation:
		return http.StatusBadRequest
	case booking.KindForbidden:
		return http.StatusForbidden
	case booking.KindNotFound:
		return http.StatusNotFound
	case booking.KindResourceUnavailable,
		booking.KindConflict,
		booking.KindInvalidTransition,
		booking.KindCancellationWindow,
		booking.KindOverpayment,
		booking.KindAlreadyReversed,
		booking.KindAlreadyCancelled:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// writeEngineError renders an engine error as JSON.  The error field is
// the stable kind label; structured context (field problems, offending
// ids, remaining payable) is included when the error carries it.
func writeEngineError(c echo.Context, err error) error {
	be, ok := err.(*booking.Error)
	if !ok {
		c.Logger().Errorf("internal error: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal_error"})
	}
	body := echo.Map{
		"error":   be.Kind.String(),
		"message": be.Message,
	}
	if len(be.Fields) > 0 {
		body["fields"] = be.Fields
	}
	if len(be.IDs) > 0 {
		body["ids"] = be.IDs
	}
	if be.Kind == booking.KindOverpayment {
		body["remaining"] = be.Remaining.StringFixed(2)
	}
	return c.JSON(engineStatus(be.Kind), body)
}
