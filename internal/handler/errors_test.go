package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cabin-reservation/internal/booking"
)

func TestEngineStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, engineStatus(booking.KindValidation))
	assert.Equal(t, http.StatusNotFound, engineStatus(booking.KindNotFound))
	assert.Equal(t, http.StatusForbidden, engineStatus(booking.KindForbidden))
	for _, k := range []booking.Kind{
		booking.KindResourceUnavailable,
		booking.KindConflict,
		booking.KindInvalidTransition,
		booking.KindCancellationWindow,
		booking.KindOverpayment,
		booking.KindAlreadyReversed,
		booking.KindAlreadyCancelled,
	} {
		assert.Equal(t, http.StatusConflict, engineStatus(k), "kind %s", k)
	}
	assert.Equal(t, http.StatusInternalServerError, engineStatus(0))
}

func TestWriteEngineErrorOverpayment(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := &booking.Error{
		Kind:      booking.KindOverpayment,
		Message:   "payment exceeds total; remaining payable is 50.00",
		Remaining: decimal.RequireFromString("50.00"),
	}
	require.NoError(t, writeEngineError(c, err))
	assert.Equal(t, http.StatusConflict, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "overpayment_rejected", body["error"])
	assert.Equal(t, "50.00", body["remaining"])
}

func TestWriteEngineErrorValidationFields(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := &booking.Error{
		Kind:    booking.KindValidation,
		Message: "invalid input",
		Fields:  map[string]string{"check_out": "must be after check_in"},
	}
	require.NoError(t, writeEngineError(c, err))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "validation_error", body.Error)
	assert.Equal(t, "must be after check_in", body.Fields["check_out"])
}
