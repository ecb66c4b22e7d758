package errors

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   Kind
	}{
		{"not found", NotFound("Spot"), http.StatusNotFound, KindNotFound},
		{"wrapped conflict", fmt.Errorf("create booking: %w", BookingConflict()), http.StatusForbidden, KindBookingConflict},
		{"past date", PastDateBooking(), http.StatusBadRequest, KindPastDateBooking},
		{"wrong image", WrongImageType("spot"), http.StatusBadRequest, KindWrongImageType},
		{"plain error", fmt.Errorf("boom"), http.StatusInternalServerError, KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, got.StatusCode)
			assert.Equal(t, tt.wantKind, got.Kind)
		})
	}
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "Spot couldn't be found", NotFound("Spot").Message)
	assert.Equal(t, "Not a review image!", WrongImageType("review").Message)
	assert.Equal(t, map[string]string{"address": "Spot with that address already exists."}, DuplicateSpot("address").Errors)
	assert.Equal(t, []string{"The provided credentials were invalid."}, AuthenticationFailed().Errors)
}

func TestIsKind(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", DuplicateReview())
	assert.True(t, IsKind(err, KindDuplicateReview))
	assert.False(t, IsKind(err, KindForbidden))
}

func TestHandlerWritesEnvelope(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantTitle  string
	}{
		{"booking conflict", BookingConflict(), http.StatusForbidden, "Sorry, this spot is already booked for the specified dates"},
		{"echo not found", echo.ErrNotFound, http.StatusNotFound, "Not Found"},
		{"unexpected", fmt.Errorf("db down"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			Handler(log)(tt.err, c)

			require.Equal(t, tt.wantStatus, rec.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantTitle, body.Title)
			assert.Equal(t, tt.wantStatus, body.StatusCode)
		})
	}
}

func TestHandlerBookingConflictCarriesBothFields(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

	Handler(log)(BookingConflict(), c)

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Start date conflicts with an existing booking", body.Errors["startDate"])
	assert.Equal(t, "End date conflicts with an existing booking", body.Errors["endDate"])
}
