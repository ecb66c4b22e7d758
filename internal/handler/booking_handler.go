package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"spotbook/internal/access"
	"spotbook/internal/model"
	"spotbook/internal/service"
)

// BookingHandler handles booking endpoints.
type BookingHandler struct {
	bookings service.BookingService
	loaders  access.Loaders
}

// NewBookingHandler creates a new booking handler.
func NewBookingHandler(bookings service.BookingService, loaders access.Loaders) *BookingHandler {
	return &BookingHandler{bookings: bookings, loaders: loaders}
}

// BookingRequest is the body of booking create and update.
type BookingRequest struct {
	StartDate string `json:"startDate" validate:"required,datetime=2006-01-02" msg:"Start date YYYY-MM-DD is required" example:"2026-11-01"`
	EndDate   string `json:"endDate" validate:"required,datetime=2006-01-02" msg:"End date YYYY-MM-DD is required" example:"2026-11-05"`
}

// dates is only called after validation, so both fields parse.
func (r BookingRequest) dates() service.DateRange {
	start, _ := time.Parse(model.DateLayout, r.StartDate)
	end, _ := time.Parse(model.DateLayout, r.EndDate)
	return service.DateRange{Start: start, End: end}
}

// ListForSpot godoc
// @Summary Bookings of a spot
// @Description The owner sees every booking with its renter; anyone else sees dates only.
// @Tags bookings
// @Produce json
// @Param id path int true "Spot ID"
// @Success 200 {object} BookingListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /spots/{id}/bookings [get]
func (h *BookingHandler) ListForSpot(c echo.Context) error {
	req, err := authorize(c, access.RequireAuth(), byID(c, "Spot", h.loaders.Spot))
	if err != nil {
		return err
	}
	bookings, err := h.bookings.ListForSpot(c.Request().Context(), req.Spot.ID, req.IsOwner())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newSpotBookings(bookings))
}

// Create godoc
// @Summary Book a spot
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path int true "Spot ID"
// @Param request body BookingRequest true "Dates"
// @Success 200 {object} BookingResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /spots/{id}/bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	req, err := authorize(c, access.RequireAuth(), byID(c, "Spot", h.loaders.Spot), access.RefuseOwner())
	if err != nil {
		return err
	}
	var body BookingRequest
	if err := bind(c, &body); err != nil {
		return err
	}

	booking, err := h.bookings.Create(c.Request().Context(), req.Spot.ID, req.Viewer.ID, body.dates())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newBookingResponse(booking))
}

// ListMine godoc
// @Summary Bookings of the current user
// @Tags bookings
// @Produce json
// @Success 200 {object} BookingListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /bookings/current [get]
func (h *BookingHandler) ListMine(c echo.Context) error {
	req, err := authorize(c, access.RequireAuth())
	if err != nil {
		return err
	}
	bookings, err := h.bookings.ListMine(c.Request().Context(), req.Viewer.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newBookingList(bookings))
}

// Update godoc
// @Summary Move a booking
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path int true "Booking ID"
// @Param request body BookingRequest true "Dates"
// @Success 200 {object} BookingResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /bookings/{id} [put]
func (h *BookingHandler) Update(c echo.Context) error {
	req, err := authorize(c, access.RequireAuth(), byID(c, "Booking", h.loaders.Booking), access.RequireOwner())
	if err != nil {
		return err
	}
	var body BookingRequest
	if err := bind(c, &body); err != nil {
		return err
	}

	booking, err := h.bookings.Update(c.Request().Context(), req.Booking, body.dates())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newBookingResponse(booking))
}

// Delete godoc
// @Summary Cancel a booking
// @Tags bookings
// @Produce json
// @Param id path int true "Booking ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /bookings/{id} [delete]
func (h *BookingHandler) Delete(c echo.Context) error {
	req, err := authorize(c, access.RequireAuth(), byID(c, "Booking", h.loaders.Booking), access.RequireOwner())
	if err != nil {
		return err
	}
	if err := h.bookings.Delete(c.Request().Context(), req.Booking); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleted())
}
