package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"

	apperrors "spotbook/internal/errors"
	"spotbook/internal/model"
	"spotbook/internal/repository"
)

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// SpotBookings is a spot's booking list in the shape the viewer may see:
// Detailed for the owner, Public for everybody else.
type SpotBookings struct {
	Owner    bool
	Detailed []model.Booking
	Public   []model.PublicBooking
}

// BookingService exposes booking operations.
type BookingService interface {
	Create(ctx context.Context, spotID, userID uint, dates DateRange) (*model.Booking, error)
	Update(ctx context.Context, booking *model.Booking, dates DateRange) (*model.Booking, error)
	Delete(ctx context.Context, booking *model.Booking) error
	ListForSpot(ctx context.Context, spotID uint, owner bool) (*SpotBookings, error)
	ListMine(ctx context.Context, userID uint) ([]model.Booking, error)
}

type bookingService struct {
	repo repository.BookingRepository
	now  func() time.Time
}

// NewBookingService builds a BookingService. now is the server clock; the
// current UTC date decides what counts as the past.
func NewBookingService(repo repository.BookingRepository, now func() time.Time) BookingService {
	if now == nil {
		now = time.Now
	}
	return &bookingService{repo: repo, now: now}
}

// Create books a spot. Overlaps are not looked up here: the insert either
// succeeds or the storage guard rejects it.
func (s *bookingService) Create(ctx context.Context, spotID, userID uint, dates DateRange) (*model.Booking, error) {
	if err := s.checkDates(dates); err != nil {
		return nil, err
	}

	booking := &model.Booking{
		SpotID:    spotID,
		UserID:    userID,
		StartDate: datatypes.Date(dates.Start),
		EndDate:   datatypes.Date(dates.End),
	}
	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, conflict(err)
	}
	return booking, nil
}

// Update moves a booking to new dates under the same rules as Create.
func (s *bookingService) Update(ctx context.Context, booking *model.Booking, dates DateRange) (*model.Booking, error) {
	if err := s.checkDates(dates); err != nil {
		return nil, err
	}

	booking.StartDate = datatypes.Date(dates.Start)
	booking.EndDate = datatypes.Date(dates.End)
	if err := s.repo.Update(ctx, booking); err != nil {
		return nil, conflict(err)
	}
	return booking, nil
}

func (s *bookingService) Delete(ctx context.Context, booking *model.Booking) error {
	if err := s.repo.Delete(ctx, booking.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("Booking")
		}
		return fmt.Errorf("delete booking: %w", err)
	}
	return nil
}

// ListForSpot never selects renter columns for a non-owner.
func (s *bookingService) ListForSpot(ctx context.Context, spotID uint, owner bool) (*SpotBookings, error) {
	result := &SpotBookings{Owner: owner}
	var err error
	if owner {
		result.Detailed, err = s.repo.ListBySpotDetailed(ctx, spotID)
	} else {
		result.Public, err = s.repo.ListBySpotPublic(ctx, spotID)
	}
	if err != nil {
		return nil, fmt.Errorf("list spot bookings: %w", err)
	}
	return result, nil
}

func (s *bookingService) ListMine(ctx context.Context, userID uint) ([]model.Booking, error) {
	bookings, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list own bookings: %w", err)
	}
	return bookings, nil
}

// checkDates rejects ranges touching the past, then inverted ranges.
// A single-day booking (start == end) is allowed.
func (s *bookingService) checkDates(dates DateRange) error {
	today := Today(s.now())
	if dates.Start.Before(today) || dates.End.Before(today) {
		return apperrors.PastDateBooking()
	}
	if dates.End.Before(dates.Start) {
		return apperrors.Validation(map[string]string{
			"endDate": "endDate cannot come before startDate",
		})
	}
	return nil
}

// Today truncates t to midnight of its UTC calendar date.
func Today(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func conflict(err error) error {
	if errors.Is(err, repository.ErrBookingOverlap) {
		return apperrors.BookingConflict()
	}
	return fmt.Errorf("save booking: %w", err)
}
