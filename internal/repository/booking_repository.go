package repository

import (
	"context"

	"gorm.io/gorm"

	"spotbook/internal/model"
)

// BookingRepository defines booking persistence operations.
//
// Create and Update never look for overlapping bookings themselves; the
// database rejects the statement and the error comes back as
// ErrBookingOverlap.
type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	Update(ctx context.Context, booking *model.Booking) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Booking, error)
	ListBySpotDetailed(ctx context.Context, spotID uint) ([]model.Booking, error)
	ListBySpotPublic(ctx context.Context, spotID uint) ([]model.PublicBooking, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Booking, error)
}

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository.
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	return translateBooking(r.db.WithContext(ctx).Omit("User", "Spot").Create(booking).Error)
}

// Update rewrites the date range of an existing booking.
func (r *bookingRepository) Update(ctx context.Context, booking *model.Booking) error {
	return translateBooking(r.db.WithContext(ctx).
		Model(booking).
		Select("start_date", "end_date", "updated_at").
		Updates(booking).Error)
}

func (r *bookingRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Booking{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uint) (*model.Booking, error) {
	var booking model.Booking
	if err := r.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListBySpotDetailed is the owner's view: every booking with its renter.
func (r *bookingRepository) ListBySpotDetailed(ctx context.Context, spotID uint) ([]model.Booking, error) {
	var bookings []model.Booking
	if err := r.db.WithContext(ctx).
		Where("spot_id = ?", spotID).
		Preload("User").
		Order("start_date").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListBySpotPublic selects only the spot and the dates, never the renter.
func (r *bookingRepository) ListBySpotPublic(ctx context.Context, spotID uint) ([]model.PublicBooking, error) {
	var bookings []model.PublicBooking
	if err := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Select("spot_id", "start_date", "end_date").
		Where("spot_id = ?", spotID).
		Order("start_date").
		Scan(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListByUser returns a renter's bookings with the booked spot.
func (r *bookingRepository) ListByUser(ctx context.Context, userID uint) ([]model.Booking, error) {
	var bookings []model.Booking
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Spot").
		Preload("Spot.Images", spotImagesOnly).
		Order("start_date").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}
