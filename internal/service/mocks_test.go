package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"spotbook/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByCredential(ctx context.Context, credential string) (*model.User, error) {
	args := m.Called(ctx, credential)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

// MockSpotRepository is a mock implementation of SpotRepository.
type MockSpotRepository struct {
	mock.Mock
}

func (m *MockSpotRepository) Create(ctx context.Context, spot *model.Spot) error {
	return m.Called(ctx, spot).Error(0)
}

func (m *MockSpotRepository) Update(ctx context.Context, spot *model.Spot) error {
	return m.Called(ctx, spot).Error(0)
}

func (m *MockSpotRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockSpotRepository) FindByID(ctx context.Context, id uint) (*model.Spot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Spot), args.Error(1)
}

func (m *MockSpotRepository) FindWithOwner(ctx context.Context, id uint) (*model.Spot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Spot), args.Error(1)
}

func (m *MockSpotRepository) List(ctx context.Context, filter model.SpotFilter, limit, offset int) ([]model.Spot, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Spot), args.Error(1)
}

func (m *MockSpotRepository) ListByOwner(ctx context.Context, ownerID uint) ([]model.Spot, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Spot), args.Error(1)
}

func (m *MockSpotRepository) Stats(ctx context.Context, id uint) (model.SpotStats, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.SpotStats), args.Error(1)
}

func (m *MockSpotRepository) ImageURLs(ctx context.Context, id uint) ([]string, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockReviewRepository is a mock implementation of ReviewRepository.
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *model.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *MockReviewRepository) Update(ctx context.Context, review *model.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockReviewRepository) FindByID(ctx context.Context, id uint) (*model.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewRepository) ListBySpot(ctx context.Context, spotID uint) ([]model.Review, error) {
	args := m.Called(ctx, spotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *MockReviewRepository) ListByUser(ctx context.Context, userID uint) ([]model.Review, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

// MockBookingRepository is a mock implementation of BookingRepository.
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *MockBookingRepository) Update(ctx context.Context, booking *model.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *MockBookingRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBookingRepository) FindByID(ctx context.Context, id uint) (*model.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListBySpotDetailed(ctx context.Context, spotID uint) ([]model.Booking, error) {
	args := m.Called(ctx, spotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListBySpotPublic(ctx context.Context, spotID uint) ([]model.PublicBooking, error) {
	args := m.Called(ctx, spotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PublicBooking), args.Error(1)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, userID uint) ([]model.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Booking), args.Error(1)
}

// MockImageRepository is a mock implementation of ImageRepository.
type MockImageRepository struct {
	mock.Mock
}

func (m *MockImageRepository) Create(ctx context.Context, image *model.Image) error {
	return m.Called(ctx, image).Error(0)
}

func (m *MockImageRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockImageRepository) FindByID(ctx context.Context, id uint) (*model.Image, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Image), args.Error(1)
}

func (m *MockImageRepository) CountByTarget(ctx context.Context, target model.ImageTarget) (int64, error) {
	args := m.Called(ctx, target)
	return args.Get(0).(int64), args.Error(1)
}
