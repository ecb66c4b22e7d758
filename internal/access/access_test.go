package access

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "spotbook/internal/errors"
	"spotbook/internal/model"
	"spotbook/internal/repository"
)

type MockSpotFinder struct{ mock.Mock }

func (m *MockSpotFinder) FindByID(ctx context.Context, id uint) (*model.Spot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Spot), args.Error(1)
}

type MockImageFinder struct{ mock.Mock }

func (m *MockImageFinder) FindByID(ctx context.Context, id uint) (*model.Image, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Image), args.Error(1)
}

type stubReviews map[uint]*model.Review

func (s stubReviews) FindByID(_ context.Context, id uint) (*model.Review, error) {
	if r, ok := s[id]; ok {
		return r, nil
	}
	return nil, repository.ErrNotFound
}

type stubBookings map[uint]*model.Booking

func (s stubBookings) FindByID(_ context.Context, id uint) (*model.Booking, error) {
	if b, ok := s[id]; ok {
		return b, nil
	}
	return nil, repository.ErrNotFound
}

var (
	owner    = &model.SessionUser{ID: 1, Username: "owner"}
	stranger = &model.SessionUser{ID: 2, Username: "stranger"}
)

func spotLoaders() (Loaders, *MockSpotFinder) {
	spots := new(MockSpotFinder)
	spots.On("FindByID", mock.Anything, uint(10)).Return(&model.Spot{ID: 10, OwnerID: owner.ID}, nil)
	spots.On("FindByID", mock.Anything, uint(99)).Return(nil, repository.ErrNotFound)
	return Loaders{Spots: spots}, spots
}

func TestRunOwnerOnlySpotAction(t *testing.T) {
	tests := []struct {
		name     string
		viewer   *model.SessionUser
		spotID   uint
		wantKind apperrors.Kind
	}{
		{"owner passes", owner, 10, ""},
		{"non owner is forbidden", stranger, 10, apperrors.KindForbidden},
		{"anonymous is unauthenticated", nil, 10, apperrors.KindUnauthenticated},
		{"missing spot is not found", owner, 99, apperrors.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loaders, _ := spotLoaders()
			req, err := Run(context.Background(), NewRequest(tt.viewer),
				RequireAuth(), loaders.Spot(tt.spotID), RequireOwner())

			if tt.wantKind == "" {
				require.NoError(t, err)
				require.NotNil(t, req.Spot)
				assert.True(t, req.IsOwner())
				return
			}
			assert.True(t, apperrors.IsKind(err, tt.wantKind), "got %v", err)
		})
	}
}

func TestRunStopsAtFirstFailure(t *testing.T) {
	loaders, spots := spotLoaders()
	_, err := Run(context.Background(), NewRequest(nil), RequireAuth(), loaders.Spot(10))

	assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthenticated))
	spots.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestRefuseOwner(t *testing.T) {
	loaders, _ := spotLoaders()

	_, err := Run(context.Background(), NewRequest(owner), RequireAuth(), loaders.Spot(10), RefuseOwner())
	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))

	req, err := Run(context.Background(), NewRequest(stranger), RequireAuth(), loaders.Spot(10), RefuseOwner())
	require.NoError(t, err)
	assert.False(t, req.IsOwner())
}

func TestGateWithoutLoaderIsAnError(t *testing.T) {
	_, err := Run(context.Background(), NewRequest(owner), RequireOwner())
	require.Error(t, err)
	assert.False(t, apperrors.IsKind(err, apperrors.KindForbidden))
}

func TestReviewAndBookingPermits(t *testing.T) {
	loaders := Loaders{
		Reviews:  stubReviews{3: {ID: 3, UserID: stranger.ID}},
		Bookings: stubBookings{4: {ID: 4, UserID: owner.ID}},
	}

	req, err := Run(context.Background(), NewRequest(stranger), loaders.Review(3), RequireOwner())
	require.NoError(t, err)
	assert.Equal(t, uint(3), req.Review.ID)

	_, err = Run(context.Background(), NewRequest(stranger), loaders.Booking(4), RequireOwner())
	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))

	_, err = Run(context.Background(), NewRequest(stranger), loaders.Review(8))
	assert.EqualError(t, err, "Review couldn't be found")

	_, err = Run(context.Background(), NewRequest(stranger), loaders.Booking(8))
	assert.EqualError(t, err, "Booking couldn't be found")
}

func TestImageLoaders(t *testing.T) {
	spotImage := model.NewImage("https://img/spot.png", model.SpotTarget{SpotID: 10})
	spotImage.ID = 5
	spotImage.Spot = &model.Spot{ID: 10, OwnerID: owner.ID}

	reviewImage := model.NewImage("https://img/review.png", model.ReviewTarget{ReviewID: 3})
	reviewImage.ID = 6
	reviewImage.Review = &model.Review{ID: 3, UserID: stranger.ID}

	images := new(MockImageFinder)
	images.On("FindByID", mock.Anything, uint(5)).Return(spotImage, nil)
	images.On("FindByID", mock.Anything, uint(6)).Return(reviewImage, nil)
	images.On("FindByID", mock.Anything, uint(7)).Return(nil, repository.ErrNotFound)
	images.On("FindByID", mock.Anything, uint(8)).Return(nil, fmt.Errorf("connection reset"))
	loaders := Loaders{Images: images}

	tests := []struct {
		name      string
		viewer    *model.SessionUser
		stage     Stage
		wantKind  apperrors.Kind
		wantMsg   string
		wantOwner uint
	}{
		{name: "spot image by owner", viewer: owner, stage: loaders.SpotImage(5), wantOwner: owner.ID},
		{name: "review image by author", viewer: stranger, stage: loaders.ReviewImage(6), wantOwner: stranger.ID},
		{name: "review id on spot route", viewer: owner, stage: loaders.SpotImage(6), wantKind: apperrors.KindWrongImageType, wantMsg: "Not a spot image!"},
		{name: "spot id on review route", viewer: stranger, stage: loaders.ReviewImage(5), wantKind: apperrors.KindWrongImageType, wantMsg: "Not a review image!"},
		{name: "missing image", viewer: owner, stage: loaders.SpotImage(7), wantKind: apperrors.KindNotFound, wantMsg: "Image couldn't be found"},
		{name: "spot image by stranger", viewer: stranger, stage: loaders.SpotImage(5), wantKind: apperrors.KindForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := Run(context.Background(), NewRequest(tt.viewer), RequireAuth(), tt.stage, RequireOwner())
			if tt.wantKind == "" {
				require.NoError(t, err)
				permit, ok := req.Permit()
				assert.True(t, ok)
				assert.Equal(t, tt.wantOwner, permit)
				return
			}
			assert.True(t, apperrors.IsKind(err, tt.wantKind), "got %v", err)
			if tt.wantMsg != "" {
				assert.EqualError(t, err, tt.wantMsg)
			}
		})
	}

	_, err := Run(context.Background(), NewRequest(owner), loaders.SpotImage(8))
	require.Error(t, err)
	assert.False(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
