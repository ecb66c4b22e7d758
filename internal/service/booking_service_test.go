package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "spotbook/internal/errors"
	"spotbook/internal/model"
	"spotbook/internal/repository"
)

var fixedNow = time.Date(2026, 10, 17, 23, 30, 0, 0, time.UTC)

func day(s string) time.Time {
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestBookingService_Create(t *testing.T) {
	tests := []struct {
		name      string
		dates     DateRange
		setupMock func(*MockBookingRepository)
		wantKind  apperrors.Kind
		wantErr   bool
	}{
		{
			name:  "future range is stored",
			dates: DateRange{Start: day("2026-11-01"), End: day("2026-11-05")},
			setupMock: func(m *MockBookingRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Booking")).Return(nil)
			},
		},
		{
			name:  "single day starting today",
			dates: DateRange{Start: day("2026-10-17"), End: day("2026-10-17")},
			setupMock: func(m *MockBookingRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Booking")).Return(nil)
			},
		},
		{
			name:      "start in the past",
			dates:     DateRange{Start: day("2026-10-16"), End: day("2026-10-20")},
			setupMock: func(*MockBookingRepository) {},
			wantKind:  apperrors.KindPastDateBooking,
			wantErr:   true,
		},
		{
			name:      "end in the past",
			dates:     DateRange{Start: day("2026-10-20"), End: day("2026-10-01")},
			setupMock: func(*MockBookingRepository) {},
			wantKind:  apperrors.KindPastDateBooking,
			wantErr:   true,
		},
		{
			name:      "end before start",
			dates:     DateRange{Start: day("2026-11-05"), End: day("2026-11-01")},
			setupMock: func(*MockBookingRepository) {},
			wantKind:  apperrors.KindValidationFailed,
			wantErr:   true,
		},
		{
			name:  "overlap rejected by storage",
			dates: DateRange{Start: day("2026-11-03"), End: day("2026-11-08")},
			setupMock: func(m *MockBookingRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Booking")).Return(repository.ErrBookingOverlap)
			},
			wantKind: apperrors.KindBookingConflict,
			wantErr:  true,
		},
		{
			name:  "other storage failure",
			dates: DateRange{Start: day("2026-11-03"), End: day("2026-11-08")},
			setupMock: func(m *MockBookingRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Booking")).Return(errors.New("connection reset"))
			},
			wantKind: apperrors.KindInternal,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockBookingRepository)
			tt.setupMock(mockRepo)

			svc := NewBookingService(mockRepo, func() time.Time { return fixedNow })
			booking, err := svc.Create(context.Background(), 3, 2, tt.dates)

			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, booking)
				assert.Equal(t, tt.wantKind, apperrors.MapErrorToHTTP(err).Kind)
			} else {
				require.NoError(t, err)
				assert.Equal(t, uint(3), booking.SpotID)
				assert.Equal(t, uint(2), booking.UserID)
				assert.Equal(t, tt.dates.Start, booking.Start())
				assert.Equal(t, tt.dates.End, booking.End())
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestBookingService_PastCheckNeverReachesStorage(t *testing.T) {
	mockRepo := new(MockBookingRepository)
	svc := NewBookingService(mockRepo, func() time.Time { return fixedNow })

	_, err := svc.Create(context.Background(), 3, 2, DateRange{Start: day("2020-01-01"), End: day("2020-01-02")})

	require.Error(t, err)
	assert.Equal(t, "You cannot set the booking to the past.", err.Error())
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBookingService_ConflictNamesBothDates(t *testing.T) {
	mockRepo := new(MockBookingRepository)
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Booking")).Return(repository.ErrBookingOverlap)
	svc := NewBookingService(mockRepo, func() time.Time { return fixedNow })

	booking := &model.Booking{ID: 1, SpotID: 3, UserID: 2}
	_, err := svc.Update(context.Background(), booking, DateRange{Start: day("2026-12-01"), End: day("2026-12-02")})

	httpErr := apperrors.MapErrorToHTTP(err)
	assert.Equal(t, 403, httpErr.StatusCode)
	assert.Equal(t, map[string]string{
		"startDate": "Start date conflicts with an existing booking",
		"endDate":   "End date conflicts with an existing booking",
	}, httpErr.Errors)
}

func TestBookingService_ListForSpot(t *testing.T) {
	mockRepo := new(MockBookingRepository)
	mockRepo.On("ListBySpotDetailed", mock.Anything, uint(3)).
		Return([]model.Booking{{ID: 1, SpotID: 3, UserID: 2, User: &model.User{ID: 2, FirstName: "Renter"}}}, nil)
	mockRepo.On("ListBySpotPublic", mock.Anything, uint(3)).
		Return([]model.PublicBooking{{SpotID: 3}}, nil)
	svc := NewBookingService(mockRepo, nil)

	owned, err := svc.ListForSpot(context.Background(), 3, true)
	require.NoError(t, err)
	assert.True(t, owned.Owner)
	assert.Len(t, owned.Detailed, 1)
	assert.Nil(t, owned.Public)

	public, err := svc.ListForSpot(context.Background(), 3, false)
	require.NoError(t, err)
	assert.False(t, public.Owner)
	assert.Nil(t, public.Detailed)
	assert.Len(t, public.Public, 1)

	mockRepo.AssertExpectations(t)
}

func TestToday(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	// 21:00 EST on the 16th is already the 17th in UTC
	assert.Equal(t, day("2026-10-17"), Today(time.Date(2026, 10, 16, 21, 0, 0, 0, est)))
}
