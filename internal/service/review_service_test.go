package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "spotbook/internal/errors"
	"spotbook/internal/model"
	"spotbook/internal/repository"
)

func TestReviewService_Create(t *testing.T) {
	tests := []struct {
		name     string
		userID   uint
		err      error
		wantKind apperrors.Kind
	}{
		{name: "first review", userID: 2},
		{name: "second review by same user", userID: 2, err: &repository.DuplicateError{Table: "reviews", Field: "spot_user"}, wantKind: apperrors.KindDuplicateReview},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockReviewRepository)
			mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Review")).Return(tt.err)

			review, err := NewReviewService(mockRepo, nil).Create(context.Background(), 3, tt.userID, ReviewInput{Review: "Cozy", Stars: 5})

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.True(t, apperrors.IsKind(err, tt.wantKind))
				assert.Equal(t, "User already has a review for this spot", err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, uint(3), review.SpotID)
			assert.Equal(t, 5, review.Stars)
		})
	}
}

func TestReviewService_UpdateKeepsOwnership(t *testing.T) {
	mockRepo := new(MockReviewRepository)
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Review")).Return(nil)

	review := &model.Review{ID: 1, SpotID: 3, UserID: 2, Review: "ok", Stars: 3}
	updated, err := NewReviewService(mockRepo, nil).Update(context.Background(), review, ReviewInput{Review: "great", Stars: 4})

	require.NoError(t, err)
	assert.Equal(t, "great", updated.Review)
	assert.Equal(t, 4, updated.Stars)
	assert.Equal(t, uint(2), updated.UserID)
}

func TestReviewService_DeleteMissing(t *testing.T) {
	mockRepo := new(MockReviewRepository)
	mockRepo.On("Delete", mock.Anything, uint(1)).Return(repository.ErrNotFound)

	err := NewReviewService(mockRepo, nil).Delete(context.Background(), &model.Review{ID: 1, SpotID: 3})
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
