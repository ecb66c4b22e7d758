package service

import (
	"context"
	"errors"
	"fmt"

	"spotbook/internal/cache"
	apperrors "spotbook/internal/errors"
	"spotbook/internal/model"
	"spotbook/internal/repository"
)

// ReviewInput holds the writable fields of a review.
type ReviewInput struct {
	Review string
	Stars  int
}

// ReviewService exposes review operations.
type ReviewService interface {
	ListBySpot(ctx context.Context, spotID uint) ([]model.Review, error)
	ListMine(ctx context.Context, userID uint) ([]model.Review, error)
	Create(ctx context.Context, spotID, userID uint, in ReviewInput) (*model.Review, error)
	Update(ctx context.Context, review *model.Review, in ReviewInput) (*model.Review, error)
	Delete(ctx context.Context, review *model.Review) error
}

type reviewService struct {
	repo  repository.ReviewRepository
	cache *cache.Client
}

// NewReviewService builds a ReviewService.
func NewReviewService(repo repository.ReviewRepository, cache *cache.Client) ReviewService {
	return &reviewService{repo: repo, cache: cache}
}

func (s *reviewService) ListBySpot(ctx context.Context, spotID uint) ([]model.Review, error) {
	reviews, err := s.repo.ListBySpot(ctx, spotID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

func (s *reviewService) ListMine(ctx context.Context, userID uint) ([]model.Review, error) {
	reviews, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list own reviews: %w", err)
	}
	return reviews, nil
}

// Create stores a review. The (spot, user) unique index decides whether the
// user already reviewed the spot.
func (s *reviewService) Create(ctx context.Context, spotID, userID uint, in ReviewInput) (*model.Review, error) {
	review := &model.Review{
		SpotID: spotID,
		UserID: userID,
		Review: in.Review,
		Stars:  in.Stars,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		var dup *repository.DuplicateError
		if errors.As(err, &dup) {
			return nil, apperrors.DuplicateReview()
		}
		return nil, fmt.Errorf("create review: %w", err)
	}
	invalidateSpot(ctx, s.cache, spotID)
	return review, nil
}

func (s *reviewService) Update(ctx context.Context, review *model.Review, in ReviewInput) (*model.Review, error) {
	review.Review = in.Review
	review.Stars = in.Stars
	if err := s.repo.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}
	invalidateSpot(ctx, s.cache, review.SpotID)
	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, review *model.Review) error {
	if err := s.repo.Delete(ctx, review.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("Review")
		}
		return fmt.Errorf("delete review: %w", err)
	}
	invalidateSpot(ctx, s.cache, review.SpotID)
	return nil
}
