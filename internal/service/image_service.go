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

// MaxReviewImages caps the images attached to one review.
const MaxReviewImages = 10

// ImageService exposes image operations.
type ImageService interface {
	AddSpotImage(ctx context.Context, spot *model.Spot, url string) (*model.Image, error)
	AddReviewImage(ctx context.Context, review *model.Review, url string) (*model.Image, error)
	Delete(ctx context.Context, image *model.Image) error
}

type imageService struct {
	repo  repository.ImageRepository
	cache *cache.Client
}

// NewImageService builds an ImageService.
func NewImageService(repo repository.ImageRepository, cache *cache.Client) ImageService {
	return &imageService{repo: repo, cache: cache}
}

func (s *imageService) AddSpotImage(ctx context.Context, spot *model.Spot, url string) (*model.Image, error) {
	image := model.NewImage(url, model.SpotTarget{SpotID: spot.ID})
	if err := s.repo.Create(ctx, image); err != nil {
		return nil, fmt.Errorf("create spot image: %w", err)
	}
	invalidateSpot(ctx, s.cache, spot.ID)
	return image, nil
}

func (s *imageService) AddReviewImage(ctx context.Context, review *model.Review, url string) (*model.Image, error) {
	target := model.ReviewTarget{ReviewID: review.ID}
	count, err := s.repo.CountByTarget(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("count review images: %w", err)
	}
	if count >= MaxReviewImages {
		return nil, apperrors.ImageLimit()
	}

	image := model.NewImage(url, target)
	if err := s.repo.Create(ctx, image); err != nil {
		return nil, fmt.Errorf("create review image: %w", err)
	}
	return image, nil
}

func (s *imageService) Delete(ctx context.Context, image *model.Image) error {
	if err := s.repo.Delete(ctx, image.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("Image")
		}
		return fmt.Errorf("delete image: %w", err)
	}
	if image.SpotID != nil {
		invalidateSpot(ctx, s.cache, *image.SpotID)
	}
	return nil
}
