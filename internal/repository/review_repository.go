package repository

import (
	"context"

	"gorm.io/gorm"

	"spotbook/internal/model"
)

// ReviewRepository defines review persistence operations.
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	Update(ctx context.Context, review *model.Review) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Review, error)
	ListBySpot(ctx context.Context, spotID uint) ([]model.Review, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Review, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create inserts a review. A second review by the same user on the same
// spot fails with *DuplicateError.
func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	return translate(r.db.WithContext(ctx).Create(review).Error)
}

func (r *reviewRepository) Update(ctx context.Context, review *model.Review) error {
	return translate(r.db.WithContext(ctx).
		Model(review).
		Select("review", "stars", "updated_at").
		Updates(review).Error)
}

func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Review{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uint) (*model.Review, error) {
	var review model.Review
	if err := r.db.WithContext(ctx).First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// ListBySpot returns a spot's reviews with author and review images.
func (r *reviewRepository) ListBySpot(ctx context.Context, spotID uint) ([]model.Review, error) {
	var reviews []model.Review
	if err := r.db.WithContext(ctx).
		Where("spot_id = ?", spotID).
		Preload("User").
		Preload("Images", reviewImagesOnly).
		Order("id").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// ListByUser returns a user's reviews with the reviewed spot.
func (r *reviewRepository) ListByUser(ctx context.Context, userID uint) ([]model.Review, error) {
	var reviews []model.Review
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("User").
		Preload("Spot").
		Preload("Images", reviewImagesOnly).
		Order("id").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func reviewImagesOnly(db *gorm.DB) *gorm.DB {
	return db.Where("image_type = ?", model.ImageKindReview).Order("id")
}
