package repository

import (
	"context"

	"gorm.io/gorm"

	"spotbook/internal/model"
)

// ImageRepository defines image persistence operations.
type ImageRepository interface {
	Create(ctx context.Context, image *model.Image) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Image, error)
	CountByTarget(ctx context.Context, target model.ImageTarget) (int64, error)
}

type imageRepository struct {
	db *gorm.DB
}

// NewImageRepository creates a new image repository.
func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Create(ctx context.Context, image *model.Image) error {
	return translate(r.db.WithContext(ctx).Omit("Spot", "Review").Create(image).Error)
}

func (r *imageRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Image{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindByID loads an image with its parent so the owner can be resolved.
func (r *imageRepository) FindByID(ctx context.Context, id uint) (*model.Image, error) {
	var image model.Image
	if err := r.db.WithContext(ctx).
		Preload("Spot").
		Preload("Review").
		First(&image, id).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

// CountByTarget counts the images already attached to target.
func (r *imageRepository) CountByTarget(ctx context.Context, target model.ImageTarget) (int64, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&model.Image{}).Where("image_type = ?", target.Kind())
	switch target.Kind() {
	case model.ImageKindSpot:
		q = q.Where("spot_id = ?", target.ParentID())
	case model.ImageKindReview:
		q = q.Where("review_id = ?", target.ParentID())
	}
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
