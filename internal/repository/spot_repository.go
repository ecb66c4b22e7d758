package repository

import (
	"context"

	"gorm.io/gorm"

	"spotbook/internal/model"
)

// SpotRepository defines spot persistence operations.
type SpotRepository interface {
	Create(ctx context.Context, spot *model.Spot) error
	Update(ctx context.Context, spot *model.Spot) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Spot, error)
	FindWithOwner(ctx context.Context, id uint) (*model.Spot, error)
	List(ctx context.Context, filter model.SpotFilter, limit, offset int) ([]model.Spot, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]model.Spot, error)
	Stats(ctx context.Context, id uint) (model.SpotStats, error)
	ImageURLs(ctx context.Context, id uint) ([]string, error)
}

type spotRepository struct {
	db *gorm.DB
}

// NewSpotRepository creates a new spot repository.
func NewSpotRepository(db *gorm.DB) SpotRepository {
	return &spotRepository{db: db}
}

// Create creates a new spot. Unique violations come back as *DuplicateError.
func (r *spotRepository) Create(ctx context.Context, spot *model.Spot) error {
	return translate(r.db.WithContext(ctx).Create(spot).Error)
}

// Update saves every column of spot.
func (r *spotRepository) Update(ctx context.Context, spot *model.Spot) error {
	return translate(r.db.WithContext(ctx).Omit("Owner", "Images", "Reviews", "Bookings").Save(spot).Error)
}

// Delete removes a spot; images, reviews and bookings cascade.
func (r *spotRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Spot{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindByID finds a spot by ID.
func (r *spotRepository) FindByID(ctx context.Context, id uint) (*model.Spot, error) {
	var spot model.Spot
	if err := r.db.WithContext(ctx).First(&spot, id).Error; err != nil {
		return nil, err
	}
	return &spot, nil
}

// FindWithOwner finds a spot and preloads its owner.
func (r *spotRepository) FindWithOwner(ctx context.Context, id uint) (*model.Spot, error) {
	var spot model.Spot
	if err := r.db.WithContext(ctx).Preload("Owner").First(&spot, id).Error; err != nil {
		return nil, err
	}
	return &spot, nil
}

// List returns one page of spots ordered by id, each with its spot images.
func (r *spotRepository) List(ctx context.Context, filter model.SpotFilter, limit, offset int) ([]model.Spot, error) {
	var spots []model.Spot
	q := applyFilter(r.db.WithContext(ctx).Model(&model.Spot{}), filter)
	if err := q.Preload("Images", spotImagesOnly).
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&spots).Error; err != nil {
		return nil, err
	}
	return spots, nil
}

// ListByOwner lists a user's spots with their spot images.
func (r *spotRepository) ListByOwner(ctx context.Context, ownerID uint) ([]model.Spot, error) {
	var spots []model.Spot
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Preload("Images", spotImagesOnly).
		Order("id").
		Find(&spots).Error; err != nil {
		return nil, err
	}
	return spots, nil
}

// Stats counts a spot's reviews and averages their stars.
func (r *spotRepository) Stats(ctx context.Context, id uint) (model.SpotStats, error) {
	var row struct {
		NumReviews    int64
		AvgStarRating *float64
	}
	err := r.db.WithContext(ctx).Model(&model.Review{}).
		Select("COUNT(id) AS num_reviews, AVG(stars) AS avg_star_rating").
		Where("spot_id = ?", id).
		Scan(&row).Error
	if err != nil {
		return model.SpotStats{}, err
	}
	return model.SpotStats{NumReviews: row.NumReviews, AvgStarRating: row.AvgStarRating}, nil
}

// ImageURLs returns the URLs of a spot's images in insertion order.
func (r *spotRepository) ImageURLs(ctx context.Context, id uint) ([]string, error) {
	urls := []string{}
	err := r.db.WithContext(ctx).Model(&model.Image{}).
		Where("spot_id = ? AND image_type = ?", id, model.ImageKindSpot).
		Order("id").
		Pluck("url", &urls).Error
	if err != nil {
		return nil, err
	}
	return urls, nil
}

func spotImagesOnly(db *gorm.DB) *gorm.DB {
	return db.Where("image_type = ?", model.ImageKindSpot).Order("id")
}

func applyFilter(db *gorm.DB, f model.SpotFilter) *gorm.DB {
	if f.MinLat != nil {
		db = db.Where("lat >= ?", *f.MinLat)
	}
	if f.MaxLat != nil {
		db = db.Where("lat <= ?", *f.MaxLat)
	}
	if f.MinLng != nil {
		db = db.Where("lng >= ?", *f.MinLng)
	}
	if f.MaxLng != nil {
		db = db.Where("lng <= ?", *f.MaxLng)
	}
	if f.MinPrice != nil {
		db = db.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		db = db.Where("price <= ?", *f.MaxPrice)
	}
	return db
}
