package model

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ImageKind discriminates what an image is attached to.
type ImageKind string

const (
	ImageKindSpot   ImageKind = "spot"
	ImageKindReview ImageKind = "review"
)

// ImageTarget is the parent an image belongs to: SpotTarget or ReviewTarget.
type ImageTarget interface {
	Kind() ImageKind
	ParentID() uint
}

// SpotTarget attaches an image to a spot.
type SpotTarget struct{ SpotID uint }

// ReviewTarget attaches an image to a review.
type ReviewTarget struct{ ReviewID uint }

func (t SpotTarget) Kind() ImageKind   { return ImageKindSpot }
func (t SpotTarget) ParentID() uint    { return t.SpotID }
func (t ReviewTarget) Kind() ImageKind { return ImageKindReview }
func (t ReviewTarget) ParentID() uint  { return t.ReviewID }

// Image is a picture URL attached to exactly one spot or review.
// The columns are written only through NewImage; the check constraint
// rejects rows whose kind and parent columns disagree.
type Image struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	URL       string    `json:"url" gorm:"type:text;not null"`
	ImageType ImageKind `json:"imageType" gorm:"size:10;not null;check:chk_images_target,(image_type = 'spot' AND spot_id IS NOT NULL AND review_id IS NULL) OR (image_type = 'review' AND review_id IS NOT NULL AND spot_id IS NULL)"`
	SpotID    *uint     `json:"-" gorm:"index"`
	ReviewID  *uint     `json:"-" gorm:"index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Spot   *Spot   `json:"-" gorm:"foreignKey:SpotID"`
	Review *Review `json:"-" gorm:"foreignKey:ReviewID"`
}

// NewImage builds an image row consistent with its target.
func NewImage(url string, target ImageTarget) *Image {
	img := &Image{URL: url, ImageType: target.Kind()}
	id := target.ParentID()
	switch target.Kind() {
	case ImageKindSpot:
		img.SpotID = &id
	case ImageKindReview:
		img.ReviewID = &id
	}
	return img
}

// Target decodes the stored columns back into the tagged variant.
func (i *Image) Target() (ImageTarget, error) {
	switch {
	case i.ImageType == ImageKindSpot && i.SpotID != nil && i.ReviewID == nil:
		return SpotTarget{SpotID: *i.SpotID}, nil
	case i.ImageType == ImageKindReview && i.ReviewID != nil && i.SpotID == nil:
		return ReviewTarget{ReviewID: *i.ReviewID}, nil
	default:
		return nil, fmt.Errorf("image %d has inconsistent target columns", i.ID)
	}
}

// OwnerID returns the user that owns the image's parent. The parent
// relation must have been preloaded.
func (i *Image) OwnerID() (uint, error) {
	target, err := i.Target()
	if err != nil {
		return 0, err
	}
	switch target.(type) {
	case SpotTarget:
		if i.Spot == nil {
			return 0, fmt.Errorf("image %d: spot not loaded", i.ID)
		}
		return i.Spot.OwnerID, nil
	case ReviewTarget:
		if i.Review == nil {
			return 0, fmt.Errorf("image %d: review not loaded", i.ID)
		}
		return i.Review.UserID, nil
	}
	return 0, fmt.Errorf("image %d: unknown target", i.ID)
}

// BeforeSave refuses rows whose columns disagree with the image kind.
func (i *Image) BeforeSave(tx *gorm.DB) error {
	_, err := i.Target()
	return err
}
