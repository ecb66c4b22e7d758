package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Spot is a rentable listing. Address and name are unique across spots.
type Spot struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	OwnerID     uint            `json:"ownerId" gorm:"not null;index"`
	Address     string          `json:"address" gorm:"uniqueIndex:idx_spots_address;size:255;not null"`
	City        string          `json:"city" gorm:"size:255;not null"`
	State       string          `json:"state" gorm:"size:255;not null"`
	Country     string          `json:"country" gorm:"size:255;not null"`
	Lat         float64         `json:"lat" gorm:"not null;index"`
	Lng         float64         `json:"lng" gorm:"not null;index"`
	Name        string          `json:"name" gorm:"uniqueIndex:idx_spots_name;size:50;not null"`
	Description string          `json:"description" gorm:"type:text;not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null;index"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`

	// Relations
	Owner    *User     `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Images   []Image   `json:"-" gorm:"foreignKey:SpotID;constraint:OnDelete:CASCADE"`
	Reviews  []Review  `json:"-" gorm:"foreignKey:SpotID;constraint:OnDelete:CASCADE"`
	Bookings []Booking `json:"-" gorm:"foreignKey:SpotID;constraint:OnDelete:CASCADE"`
}

// SpotFilter narrows a spot listing. Nil bounds are ignored.
type SpotFilter struct {
	MinLat, MaxLat     *float64
	MinLng, MaxLng     *float64
	MinPrice, MaxPrice *decimal.Decimal
}

// SpotStats are the review aggregates shown on a spot's detail page.
type SpotStats struct {
	NumReviews    int64
	AvgStarRating *float64
}

// SpotDetail is a spot with its owner, aggregates and image URLs.
type SpotDetail struct {
	Spot   Spot
	Owner  SessionUser
	Stats  SpotStats
	Images []string
}
