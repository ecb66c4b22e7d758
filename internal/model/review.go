package model

import "time"

// Review is a user's rating of a spot. One per (spot, user).
type Review struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	SpotID    uint      `json:"spotId" gorm:"not null;uniqueIndex:idx_reviews_spot_user,priority:1"`
	UserID    uint      `json:"userId" gorm:"not null;uniqueIndex:idx_reviews_spot_user,priority:2;index"`
	Review    string    `json:"review" gorm:"type:text;not null"`
	Stars     int       `json:"stars" gorm:"not null;check:chk_reviews_stars,stars BETWEEN 1 AND 5"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	User   *User   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Spot   *Spot   `json:"-" gorm:"foreignKey:SpotID"`
	Images []Image `json:"-" gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE"`
}
