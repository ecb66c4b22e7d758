package model

import (
	"time"

	"gorm.io/datatypes"
)

// DateLayout is the wire and comparison format of booking dates.
const DateLayout = "2006-01-02"

// Booking reserves an inclusive [StartDate, EndDate] range of a spot.
// Overlapping ranges on one spot are rejected by the database.
type Booking struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	SpotID    uint           `json:"spotId" gorm:"not null;uniqueIndex:idx_bookings_spot_range,priority:1"`
	UserID    uint           `json:"userId" gorm:"not null;index"`
	StartDate datatypes.Date `json:"startDate" gorm:"not null;uniqueIndex:idx_bookings_spot_range,priority:2"`
	EndDate   datatypes.Date `json:"endDate" gorm:"not null;uniqueIndex:idx_bookings_spot_range,priority:3"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`

	// Relations
	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Spot *Spot `json:"-" gorm:"foreignKey:SpotID"`
}

// Start returns the start date as a time.Time at midnight.
func (b *Booking) Start() time.Time { return time.Time(b.StartDate) }

// End returns the end date as a time.Time at midnight.
func (b *Booking) End() time.Time { return time.Time(b.EndDate) }

// PublicBooking is what a non-owner may see of another renter's booking.
type PublicBooking struct {
	SpotID    uint
	StartDate datatypes.Date
	EndDate   datatypes.Date
}
