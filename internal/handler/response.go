package handler

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"spotbook/internal/model"
	"spotbook/internal/service"
)

// MessageResponse is returned by deletes and logout.
type MessageResponse struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode,omitempty"`
}

func deleted() MessageResponse {
	return MessageResponse{Message: "Successfully deleted", StatusCode: 200}
}

// UserResponse wraps the session user; User is null when anonymous.
type UserResponse struct {
	User *model.SessionUser `json:"user"`
}

// UserSummary is how other users appear next to spots, reviews and bookings.
type UserSummary struct {
	ID        uint   `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func summarize(u *model.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName}
}

// ImageSummary is an image nested in a spot or review.
type ImageSummary struct {
	ID  uint   `json:"id"`
	URL string `json:"url"`
}

func summarizeImages(images []model.Image) []ImageSummary {
	out := make([]ImageSummary, 0, len(images))
	for _, img := range images {
		out = append(out, ImageSummary{ID: img.ID, URL: img.URL})
	}
	return out
}

// ImageResponse is returned after attaching an image.
type ImageResponse struct {
	ID            uint            `json:"id"`
	ImageableID   uint            `json:"imageableId"`
	ImageableType model.ImageKind `json:"imageableType"`
	URL           string          `json:"url"`
}

func newImageResponse(img *model.Image) (ImageResponse, error) {
	target, err := img.Target()
	if err != nil {
		return ImageResponse{}, err
	}
	return ImageResponse{
		ID:            img.ID,
		ImageableID:   target.ParentID(),
		ImageableType: target.Kind(),
		URL:           img.URL,
	}, nil
}

// SpotResponse is a spot as stored.
type SpotResponse struct {
	ID          uint            `json:"id"`
	OwnerID     uint            `json:"ownerId"`
	Address     string          `json:"address"`
	City        string          `json:"city"`
	State       string          `json:"state"`
	Country     string          `json:"country"`
	Lat         float64         `json:"lat"`
	Lng         float64         `json:"lng"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" swaggertype:"number"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func newSpotResponse(s *model.Spot) SpotResponse {
	return SpotResponse{
		ID:          s.ID,
		OwnerID:     s.OwnerID,
		Address:     s.Address,
		City:        s.City,
		State:       s.State,
		Country:     s.Country,
		Lat:         s.Lat,
		Lng:         s.Lng,
		Name:        s.Name,
		Description: s.Description,
		Price:       s.Price,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// SpotListItem is a spot with its preview images.
type SpotListItem struct {
	SpotResponse
	PreviewImage []ImageSummary `json:"previewImage"`
}

func newSpotList(spots []model.Spot) []SpotListItem {
	out := make([]SpotListItem, 0, len(spots))
	for i := range spots {
		out = append(out, SpotListItem{
			SpotResponse: newSpotResponse(&spots[i]),
			PreviewImage: summarizeImages(spots[i].Images),
		})
	}
	return out
}

// SpotPageResponse is one page of GET /spots.
type SpotPageResponse struct {
	Spots []SpotListItem `json:"Spots"`
	Page  int            `json:"page"`
	Size  int            `json:"size"`
}

func newSpotPage(p *service.SpotPage) SpotPageResponse {
	return SpotPageResponse{Spots: newSpotList(p.Spots), Page: p.Page, Size: p.Size}
}

// SpotDetailResponse is GET /spots/:id.
type SpotDetailResponse struct {
	SpotResponse
	NumReviews    int64        `json:"numReviews"`
	AvgStarRating *float64     `json:"avgStarRating"`
	Owner         *UserSummary `json:"Owner"`
	Images        []string     `json:"images"`
}

func newSpotDetail(d *model.SpotDetail) SpotDetailResponse {
	return SpotDetailResponse{
		SpotResponse:  newSpotResponse(&d.Spot),
		NumReviews:    d.Stats.NumReviews,
		AvgStarRating: d.Stats.AvgStarRating,
		Owner:         &UserSummary{ID: d.Owner.ID, FirstName: d.Owner.FirstName, LastName: d.Owner.LastName},
		Images:        d.Images,
	}
}

// ReviewResponse is a review with its author and images when loaded.
type ReviewResponse struct {
	ID        uint           `json:"id"`
	UserID    uint           `json:"userId"`
	SpotID    uint           `json:"spotId"`
	Review    string         `json:"review"`
	Stars     int            `json:"stars"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	User      *UserSummary   `json:"User,omitempty"`
	Spot      *SpotResponse  `json:"Spot,omitempty"`
	Images    []ImageSummary `json:"images,omitempty"`
}

func newReviewResponse(r *model.Review) ReviewResponse {
	resp := ReviewResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		SpotID:    r.SpotID,
		Review:    r.Review,
		Stars:     r.Stars,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		User:      summarize(r.User),
	}
	if r.Spot != nil {
		spot := newSpotResponse(r.Spot)
		resp.Spot = &spot
	}
	if r.Images != nil {
		resp.Images = summarizeImages(r.Images)
	}
	return resp
}

// ReviewListResponse wraps a review list.
type ReviewListResponse struct {
	Reviews []ReviewResponse `json:"Reviews"`
}

func newReviewList(reviews []model.Review) ReviewListResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		r := newReviewResponse(&reviews[i])
		if r.Images == nil {
			r.Images = []ImageSummary{}
		}
		out = append(out, r)
	}
	return ReviewListResponse{Reviews: out}
}

func formatDate(d datatypes.Date) string {
	return time.Time(d).Format(model.DateLayout)
}

// BookingResponse is a booking as seen by its renter or the spot owner.
type BookingResponse struct {
	ID        uint          `json:"id"`
	SpotID    uint          `json:"spotId"`
	UserID    uint          `json:"userId"`
	StartDate string        `json:"startDate" example:"2026-11-01"`
	EndDate   string        `json:"endDate" example:"2026-11-05"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
	User      *UserSummary  `json:"User,omitempty"`
	Spot      *SpotListItem `json:"Spot,omitempty"`
}

func newBookingResponse(b *model.Booking) BookingResponse {
	resp := BookingResponse{
		ID:        b.ID,
		SpotID:    b.SpotID,
		UserID:    b.UserID,
		StartDate: formatDate(b.StartDate),
		EndDate:   formatDate(b.EndDate),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
		User:      summarize(b.User),
	}
	if b.Spot != nil {
		item := SpotListItem{SpotResponse: newSpotResponse(b.Spot), PreviewImage: summarizeImages(b.Spot.Images)}
		resp.Spot = &item
	}
	return resp
}

// PublicBookingResponse hides who booked.
type PublicBookingResponse struct {
	SpotID    uint   `json:"spotId"`
	StartDate string `json:"startDate" example:"2026-11-01"`
	EndDate   string `json:"endDate" example:"2026-11-05"`
}

// BookingListResponse wraps a booking list. Bookings holds either
// []BookingResponse or []PublicBookingResponse.
type BookingListResponse struct {
	Bookings interface{} `json:"Bookings"`
}

func newBookingList(bookings []model.Booking) BookingListResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, newBookingResponse(&bookings[i]))
	}
	return BookingListResponse{Bookings: out}
}

func newSpotBookings(sb *service.SpotBookings) BookingListResponse {
	if sb.Owner {
		return newBookingList(sb.Detailed)
	}
	out := make([]PublicBookingResponse, 0, len(sb.Public))
	for _, b := range sb.Public {
		out = append(out, PublicBookingResponse{
			SpotID:    b.SpotID,
			StartDate: formatDate(b.StartDate),
			EndDate:   formatDate(b.EndDate),
		})
	}
	return BookingListResponse{Bookings: out}
}
