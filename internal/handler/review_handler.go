package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"spotbook/internal/access"
	"spotbook/internal/service"
)

// ReviewHandler handles review endpoints.
type ReviewHandler struct {
	reviews service.ReviewService
	images  service.ImageService
	loaders access.Loaders
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(reviews service.ReviewService, images service.ImageService, loaders access.Loaders) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, images: images, loaders: loaders}
}

// ReviewRequest is the body of review create and update.
type ReviewRequest struct {
	Review string `json:"review" validate:"required" msg:"Review text is required"`
	Stars  int    `json:"stars" validate:"required,min=1,max=5" msg:"Stars must be an integer from 1 to 5"`
}

func (r ReviewRequest) input() service.ReviewInput {
	return service.ReviewInput{Review: r.Review, Stars: r.Stars}
}

// ListBySpot godoc
// @Summary Reviews of a spot
// @Tags reviews
// @Produce json
// @Param id path int true "Spot ID"
// @Success 200 {object} ReviewListResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /spots/{id}/reviews [get]
func (h *ReviewHandler) ListBySpot(c echo.Context) error {
	req, err := authorize(c, byID(c, "Spot", h.loaders.Spot))
	if err != nil {
		return err
	}
	reviews, err := h.reviews.ListBySpot(c.Request().Context(), req.Spot.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newReviewList(reviews))
}

// Create godoc
// @Summary Review a spot
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path int true "Spot ID"
// @Param request body ReviewRequest true "Review"
// @Success 200 {object} ReviewResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /spots/{id}/reviews [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	req, err := authorize(c, access.RequireAuth(), byID(c, "Spot", h.loaders.Spot), access.RefuseOwner())
	if err != nil {
		return err
	}
	var body ReviewRequest
	if err := bind(c, &body); err != nil {
		return err
	}

	review, err := h.reviews.Create(c.Request().Context(), req.Spot.ID, req.Viewer.ID, body.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newReviewResponse(review))
}

// ListMine godoc
// @Summary Reviews written by the current user
// @Tags reviews
// @Produce json
// @Success 200 {object} ReviewListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /reviews/current [get]
func (h *ReviewHandler) ListMine(c echo.Context) error {
	req, err := authorize(c, access.RequireAuth())
	if err != nil {
		return err
	}
	reviews, err := h.reviews.ListMine(c.Request().Context(), req.Viewer.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newReviewList(reviews))
}

// Update godoc
// @Summary Edit a review
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path int true "Review ID"
// @Param request body ReviewRequest true "Review"
// @Success 200 {object} ReviewResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /reviews/{id} [put]
func (h *ReviewHandler) Update(c echo.Context) error {
	req, err := authorize(c, access.RequireAuth(), byID(c, "Review", h.loaders.Review), access.RequireOwner())
	if err != nil {
		return err
	}
	var body ReviewRequest
	if err := bind(c, &body); err != nil {
		return err
	}

	review, err := h.reviews.Update(c.Request().Context(), req.Review, body.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newReviewResponse(review))
}

// Delete godoc
// @Summary Delete a review
// @Tags reviews
// @Produce json
// @Param id path int true "Review ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /reviews/{id} [delete]
func (h *ReviewHandler) Delete(c echo.Context) error {
	req, err := authorize(c, access.RequireAuth(), byID(c, "Review", h.loaders.Review), access.RequireOwner())
	if err != nil {
		return err
	}
	if err := h.reviews.Delete(c.Request().Context(), req.Review); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleted())
}

// AddImage godoc
// @Summary Attach an image to a review
// @Tags images
// @Accept json
// @Produce json
// @Param id path int true "Review ID"
// @Param request body ImageRequest true "Image"
// @Success 200 {object} ImageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /reviews/{id}/images [post]
func (h *ReviewHandler) AddImage(c echo.Context) error {
	req, err := authorize(c, access.RequireAuth(), byID(c, "Review", h.loaders.Review), access.RequireOwner())
	if err != nil {
		return err
	}
	var body ImageRequest
	if err := bind(c, &body); err != nil {
		return err
	}

	image, err := h.images.AddReviewImage(c.Request().Context(), req.Review, body.URL)
	if err != nil {
		return err
	}
	resp, err := newImageResponse(image)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}
