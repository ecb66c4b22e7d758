package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"spotbook/internal/access"
	"spotbook/internal/service"
)

// ImageHandler handles image removal. Images are attached through the spot
// and review handlers.
type ImageHandler struct {
	images  service.ImageService
	loaders access.Loaders
}

// NewImageHandler creates a new image handler.
func NewImageHandler(images service.ImageService, loaders access.Loaders) *ImageHandler {
	return &ImageHandler{images: images, loaders: loaders}
}

// DeleteSpotImage godoc
// @Summary Delete a spot image
// @Tags images
// @Produce json
// @Param id path int true "Image ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /spot-images/{id} [delete]
func (h *ImageHandler) DeleteSpotImage(c echo.Context) error {
	return h.delete(c, h.loaders.SpotImage)
}

// DeleteReviewImage godoc
// @Summary Delete a review image
// @Tags images
// @Produce json
// @Param id path int true "Image ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /review-images/{id} [delete]
func (h *ImageHandler) DeleteReviewImage(c echo.Context) error {
	return h.delete(c, h.loaders.ReviewImage)
}

func (h *ImageHandler) delete(c echo.Context, load func(uint) access.Stage) error {
	req, err := authorize(c, access.RequireAuth(), byID(c, "Image", load), access.RequireOwner())
	if err != nil {
		return err
	}
	if err := h.images.Delete(c.Request().Context(), req.Image); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleted())
}
