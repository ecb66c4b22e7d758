package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"spotbook/internal/access"
	"spotbook/internal/service"
)

// SpotHandler handles spot endpoints.
type SpotHandler struct {
	spots   service.SpotService
	images  service.ImageService
	loaders access.Loaders
}

// NewSpotHandler creates a new spot handler.
func NewSpotHandler(spots service.SpotService, images service.ImageService, loaders access.Loaders) *SpotHandler {
	return &SpotHandler{spots: spots, images: images, loaders: loaders}
}

// SpotRequest is the body of spot create and update.
type SpotRequest struct {
	Address     string           `json:"address" validate:"required" msg:"Street address is required"`
	City        string           `json:"city" validate:"required" msg:"City is required"`
	State       string           `json:"state" validate:"required" msg:"State is required"`
	Country     string           `json:"country" validate:"required" msg:"Country is required"`
	Lat         *float64         `json:"lat" validate:"required,gte=-89.9999999,lte=89.9999999" msg:"Latitude is not valid"`
	Lng         *float64         `json:"lng" validate:"required,gte=-179.9999999,lte=179.9999999" msg:"Longitude is not valid"`
	Name        string           `json:"name" validate:"required,max=50" msg:"name is required and must be less than 50 characters"`
	Description string           `json:"description" validate:"required" msg:"Description is required"`
	Price       *decimal.Decimal `json:"price" validate:"required" msg:"Price per day is required" swaggertype:"number"`
}

// Check rejects prices that are not positive.
func (r SpotRequest) Check(*validator.Validate) map[string]string {
	if r.Price != nil && !r.Price.IsPositive() {
		return map[string]string{"price": "Price per day is required"}
	}
	return nil
}

func (r SpotRequest) input() service.SpotInput {
	return service.SpotInput{
		Address:     r.Address,
		City:        r.City,
		State:       r.State,
		Country:     r.Country,
		Lat:         *r.Lat,
		Lng:         *r.Lng,
		Name:        r.Name,
		Description: r.Description,
		Price:       *r.Price,
	}
}

// ImageRequest is the body of image uploads.
type ImageRequest struct {
	URL string `json:"url" validate:"required" msg:"Url must be a valid picture url"`
}

// List godoc
// @Summary List spots
// @Tags spots
// @Produce json
// @Param page query int false "Page, 1 to 10"
// @Param size query int false "Page size, 0 to 20"
// @Param minLat query number false "Minimum latitude"
// @Param maxLat query number false "Maximum latitude"
// @Param minLng query number false "Minimum longitude"
// @Param maxLng query number false "Maximum longitude"
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Success 200 {object} SpotPageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /spots [get]
func (h *SpotHandler) List(c echo.Context) error {
	params, err := spotListParams(c)
	if err != nil {
		return err
	}
	page, err := h.spots.List(c.Request().Context(), params)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newSpotPage(page))
}

// ListMine godoc
// @Summary Spots owned by the current user
// @Tags spots
// @Produce json
// @Success 200 {array} SpotListItem
// @Failure 401 {object} errors.ErrorResponse
// @Router /spots/myspots [get]
func (h *SpotHandler) ListMine(c echo.Context) error {
	req, err := authorize(c, access.RequireAuth())
	if err != nil {
		return err
	}
	spots, err := h.spots.ListMine(c.Request().Context(), req.Viewer.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newSpotList(spots))
}

// Get godoc
// @Summary Spot details
// @Tags spots
// @Produce json
// @Param id path int true "Spot ID"
// @Success 200 {object} SpotDetailResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /spots/{id} [get]
func (h *SpotHandler) Get(c echo.Context) error {
	id, err := idParam(c, "Spot")
	if err != nil {
		return err
	}
	detail, err := h.spots.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newSpotDetail(detail))
}

// Create godoc
// @Summary Create a spot
// @Tags spots
// @Accept json
// @Produce json
// @Param request body SpotRequest true "Spot"
// @Success 200 {object} SpotResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /spots [post]
func (h *SpotHandler) Create(c echo.Context) error {
	req, err := authorize(c, access.RequireAuth())
	if err != nil {
		return err
	}
	var body SpotRequest
	if err := bind(c, &body); err != nil {
		return err
	}

	spot, err := h.spots.Create(c.Request().Context(), req.Viewer.ID, body.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newSpotResponse(spot))
}

// Update godoc
// @Summary Update a spot
// @Tags spots
// @Accept json
// @Produce json
// @Param id path int true "Spot ID"
// @Param request body SpotRequest true "Spot"
// @Success 200 {object} SpotResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /spots/{id} [put]
func (h *SpotHandler) Update(c echo.Context) error {
	req, err := authorize(c, access.RequireAuth(), byID(c, "Spot", h.loaders.Spot), access.RequireOwner())
	if err != nil {
		return err
	}
	var body SpotRequest
	if err := bind(c, &body); err != nil {
		return err
	}

	spot, err := h.spots.Update(c.Request().Context(), req.Spot, body.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newSpotResponse(spot))
}

// Delete godoc
// @Summary Delete a spot
// @Tags spots
// @Produce json
// @Param id path int true "Spot ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /spots/{id} [delete]
func (h *SpotHandler) Delete(c echo.Context) error {
	req, err := authorize(c, access.RequireAuth(), byID(c, "Spot", h.loaders.Spot), access.RequireOwner())
	if err != nil {
		return err
	}
	if err := h.spots.Delete(c.Request().Context(), req.Spot); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleted())
}

// AddImage godoc
// @Summary Attach an image to a spot
// @Tags images
// @Accept json
// @Produce json
// @Param id path int true "Spot ID"
// @Param request body ImageRequest true "Image"
// @Success 200 {object} ImageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /spots/{id}/images [post]
func (h *SpotHandler) AddImage(c echo.Context) error {
	req, err := authorize(c, access.RequireAuth(), byID(c, "Spot", h.loaders.Spot), access.RequireOwner())
	if err != nil {
		return err
	}
	var body ImageRequest
	if err := bind(c, &body); err != nil {
		return err
	}

	image, err := h.images.AddSpotImage(c.Request().Context(), req.Spot, body.URL)
	if err != nil {
		return err
	}
	resp, err := newImageResponse(image)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}
