package handler

import (
	"context"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"spotbook/internal/access"
	"spotbook/internal/auth"
	apperrors "spotbook/internal/errors"
	"spotbook/internal/model"
	"spotbook/internal/service"
)

// idParam reads the :id path segment. Anything that is not a positive
// integer cannot name a row, so it reads as a missing resource.
func idParam(c echo.Context, resource string) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.NotFound(resource)
	}
	return uint(id), nil
}

// byID is a load stage reading :id inside the pipeline, so an anonymous
// request is refused before its path is looked at.
func byID(c echo.Context, resource string, load func(uint) access.Stage) access.Stage {
	return func(ctx context.Context, req access.Request) (access.Request, error) {
		id, err := idParam(c, resource)
		if err != nil {
			return req, err
		}
		return load(id)(ctx, req)
	}
}

// authorize runs the access stages for the current viewer.
func authorize(c echo.Context, stages ...access.Stage) (access.Request, error) {
	return access.Run(c.Request().Context(), access.NewRequest(auth.Identity(c)), stages...)
}

// spotListParams parses the query string of GET /spots.
func spotListParams(c echo.Context) (service.ListParams, error) {
	var params service.ListParams
	fields := map[string]string{}

	intParam := func(name, msg string) *int {
		raw := c.QueryParam(name)
		if raw == "" {
			return nil
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			fields[name] = msg
			return nil
		}
		return &v
	}
	floatParam := func(name, msg string) *float64 {
		raw := c.QueryParam(name)
		if raw == "" {
			return nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			fields[name] = msg
			return nil
		}
		return &v
	}
	priceParam := func(name, msg string) *decimal.Decimal {
		raw := c.QueryParam(name)
		if raw == "" {
			return nil
		}
		v, err := decimal.NewFromString(raw)
		if err != nil || v.IsNegative() {
			fields[name] = msg
			return nil
		}
		return &v
	}

	params.Page = intParam("page", "Page must be greater than or equal to 1")
	params.Size = intParam("size", "Size must be greater than or equal to 0")
	params.Filter = model.SpotFilter{
		MinLat:   floatParam("minLat", "Minimum latitude is invalid"),
		MaxLat:   floatParam("maxLat", "Maximum latitude is invalid"),
		MinLng:   floatParam("minLng", "Minimum longitude is invalid"),
		MaxLng:   floatParam("maxLng", "Maximum longitude is invalid"),
		MinPrice: priceParam("minPrice", "Minimum price must be greater than or equal to 0"),
		MaxPrice: priceParam("maxPrice", "Maximum price must be greater than or equal to 0"),
	}

	if len(fields) > 0 {
		return params, apperrors.Validation(fields)
	}
	return params, nil
}
