package access

import (
	"context"
	"errors"
	"fmt"

	apperrors "spotbook/internal/errors"
	"spotbook/internal/model"
	"spotbook/internal/repository"
)

type SpotFinder interface {
	FindByID(ctx context.Context, id uint) (*model.Spot, error)
}

type ReviewFinder interface {
	FindByID(ctx context.Context, id uint) (*model.Review, error)
}

type BookingFinder interface {
	FindByID(ctx context.Context, id uint) (*model.Booking, error)
}

// ImageFinder must preload the image's parent so its owner is known.
type ImageFinder interface {
	FindByID(ctx context.Context, id uint) (*model.Image, error)
}

// Loaders resolve a path id into a resource and its permit.
type Loaders struct {
	Spots    SpotFinder
	Reviews  ReviewFinder
	Bookings BookingFinder
	Images   ImageFinder
}

// Spot loads a spot; its owner holds the permit.
func (l Loaders) Spot(id uint) Stage {
	return func(ctx context.Context, req Request) (Request, error) {
		spot, err := l.Spots.FindByID(ctx, id)
		if err != nil {
			return req, notFound(err, "Spot")
		}
		req.Spot = spot
		return req.WithPermit(spot.OwnerID), nil
	}
}

// Review loads a review; its author holds the permit.
func (l Loaders) Review(id uint) Stage {
	return func(ctx context.Context, req Request) (Request, error) {
		review, err := l.Reviews.FindByID(ctx, id)
		if err != nil {
			return req, notFound(err, "Review")
		}
		req.Review = review
		return req.WithPermit(review.UserID), nil
	}
}

// Booking loads a booking; the renter holds the permit.
func (l Loaders) Booking(id uint) Stage {
	return func(ctx context.Context, req Request) (Request, error) {
		booking, err := l.Bookings.FindByID(ctx, id)
		if err != nil {
			return req, notFound(err, "Booking")
		}
		req.Booking = booking
		return req.WithPermit(booking.UserID), nil
	}
}

// SpotImage loads an image that must belong to a spot.
func (l Loaders) SpotImage(id uint) Stage {
	return l.image(id, model.ImageKindSpot)
}

// ReviewImage loads an image that must belong to a review.
func (l Loaders) ReviewImage(id uint) Stage {
	return l.image(id, model.ImageKindReview)
}

func (l Loaders) image(id uint, kind model.ImageKind) Stage {
	return func(ctx context.Context, req Request) (Request, error) {
		image, err := l.Images.FindByID(ctx, id)
		if err != nil {
			return req, notFound(err, "Image")
		}
		target, err := image.Target()
		if err != nil {
			return req, err
		}
		if target.Kind() != kind {
			return req, apperrors.WrongImageType(string(kind))
		}
		owner, err := image.OwnerID()
		if err != nil {
			return req, err
		}
		req.Image = image
		return req.WithPermit(owner), nil
	}
}

func notFound(err error, resource string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound(resource)
	}
	return fmt.Errorf("load %s: %w", resource, err)
}
