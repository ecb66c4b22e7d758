// Package access decides who may act on which resource. A handler builds a
// Request from the restored identity and runs it through a fixed list of
// stages; the first stage that fails ends the pipeline with its error.
package access

import (
	"context"
	"fmt"

	apperrors "spotbook/internal/errors"
	"spotbook/internal/model"
)

// Request is the value threaded through the stages. Loaders fill in the
// resource and its permit, the id of the user who owns it.
type Request struct {
	Viewer  *model.SessionUser
	Spot    *model.Spot
	Review  *model.Review
	Booking *model.Booking
	Image   *model.Image

	permit    uint
	hasPermit bool
}

// NewRequest starts a pipeline for viewer, which may be nil.
func NewRequest(viewer *model.SessionUser) Request {
	return Request{Viewer: viewer}
}

// WithPermit records the owning user of the loaded resource.
func (r Request) WithPermit(ownerID uint) Request {
	r.permit = ownerID
	r.hasPermit = true
	return r
}

// Permit returns the owning user id, if a loader has set one.
func (r Request) Permit() (uint, bool) {
	return r.permit, r.hasPermit
}

// IsOwner reports whether the viewer owns the loaded resource.
func (r Request) IsOwner() bool {
	return r.Viewer != nil && r.hasPermit && r.Viewer.ID == r.permit
}

// Stage inspects or extends a request, or stops the pipeline.
type Stage func(ctx context.Context, req Request) (Request, error)

// Run applies stages in order and stops at the first error.
func Run(ctx context.Context, req Request, stages ...Stage) (Request, error) {
	var err error
	for _, stage := range stages {
		if req, err = stage(ctx, req); err != nil {
			return req, err
		}
	}
	return req, nil
}

// RequireAuth rejects anonymous requests.
func RequireAuth() Stage {
	return func(_ context.Context, req Request) (Request, error) {
		if req.Viewer == nil {
			return req, apperrors.Unauthenticated()
		}
		return req, nil
	}
}

// RequireOwner lets only the owner of the loaded resource through.
func RequireOwner() Stage {
	return func(_ context.Context, req Request) (Request, error) {
		if err := checkGate(req); err != nil {
			return req, err
		}
		if req.Viewer.ID != req.permit {
			return req, apperrors.Forbidden()
		}
		return req, nil
	}
}

// RefuseOwner keeps owners from booking or reviewing their own spot.
func RefuseOwner() Stage {
	return func(_ context.Context, req Request) (Request, error) {
		if err := checkGate(req); err != nil {
			return req, err
		}
		if req.Viewer.ID == req.permit {
			return req, apperrors.ForbiddenOwnResource()
		}
		return req, nil
	}
}

// checkGate catches stage lists assembled in the wrong order.
func checkGate(req Request) error {
	if req.Viewer == nil {
		return apperrors.Unauthenticated()
	}
	if !req.hasPermit {
		return fmt.Errorf("access: ownership gate reached before a resource was loaded")
	}
	return nil
}
