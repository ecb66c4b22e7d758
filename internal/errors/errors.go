package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an HTTPError for callers and tests.
type Kind string

const (
	KindNotFound             Kind = "NOT_FOUND"
	KindUnauthenticated      Kind = "UNAUTHENTICATED"
	KindAuthenticationFailed Kind = "AUTHENTICATION_FAILED"
	KindForbidden            Kind = "FORBIDDEN"
	KindValidationFailed     Kind = "VALIDATION_FAILED"
	KindPastDateBooking      Kind = "PAST_DATE_BOOKING"
	KindBookingConflict      Kind = "BOOKING_CONFLICT"
	KindDuplicateReview      Kind = "DUPLICATE_REVIEW"
	KindDuplicateSpot        Kind = "DUPLICATE_SPOT"
	KindDuplicateUser        Kind = "DUPLICATE_USER"
	KindWrongImageType       Kind = "WRONG_IMAGE_TYPE"
	KindImageLimit           Kind = "IMAGE_LIMIT"
	KindInternal             Kind = "INTERNAL"
)

// ErrorResponse is the JSON envelope written for every failed request.
type ErrorResponse struct {
	Title      string      `json:"title"`
	Message    string      `json:"message"`
	StatusCode int         `json:"statusCode"`
	Errors     interface{} `json:"errors,omitempty"`
}

// HTTPError represents an HTTP error with status code.
// Errors holds field messages (map[string]string) or a plain list ([]string).
type HTTPError struct {
	StatusCode int
	Kind       Kind
	Title      string
	Message    string
	Errors     interface{}
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is matches another *HTTPError of the same kind.
func (e *HTTPError) Is(target error) bool {
	t, ok := target.(*HTTPError)
	return ok && t.Kind == e.Kind
}

// NewHTTPError creates a new HTTP error whose title equals its message.
func NewHTTPError(statusCode int, kind Kind, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Kind:       kind,
		Title:      message,
		Message:    message,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Title:      e.Title,
		Message:    e.Message,
		StatusCode: e.StatusCode,
		Errors:     e.Errors,
	}
}

// NotFound names the missing resource, e.g. "Spot couldn't be found".
func NotFound(resource string) *HTTPError {
	return NewHTTPError(http.StatusNotFound, KindNotFound, fmt.Sprintf("%s couldn't be found", resource))
}

func Unauthenticated() *HTTPError {
	return NewHTTPError(http.StatusUnauthorized, KindUnauthenticated, "Authentication required")
}

// AuthenticationFailed never says whether the user or the password was wrong.
func AuthenticationFailed() *HTTPError {
	e := NewHTTPError(http.StatusUnauthorized, KindAuthenticationFailed, "Login Failed")
	e.Errors = []string{"The provided credentials were invalid."}
	return e
}

func Forbidden() *HTTPError {
	return NewHTTPError(http.StatusForbidden, KindForbidden, "Forbidden")
}

// ForbiddenOwnResource blocks an owner from booking or reviewing their own spot.
func ForbiddenOwnResource() *HTTPError {
	e := Forbidden()
	e.Message = "Spot owners cannot perform this action on their own spot"
	return e
}

// Validation carries one message per offending field.
func Validation(fields map[string]string) *HTTPError {
	e := NewHTTPError(http.StatusBadRequest, KindValidationFailed, "Validation error")
	e.Errors = fields
	return e
}

func PastDateBooking() *HTTPError {
	return NewHTTPError(http.StatusBadRequest, KindPastDateBooking, "You cannot set the booking to the past.")
}

// BookingConflict always names both dates, whichever bound overlapped.
func BookingConflict() *HTTPError {
	e := NewHTTPError(http.StatusForbidden, KindBookingConflict, "Sorry, this spot is already booked for the specified dates")
	e.Errors = map[string]string{
		"startDate": "Start date conflicts with an existing booking",
		"endDate":   "End date conflicts with an existing booking",
	}
	return e
}

func DuplicateReview() *HTTPError {
	return NewHTTPError(http.StatusForbidden, KindDuplicateReview, "User already has a review for this spot")
}

// DuplicateSpot names the column whose unique constraint was hit.
func DuplicateSpot(field string) *HTTPError {
	e := NewHTTPError(http.StatusForbidden, KindDuplicateSpot, "Spot already exists")
	e.Errors = map[string]string{field: fmt.Sprintf("Spot with that %s already exists.", field)}
	return e
}

func DuplicateUser(field string) *HTTPError {
	e := NewHTTPError(http.StatusForbidden, KindDuplicateUser, "User already exists")
	e.Errors = map[string]string{field: fmt.Sprintf("User with that %s already exists", field)}
	return e
}

// WrongImageType is returned when an image id resolves to the other kind.
func WrongImageType(kind string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, KindWrongImageType, fmt.Sprintf("Not a %s image!", kind))
}

func ImageLimit() *HTTPError {
	return NewHTTPError(http.StatusForbidden, KindImageLimit, "Maximum number of images for this resource was reached")
}

func Internal() *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, KindInternal, "Internal server error")
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return Internal()
}

// IsKind reports whether err carries an HTTPError of the given kind.
func IsKind(err error, kind Kind) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.Kind == kind
}
