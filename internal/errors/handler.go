package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// Handler is the single place failed requests are serialized.
func Handler(log *logrus.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		httpErr := resolve(err)
		if httpErr.StatusCode >= http.StatusInternalServerError {
			log.WithFields(logrus.Fields{
				"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
				"method":     c.Request().Method,
				"path":       c.Path(),
			}).WithError(err).Error("unexpected error")
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(httpErr.StatusCode)
		} else {
			writeErr = c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
		if writeErr != nil {
			log.WithError(writeErr).Warn("write error response")
		}
	}
}

func resolve(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	// framework errors: unknown route, bad bind, method not allowed
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) && echoErr.Code < http.StatusInternalServerError {
		message := http.StatusText(echoErr.Code)
		if s, ok := echoErr.Message.(string); ok && s != "" {
			message = s
		} else if echoErr.Message != nil {
			message = fmt.Sprint(echoErr.Message)
		}
		return NewHTTPError(echoErr.Code, kindForStatus(echoErr.Code), message)
	}
	return Internal()
}

func kindForStatus(status int) Kind {
	switch status {
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusUnauthorized:
		return KindUnauthenticated
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusBadRequest:
		return KindValidationFailed
	default:
		return Kind(http.StatusText(status))
	}
}
