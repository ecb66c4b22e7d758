package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "spotbook/internal/errors"
)

// CustomValidator wraps validator for Echo. Failures come back as one
// ValidationFailed error keyed by JSON field name; the message is the
// field's msg tag.
type CustomValidator struct {
	validator *validator.Validate
}

// checker adds rules the struct tags cannot express.
type checker interface {
	Check(v *validator.Validate) map[string]string
}

// NewValidator builds the validator installed on the echo instance.
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	fields := map[string]string{}
	if err := cv.validator.Struct(i); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		t := reflect.Indirect(reflect.ValueOf(i)).Type()
		for _, fe := range verrs {
			if _, seen := fields[fe.Field()]; !seen {
				fields[fe.Field()] = fieldMessage(t, fe)
			}
		}
	}
	if c, ok := i.(checker); ok {
		for field, msg := range c.Check(cv.validator) {
			if _, seen := fields[field]; !seen {
				fields[field] = msg
			}
		}
	}
	if len(fields) > 0 {
		return apperrors.Validation(fields)
	}
	return nil
}

func fieldMessage(t reflect.Type, fe validator.FieldError) string {
	if f, ok := t.FieldByName(fe.StructField()); ok {
		if msg := f.Tag.Get("msg"); msg != "" {
			return msg
		}
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

// bind decodes the body into req and validates it.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return apperrors.Validation(map[string]string{"body": "Request body is malformed"})
	}
	return c.Validate(req)
}
