package middlewares

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/mdouchement/itemservice/internal/apierror"
	"github.com/pkg/errors"
)

type structValidator struct {
	validate *validator.Validate
}

// NewValidator returns an echo.Validator checking the `validate` struct tags.
// Rejected fields are named after their JSON tag.
func NewValidator() echo.Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &structValidator{validate: v}
}

// Validate implements the echo.Validator interface.
func (v *structValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Wrap(err, "could not validate params")
	}

	fields := make([]apierror.FieldError, 0, len(verrs))
	for _, ferr := range verrs {
		field := apierror.FieldError{
			Location: []string{"body", ferr.Field()},
			Message:  fmt.Sprintf("field failed on the '%s' validation", ferr.Tag()),
			Type:     "value_error." + ferr.Tag(),
		}

		if ferr.Tag() == "required" {
			field.Message = "field required"
			field.Type = "value_error.missing"
		}

		fields = append(fields, field)
	}
	return apierror.Validation(fields...)
}
