package middlewares

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/itemservice/internal/apierror"
)

type binder struct {
	echo.DefaultBinder
	methodsWithBody map[string]bool
}

// NewBinder returns a wrapp of the default binder implementation with extra checks.
// Decoding failures are rendered as validation errors.
func NewBinder() echo.Binder {
	return &binder{
		methodsWithBody: map[string]bool{
			http.MethodPost:  true,
			http.MethodPatch: true,
			http.MethodPut:   true,
		},
	}
}

// Bind implements the echo.Bind interface.
// A body sent without Content-Type is decoded as JSON.
func (b *binder) Bind(i any, c echo.Context) (err error) {
	req := c.Request()
	if !b.methodsWithBody[req.Method] {
		return bindError(b.DefaultBinder.Bind(i, c))
	}

	if req.ContentLength == 0 {
		return apierror.Validation(apierror.FieldError{
			Location: []string{"body"},
			Message:  "field required",
			Type:     "value_error.missing",
		})
	}

	if req.Header.Get(echo.HeaderContentType) == "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	return bindError(b.DefaultBinder.Bind(i, c))
}

func bindError(err error) error {
	herr, ok := err.(*echo.HTTPError)
	if !ok {
		return err
	}

	switch herr.Code {
	case http.StatusUnsupportedMediaType:
		return apierror.Validation(apierror.FieldError{
			Location: []string{"body"},
			Message:  "JSON body expected",
			Type:     "type_error.content_type",
		})
	case http.StatusBadRequest:
	default:
		return err
	}

	switch ierr := herr.Internal.(type) {
	case *json.UnmarshalTypeError:
		location := []string{"body"}
		if ierr.Field != "" {
			location = append(location, strings.Split(ierr.Field, ".")...)
		}

		return apierror.Validation(apierror.FieldError{
			Location: location,
			Message:  fmt.Sprintf("value is not a valid %s", ierr.Type),
			Type:     "type_error." + ierr.Type.Kind().String(),
		})
	case *json.SyntaxError:
		return apierror.Validation(apierror.FieldError{
			Location: []string{"body", fmt.Sprint(ierr.Offset)},
			Message:  "JSON decode error",
			Type:     "value_error.jsondecode",
		})
	default:
		return apierror.Validation(apierror.FieldError{
			Location: []string{"body"},
			Message:  "JSON decode error",
			Type:     "value_error.jsondecode",
		})
	}
}
