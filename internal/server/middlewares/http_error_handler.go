package middlewares

import (
	"net/http"

	"github.com/gofrs/uuid"
	"github.com/labstack/echo/v4"
	"github.com/mdouchement/itemservice/internal/apierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// HTTPErrorHandler returns a middleware that formats rendered errors.
// Errors that are not typed API errors are logged and rendered as an opaque 500.
func HTTPErrorHandler(log logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		switch cause := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if cause.Code >= http.StatusInternalServerError {
				internal(log, err, c)
				return
			}

			if cause.Internal != nil {
				log.WithField("status", cause.Code).Debugf("Error [ECHO]: %s", cause.Internal)
			}
			render(c, cause.Code, echo.Map{
				"detail": cause.Message,
			})
		case *apierror.Error:
			status := apierror.StatusCode(cause)
			if status < http.StatusInternalServerError {
				render(c, status, cause)
				return
			}

			internal(log, err, c)
		default:
			internal(log, err, c)
		}
	}
}

func internal(log logrus.FieldLogger, err error, c echo.Context) {
	id := c.Response().Header().Get(echo.HeaderXRequestID)
	if id == "" {
		id = uuid.Must(uuid.NewV4()).String()
	}
	log.WithField("request_id", id).Errorf("Unhandled error: %+v", err)

	render(c, http.StatusInternalServerError, echo.Map{
		"error":   "internal_server_error",
		"message": "An internal server error occurred",
	})
}

func render(c echo.Context, status int, v any) {
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, v)
}
