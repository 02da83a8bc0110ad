package middlewares

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

// Logger returns a middleware that logs every request into the given logger.
// The logged URI is rebuilt from the parsed URL so in-process requests are logged too.
func Logger(log logrus.FieldLogger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		HandleError:      true,
		LogStatus:        true,
		LogMethod:        true,
		LogLatency:       true,
		LogRequestID:     true,
		LogContentLength: true,
		LogRemoteIP:      true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.WithFields(logrus.Fields{
				"request_id": v.RequestID,
				"remote_ip":  v.RemoteIP,
			}).Infof("[%d] %s %s (%s) %s", v.Status, v.Method, c.Request().URL.RequestURI(), v.ContentLength, v.Latency)
			return nil
		},
	})
}
