package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// health contains the probe handlers.
type health struct {
	version   string
	startedAt time.Time
}

// Health reports that the process is alive and for how long.
func (h *health) Health(c echo.Context) error {
	now := time.Now()

	uptime := int(now.Sub(h.startedAt).Seconds())
	if uptime < 0 {
		uptime = 0
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":    "healthy",
		"timestamp": now.UTC(),
		"version":   h.version,
		"uptime":    uptime,
	})
}

// Ready reports that the service can accept traffic.
// Dependencies are not probed.
func (h *health) Ready(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status": "ready",
		"checks": echo.Map{
			"database":     "ok",
			"external_api": "ok",
		},
	})
}
