package server

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/gofrs/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mdouchement/itemservice/internal/database"
	"github.com/mdouchement/itemservice/internal/server/middlewares"
	"github.com/mdouchement/itemservice/internal/server/service"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// A Controller is an Inversion Of Control pattern used to init the server package.
type Controller struct {
	Version   string
	StartedAt time.Time
	Database  database.Client
	Logger    *logrus.Logger
	Debug     bool
}

// EchoEngine instantiates the web server.
func EchoEngine(ctrl Controller) *echo.Echo {
	if ctrl.StartedAt.IsZero() {
		ctrl.StartedAt = time.Now()
	}

	engine := echo.New()
	engine.HideBanner = true
	engine.HidePort = true
	engine.Debug = ctrl.Debug

	engine.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string {
			return uuid.Must(uuid.NewV4()).String()
		},
	}))
	engine.Use(middlewares.Logger(ctrl.Logger))
	engine.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(_ echo.Context, err error, stack []byte) error {
			// Rendered and logged once by the error handler.
			return errors.Errorf("[PANIC RECOVER] %v %s", err, stack)
		},
	}))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig))
	engine.Use(middleware.Gzip())

	engine.Binder = middlewares.NewBinder()
	engine.Validator = middlewares.NewValidator()
	// Error handler
	engine.HTTPErrorHandler = middlewares.HTTPErrorHandler(ctrl.Logger)

	engine.Pre(middleware.Rewrite(map[string]string{
		"/": "/health",
	}))

	////////////
	// Router //
	////////////

	router := engine.Group("")

	//
	// health handlers
	//
	health := &health{
		version:   ctrl.Version,
		startedAt: ctrl.StartedAt,
	}
	router.GET("/health", health.Health)
	router.GET("/ready", health.Ready)

	//
	// item handlers
	//
	item := &item{
		service: service.NewItem(ctrl.Database),
		log:     ctrl.Logger,
	}
	v1 := router.Group("/api/v1")
	v1.GET("/items", item.List)
	v1.POST("/items", item.Create)
	v1.GET("/items/:id", item.Show)
	v1.PUT("/items/:id", item.Update)
	v1.DELETE("/items/:id", item.Delete)

	return engine
}

// PrintRoutes prints the Echo engin exposed routes.
func PrintRoutes(w io.Writer, e *echo.Echo) {
	ignored := map[string]bool{
		"":   true,
		".":  true,
		"/*": true,
	}

	routes := e.Routes()
	sort.Slice(routes, func(i int, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})

	fmt.Fprintln(w, "Routes:")
	for _, route := range routes {
		if ignored[route.Path] {
			continue
		}
		fmt.Fprintf(w, "%6s %s\n", route.Method, route.Path)
	}
}
