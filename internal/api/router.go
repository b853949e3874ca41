package api

import (
	_ "embed"
	"net/http"
	"strings"

	"github.com/datallboy/ytweb/internal/api/controllers"
	"github.com/datallboy/ytweb/internal/app"
	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/rs/cors"
)

//go:embed web/index.html
var indexHTML string

func RegisterRoutes(e *echo.Echo, app *app.Context, jobs controllers.JobScheduler) {
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	// Middleware: Request Logger
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c *echo.Context, v middleware.RequestLoggerValues) error {
			// the UI polls status every second, keep that out of the info log
			if strings.HasPrefix(v.URI, "/api/status/") {
				app.Logger.Debug("%s %s | %d | %s | %s", v.Method, v.URI, v.Status, v.Latency, v.RequestID)
				return nil
			}
			app.Logger.Info("%s %s | %d | %s | %s", v.Method, v.URI, v.Status, v.Latency, v.RequestID)
			return nil
		},
	}))

	mediaCtrl := &controllers.MediaController{App: app}
	dlCtrl := &controllers.DownloadController{App: app, Jobs: jobs}

	e.GET("/", func(c *echo.Context) error {
		return c.HTML(http.StatusOK, indexHTML)
	})
	e.GET("/healthz", dlCtrl.HandleHealth)

	e.POST("/api/info", mediaCtrl.HandleInfo)
	e.POST("/api/update", mediaCtrl.HandleUpdate)

	e.POST("/api/download", dlCtrl.HandleDownload)
	e.GET("/api/status/:id", dlCtrl.HandleStatus)
	e.GET("/api/history", dlCtrl.HandleHistory)
}

// Handler wraps the router with CORS for the given origins. Without any
// origins the UI is same-origin only and no CORS headers are sent.
func Handler(e *echo.Echo, allowedOrigins []string) http.Handler {
	if len(allowedOrigins) == 0 {
		return e
	}
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(e)
}
