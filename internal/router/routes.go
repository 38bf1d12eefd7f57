package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/octobees/job-market-dashboard/internal/handler"
	"github.com/octobees/job-market-dashboard/internal/render"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Profile  *handler.ProfileHandler
	Insights *handler.InsightsHandler
	Pages    *handler.PagesHandler
	API      *handler.APIHandler
}

// Register wires all HTTP routes. session resolves the browser session and is applied
// to the profile pages only.
func Register(e *echo.Echo, handlers Handlers, session echo.MiddlewareFunc) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.StaticFS("/static", render.Static())

	e.GET("/", handlers.Pages.Home)
	e.GET("/powerbi", handlers.Pages.PowerBI)
	e.GET("/architecture", handlers.Pages.Architecture)
	e.GET("/map", handlers.Insights.Map)
	e.GET("/skills", handlers.Insights.Skills)

	profile := e.Group("/profile", session)
	profile.GET("", handlers.Profile.Show)
	profile.POST("/search", handlers.Profile.Search)
	profile.POST("/next", handlers.Profile.Next)
	profile.POST("/prev", handlers.Profile.Prev)

	api := e.Group("/api")
	api.GET("/search", handlers.API.Search)
	api.GET("/options/:kind", handlers.API.Options)
}
