package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/job-market-dashboard/internal/render"
)

// PagesHandler serves the pages that need no job data.
type PagesHandler struct {
	powerBIURL string
}

// NewPagesHandler creates a handler embedding the given Power BI report.
func NewPagesHandler(powerBIURL string) *PagesHandler {
	return &PagesHandler{powerBIURL: powerBIURL}
}

// Home handles GET / by sending visitors to the profile page.
func (h *PagesHandler) Home(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, profilePath)
}

// PowerBI handles GET /powerbi.
func (h *PagesHandler) PowerBI(c echo.Context) error {
	return c.Render(http.StatusOK, "powerbi", render.View{Title: "Power BI", Active: "powerbi", Body: render.PowerBIPage{EmbedURL: h.powerBIURL}})
}

// Architecture handles GET /architecture.
func (h *PagesHandler) Architecture(c echo.Context) error {
	return c.Render(http.StatusOK, "architecture", render.View{Title: "Architecture", Active: "architecture"})
}
