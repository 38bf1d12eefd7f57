package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/octobees/job-market-dashboard/internal/charts"
	"github.com/octobees/job-market-dashboard/internal/jobsapi"
	middlewarepkg "github.com/octobees/job-market-dashboard/internal/middleware"
	"github.com/octobees/job-market-dashboard/internal/render"
)

var clusterLabels = []string{"Aucun", "Pays", "Grande région", "Région", "Département", "Agglomération", "Ville"}

// InsightsHandler renders the aggregate views: the offer map and the top skills chart.
type InsightsHandler struct {
	api    jobsapi.Source
	logger *slog.Logger
}

// NewInsightsHandler creates an insights handler backed by api.
func NewInsightsHandler(api jobsapi.Source, logger *slog.Logger) *InsightsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &InsightsHandler{api: api, logger: logger}
}

// Map handles GET /map?zone=&cluster=.
func (h *InsightsHandler) Map(c echo.Context) error {
	zone := jobsapi.ParseZone(c.QueryParam("zone"))
	precision := parseIntDefault(c.QueryParam("cluster"), 0)
	if precision < 0 {
		precision = 0
	}
	if precision > charts.MaxClusterPrecision {
		precision = charts.MaxClusterPrecision
	}

	page := render.MapPage{ZoneLabel: zone.Label()}
	for _, z := range []jobsapi.Zone{jobsapi.ZoneCity, jobsapi.ZoneDepartment, jobsapi.ZoneRegion} {
		page.Zones = append(page.Zones, render.Option{Value: z.String(), Label: z.Label(), Selected: z == zone})
	}
	for p := 0; p <= charts.MaxClusterPrecision; p++ {
		page.Precisions = append(page.Precisions, render.Option{Value: strconv.Itoa(p), Label: clusterLabels[p], Selected: p == precision})
	}

	zones, err := h.api.TopZones(c.Request().Context(), zone)
	if err != nil {
		h.logger.Warn("zone aggregates unavailable", "zone", zone, "error", err, "request_id", middlewarepkg.RequestIDFromContext(c))
		page.Error = userMessage(err)
	} else {
		page.Map = charts.Project(charts.Cluster(zones, uint(precision)))
	}
	return c.Render(http.StatusOK, "map", render.View{Title: "Carte", Active: "map", Body: page})
}

// Skills handles GET /skills.
func (h *InsightsHandler) Skills(c echo.Context) error {
	page := render.SkillsPage{}
	skills, err := h.api.TopSkills(c.Request().Context())
	if err != nil {
		h.logger.Warn("skill aggregates unavailable", "error", err, "request_id", middlewarepkg.RequestIDFromContext(c))
		page.Error = userMessage(err)
	} else {
		page.Chart = charts.TopSkills(skills, charts.TopSkillsLimit)
	}
	return c.Render(http.StatusOK, "skills", render.View{Title: "Top Compétences", Active: "skills", Body: page})
}
