package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/octobees/job-market-dashboard/internal/jobsapi"
	"github.com/octobees/job-market-dashboard/internal/metrics"
	middlewarepkg "github.com/octobees/job-market-dashboard/internal/middleware"
	"github.com/octobees/job-market-dashboard/internal/render"
	"github.com/octobees/job-market-dashboard/internal/search"
)

const profilePath = "/profile"

var dateOptions = []struct {
	window search.DateWindow
	label  string
}{
	{search.DateLast24h, "⏰ 24 dernières heures"},
	{search.DateLast3Days, "📅 3 derniers jours"},
	{search.DateLast7Days, "🗓️ 7 derniers jours"},
}

// ProfileHandler serves the filter form, the offer cards and page navigation.
type ProfileHandler struct {
	api    jobsapi.Source
	logger *slog.Logger
}

// NewProfileHandler creates a profile handler backed by api.
func NewProfileHandler(api jobsapi.Source, logger *slog.Logger) *ProfileHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileHandler{api: api, logger: logger}
}

// Show handles GET /profile. A fresh session runs the default search before rendering.
func (h *ProfileHandler) Show(c echo.Context) error {
	sess, ok := middlewarepkg.SessionFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "session unavailable")
	}
	ctx := c.Request().Context()

	page := render.ProfilePage{}
	options, err := loadOptions(ctx, h.api)
	if err != nil {
		h.logger.Warn("filter options unavailable", "error", err, "request_id", middlewarepkg.RequestIDFromContext(c))
		page.OptionsError = userMessage(err)
		return c.Render(http.StatusOK, "profile", render.View{Title: "Profile", Active: "profile", Body: page})
	}

	snap := sess.Snapshot()
	if snap.State == search.StateIdle {
		h.fetch(ctx, sess, snap.Filter)
		snap = sess.Snapshot()
	}

	f := snap.Filter
	page.Cities = render.Options(options.Cities, f.Cities)
	page.Departments = render.Options(options.Departments, f.Departments)
	page.Regions = render.Options(options.Regions, f.Regions)
	page.Skills = render.Options(options.Skills, f.Skills)
	page.Contracts = render.Options(options.Contracts, f.Contracts)
	for _, d := range dateOptions {
		page.Dates = append(page.Dates, render.Option{Value: d.window.Token(), Label: d.label, Selected: f.DateWindow == d.window})
	}
	page.Error = snap.Error
	page.Result = snap.Result
	page.Pager = snap.Pager()

	return c.Render(http.StatusOK, "profile", render.View{Title: "Profile", Active: "profile", Body: page})
}

// Search handles POST /profile/search. The submitted filters replace the current ones
// and the page resets to the first one.
func (h *ProfileHandler) Search(c echo.Context) error {
	sess, ok := middlewarepkg.SessionFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "session unavailable")
	}
	form, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	candidate := filterFromValues(sess.Snapshot().Filter, form)
	candidate.TriggerSearch()
	h.fetch(c.Request().Context(), sess, candidate)
	return c.Redirect(http.StatusSeeOther, profilePath)
}

// Next handles POST /profile/next.
func (h *ProfileHandler) Next(c echo.Context) error {
	return h.navigate(c, func(f *search.FilterState, totalPages int) bool {
		return f.NextPage(totalPages)
	})
}

// Prev handles POST /profile/prev.
func (h *ProfileHandler) Prev(c echo.Context) error {
	return h.navigate(c, func(f *search.FilterState, _ int) bool {
		return f.PrevPage()
	})
}

func (h *ProfileHandler) navigate(c echo.Context, move func(f *search.FilterState, totalPages int) bool) error {
	sess, ok := middlewarepkg.SessionFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "session unavailable")
	}
	snap := sess.Snapshot()
	candidate := snap.Filter.Clone()
	if move(&candidate, snap.TotalPages()) {
		h.fetch(c.Request().Context(), sess, candidate)
	}
	return c.Redirect(http.StatusSeeOther, profilePath)
}

// fetch runs one search for candidate and settles the session with its outcome,
// unless a newer fetch started in the meantime.
func (h *ProfileHandler) fetch(ctx context.Context, sess *search.Session, candidate search.FilterState) {
	ticket := sess.Begin(candidate)
	page, err := h.api.Search(ctx, search.Build(ticket.Filter, sess.PageSize()))
	if err != nil {
		h.logger.Warn("search failed", "error", err, "page", ticket.Filter.Page)
		if !sess.Fail(ticket, userMessage(err)) {
			metrics.StaleResults.Inc()
		}
		return
	}
	if !sess.Complete(ticket, search.NewSearchResult(page.Records, page.TotalCount)) {
		metrics.StaleResults.Inc()
		h.logger.Debug("discarded stale search result", "page", ticket.Filter.Page)
	}
}

// filterFromValues applies submitted filter values on top of base.
func filterFromValues(base search.FilterState, values url.Values) search.FilterState {
	f := base.Clone()
	f.SetCities(values[search.ParamCity])
	f.SetDepartments(values[search.ParamDepartment])
	f.SetRegions(values[search.ParamRegion])
	f.SetSkills(values[search.ParamSkill])
	f.SetContracts(values[search.ParamContract])
	f.SetDateWindow(search.ParseDateWindow(values.Get(search.ParamDate)))
	return f
}
