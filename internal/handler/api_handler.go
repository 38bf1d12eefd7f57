package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/job-market-dashboard/internal/jobsapi"
	middlewarepkg "github.com/octobees/job-market-dashboard/internal/middleware"
	"github.com/octobees/job-market-dashboard/internal/search"
)

// SearchResponse is the data of a GET /api/search envelope. Page is one-based.
type SearchResponse struct {
	Items      []search.JobOffer `json:"items"`
	TotalCount int               `json:"total_count"`
	Page       int               `json:"page"`
	TotalPages int               `json:"total_pages"`
	HasPrev    bool              `json:"has_prev"`
	HasNext    bool              `json:"has_next"`
}

// APIHandler exposes stateless JSON endpoints over the job API.
type APIHandler struct {
	api      jobsapi.Source
	pageSize int
	logger   *slog.Logger
}

// NewAPIHandler creates an API handler. A non-positive pageSize uses the default.
func NewAPIHandler(api jobsapi.Source, pageSize int, logger *slog.Logger) *APIHandler {
	if pageSize <= 0 {
		pageSize = search.DefaultPageSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &APIHandler{api: api, pageSize: pageSize, logger: logger}
}

// Search handles GET /api/search. Filters use the job API parameter names and page is
// one-based.
func (h *APIHandler) Search(c echo.Context) error {
	f := filterFromValues(search.FilterState{}, c.QueryParams())
	if page := parseIntDefault(c.QueryParam("page"), 1); page > 1 {
		f.Page = page - 1
	}

	result, err := h.api.Search(c.Request().Context(), search.Build(f, h.pageSize))
	if err != nil {
		h.logger.Warn("api search failed", "error", err, "request_id", middlewarepkg.RequestIDFromContext(c))
		status, message := upstreamStatus(err)
		return Error(c, status, message)
	}

	res := search.NewSearchResult(result.Records, result.TotalCount)
	pager := search.NewPager(f.Page, res.TotalCount, h.pageSize)
	return Success(c, http.StatusOK, "offers retrieved", SearchResponse{
		Items:      res.Items,
		TotalCount: res.TotalCount,
		Page:       pager.Display(),
		TotalPages: pager.TotalPages,
		HasPrev:    pager.HasPrev,
		HasNext:    pager.HasNext,
	})
}

// Options handles GET /api/options/:kind.
func (h *APIHandler) Options(c echo.Context) error {
	kind := c.Param("kind")
	ctx := c.Request().Context()

	var (
		values []string
		err    error
	)
	if kind == search.ParamSkill {
		values, err = h.api.Skills(ctx)
	} else {
		lookup, ok := jobsapi.ParseLookupKind(kind)
		if !ok {
			return Error(c, http.StatusBadRequest, "unknown option kind")
		}
		values, err = h.api.Lookup(ctx, lookup)
	}
	if err != nil {
		h.logger.Warn("api options failed", "kind", kind, "error", err, "request_id", middlewarepkg.RequestIDFromContext(c))
		status, message := upstreamStatus(err)
		return Error(c, status, message)
	}

	sortFrench(values)
	return Success(c, http.StatusOK, "options retrieved", map[string]any{"kind": kind, "values": values})
}
