package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/octobees/job-market-dashboard/internal/jobsapi"
	middlewarepkg "github.com/octobees/job-market-dashboard/internal/middleware"
	"github.com/octobees/job-market-dashboard/internal/render"
	"github.com/octobees/job-market-dashboard/internal/search"
)

type jobsStub struct {
	mu        sync.Mutex
	lookups   map[jobsapi.LookupKind][]string
	skills    []string
	lookupErr error
	searchFn  func(query string) (jobsapi.SearchPage, error)
	queries   []string
	zones     []jobsapi.ZoneCount
	topSkills []jobsapi.SkillCount
	aggErr    error
	lastZone  jobsapi.Zone
}

func newJobsStub() *jobsStub {
	return &jobsStub{
		lookups: map[jobsapi.LookupKind][]string{
			jobsapi.LookupCity:       {"Paris", "Lyon"},
			jobsapi.LookupDepartment: {"Rhône"},
			jobsapi.LookupRegion:     {"Île-de-France", "Bretagne"},
			jobsapi.LookupContract:   {"CDI", "CDD"},
		},
		skills: []string{"SQL", "Python"},
	}
}

func (s *jobsStub) Search(ctx context.Context, q search.Query) (jobsapi.SearchPage, error) {
	encoded := q.Encode()
	s.mu.Lock()
	s.queries = append(s.queries, encoded)
	fn := s.searchFn
	s.mu.Unlock()
	if fn == nil {
		return jobsapi.SearchPage{Records: []search.Record{}}, nil
	}
	return fn(encoded)
}

func (s *jobsStub) Lookup(ctx context.Context, kind jobsapi.LookupKind) ([]string, error) {
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	return append([]string(nil), s.lookups[kind]...), nil
}

func (s *jobsStub) Skills(ctx context.Context) ([]string, error) {
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	return append([]string(nil), s.skills...), nil
}

func (s *jobsStub) TopZones(ctx context.Context, zone jobsapi.Zone) ([]jobsapi.ZoneCount, error) {
	s.lastZone = zone
	return s.zones, s.aggErr
}

func (s *jobsStub) TopSkills(ctx context.Context) ([]jobsapi.SkillCount, error) {
	return s.topSkills, s.aggErr
}

func (s *jobsStub) searchQueries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queries...)
}

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	r, err := render.New()
	if err != nil {
		t.Fatalf("failed to parse templates: %v", err)
	}
	e := echo.New()
	e.Renderer = r
	return e
}

func newSessionContext(e *echo.Echo, req *http.Request, sess *search.Session) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if sess != nil {
		c.Set(middlewarepkg.ContextKeySession, sess)
	}
	return c, rec
}
