package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/octobees/job-market-dashboard/internal/jobsapi"
)

func TestInsightsMap(t *testing.T) {
	e := newTestEcho(t)
	stub := newJobsStub()
	stub.zones = []jobsapi.ZoneCount{
		{Label: "Bretagne", Latitude: 48.1, Longitude: -2.8, Count: 310},
		{Label: "Occitanie", Latitude: 43.6, Longitude: 1.4, Count: 120},
	}
	h := NewInsightsHandler(stub, nil)

	c, rec := newSessionContext(e, httptest.NewRequest(http.MethodGet, "/map?zone=region&cluster=9", nil), nil)
	if err := h.Map(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.lastZone != jobsapi.ZoneRegion {
		t.Fatalf("expected region aggregates, got %s", stub.lastZone)
	}
	body := rec.Body.String()
	if strings.Count(body, "<circle") != 2 {
		t.Fatalf("expected two bubbles, got %s", body)
	}
	if !strings.Contains(body, `value="6" selected`) || !strings.Contains(body, `value="region" checked`) {
		t.Fatalf("expected clamped precision and selected zone")
	}
}

func TestInsightsMap_Errors(t *testing.T) {
	e := newTestEcho(t)

	tests := map[string]struct {
		err  error
		want string
	}{
		"status":    {err: &jobsapi.StatusError{StatusCode: 502}, want: "Erreur API: 502"},
		"transport": {err: errors.Join(jobsapi.ErrTransport, errors.New("dial")), want: "Erreur de chargement"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			stub := newJobsStub()
			stub.aggErr = tc.err
			h := NewInsightsHandler(stub, nil)
			c, rec := newSessionContext(e, httptest.NewRequest(http.MethodGet, "/map", nil), nil)
			if err := h.Map(c); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), tc.want) {
				t.Fatalf("expected %q in page", tc.want)
			}
			if stub.lastZone != jobsapi.ZoneCity {
				t.Fatalf("expected city default, got %s", stub.lastZone)
			}
		})
	}
}

func TestInsightsSkills(t *testing.T) {
	e := newTestEcho(t)
	stub := newJobsStub()
	for i := 0; i < 25; i++ {
		stub.topSkills = append(stub.topSkills, jobsapi.SkillCount{Skill: "skill-" + string(rune('a'+i)), Offers: i + 1})
	}
	h := NewInsightsHandler(stub, nil)

	c, rec := newSessionContext(e, httptest.NewRequest(http.MethodGet, "/skills", nil), nil)
	if err := h.Skills(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := rec.Body.String()
	if strings.Count(body, "<rect") != 20 {
		t.Fatalf("expected top 20 bars, got %d", strings.Count(body, "<rect"))
	}
	if !strings.Contains(body, "skill-y") || strings.Contains(body, "skill-a<") {
		t.Fatalf("expected the highest counts to be kept")
	}

	stub.topSkills = nil
	c, rec = newSessionContext(e, httptest.NewRequest(http.MethodGet, "/skills", nil), nil)
	_ = h.Skills(c)
	if !strings.Contains(rec.Body.String(), "Aucune donnée disponible pour les compétences.") {
		t.Fatalf("expected empty notice")
	}
}
