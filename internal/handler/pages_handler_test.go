package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestPagesHandler(t *testing.T) {
	e := newTestEcho(t)
	h := NewPagesHandler("https://app.powerbi.com/view?r=report")

	c, rec := newSessionContext(e, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	if err := h.Home(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/profile" {
		t.Fatalf("expected redirect to /profile, got %d", rec.Code)
	}

	c, rec = newSessionContext(e, httptest.NewRequest(http.MethodGet, "/powerbi", nil), nil)
	if err := h.PowerBI(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `src="https://app.powerbi.com/view?r=report"`) {
		t.Fatalf("expected embedded report, got %s", rec.Body.String())
	}

	c, rec = newSessionContext(e, httptest.NewRequest(http.MethodGet, "/architecture", nil), nil)
	if err := h.Architecture(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "/static/architecture.svg") {
		t.Fatalf("expected diagram reference")
	}
}
