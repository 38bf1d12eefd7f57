package middleware

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/octobees/job-market-dashboard/internal/config"
	"github.com/octobees/job-market-dashboard/internal/session"
)

func TestLoggingMiddleware(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, nil))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(ContextKeyRequestID, "rid-123")

	err := Logging(logger)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(buf.String(), "request_id=rid-123") || !strings.Contains(buf.String(), "path=/healthz") {
		t.Fatalf("expected log output to contain request id and path, got %s", buf.String())
	}

	// ensure errors are propagated and logged
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.Set(ContextKeyRequestID, "rid-456")
	expected := errors.New("boom")
	err = Logging(logger)(func(c echo.Context) error {
		return expected
	})(c)
	if !strings.Contains(buf.String(), "rid-456") || !strings.Contains(buf.String(), "level=ERROR") {
		t.Fatalf("expected second log entry at error level, got %s", buf.String())
	}
	if !errors.Is(err, expected) {
		t.Fatalf("expected error to bubble up")
	}
}

func TestRateLimiter(t *testing.T) {
	cfg := config.RateLimitConfig{Requests: 1, Interval: time.Second}
	mw := RateLimiter("/api/", cfg)
	e := echo.New()

	nextCalls := 0
	next := func(c echo.Context) error {
		nextCalls++
		return c.NoContent(http.StatusOK)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	rec := httptest.NewRecorder()
	_ = mw(next)(e.NewContext(req, rec))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", rec.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/api/options/ville", nil)
	rec2 := httptest.NewRecorder()
	_ = mw(next)(e.NewContext(req2, rec2))
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request rejected, got %d", rec2.Code)
	}

	// Pages outside the prefix bypass the limiter.
	req3 := httptest.NewRequest(http.MethodGet, "/profile", nil)
	rec3 := httptest.NewRecorder()
	_ = mw(next)(e.NewContext(req3, rec3))
	if rec3.Code != http.StatusOK {
		t.Fatalf("expected page request to pass")
	}

	// zero config should behave as passthrough
	mw = RateLimiter("/api/", config.RateLimitConfig{})
	req4 := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	rec4 := httptest.NewRecorder()
	_ = mw(next)(e.NewContext(req4, rec4))
	if rec4.Code != http.StatusOK {
		t.Fatalf("expected passthrough when limiter disabled")
	}

	if nextCalls != 3 {
		t.Fatalf("expected next handler to be invoked 3 times, got %d", nextCalls)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	e := echo.New()
	handler := RequestID()

	t.Run("reuse incoming header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "incoming")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := handler(func(c echo.Context) error {
			if RequestIDFromContext(c) != "incoming" {
				t.Fatalf("expected request id to be stored")
			}
			return c.NoContent(http.StatusOK)
		})(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Header().Get("X-Request-ID") != "incoming" {
			t.Fatalf("expected response header to propagate request id")
		}
	})

	t.Run("generate when missing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := handler(func(c echo.Context) error {
			rid := RequestIDFromContext(c)
			if rid == "" {
				t.Fatalf("expected generated request id")
			}
			return c.NoContent(http.StatusOK)
		})(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Header().Get("X-Request-ID") == "" {
			t.Fatalf("expected response header set")
		}
	})
}

func TestSessionMiddleware(t *testing.T) {
	e := echo.New()
	tokens := session.NewTokenManager("secret", time.Hour)
	store := session.NewStore(time.Hour, 20)
	mw := Session(tokens, store, nil)

	// first visit issues a cookie
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	rec := httptest.NewRecorder()
	var first any
	if err := mw(func(c echo.Context) error {
		sess, ok := SessionFromContext(c)
		if !ok {
			t.Fatalf("expected session in context")
		}
		first = sess
		return c.NoContent(http.StatusOK)
	})(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != SessionCookie || !cookies[0].HttpOnly {
		t.Fatalf("expected session cookie, got %+v", cookies)
	}

	// returning visit reuses the same session without a new cookie
	req2 := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req2.AddCookie(cookies[0])
	rec2 := httptest.NewRecorder()
	if err := mw(func(c echo.Context) error {
		sess, _ := SessionFromContext(c)
		if any(sess) != first {
			t.Fatalf("expected the same session on return visit")
		}
		return c.NoContent(http.StatusOK)
	})(e.NewContext(req2, rec2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec2.Result().Cookies()) != 0 {
		t.Fatalf("expected no new cookie for a valid session")
	}

	// forged cookie starts over
	req3 := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req3.AddCookie(&http.Cookie{Name: SessionCookie, Value: "forged"})
	rec3 := httptest.NewRecorder()
	_ = mw(func(c echo.Context) error {
		sess, _ := SessionFromContext(c)
		if any(sess) == first {
			t.Fatalf("expected a fresh session for a forged cookie")
		}
		return c.NoContent(http.StatusOK)
	})(e.NewContext(req3, rec3))
	if len(rec3.Result().Cookies()) != 1 {
		t.Fatalf("expected replacement cookie")
	}
	if store.Len() != 2 {
		t.Fatalf("expected two sessions, got %d", store.Len())
	}
}
