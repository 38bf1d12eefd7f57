package middleware

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/job-market-dashboard/internal/search"
	"github.com/octobees/job-market-dashboard/internal/session"
)

// SessionCookie is the name of the cookie carrying the signed session token.
const SessionCookie = "dashboard_session"

// Session resolves the caller's dashboard session from its cookie, starting a fresh one
// when the cookie is missing, invalid or refers to an expired session.
func Session(tokens *session.TokenManager, store *session.Store, logger *slog.Logger) echo.MiddlewareFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
				if id, err := tokens.Parse(cookie.Value); err == nil {
					if sess, ok := store.Get(id); ok {
						c.Set(ContextKeySession, sess)
						return next(c)
					}
				}
			}

			id, sess := store.Create()
			token, err := tokens.Issue(id)
			if err != nil {
				logger.Error("failed to issue session token", "error", err)
				return echo.NewHTTPError(http.StatusInternalServerError, "session unavailable")
			}
			c.SetCookie(&http.Cookie{
				Name:     SessionCookie,
				Value:    token,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
				MaxAge:   int(tokens.TTL().Seconds()),
			})
			c.Set(ContextKeySession, sess)
			return next(c)
		}
	}
}

// SessionFromContext returns the session resolved by the Session middleware.
func SessionFromContext(c echo.Context) (*search.Session, bool) {
	sess, ok := c.Get(ContextKeySession).(*search.Session)
	return sess, ok && sess != nil
}
