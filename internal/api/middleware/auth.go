package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/orgmaturity/assessment-api/internal/core/domain"
)

// SessionKey is the echo context key holding the caller's domain.Session.
const SessionKey = "session"

// TokenParser resolves a bearer token into a session.
type TokenParser interface {
	ParseToken(ctx context.Context, token string) (*domain.Session, error)
}

// Auth validates the bearer token and injects the session into the context.
func Auth(parser TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			session, err := parser.ParseToken(c.Request().Context(), parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(SessionKey, *session)
			return next(c)
		}
	}
}

// SessionFrom returns the session stored by Auth.
func SessionFrom(c echo.Context) (domain.Session, bool) {
	s, ok := c.Get(SessionKey).(domain.Session)
	return s, ok
}
