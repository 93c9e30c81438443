package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/devcamper/bootcamp-api/internal/core/domain"
)

const (
	// UserKey is the echo.Context key holding the authenticated *domain.User.
	UserKey = "user"
	// CookieName is the session cookie set on login.
	CookieName = "token"
)

var errNotAuthorized = domain.E(domain.KindUnauthenticated, "not authorized to access this route")

// Authenticator resolves a session token to the stored user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// Protect requires a session token, taken from the Authorization bearer
// header or else the token cookie, and stores the user in the context.
func Protect(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearerToken(c)
			if raw == "" {
				return errNotAuthorized
			}

			user, err := auth.Authenticate(c.Request().Context(), raw)
			if err != nil {
				return err
			}

			c.Set(UserKey, user)
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) string {
	scheme, tok, ok := strings.Cut(c.Request().Header.Get(echo.HeaderAuthorization), " ")
	if tok = strings.TrimSpace(tok); ok && strings.EqualFold(scheme, "bearer") && tok != "" {
		return tok
	}
	if cookie, err := c.Cookie(CookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// CurrentUser returns the user stored by Protect.
func CurrentUser(c echo.Context) (*domain.User, bool) {
	u, ok := c.Get(UserKey).(*domain.User)
	return u, ok && u != nil
}
