package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/devcamper/bootcamp-api/internal/core/domain"
)

// Authorize enforces role-based access control. It must run after Protect.
// Services repeat the role check, so this only rejects early.
func Authorize(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return errNotAuthorized
			}
			if _, ok := allowed[user.Role]; !ok {
				return domain.E(domain.KindForbidden,
					fmt.Sprintf("user role %s is not authorized to access this route", user.Role))
			}
			return next(c)
		}
	}
}
