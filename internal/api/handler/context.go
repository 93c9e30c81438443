package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/devcamper/bootcamp-api/internal/api/middleware"
	"github.com/devcamper/bootcamp-api/internal/core/domain"
)

// currentUser returns the user placed in the context by middleware.Protect.
// Handlers mounted behind Protect always have one; the check guards against
// a route registered without it.
func currentUser(c echo.Context) (*domain.User, error) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, domain.E(domain.KindUnauthenticated, "not authorized to access this route")
	}
	return u, nil
}

func currentActor(c echo.Context) (domain.Actor, error) {
	u, err := currentUser(c)
	if err != nil {
		return domain.Actor{}, err
	}
	return u.Actor(), nil
}

// bindAndValidate decodes the request body into req and runs the struct tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.E(domain.KindInvalidInput, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return domain.E(domain.KindInvalidInput, err.Error())
	}
	return nil
}
