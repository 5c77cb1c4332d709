package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/warehouse-crm/auth-service/internal/api/middleware"
	"github.com/warehouse-crm/auth-service/internal/core/domain"
)

// ctxActor returns the account resolved by the Auth middleware. A missing
// actor means the route was registered without the middleware.
func ctxActor(c echo.Context) (*domain.Account, error) {
	actor, ok := c.Get(middleware.ActorKey).(*domain.Account)
	if !ok || actor == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return actor, nil
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if c.Echo().Validator == nil {
		return nil
	}
	return c.Validate(req)
}
