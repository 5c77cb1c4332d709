package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/warehouse-crm/auth-service/internal/core/domain"
)

// Require rejects the request with 403 unless allow accepts the actor set by
// Auth. It must run after Auth.
func Require(allow func(actor *domain.Account) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, _ := c.Get(ActorKey).(*domain.Account)
			if !allow(actor) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "you do not have permission to perform this action"})
			}
			return next(c)
		}
	}
}
