package middleware // middleware provides shared request processing for handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// RequireRole returns a middleware function that enforces that the
// authenticated user holds one of the specified roles.  It is a pure
// check on the identity already resolved by Auth and never touches the
// store.  Requests without a resolved user or with a role outside the
// allowed set are rejected with 403 Forbidden.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	msg := fmt.Sprintf("Access denied. %s role required", strings.Join(roles, " or "))
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u, ok := UserFromContext(c)
			if !ok || !allowed[u.Role] {
				return c.JSON(http.StatusForbidden, echo.Map{"message": msg})
			}
			return next(c)
		}
	}
}
