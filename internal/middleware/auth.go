package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ayoubre/employee-manager/internal/model"
	"github.com/ayoubre/employee-manager/internal/repository"
	"github.com/ayoubre/employee-manager/internal/utils"
)

// Context keys under which the resolved identity is stored for handlers.
const (
	ContextUserKey  = "user"
	ContextTokenKey = "token"
)

// Auth returns an Echo middleware that authenticates a Bearer token and
// attaches the resolved user plus the raw token string to the request
// context.  Every protected request runs the full sequence, in order:
//
//  1. the Authorization header must carry "Bearer <token>"
//  2. the token store is consulted; a blacklisted token is rejected
//  3. the signature and expiry claim are verified against the secret
//  4. the referenced user must still exist and be active
//
// Blacklist state is re-read from the store on each call; nothing is
// cached across requests.
func Auth(secret string, tokens *repository.TokenRepo, users *repository.UserRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "No token provided"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			ctx := c.Request().Context()

			// Server-side revocation check. A token unknown to the store is
			// not rejected here; the signature check below decides its fate.
			rec, err := tokens.Get(ctx, raw)
			if err != nil && !errors.Is(err, sql.ErrNoRows) {
				c.Logger().Errorf("auth: token lookup failed: %v", err)
				return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
			}
			if err == nil && rec.Blacklisted {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid or expired token"})
			}

			ident, err := utils.VerifyToken(secret, raw)
			if err != nil {
				if errors.Is(err, utils.ErrTokenExpired) {
					c.Logger().Debugf("auth: expired token for path %s", c.Path())
					return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Token expired"})
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized"})
			}

			u, err := users.GetByID(ctx, ident.UserID)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"message": "User not found or inactive"})
				}
				c.Logger().Errorf("auth: user lookup failed: %v", err)
				return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
			}
			if !u.Active {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "User not found or inactive"})
			}

			c.Set(ContextUserKey, u)
			c.Set(ContextTokenKey, raw)
			return next(c)
		}
	}
}

// UserFromContext returns the authenticated user attached by Auth.
func UserFromContext(c echo.Context) (model.User, bool) {
	u, ok := c.Get(ContextUserKey).(model.User)
	return u, ok
}

// TokenFromContext returns the raw bearer token attached by Auth.
func TokenFromContext(c echo.Context) string {
	t, _ := c.Get(ContextTokenKey).(string)
	return t
}
