package router // package router defines how HTTP routes are registered for the API

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ayoubre/employee-manager/internal/handler"
	"github.com/ayoubre/employee-manager/internal/middleware"
	"github.com/ayoubre/employee-manager/internal/model"
)

// RegisterRoutes registers routes that do not require authentication: the
// welcome payload, the health check, and a JSON catch-all for unmatched
// paths.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/", handler.Welcome)
	e.GET("/healthz", handler.Health)
	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Route not found"})
	})
}

// RegisterAuth mounts the authentication endpoints under /api/auth.
// Register and login are open; logout and profile run behind the token
// validator because both need the resolved identity (logout additionally
// needs the raw token it arrived with).
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, auth echo.MiddlewareFunc) {
	g := e.Group("/api/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/logout", a.Logout, auth)
	g.GET("/profile", a.Profile, auth)
}

// RegisterEmployees mounts the employee CRUD endpoints under
// /api/employees.  Every route requires a valid token; mutations
// additionally require the admin role.  The cache middleware sits after
// the auth gate so a cached body is only ever served to an authenticated
// caller.
func RegisterEmployees(e *echo.Echo, h *handler.EmployeeHandler, auth, cache echo.MiddlewareFunc) {
	g := e.Group("/api/employees", auth)

	g.GET("", h.List, cache)
	g.GET("/:id", h.Get, cache)

	admin := middleware.RequireRole(model.RoleAdmin)
	g.POST("", h.Create, admin)
	g.PUT("/:id", h.Update, admin)
	g.DELETE("/:id", h.Delete, admin)
}
