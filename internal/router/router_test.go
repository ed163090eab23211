package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoubre/employee-manager/internal/config"
	"github.com/ayoubre/employee-manager/internal/handler"
)

func passthrough(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error { return next(c) }
}

func newTestServer() *echo.Echo {
	e := echo.New()
	RegisterRoutes(e)
	RegisterAuth(e, handler.NewAuthHandler(config.Config{}, nil, nil), passthrough)
	RegisterEmployees(e, handler.NewEmployeeHandler(nil, nil, config.CacheConfig{}), passthrough, passthrough)
	return e
}

func TestRegisteredRoutes(t *testing.T) {
	e := newTestServer()

	want := map[string]bool{
		"GET /":                      true,
		"GET /healthz":               true,
		"POST /api/auth/register":    true,
		"POST /api/auth/login":       true,
		"POST /api/auth/logout":      true,
		"GET /api/auth/profile":      true,
		"GET /api/employees":         true,
		"GET /api/employees/:id":     true,
		"POST /api/employees":        true,
		"PUT /api/employees/:id":     true,
		"DELETE /api/employees/:id":  true,
	}
	got := map[string]bool{}
	for _, r := range e.Routes() {
		got[r.Method+" "+r.Path] = true
	}
	for route := range want {
		assert.True(t, got[route], "route %s should be registered", route)
	}
}

func TestWelcomeAndHealth(t *testing.T) {
	e := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "documentation")

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestUnmatchedRoute(t *testing.T) {
	e := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/nope/nothing", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Route not found", body["message"])
}
