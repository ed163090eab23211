package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/ayoubre/employee-manager/internal/config"
	"github.com/ayoubre/employee-manager/internal/middleware"
	"github.com/ayoubre/employee-manager/internal/model"
	"github.com/ayoubre/employee-manager/internal/queue"
	"github.com/ayoubre/employee-manager/internal/repository"
	queue_publisher "github.com/ayoubre/employee-manager/internal/service"
)

// dateLayout is the wire format of dateRecrutement.
const dateLayout = "2006-01-02"

// EmployeeHandler bundles dependencies for employee CRUD endpoints.  The
// Redis client is optional; when present, mutations invalidate the cached
// GET responses under CacheCfg.Prefix.
type EmployeeHandler struct {
	Employees *repository.EmployeeRepo
	Rdb       *redis.Client
	CacheCfg  config.CacheConfig
}

func NewEmployeeHandler(e *repository.EmployeeRepo, rdb *redis.Client, cacheCfg config.CacheConfig) *EmployeeHandler {
	return &EmployeeHandler{Employees: e, Rdb: rdb, CacheCfg: cacheCfg}
}

type employeeReq struct {
	Prenom          string `json:"prenom"`
	Nom             string `json:"nom"`
	Fonction        string `json:"fonction"`
	DateRecrutement string `json:"dateRecrutement"` // YYYY-MM-DD
	Statut          string `json:"statut"`
}

// List handles GET /api/employees.
func (h *EmployeeHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Employees.List(ctx)
	if err != nil {
		c.Logger().Errorf("employees: list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Could not list employees"})
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /api/employees/:id.
func (h *EmployeeHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	e, err := h.Employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Employee not found"})
		}
		c.Logger().Errorf("employees: get failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Could not fetch employee"})
	}
	return c.JSON(http.StatusOK, e)
}

// Create handles POST /api/employees (admin only).
func (h *EmployeeHandler) Create(c echo.Context) error {
	var req employeeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	req.Prenom = strings.TrimSpace(req.Prenom)
	req.Nom = strings.TrimSpace(req.Nom)
	req.Fonction = strings.TrimSpace(req.Fonction)
	if req.Prenom == "" || req.Nom == "" || req.Fonction == "" || req.DateRecrutement == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "All fields are required"})
	}
	when, err := time.Parse(dateLayout, req.DateRecrutement)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid dateRecrutement, expected YYYY-MM-DD"})
	}
	statut := req.Statut
	if statut == "" {
		statut = model.StatutActive
	}
	if !model.ValidStatut(statut) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid statut"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	e := model.Employee{
		Prenom:          req.Prenom,
		Nom:             req.Nom,
		Fonction:        req.Fonction,
		DateRecrutement: when,
		Statut:          statut,
	}
	if err := h.Employees.Create(ctx, &e); err != nil {
		c.Logger().Errorf("employees: create failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Could not create employee"})
	}

	h.afterMutation(c, queue.ActionCreate, e)
	return c.JSON(http.StatusCreated, echo.Map{
		"message":  "Employee created successfully",
		"employee": e,
	})
}

// Update handles PUT /api/employees/:id (admin only).  Updates are partial:
// fields absent from the body keep their stored values.
func (h *EmployeeHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid id"})
	}
	var req employeeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	e, err := h.Employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Employee not found"})
		}
		c.Logger().Errorf("employees: get for update failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Could not update employee"})
	}

	if v := strings.TrimSpace(req.Prenom); v != "" {
		e.Prenom = v
	}
	if v := strings.TrimSpace(req.Nom); v != "" {
		e.Nom = v
	}
	if v := strings.TrimSpace(req.Fonction); v != "" {
		e.Fonction = v
	}
	if req.DateRecrutement != "" {
		when, err := time.Parse(dateLayout, req.DateRecrutement)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid dateRecrutement, expected YYYY-MM-DD"})
		}
		e.DateRecrutement = when
	}
	if req.Statut != "" {
		if !model.ValidStatut(req.Statut) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid statut"})
		}
		e.Statut = req.Statut
	}

	if err := h.Employees.Update(ctx, e); err != nil {
		c.Logger().Errorf("employees: update failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Could not update employee"})
	}

	h.afterMutation(c, queue.ActionUpdate, e)
	return c.JSON(http.StatusOK, echo.Map{
		"message":  "Employee updated successfully",
		"employee": e,
	})
}

// Delete handles DELETE /api/employees/:id (admin only).
func (h *EmployeeHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// Fetch first so the published event carries the deleted snapshot.
	e, err := h.Employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Employee not found"})
		}
		c.Logger().Errorf("employees: get for delete failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Could not delete employee"})
	}
	if err := h.Employees.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Employee not found"})
		}
		c.Logger().Errorf("employees: delete failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Could not delete employee"})
	}

	h.afterMutation(c, queue.ActionDelete, e)
	return c.NoContent(http.StatusNoContent)
}

// afterMutation drops cached GET responses and publishes the change event.
// Both are best-effort side effects of an already committed write.
func (h *EmployeeHandler) afterMutation(c echo.Context, action string, e model.Employee) {
	actorID := uint64(0)
	if u, ok := middleware.UserFromContext(c); ok {
		actorID = u.ID
	}
	ev := queue.EmployeeChangedEvent{
		Action:          action,
		EmployeeID:      e.ID,
		Prenom:          e.Prenom,
		Nom:             e.Nom,
		Fonction:        e.Fonction,
		DateRecrutement: e.DateRecrutement.Format(dateLayout),
		Statut:          e.Statut,
		ActorID:         actorID,
		OccurredAt:      time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		middleware.InvalidateCache(ctx, h.Rdb, h.CacheCfg.Prefix)
		_ = queue_publisher.PublishEmployeeChanged(ctx, ev)
	}()
}
