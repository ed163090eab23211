package handler

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoubre/employee-manager/internal/config"
	"github.com/ayoubre/employee-manager/internal/middleware"
	"github.com/ayoubre/employee-manager/internal/model"
	"github.com/ayoubre/employee-manager/internal/repository"
)

func newEmployeeHandler(t *testing.T) (*EmployeeHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	// nil Redis client: cache invalidation becomes a no-op in tests.
	return NewEmployeeHandler(repository.NewEmployeeRepo(db), nil, config.CacheConfig{}), mock
}

func asAdmin(c echo.Context) {
	c.Set(middleware.ContextUserKey, model.User{ID: 1, Username: "admin", Role: model.RoleAdmin, Active: true})
}

func employeeRow() *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{"id", "prenom", "nom", "fonction", "date_recrutement", "statut", "created_at", "updated_at"}).
		AddRow(3, "Jean", "Dupont", "Dev", time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC), model.StatutActive, now, now)
}

const selectEmployeeByID = "SELECT id,prenom,nom,fonction,date_recrutement,statut,created_at,updated_at FROM employees WHERE id=? LIMIT 1"

func TestEmployeeList(t *testing.T) {
	h, mock := newEmployeeHandler(t)

	mock.ExpectQuery("SELECT id,prenom,nom,fonction,date_recrutement,statut,created_at,updated_at FROM employees ORDER BY id").
		WillReturnRows(employeeRow())

	c, rec := jsonRequest(t, http.MethodGet, "/api/employees", "")
	require.NoError(t, h.List(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"prenom":"Jean"`)
}

func TestEmployeeGet_NotFound(t *testing.T) {
	h, mock := newEmployeeHandler(t)

	mock.ExpectQuery(selectEmployeeByID).
		WithArgs(uint64(99)).
		WillReturnError(sql.ErrNoRows)

	c, rec := jsonRequest(t, http.MethodGet, "/api/employees/99", "")
	c.SetParamNames("id")
	c.SetParamValues("99")
	require.NoError(t, h.Get(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Employee not found", decodeBody(t, rec)["message"])
}

func TestEmployeeGet_InvalidID(t *testing.T) {
	h, _ := newEmployeeHandler(t)

	c, rec := jsonRequest(t, http.MethodGet, "/api/employees/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")
	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEmployeeCreate_Success(t *testing.T) {
	h, mock := newEmployeeHandler(t)

	mock.ExpectExec("INSERT INTO employees (prenom, nom, fonction, date_recrutement, statut) VALUES (?,?,?,?,?)").
		WithArgs("Jean", "Dupont", "Dev", time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC), model.StatutActive).
		WillReturnResult(sqlmock.NewResult(3, 1))

	c, rec := jsonRequest(t, http.MethodPost, "/api/employees",
		`{"prenom":"Jean","nom":"Dupont","fonction":"Dev","dateRecrutement":"2023-01-15"}`)
	asAdmin(c)
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Employee created successfully", body["message"])

	emp := body["employee"].(map[string]any)
	assert.Equal(t, "Jean", emp["prenom"])
	assert.Equal(t, "Dupont", emp["nom"])
	// statut defaults to active when omitted
	assert.Equal(t, model.StatutActive, emp["statut"])
	assert.Equal(t, float64(3), emp["id"])
}

func TestEmployeeCreate_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing prenom", body: `{"nom":"Dupont","fonction":"Dev","dateRecrutement":"2023-01-15"}`},
		{name: "missing nom", body: `{"prenom":"Jean","fonction":"Dev","dateRecrutement":"2023-01-15"}`},
		{name: "missing fonction", body: `{"prenom":"Jean","nom":"Dupont","dateRecrutement":"2023-01-15"}`},
		{name: "missing date", body: `{"prenom":"Jean","nom":"Dupont","fonction":"Dev"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newEmployeeHandler(t)
			c, rec := jsonRequest(t, http.MethodPost, "/api/employees", tt.body)
			asAdmin(c)
			require.NoError(t, h.Create(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "All fields are required", decodeBody(t, rec)["message"])
		})
	}
}

func TestEmployeeCreate_BadDateAndStatut(t *testing.T) {
	h, _ := newEmployeeHandler(t)

	c, rec := jsonRequest(t, http.MethodPost, "/api/employees",
		`{"prenom":"Jean","nom":"Dupont","fonction":"Dev","dateRecrutement":"15/01/2023"}`)
	asAdmin(c)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = jsonRequest(t, http.MethodPost, "/api/employees",
		`{"prenom":"Jean","nom":"Dupont","fonction":"Dev","dateRecrutement":"2023-01-15","statut":"vacances"}`)
	asAdmin(c)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid statut", decodeBody(t, rec)["message"])
}

func TestEmployeeUpdate_Partial(t *testing.T) {
	h, mock := newEmployeeHandler(t)

	mock.ExpectQuery(selectEmployeeByID).
		WithArgs(uint64(3)).
		WillReturnRows(employeeRow())
	// only fonction changes; other columns keep their stored values
	mock.ExpectExec("UPDATE employees SET prenom=?, nom=?, fonction=?, date_recrutement=?, statut=? WHERE id=?").
		WithArgs("Jean", "Dupont", "Lead Dev", time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC), model.StatutActive, uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, rec := jsonRequest(t, http.MethodPut, "/api/employees/3", `{"fonction":"Lead Dev"}`)
	c.SetParamNames("id")
	c.SetParamValues("3")
	asAdmin(c)
	require.NoError(t, h.Update(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Employee updated successfully", body["message"])
	assert.Equal(t, "Lead Dev", body["employee"].(map[string]any)["fonction"])
}

func TestEmployeeUpdate_NotFound(t *testing.T) {
	h, mock := newEmployeeHandler(t)

	mock.ExpectQuery(selectEmployeeByID).
		WithArgs(uint64(99)).
		WillReturnError(sql.ErrNoRows)

	c, rec := jsonRequest(t, http.MethodPut, "/api/employees/99", `{"fonction":"Lead Dev"}`)
	c.SetParamNames("id")
	c.SetParamValues("99")
	asAdmin(c)
	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEmployeeDelete(t *testing.T) {
	h, mock := newEmployeeHandler(t)

	mock.ExpectQuery(selectEmployeeByID).
		WithArgs(uint64(3)).
		WillReturnRows(employeeRow())
	mock.ExpectExec("DELETE FROM employees WHERE id=?").
		WithArgs(uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, rec := jsonRequest(t, http.MethodDelete, "/api/employees/3", "")
	c.SetParamNames("id")
	c.SetParamValues("3")
	asAdmin(c)
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestEmployeeDelete_NotFound(t *testing.T) {
	h, mock := newEmployeeHandler(t)

	mock.ExpectQuery(selectEmployeeByID).
		WithArgs(uint64(99)).
		WillReturnError(sql.ErrNoRows)

	c, rec := jsonRequest(t, http.MethodDelete, "/api/employees/99", "")
	c.SetParamNames("id")
	c.SetParamValues("99")
	asAdmin(c)
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// TestEmployeeMutation_RoleGate runs Create through the admin gate the way
// the router chains it, for both roles.
func TestEmployeeMutation_RoleGate(t *testing.T) {
	h, mock := newEmployeeHandler(t)

	mock.ExpectExec("INSERT INTO employees (prenom, nom, fonction, date_recrutement, statut) VALUES (?,?,?,?,?)").
		WithArgs("Jean", "Dupont", "Dev", time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC), model.StatutActive).
		WillReturnResult(sqlmock.NewResult(3, 1))

	gated := middleware.RequireRole(model.RoleAdmin)(h.Create)
	reqBody := `{"prenom":"Jean","nom":"Dupont","fonction":"Dev","dateRecrutement":"2023-01-15"}`

	e := echo.New()
	// staff is refused before the handler touches the store
	req := httptest.NewRequest(http.MethodPost, "/api/employees", strings.NewReader(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextUserKey, model.User{ID: 2, Username: "staff", Role: model.RoleStaff, Active: true})
	require.NoError(t, gated(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// admin goes through
	req = httptest.NewRequest(http.MethodPost, "/api/employees", strings.NewReader(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	asAdmin(c)
	require.NoError(t, gated(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
}
