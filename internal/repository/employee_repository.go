package repository

import (
	"context"
	"database/sql"

	"github.com/ayoubre/employee-manager/internal/model"
)

type EmployeeRepo struct{ DB *sql.DB }

func NewEmployeeRepo(db *sql.DB) *EmployeeRepo { return &EmployeeRepo{DB: db} }

const employeeColumns = "id,prenom,nom,fonction,date_recrutement,statut,created_at,updated_at"

// List returns all employee records ordered by id.
func (r *EmployeeRepo) List(ctx context.Context) ([]model.Employee, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+employeeColumns+" FROM employees ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Employee, 0)
	for rows.Next() {
		var e model.Employee
		if err := rows.Scan(&e.ID, &e.Prenom, &e.Nom, &e.Fonction, &e.DateRecrutement, &e.Statut, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

// GetByID fetches one employee, sql.ErrNoRows when absent.
func (r *EmployeeRepo) GetByID(ctx context.Context, id uint64) (model.Employee, error) {
	var e model.Employee
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+employeeColumns+" FROM employees WHERE id=? LIMIT 1",
		id).Scan(&e.ID, &e.Prenom, &e.Nom, &e.Fonction, &e.DateRecrutement, &e.Statut, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

// Create inserts an employee and fills in the assigned ID.
func (r *EmployeeRepo) Create(ctx context.Context, e *model.Employee) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO employees (prenom, nom, fonction, date_recrutement, statut) VALUES (?,?,?,?,?)",
		e.Prenom, e.Nom, e.Fonction, e.DateRecrutement, e.Statut)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	return nil
}

// Update overwrites all mutable columns of an existing employee.
func (r *EmployeeRepo) Update(ctx context.Context, e model.Employee) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE employees SET prenom=?, nom=?, fonction=?, date_recrutement=?, statut=? WHERE id=?",
		e.Prenom, e.Nom, e.Fonction, e.DateRecrutement, e.Statut, e.ID)
	return err
}

// Delete removes an employee row, sql.ErrNoRows when nothing matched.
func (r *EmployeeRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM employees WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
