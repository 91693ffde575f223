package repository

import (
	"context"
	"errors"

	"skill-matrix/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrDuplicateEmployee = errors.New("employee with this emp_id or email already exists")
)

type Employee struct {
	ID           uuid.UUID
	EmpCode      string
	Name         string
	Email        string
	PasswordHash string
	ApproverID   *uuid.UUID
	IsApprover   bool
	Designation  *string
	Capability   *string
	IsActive     bool
	IsAvailable  bool
}

type EmployeeRepository interface {
	List(ctx context.Context, page, pageSize int) ([]Employee, int, error)
	FindByID(ctx context.Context, id uuid.UUID) (Employee, error)
	FindByEmail(ctx context.Context, email string) (Employee, error)
	Create(ctx context.Context, e Employee) (Employee, error)
	Update(ctx context.Context, e Employee) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type PostgresEmployeeRepository struct {
	db database.DB
}

func NewPostgresEmployeeRepository(db database.DB) *PostgresEmployeeRepository {
	return &PostgresEmployeeRepository{db: db}
}

const employeeColumns = `id, emp_id, name, email, password_hash, approver_id, is_approver, designation, capability, is_active, is_available`

func scanEmployee(row database.Row) (Employee, error) {
	var e Employee
	err := row.Scan(
		&e.ID, &e.EmpCode, &e.Name, &e.Email, &e.PasswordHash,
		&e.ApproverID, &e.IsApprover, &e.Designation, &e.Capability,
		&e.IsActive, &e.IsAvailable,
	)
	return e, err
}

func (r *PostgresEmployeeRepository) List(ctx context.Context, page, pageSize int) ([]Employee, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT `+employeeColumns+` FROM employees ORDER BY name ASC OFFSET $1 LIMIT $2`,
		(page-1)*pageSize, pageSize,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]Employee, 0)
	for rows.Next() {
		var e Employee
		if err := rows.Scan(
			&e.ID, &e.EmpCode, &e.Name, &e.Email, &e.PasswordHash,
			&e.ApproverID, &e.IsApprover, &e.Designation, &e.Capability,
			&e.IsActive, &e.IsAvailable,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (Employee, error) {
	e, err := scanEmployee(r.db.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return Employee{}, ErrEmployeeNotFound
		}
		return Employee{}, err
	}
	return e, nil
}

func (r *PostgresEmployeeRepository) FindByEmail(ctx context.Context, email string) (Employee, error) {
	e, err := scanEmployee(r.db.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE lower(email) = lower($1)`, email))
	if err != nil {
		if isNoRows(err) {
			return Employee{}, ErrEmployeeNotFound
		}
		return Employee{}, err
	}
	return e, nil
}

func (r *PostgresEmployeeRepository) Create(ctx context.Context, e Employee) (Employee, error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	_, err := r.db.Exec(
		ctx,
		`INSERT INTO employees (id, emp_id, name, email, password_hash, approver_id, is_approver, designation, capability, is_active, is_available)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		e.ID, e.EmpCode, e.Name, e.Email, e.PasswordHash,
		e.ApproverID, e.IsApprover, e.Designation, e.Capability,
		e.IsActive, e.IsAvailable,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Employee{}, ErrDuplicateEmployee
		}
		return Employee{}, err
	}
	return e, nil
}

func (r *PostgresEmployeeRepository) Update(ctx context.Context, e Employee) error {
	affected, err := r.db.Exec(
		ctx,
		`UPDATE employees
		 SET name = $2, email = $3, approver_id = $4, is_approver = $5,
		     designation = $6, capability = $7, is_active = $8, is_available = $9
		 WHERE id = $1`,
		e.ID, e.Name, e.Email, e.ApproverID, e.IsApprover,
		e.Designation, e.Capability, e.IsActive, e.IsAvailable,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func (r *PostgresEmployeeRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM employees WHERE lower(email) = lower($1))`, email).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
