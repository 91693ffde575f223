package seeder

import (
	"context"
	"os"
	"strings"

	"skill-matrix/internal/database"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// EmployeeSeeder creates the bootstrap approver account. Without at least one
// approver nobody can review claims or create further employees.
type EmployeeSeeder struct{}

func (EmployeeSeeder) Name() string { return "employees" }

func (EmployeeSeeder) Run(ctx context.Context, db database.DB) error {
	if err := ensureTableColumns(ctx, db, "employees",
		"id", "emp_id", "name", "email", "password_hash", "approver_id",
		"is_approver", "is_active", "is_available",
	); err != nil {
		return err
	}

	email := strings.TrimSpace(os.Getenv("SEED_ADMIN_EMAIL"))
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	var exists bool
	if err := db.QueryRow(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM employees WHERE lower(email) = lower($1))`,
		email,
	).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = db.Exec(
		ctx,
		`INSERT INTO employees (id, emp_id, name, email, password_hash, is_approver, is_active, is_available)
		 VALUES ($1, $2, $3, $4, $5, TRUE, TRUE, TRUE)`,
		uuid.New(), "ADMIN-0001", "Administrator", strings.ToLower(email), string(hash),
	)
	return err
}
