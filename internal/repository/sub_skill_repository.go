package repository

import (
	"context"
	"errors"

	"skill-matrix/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrSubSkillNotFound = errors.New("sub-skill not found")

type SubSkill struct {
	ID            uuid.UUID
	MasterSkillID uuid.UUID
	Name          string
}

type SubSkillRepository interface {
	ListByMasterSkill(ctx context.Context, masterSkillID uuid.UUID) ([]SubSkill, error)
	FindByID(ctx context.Context, id uuid.UUID) (SubSkill, error)
	// FindByName matches on the already-normalized name, case-insensitively.
	FindByName(ctx context.Context, masterSkillID uuid.UUID, name string) (SubSkill, error)
	Create(ctx context.Context, masterSkillID uuid.UUID, name string) (SubSkill, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// CountLiveClaims reports how many live employee-skill rows reference the
	// sub-skill; deletion is blocked while this is non-zero.
	CountLiveClaims(ctx context.Context, id uuid.UUID) (int, error)
}

type PostgresSubSkillRepository struct {
	db database.DB
}

func NewPostgresSubSkillRepository(db database.DB) *PostgresSubSkillRepository {
	return &PostgresSubSkillRepository{db: db}
}

func (r *PostgresSubSkillRepository) ListByMasterSkill(ctx context.Context, masterSkillID uuid.UUID) ([]SubSkill, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT id, master_skill_id, name FROM sub_skills WHERE master_skill_id = $1 ORDER BY name ASC`,
		masterSkillID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SubSkill, 0)
	for rows.Next() {
		var s SubSkill
		if err := rows.Scan(&s.ID, &s.MasterSkillID, &s.Name); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSubSkillRepository) FindByID(ctx context.Context, id uuid.UUID) (SubSkill, error) {
	var s SubSkill
	err := r.db.QueryRow(ctx, `SELECT id, master_skill_id, name FROM sub_skills WHERE id = $1`, id).
		Scan(&s.ID, &s.MasterSkillID, &s.Name)
	if err != nil {
		if isNoRows(err) {
			return SubSkill{}, ErrSubSkillNotFound
		}
		return SubSkill{}, err
	}
	return s, nil
}

func (r *PostgresSubSkillRepository) FindByName(ctx context.Context, masterSkillID uuid.UUID, name string) (SubSkill, error) {
	var s SubSkill
	err := r.db.QueryRow(
		ctx,
		`SELECT id, master_skill_id, name FROM sub_skills WHERE master_skill_id = $1 AND lower(name) = lower($2)`,
		masterSkillID, name,
	).Scan(&s.ID, &s.MasterSkillID, &s.Name)
	if err != nil {
		if isNoRows(err) {
			return SubSkill{}, ErrSubSkillNotFound
		}
		return SubSkill{}, err
	}
	return s, nil
}

func (r *PostgresSubSkillRepository) Create(ctx context.Context, masterSkillID uuid.UUID, name string) (SubSkill, error) {
	id := uuid.New()
	_, err := r.db.Exec(
		ctx,
		`INSERT INTO sub_skills (id, master_skill_id, name) VALUES ($1, $2, $3)`,
		id, masterSkillID, name,
	)
	if err != nil {
		return SubSkill{}, err
	}
	return SubSkill{ID: id, MasterSkillID: masterSkillID, Name: name}, nil
}

func (r *PostgresSubSkillRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM sub_skills WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSubSkillNotFound
	}
	return nil
}

func (r *PostgresSubSkillRepository) CountLiveClaims(ctx context.Context, id uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM employee_skills WHERE subskill_id = $1`, id).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
