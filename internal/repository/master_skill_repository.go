package repository

import (
	"context"
	"errors"

	"skill-matrix/internal/database"

	"github.com/google/uuid"
)

var ErrMasterSkillNotFound = errors.New("master skill not found")

type MasterSkill struct {
	ID   uuid.UUID
	Name string
}

type MasterSkillRepository interface {
	GetAll(ctx context.Context) ([]MasterSkill, error)
	FindByID(ctx context.Context, id uuid.UUID) (MasterSkill, error)
	FindByName(ctx context.Context, name string) (MasterSkill, error)
	Create(ctx context.Context, name string) (MasterSkill, error)
	// Delete removes the master skill; sub-skills cascade at the database level.
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresMasterSkillRepository struct {
	db database.DB
}

func NewPostgresMasterSkillRepository(db database.DB) *PostgresMasterSkillRepository {
	return &PostgresMasterSkillRepository{db: db}
}

func (r *PostgresMasterSkillRepository) GetAll(ctx context.Context) ([]MasterSkill, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM master_skills ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]MasterSkill, 0)
	for rows.Next() {
		var s MasterSkill
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresMasterSkillRepository) FindByID(ctx context.Context, id uuid.UUID) (MasterSkill, error) {
	var s MasterSkill
	err := r.db.QueryRow(ctx, `SELECT id, name FROM master_skills WHERE id = $1`, id).
		Scan(&s.ID, &s.Name)
	if err != nil {
		if isNoRows(err) {
			return MasterSkill{}, ErrMasterSkillNotFound
		}
		return MasterSkill{}, err
	}
	return s, nil
}

func (r *PostgresMasterSkillRepository) FindByName(ctx context.Context, name string) (MasterSkill, error) {
	var s MasterSkill
	err := r.db.QueryRow(ctx, `SELECT id, name FROM master_skills WHERE lower(name) = lower($1)`, name).
		Scan(&s.ID, &s.Name)
	if err != nil {
		if isNoRows(err) {
			return MasterSkill{}, ErrMasterSkillNotFound
		}
		return MasterSkill{}, err
	}
	return s, nil
}

func (r *PostgresMasterSkillRepository) Create(ctx context.Context, name string) (MasterSkill, error) {
	id := uuid.New()
	_, err := r.db.Exec(ctx, `INSERT INTO master_skills (id, name) VALUES ($1, $2)`, id, name)
	if err != nil {
		return MasterSkill{}, err
	}
	return MasterSkill{ID: id, Name: name}, nil
}

func (r *PostgresMasterSkillRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM master_skills WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrMasterSkillNotFound
	}
	return nil
}
