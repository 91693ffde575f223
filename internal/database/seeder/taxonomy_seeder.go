package seeder

import (
	"context"

	"skill-matrix/internal/database"

	"github.com/google/uuid"
)

type TaxonomySeeder struct{}

func (TaxonomySeeder) Name() string { return "taxonomy" }

func (TaxonomySeeder) Run(ctx context.Context, db database.DB) error {
	if err := ensureTableColumns(ctx, db, "master_skills", "id", "name"); err != nil {
		return err
	}
	if err := ensureTableColumns(ctx, db, "sub_skills", "id", "master_skill_id", "name"); err != nil {
		return err
	}

	taxonomy := map[string][]string{
		"backend":  {"go", "java", "node.js", "python", "postgresql", "redis"},
		"frontend": {"react", "angular", "vue", "typescript"},
		"cloud":    {"aws", "azure", "gcp", "kubernetes", "docker"},
		"data":     {"spark", "airflow", "kafka", "data modeling"},
		"quality":  {"test automation", "performance testing", "security testing"},
	}

	for master, subs := range taxonomy {
		masterID, err := findOrCreateMaster(ctx, db, master)
		if err != nil {
			return err
		}
		for _, sub := range subs {
			if err := createSubIfMissing(ctx, db, masterID, sub); err != nil {
				return err
			}
		}
	}
	return nil
}

func findOrCreateMaster(ctx context.Context, db database.DB, name string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.QueryRow(ctx, `SELECT id FROM master_skills WHERE lower(name) = lower($1) LIMIT 1`, name).Scan(&id)
	if err == nil {
		return id, nil
	}

	id = uuid.New()
	_, err = db.Exec(
		ctx,
		`INSERT INTO master_skills (id, name) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
		id, name,
	)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func createSubIfMissing(ctx context.Context, db database.DB, masterID uuid.UUID, name string) error {
	var exists bool
	err := db.QueryRow(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM sub_skills WHERE master_skill_id = $1 AND lower(name) = lower($2))`,
		masterID, name,
	).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	_, err = db.Exec(
		ctx,
		`INSERT INTO sub_skills (id, master_skill_id, name) VALUES ($1, $2, $3)`,
		uuid.New(), masterID, name,
	)
	return err
}
