// Package seeder loads baseline data so a fresh deployment is usable without
// manual setup. Seeders are idempotent and skip rows that already exist.
package seeder

import (
	"context"
	"fmt"
	"log"

	"skill-matrix/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}

func RunAll(ctx context.Context, db database.DB, logger *log.Logger, seeders ...Seeder) error {
	for _, s := range seeders {
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seeder %s: %w", s.Name(), err)
		}
		logger.Printf("seeder %s done", s.Name())
	}
	return nil
}

// ensureTableColumns verifies migrations ran before a seeder writes; a missing
// table or column fails fast instead of producing a confusing insert error.
func ensureTableColumns(ctx context.Context, db database.DB, table string, columns ...string) error {
	rows, err := db.Query(
		ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema='public' AND table_name=$1`,
		table,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	existing := map[string]struct{}{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return err
		}
		existing[c] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if len(existing) == 0 {
		return fmt.Errorf("table %s does not exist", table)
	}
	for _, col := range columns {
		if _, ok := existing[col]; !ok {
			return fmt.Errorf("table %s is missing column %s", table, col)
		}
	}
	return nil
}
