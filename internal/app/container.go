package app

import (
	"context"
	"log"
	"os"
	"time"

	"skill-matrix/internal/config"
	"skill-matrix/internal/database"
	"skill-matrix/internal/database/migration"
	dbpostgres "skill-matrix/internal/database/postgres"
	"skill-matrix/internal/database/seeder"
	"skill-matrix/internal/infrastructure/cache"
	"skill-matrix/internal/requirements"
)

type Container struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Cache
	Parser requirements.Parser
	Logger *log.Logger
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags|log.Lmicroseconds)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	runner := migration.Runner{Dir: cfg.Database.MigrationsDir}
	if err := runner.Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := seeder.RunAll(ctx, db, logger, seeder.TaxonomySeeder{}, seeder.EmployeeSeeder{}); err != nil {
		_ = db.Close()
		return nil, err
	}

	var parser requirements.Parser
	if cfg.Parser.URL != "" {
		parser = requirements.NewHTTPParser(cfg.Parser)
	}

	return &Container{
		Config: cfg,
		DB:     db,
		Cache:  cache.New(cfg.Redis, logger),
		Parser: parser,
		Logger: logger,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
