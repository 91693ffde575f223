package routes

import (
	"log"

	"skill-matrix/internal/config"
	"skill-matrix/internal/database"
	"skill-matrix/internal/delivery/http/handler"
	"skill-matrix/internal/infrastructure/cache"
	"skill-matrix/internal/requirements"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler

	cfg    config.Config
	db     database.DB
	cache  *cache.Cache
	parser requirements.Parser
	logger *log.Logger
}

func NewRegistry(cfg config.Config, db database.DB, c *cache.Cache, parser requirements.Parser, logger *log.Logger) *Registry {
	return &Registry{
		health: handler.NewHealthHandler(db),
		cfg:    cfg,
		db:     db,
		cache:  c,
		parser: parser,
		logger: logger,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)

	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.cfg, r.db, r.cache, r.parser, r.logger)
}
