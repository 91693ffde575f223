package routes

import (
	"log"

	"skill-matrix/internal/config"
	"skill-matrix/internal/database"
	v1 "skill-matrix/internal/delivery/http/routes/v1"
	"skill-matrix/internal/infrastructure/cache"
	"skill-matrix/internal/requirements"

	"github.com/gofiber/fiber/v3"
)

func RegisterV1(r fiber.Router, cfg config.Config, db database.DB, c *cache.Cache, parser requirements.Parser, logger *log.Logger) {
	if r == nil {
		return
	}

	v1.Register(r, cfg, db, c, parser, logger)
}
