package handler

import (
	"skill-matrix/internal/database"
	"skill-matrix/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	db database.DB
}

func NewHealthHandler(db database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]string{"status": "up"})
}

func (h *HealthHandler) Ready(c fiber.Ctx) error {
	if h.db == nil {
		return response.Error(c, fiber.StatusServiceUnavailable, "database not connected", nil)
	}
	if err := h.db.Ping(c.Context()); err != nil {
		return response.Error(c, fiber.StatusServiceUnavailable, "database not reachable", nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]string{"status": "ready"})
}
