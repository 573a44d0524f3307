package handlers

import (
	"time"

	"pulse-go-api/internal/services"

	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	startTime time.Time
	store     *services.Store
}

func NewHealthHandler(store *services.Store) *HealthHandler {
	return &HealthHandler{
		startTime: time.Now(),
		store:     store,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"service": "pulse-go-api",
		"version": "1.0.0",
		"uptime":  time.Since(h.startTime).String(),
		"time":    time.Now(),
	})
}

// Ready handles GET /health/ready
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	info := h.store.DatasetInfo()
	status := "ready"
	code := fiber.StatusOK
	if info.Rows == 0 {
		status = "no dataset committed"
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status": status,
		"checks": fiber.Map{
			"api":     "ok",
			"dataset": info.Source,
			"rows":    info.Rows,
		},
	})
}
