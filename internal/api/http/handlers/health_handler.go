package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/family-service/internal/i18n"
)

// HealthHandler responds to the liveness probe.
type HealthHandler struct{}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Check handles GET /health with a localized status message.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message":   i18n.FromCtx(c).T("server_running"),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
