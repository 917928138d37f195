package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/family-service/internal/api/http/handlers"
	"github.com/spec-kit/family-service/internal/auth"
	"github.com/spec-kit/family-service/internal/i18n"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Family         *handlers.FamilyHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes, ending with the 404 fallback.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health", cfg.Health.Check)

	api := app.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/dashboard", cfg.AuthMiddleware.Handle, cfg.Auth.Dashboard)
	authGroup.Get("/users", cfg.Auth.ListUsers)

	family := api.Group("/family")
	family.Get("/", cfg.Family.List)
	family.Get("/:id", cfg.Family.Get)
	family.Post("/", cfg.Family.Create)
	family.Put("/:id", cfg.Family.Update)
	family.Delete("/:id", cfg.Family.Delete)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   i18n.FromCtx(c).T("route_not_found"),
		})
	})
}
