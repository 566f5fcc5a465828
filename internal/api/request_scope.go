package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/facets/internal/db"
	"github.com/terraincognita07/facets/internal/services"
)

const contextRegistryKey = "facets_registry"

// RequestScope gives every request its own registry and memo cache.
func (handler *Handler) RequestScope(c *fiber.Ctx) error {
	c.Locals(contextRegistryKey, handler.newRegistry(c))
	return c.Next()
}

func (handler *Handler) newRegistry(c *fiber.Ctx) *services.Registry {
	gateway := db.NewGateway(handler.database, db.NewRequestCache()).WithContext(c.UserContext())
	return services.NewRegistry(gateway,
		services.WithClock(handler.clock),
		services.WithPasswordPolicy(handler.policy),
	)
}

// registry returns the request's registry, creating one for routes mounted outside RequestScope.
func (handler *Handler) registry(c *fiber.Ctx) *services.Registry {
	if registry, ok := c.Locals(contextRegistryKey).(*services.Registry); ok && registry != nil {
		return registry
	}
	registry := handler.newRegistry(c)
	c.Locals(contextRegistryKey, registry)
	return registry
}
