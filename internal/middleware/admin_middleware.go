package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// RequireAdmin ensures that only users carrying the "admin" role can access
// the route. It must run after RequireAuth has filled in the locals.
func RequireAdmin(c *fiber.Ctx) error {
	roles, ok := c.Locals("roles").([]string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing session or token"})
	}

	for _, role := range roles {
		if role == "admin" {
			return c.Next()
		}
	}
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Access denied. Admins only."})
}
