package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/kavinraj/scantrack/internal/session"
)

// Auth authenticates requests from the session cookie, falling back to a
// bearer token for non-browser clients.
type Auth struct {
	sessions  session.Store
	jwtSecret []byte
}

func NewAuth(sessions session.Store, jwtSecret []byte) *Auth {
	return &Auth{sessions: sessions, jwtSecret: jwtSecret}
}

// RequireAuth validates the session cookie or bearer token and stores the
// user id and roles in locals for the next handlers.
func (a *Auth) RequireAuth(c *fiber.Ctx) error {
	if token := c.Cookies(session.CookieName); token != "" {
		sess, err := a.sessions.Lookup(c.Context(), token)
		if err == nil {
			c.Locals("user_id", sess.UserID)
			c.Locals("roles", sess.Roles)
			return c.Next()
		}
	}

	tokenString := c.Get("Authorization")
	if tokenString == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing session or token"})
	}
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return a.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	userID, userExists := claims["user_id"].(string)
	rawRoles, rolesExist := claims["roles"].([]interface{})
	if !userExists || !rolesExist {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token payload"})
	}

	roles := make([]string, 0, len(rawRoles))
	for _, r := range rawRoles {
		if s, ok := r.(string); ok {
			roles = append(roles, s)
		}
	}

	c.Locals("user_id", userID)
	c.Locals("roles", roles)
	return c.Next()
}
