package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/kavinraj/scantrack/internal/services"
	"github.com/kavinraj/scantrack/internal/session"
)

type AuthHandler struct {
	auth     *services.AuthService
	sessions session.Store
}

func NewAuthHandler(auth *services.AuthService, sessions session.Store) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var request struct {
		Fullname string `json:"fullname"`
		Mail     string `json:"mail"`
		Password string `json:"password"`
		Timezone string `json:"timezone"`
	}

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	user, err := h.auth.Register(c.Context(), request.Fullname, request.Mail, request.Password, request.Timezone)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "User registered successfully", "user": user})
}

// Login verifies credentials, opens a session, and sets the session cookie.
// The bearer token in the response serves clients that do not keep cookies.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var request struct {
		Mail     string `json:"mail"`
		Password string `json:"password"`
	}

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	user, err := h.auth.Login(c.Context(), request.Mail, request.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	token, err := h.sessions.Create(c.Context(), user.ID.Hex(), user.Roles)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create session"})
	}

	bearer, err := h.auth.GenerateJWT(user.ID.Hex(), user.Roles)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate token"})
	}

	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    token,
		HTTPOnly: true,
	})

	return c.JSON(fiber.Map{
		"userId": user.ID.Hex(),
		"roles":  user.Roles,
		"token":  bearer,
	})
}

// Logout destroys the session and clears the cookie. Logging out without an
// active session is an error.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token := c.Cookies(session.CookieName)
	if token == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "No active session"})
	}

	if err := h.sessions.Destroy(c.Context(), token); err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "No active session"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to destroy session"})
	}

	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})

	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}
