package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kavinraj/scantrack/internal/middleware"
)

// RegisterRoutes mounts the user resource. Auth routes stay open; everything
// else sits behind the session middleware. Specific paths are registered
// before the parameterized ones so /all and /history do not match /:id.
func RegisterRoutes(app *fiber.App, auth *AuthHandler, users *UserHandler, authMW *middleware.Auth) {
	open := app.Group("/user")
	open.Post("/register", auth.Register)
	open.Post("/login", auth.Login)
	open.Get("/logout", auth.Logout)

	protected := app.Group("/user", authMW.RequireAuth)
	protected.Get("/all", middleware.RequireAdmin, users.ListAll)
	protected.Get("/history/:id", users.History)
	protected.Get("/stat-history/:id", users.Stats)
	protected.Post("/add-product/history/:id", users.AddScan)
	protected.Post("/avatar/:id", users.UploadAvatar)
	protected.Delete("/delete/:id", middleware.RequireAdmin, users.Delete)
	protected.Get("/:id", users.GetProfile)
	protected.Put("/:id", users.UpdateProfile)
}
