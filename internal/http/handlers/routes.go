package handlers

import "github.com/gofiber/fiber/v2"

// Register mounts every route on the app. version is reported verbatim by the
// health check.
func Register(app *fiber.App, deps *Deps, version string) {
	app.Get("/health-check", func(c *fiber.Ctx) error {
		return c.SendString("App version: " + version)
	})

	app.Post("/users", deps.UserHandler.Create)
	app.Get("/users", deps.UserHandler.List)
	app.Get("/users/:id", deps.UserHandler.Get)
	app.Patch("/users/:id", deps.UserHandler.Update)
	app.Delete("/users/:id", deps.UserHandler.Delete)
}
