package routes

import (
	controller "octofit/controllers"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SetupAPIRoutes mounts the API root and every resource under /api.
func SetupAPIRoutes(app *fiber.App, db *gorm.DB, baseURL string) {
	resources := controller.NewResources(db)
	root := controller.NewAPIRootController(baseURL, controller.ResourceNames(resources))

	app.Get("/", root.Index)

	api := app.Group("/api")
	api.Get("/", root.Index)
	for _, r := range resources {
		r.Register(api)
	}

	logrus.WithField("resources", controller.ResourceNames(resources)).Info("API routes initialized successfully")
}

func SetupRoutes(app *fiber.App, db *gorm.DB, baseURL string) {
	// Setup health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	SetupAPIRoutes(app, db, baseURL)

	// Setup 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Not Found",
			"details": "The requested resource was not found",
		})
	})
}
