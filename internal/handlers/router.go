package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"resumatch/internal/config"
	"resumatch/internal/services"
)

// New assembles the web front: the browser form, the JSON relay and the
// health check, wired to one set of services built from the configuration.
func New(cfg *config.Config) *fiber.App {
	validator := services.NewUploadValidator(cfg.Upload.MaxFileSize, cfg.Upload.StrictPDFCheck)
	cleaner := services.NewJobDescriptionCleaner()
	matchClient := services.NewMatchClient(cfg.Match.BaseURL, cfg.Match.Timeout)

	matchHandler := NewMatchHandler(validator, cleaner, matchClient)
	pageHandler := NewPageHandler(validator, cleaner, matchClient)

	app := fiber.New(fiber.Config{
		AppName:      "Resume Match Client",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		// Headroom above the file ceiling so the validator, not the body
		// limit, rejects oversize uploads with a readable message.
		BodyLimit:    int(cfg.Upload.MaxFileSize) + 1024*1024,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Browser form
	app.Get("/", pageHandler.HandleIndex)
	app.Post("/match", pageHandler.HandleMatch)

	// JSON relay with the scoring service's own path
	app.Post("/api/calculate-match", matchHandler.HandleCalculateMatch)

	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
