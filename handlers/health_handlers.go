package handlers

import (
	"log"

	"agrimarket/database"

	"github.com/gofiber/fiber/v2"
)

// HandleHealth reports liveness and, when a database is configured, whether it answers.
// GET /health
func HandleHealth(c *fiber.Ctx) error {
	db := database.GetDB()
	if db == nil {
		return c.JSON(fiber.Map{"status": "success", "database": "disabled"})
	}

	if err := db.Ping(c.Context()); err != nil {
		log.Printf("Database ping failed: %v", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "error", "database": "down"})
	}
	return c.JSON(fiber.Map{"status": "success", "database": "up"})
}
