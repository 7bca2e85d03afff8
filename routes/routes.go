package routes

import (
	"errors"
	"log"

	"agrimarket/handlers"
	"agrimarket/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewApp builds the Fiber application with the JSON error handler and the
// common middleware stack. Routes are registered by SetupRoutes.
func NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "agrimarket",
		ErrorHandler: ErrorHandler,
		BodyLimit:    6 << 20,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	return app
}

// ErrorHandler renders errors returned by handlers in the API envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	} else {
		log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	}

	return c.Status(code).JSON(fiber.Map{"status": "error", "message": message})
}

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App) {
	app.Get("/health", handlers.HandleHealth)

	api := app.Group("/api/v1")

	// --- Authentication Routes ---
	auth := api.Group("/auth")
	auth.Post("/signup", handlers.HandleSignUp)
	auth.Post("/login", handlers.HandleLogin)

	// --- Community Routes ---
	users := api.Group("/users", middleware.JWTMiddleware)
	users.Get("/me", handlers.HandleGetMyProfile) // Must be before /:userId
	users.Put("/me", handlers.HandleUpdateMyProfile)
	users.Get("/", handlers.HandleListUsers)
	users.Get("/:userId", handlers.HandleGetUserContact)

	api.Get("/farmers/:farmerId/crops", middleware.JWTMiddleware, handlers.HandleListFarmerCrops)

	// --- Crop Routes ---
	crops := api.Group("/crops", middleware.JWTMiddleware)
	crops.Get("/", handlers.HandleListCrops)
	crops.Get("/:cropId", handlers.HandleGetCrop)
	crops.Get("/:cropId/forecast", handlers.HandleGetCropForecast)
	crops.Post("/:cropId/insight", handlers.HandleCropInsight)

	// Farmer only
	crops.Post("/", middleware.FarmerRequired, handlers.HandleCreateCrop)
	crops.Post("/images", middleware.FarmerRequired, handlers.HandleUploadCropImage)
	crops.Put("/:cropId", middleware.FarmerRequired, handlers.HandleUpdateCrop)
	crops.Delete("/:cropId", middleware.FarmerRequired, handlers.HandleDeleteCrop)
}
