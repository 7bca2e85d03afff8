package main

import (
	"context"
	"log"
	"time"

	"agrimarket/config"
	"agrimarket/database"
	"agrimarket/handlers"
	"agrimarket/repository"
	"agrimarket/routes"
	"agrimarket/storage"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	config.AppConfig = cfg

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if cfg.DatabaseURL != "" {
		if err := database.InitDB(ctx, cfg.DatabaseURL); err != nil {
			log.Fatal(err)
		}
		defer database.CloseDB()

		if err := database.Migrate(ctx, database.GetDB()); err != nil {
			log.Fatal(err)
		}
		handlers.Crops = repository.NewPostgresCropStore(database.GetDB())
		handlers.Users = repository.NewPostgresUserStore(database.GetDB())
	} else {
		log.Println("DATABASE_URL is not set, data is kept in memory only")
		handlers.Crops = repository.NewMemoryCropStore()
		handlers.Users = repository.NewMemoryUserStore()
	}

	if cfg.ImagesEnabled() {
		images, err := storage.NewS3ImageStore(ctx, storage.S3Options{
			Endpoint:      cfg.S3Endpoint,
			Region:        cfg.S3Region,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			Bucket:        cfg.S3Bucket,
			PublicBaseURL: cfg.S3PublicBaseURL,
		})
		if err != nil {
			log.Fatal(err)
		}
		handlers.Images = images
	} else {
		log.Println("S3 settings missing, image uploads disabled")
	}

	if cfg.GeminiAPIKey != "" {
		handlers.Insights = handlers.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	} else {
		log.Println("GEMINI_API_KEY is not set, AI insights disabled")
	}

	app := routes.NewApp()

	// Setup routes
	routes.SetupRoutes(app)

	// Start server
	log.Fatal(app.Listen(":" + cfg.Port))
}
