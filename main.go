package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"facturation-backend/database"
	"facturation-backend/middlewares"
	"facturation-backend/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// envInt reads an int env var with a default fallback.
func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func main() {
	// ---- Database
	database.Connect()
	database.AutoMigrate()
	if err := database.Seed(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}

	// ---- Limits (configurable via env)
	bodyLimitBytes := envInt("BODY_LIMIT_BYTES", 0)
	if bodyLimitBytes <= 0 {
		bodyLimitBytes = envInt("BODY_LIMIT_MB", 4) * 1024 * 1024
	}

	// ---- Fiber app with global error handler + body limit
	app := fiber.New(fiber.Config{
		ErrorHandler: middlewares.ErrorHandler,
		BodyLimit:    bodyLimitBytes,
	})

	// ---- CORS (credentials on: the session rides an httpOnly cookie)
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:5175"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
	}))

	// ---- Global rate limiter (applies to all routes; tune via env)
	rlMax := envInt("RATE_LIMIT_MAX", 60)
	rlWindow := time.Duration(envInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second
	app.Use(limiter.New(limiter.Config{
		Max:        rlMax,
		Expiration: rlWindow,
	}))

	// ---- Routes
	routes.Register(app)

	// ---- Start
	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
