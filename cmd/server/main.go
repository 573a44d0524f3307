package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"pulse-go-api/internal/config"
	"pulse-go-api/internal/handlers"
	"pulse-go-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Canonical state starts from the built-in sample dataset
	sample, err := services.SampleDataset()
	if err != nil {
		log.Fatalf("Failed to load sample dataset: %v", err)
	}
	store := services.NewStore(cfg, sample)

	// Initialize handlers
	dashboardHandler := handlers.NewDashboardHandler(store)
	healthHandler := handlers.NewHealthHandler(store)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		StrictRouting: true,
		CaseSensitive: true,
		ServerHeader:  "Pulse-API",
		AppName:       "Pulse Analytics v1.0",
		ReadTimeout:   time.Second * 10,
		WriteTimeout:  time.Second * 10,
		BodyLimit:     cfg.BodyLimitBytes,
		ErrorHandler:  handlers.CustomErrorHandler,
	})

	// Middleware stack
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept",
		AllowCredentials: false,
		MaxAge:           3600,
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitPerMin,
		Expiration: 1 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(429).JSON(fiber.Map{
				"error": "Rate limit exceeded. Please try again later.",
			})
		},
	}))

	// Routes
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "Pulse Analytics API",
			"version": "1.0.0",
			"status":  "running",
		})
	})

	app.Get("/health", healthHandler.Health)
	app.Get("/health/ready", healthHandler.Ready)

	// API v1 routes
	v1 := app.Group("/v1")
	v1.Get("/dashboard", dashboardHandler.Dashboard)
	v1.Get("/charts/:name", dashboardHandler.Chart)
	v1.Post("/upload", dashboardHandler.Upload)
	v1.Get("/scenario", dashboardHandler.GetScenario)
	v1.Put("/scenario", dashboardHandler.SetScenario)
	v1.Post("/admin/reset", dashboardHandler.Reset)

	// Start server
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Pulse API started on port %s", cfg.Port)
	log.Printf("Environment: %s", cfg.Environment)
	log.Printf("Sample dataset: %d rows", sample.Len())

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server shutdown complete")
}
