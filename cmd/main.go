package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/Abraxas-365/inkwell/pkg/config"
	"github.com/Abraxas-365/inkwell/pkg/errx"
	"github.com/Abraxas-365/inkwell/pkg/logx"
)

func main() {
	// 1. Initialize Logger
	logx.SetDefaultLogger(logx.NewLogger(logx.LoadFromEnv()))

	logx.Info("🚀 Starting Inkwell Scanner API...")

	// 2. Load Configuration
	cfg := config.Load()

	// 3. Initialize Dependency Container
	container := NewContainer(cfg)
	defer container.Cleanup()

	// 4. Create Fiber App with Config
	app := fiber.New(fiber.Config{
		AppName:               "Inkwell Scanner API",
		DisableStartupMessage: true,
		ErrorHandler:          globalErrorHandler,
		BodyLimit:             cfg.Server.BodyLimitMB * 1024 * 1024,
		IdleTimeout:           120 * time.Second,
	})

	// 5. Global Middleware
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return uuid.NewString()
		},
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.Server.CORSOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods:  "GET, POST, HEAD, OPTIONS",
		ExposeHeaders: "X-Request-ID",
	}))

	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${method} ${path} | ${ip} | ${reqHeader:X-Request-ID}\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Local",
	}))

	// 6. Health Check Endpoint
	app.Get("/health", healthCheckHandler(container))

	// 7. Register Routes
	container.ScanHandlers.RegisterRoutes(app)
	logx.Info("✓ Scanner routes registered")

	// 8. 404 Handler
	app.Use(notFoundHandler)

	// 9. Start Server with Graceful Shutdown
	startServer(app, cfg.Server.Port)
}

// healthCheckHandler returns a health check handler
func healthCheckHandler(container *Container) fiber.Handler {
	return func(c *fiber.Ctx) error {
		health := fiber.Map{
			"status":  "healthy",
			"service": "inkwell-scanner-api",
		}

		if _, err := container.FileSystem.Exists(c.Context(), "."); err != nil {
			health["storage"] = "unhealthy"
			health["storage_error"] = err.Error()
			health["status"] = "degraded"
		} else {
			health["storage"] = "healthy"
		}

		status := fiber.StatusOK
		if health["status"] == "degraded" {
			status = fiber.StatusServiceUnavailable
		}

		return c.Status(status).JSON(health)
	}
}

// notFoundHandler handles 404 errors
func notFoundHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error":      "Route not found",
		"code":       "NOT_FOUND",
		"path":       c.Path(),
		"method":     c.Method(),
		"request_id": c.Get("X-Request-ID"),
	})
}

// globalErrorHandler converts internal errors to standard HTTP responses
func globalErrorHandler(c *fiber.Ctx, err error) error {
	logx.WithFields(logx.Fields{
		"path":       c.Path(),
		"method":     c.Method(),
		"ip":         c.IP(),
		"request_id": c.Get("X-Request-ID"),
	}).Errorf("Request error: %v", err)

	// Fiber's own errors (body limit, bad multipart, etc.)
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{
			"error":      e.Message,
			"code":       "FIBER_ERROR",
			"status":     e.Code,
			"request_id": c.Get("X-Request-ID"),
		})
	}

	// Everything else is coerced to errx and rendered uniformly.
	e := errx.FromError(err)
	response := fiber.Map{
		"error":      e.Message,
		"code":       e.Code,
		"type":       string(e.Type),
		"status":     e.HTTPStatus,
		"request_id": c.Get("X-Request-ID"),
	}
	if len(e.Details) > 0 {
		response["details"] = e.Details
	}
	return c.Status(e.HTTPStatus).JSON(response)
}

// startServer starts the fiber server and blocks until shutdown
func startServer(app *fiber.App, port string) {
	go func() {
		addr := ":" + port
		logx.Infof("🌐 Server listening on %s", addr)
		if err := app.Listen(addr); err != nil {
			logx.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logx.Info("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		logx.Errorf("Server shutdown error: %v", err)
	}
	logx.Info("👋 Server stopped")
}
