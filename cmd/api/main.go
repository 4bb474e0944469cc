package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"resumelens/resume-extractor/internal/config"
	"resumelens/resume-extractor/internal/handlers"
	"resumelens/resume-extractor/internal/logger"
	"resumelens/resume-extractor/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Server.Env)
	if err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()
	zlog.Info("✅ Config loaded successfully")

	// Initialize pipeline services
	normalizer := services.NewImageNormalizerService()
	ocr := services.NewOCRService(cfg.OCR.TesseractPath, cfg.OCR.Timeout, zlog)
	extractor := services.NewFormatExtractorService(normalizer, ocr, cfg.OCR.Language, zlog)

	gemini, err := services.NewGeminiService(
		cfg.Gemini.APIKey,
		cfg.Gemini.Models,
		cfg.Schema.SkillsVariant,
		zlog,
	)
	if err != nil {
		zlog.Fatal("❌ Failed to initialize Gemini AI", zap.Error(err))
	}
	zlog.Info("✅ Gemini AI initialized successfully",
		zap.Strings("models", cfg.Gemini.Models),
	)

	sanitizer := services.NewSanitizerService(cfg.Schema.SkillsVariant)
	pipeline := services.NewPipelineService(extractor, gemini, sanitizer, cfg.Gemini.Timeout, zlog)
	zlog.Info("✅ Pipeline initialized successfully",
		zap.String("skills_schema", string(cfg.Schema.SkillsVariant)),
	)

	extractHandler := handlers.NewExtractHandler(pipeline, cfg.Upload.MaxFileSize, zlog)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Extractor API",
		ReadTimeout:  90 * time.Second,
		WriteTimeout: 90 * time.Second,
		BodyLimit:    int(cfg.Upload.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 15 * time.Minute,
	}))

	// Routes
	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/extract", extractHandler.HandleExtract)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Extractor API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/extract",
				"GET /api/v1/health",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zlog.Info("🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			zlog.Error("❌ Server forced to shutdown", zap.Error(err))
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zlog.Info("🚀 Server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		zlog.Fatal("❌ Failed to start server", zap.Error(err))
	}
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
