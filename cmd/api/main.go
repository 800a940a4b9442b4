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
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"talentsift/resume-screener/internal/config"
	"talentsift/resume-screener/internal/handlers"
	"talentsift/resume-screener/internal/services"
	"talentsift/resume-screener/internal/store"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// The record store is the single shared aggregate: records, job
	// description, results.
	recordStore := store.New()

	// Initialize services
	extractor := services.NewExtractor()
	fetcher := services.NewFetcher(cfg.Partner.ProfileHost, cfg.Partner.LookupURL)
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	llm, err := services.NewGeminiClient(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.RequestsPerSecond)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	analyzer := services.NewAnalyzer(llm)
	nameResolver := services.NewNameResolver(llm)
	orchestrator := services.NewOrchestrator(
		recordStore,
		extractor,
		analyzer,
		nameResolver,
		cfg.Pipeline.BatchSize,
	)
	log.Println("✅ Pipeline orchestrator initialized")

	// Initialize handlers
	resumeHandler := handlers.NewResumeHandler(recordStore, fetcher, cfg.Storage.MaxFileSize)
	jobHandler := handlers.NewJobHandler(recordStore, extractor, fetcher)
	analyzeHandler := handlers.NewAnalyzeHandler(recordStore, orchestrator)
	resultsHandler := handlers.NewResultsHandler(recordStore)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Screener API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
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
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/resumes", resumeHandler.HandleUpload)
	api.Post("/resumes/url", resumeHandler.HandleIngestURL)
	api.Delete("/resumes/:id", resumeHandler.HandleRemove)
	api.Delete("/resumes", resumeHandler.HandleClear)
	api.Put("/job", jobHandler.HandlePut)
	api.Get("/job", jobHandler.HandleGet)
	api.Post("/analyze", analyzeHandler.HandleAnalyze)
	api.Get("/records", resultsHandler.HandleRecords)
	api.Get("/results", resultsHandler.HandleResults)
	api.Delete("/error", resultsHandler.HandleDismissError)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Screener API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/resumes",
				"POST /api/v1/resumes/url",
				"DELETE /api/v1/resumes/:id",
				"DELETE /api/v1/resumes",
				"PUT /api/v1/job",
				"POST /api/v1/analyze",
				"GET /api/v1/records",
				"GET /api/v1/results",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
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
