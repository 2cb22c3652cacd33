package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"slackagent/internal/config"
	"slackagent/internal/handlers"
	"slackagent/internal/logging"
	"slackagent/internal/services"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Initialize structured logging (JSON in production, text in dev)
	logging.Init()

	log.Println("🚀 Starting AI Slack Agent...")

	// Load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  No .env file found or error loading it: %v", err)
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	// Load and validate configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Configuration error: %v", err)
	}
	log.Printf("📋 Configuration loaded (Port: %s, Model: %s)", cfg.Port, cfg.OpenAIModel)

	// Initialize Prometheus metrics
	services.InitMetrics()
	log.Println("✅ Prometheus metrics initialized")

	// Initialize integration clients
	completionService := services.NewCompletionService(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	log.Println("✅ Completion service initialized")

	slackService := services.NewSlackService(cfg.SlackBotToken)
	log.Println("✅ Slack service initialized")

	// Notion is optional - action-item sync and digest content degrade without it
	var taskService services.TaskStore
	if cfg.NotionAPIKey != "" && cfg.NotionDatabaseID != "" {
		taskService = services.NewTaskService(cfg.NotionAPIKey, cfg.NotionDatabaseID)
		log.Println("✅ Task service initialized (Notion)")
	} else {
		log.Println("⚠️ NOTION_API_KEY or NOTION_DATABASE_ID not set - task sync disabled")
	}

	// Google Calendar is optional - digest meeting content degrades without it
	var calendarService services.CalendarSource
	if _, err := os.Stat(cfg.GoogleCredentialsFile); err == nil {
		svc, err := services.NewCalendarService(context.Background(), cfg.GoogleCredentialsFile, cfg.GoogleTokenFile)
		if err != nil {
			log.Printf("⚠️ Failed to initialize calendar service: %v (calendar content disabled)", err)
		} else {
			calendarService = svc
			log.Println("✅ Calendar service initialized")
		}
	} else {
		log.Printf("⚠️ Google credentials file %s not found - calendar content disabled", cfg.GoogleCredentialsFile)
	}

	// Orchestration layer shared by the webhook path and the HTTP API
	assistantService := services.NewAssistantService(completionService, slackService, taskService)
	digestService := services.NewDigestService(completionService, slackService, taskService, calendarService,
		cfg.DigestChannel, cfg.DigestPostEnabled)
	log.Printf("✅ Digest composer initialized (channel: #%s, post: %t)", cfg.DigestChannel, cfg.DigestPostEnabled)

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName: "AI Slack Agent v1.0",
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())

	// Prometheus metrics middleware
	prometheus := fiberprometheus.New("slackagent")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)
	log.Println("📊 Prometheus metrics endpoint enabled at /metrics")

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	eventsHandler := handlers.NewSlackEventsHandler(assistantService)
	interactionsHandler := handlers.NewInteractionsHandler()
	apiHandler := handlers.NewAPIHandler(assistantService, digestService)

	// Routes
	app.Get("/", healthHandler.Handle)
	app.Post("/slack/events", eventsHandler.HandleEvents)
	app.Post("/slack/interactions", interactionsHandler.HandleInteractions)
	app.Post("/api/summarize", apiHandler.Summarize)
	app.Post("/api/action-items", apiHandler.ActionItems)
	app.Get("/api/digest", apiHandler.Digest)

	// Start server
	log.Printf("✅ Server ready on port %s", cfg.Port)
	log.Printf("📡 Slack events endpoint: http://localhost:%s/slack/events", cfg.Port)
	log.Printf("📰 Digest endpoint: http://localhost:%s/api/digest", cfg.Port)

	// Handle graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("⚠️ Error shutting down server: %v", err)
		}
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
