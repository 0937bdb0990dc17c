package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"unite-dashboard/internal/config"
	"unite-dashboard/internal/handler"
	"unite-dashboard/internal/logger"
	"unite-dashboard/internal/middleware"
	"unite-dashboard/internal/repository"
	"unite-dashboard/internal/service"
	"unite-dashboard/internal/session"
	"unite-dashboard/internal/upstream"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	zlog := logger.Get()
	defer zlog.Sync()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := config.NewRedisClient(cfg)
	if err != nil {
		zlog.Warn("redis unavailable, response cache disabled", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	minioClient, err := config.NewMinIOClient(cfg, zlog)
	if err != nil {
		zlog.Warn("minio unavailable, poster upload disabled", zap.Error(err))
		minioClient = nil
	}

	api := upstream.NewClient(cfg.APIBaseURL, zlog)
	repos := repository.NewRepositories(db)
	services := service.NewServices(api, repos, redisClient, minioClient, cfg, zlog)
	handlers := handler.NewHandlers(services)
	resolver := session.NewResolver(cfg.JWTSecret, zlog)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Unite-User",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))
	app.Use(middleware.RequestInfo())
	app.Use(middleware.WithViewer(resolver))

	setupRoutes(app, handlers)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	zlog.Info("server starting", zap.String("port", port), zap.String("upstream", cfg.APIBaseURL))
	if err := app.Listen(":" + port); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	public := v1.Group("/public")
	public.Get("/events", h.Calendar.PublicEvents)

	protected := v1.Group("", middleware.RequireIdentity())

	requests := protected.Group("/event-requests")
	requests.Get("/", h.Request.List)
	requests.Get("/:requestId", h.Request.Get)
	requests.Post("/:requestId/actions", h.Request.Act)
	requests.Delete("/:requestId", middleware.RequireSystemAdmin(), h.Request.Delete)
	requests.Get("/:requestId/journal", h.Request.Journal)
	requests.Get("/:requestId/activity", h.Audit.RequestActivity)

	events := protected.Group("/events", middleware.RequireSystemAdmin())
	events.Post("/direct", h.Event.Create)
	events.Post("/poster", h.Event.UploadPoster)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Patch("/:notificationId/read", h.Notification.MarkRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllRead)

	reference := protected.Group("/reference")
	reference.Get("/stakeholders", h.Reference.Stakeholders)
	reference.Get("/coordinators", h.Reference.Coordinators)
	reference.Get("/districts", h.Reference.Districts)

	refresh := protected.Group("/refresh")
	refresh.Get("/stream", h.Refresh.Stream)
	refresh.Post("/", h.Refresh.Force)

	audit := protected.Group("/audit", middleware.RequireSystemAdmin())
	audit.Get("/recent", h.Audit.RecentActivity)
	audit.Get("/journal", h.Audit.RecentJournal)
	audit.Get("/journal/:journalId", h.Audit.JournalEntry)
}
