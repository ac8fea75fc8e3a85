package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shellist/backend/internal/config"
	"github.com/shellist/backend/internal/core/services"
	"github.com/shellist/backend/internal/infrastructure/db"
	"github.com/shellist/backend/internal/infrastructure/logger"
	"github.com/shellist/backend/internal/infrastructure/webhook"
	"github.com/shellist/backend/internal/transport/http/handlers"
	httpmw "github.com/shellist/backend/internal/transport/http/middleware"
	"gorm.io/gorm"
)

type RouterConfig struct {
	DB     *gorm.DB
	Logger *logger.Logger
	Config *config.Config
}

// SetupRoutes wires repositories, services and handlers onto the fiber app
// and returns the scanner so the caller can drive the periodic scan loop.
func SetupRoutes(app *fiber.App, cfg RouterConfig) *services.ScannerService {
	// Repositories
	taskRepo := db.NewTaskRepository(cfg.DB, cfg.Logger)
	userRepo := db.NewUserRepository(cfg.DB, cfg.Logger)
	followRepo := db.NewFollowRepository(cfg.DB, cfg.Logger)
	settingsRepo := db.NewSettingsRepository(cfg.DB, cfg.Logger)
	notificationLog := db.NewNotificationLogRepository(cfg.DB, cfg.Logger)

	// Outbound webhook transport
	dispatcher := webhook.NewClient(
		cfg.Config.Scanner.WebhookURL,
		cfg.Config.Scanner.WebhookTimeout,
		cfg.Logger,
	)

	// Services
	taskService := services.NewTaskService(services.TaskServiceConfig{
		Repository: taskRepo,
		Logger:     cfg.Logger,
	})
	userService := services.NewUserService(services.UserServiceConfig{
		Repository: userRepo,
		Logger:     cfg.Logger,
	})
	followService := services.NewFollowService(services.FollowServiceConfig{
		Repository: followRepo,
		Logger:     cfg.Logger,
	})
	settingsService := services.NewSettingsService(services.SettingsServiceConfig{
		Repository: settingsRepo,
		Logger:     cfg.Logger,
	})
	scannerService := services.NewScannerService(services.ScannerServiceConfig{
		TaskRepo:        taskRepo,
		UserRepo:        userRepo,
		SettingsRepo:    settingsRepo,
		NotificationLog: notificationLog,
		Dispatcher:      dispatcher,
		Logger:          cfg.Logger,
		ReminderLead:    cfg.Config.Scanner.ReminderLead,
		OverdueGrace:    cfg.Config.Scanner.OverdueGrace,
	})

	// Handlers
	taskHandler := handlers.NewTaskHandler(taskService, notificationLog, cfg.Logger)
	userHandler := handlers.NewUserHandler(userService, cfg.Logger)
	followHandler := handlers.NewFollowHandler(followService, cfg.Logger)
	settingsHandler := handlers.NewSettingsHandler(settingsService, cfg.Logger)
	scanHandler := handlers.NewScanHandler(scannerService, cfg.Logger)

	api := app.Group("/api/v1")

	// Task routes
	tasks := api.Group("/tasks", httpmw.AdminAuth(cfg.Config))
	tasks.Post("/", taskHandler.CreateTask)
	tasks.Get("/", taskHandler.GetTasks)
	tasks.Get("/recent", taskHandler.GetRecentTasks)
	tasks.Get("/:id", taskHandler.GetTask)
	tasks.Post("/:id/complete", taskHandler.CompleteTask)
	tasks.Delete("/:id", taskHandler.DeleteTask)
	tasks.Get("/:id/notifications", taskHandler.GetTaskNotifications)

	// User routes
	users := api.Group("/users", httpmw.AdminAuth(cfg.Config))
	users.Get("/search", userHandler.SearchUsers)
	users.Get("/username/:username", userHandler.GetUserByUsername)
	users.Get("/username/:username/available", userHandler.CheckUsername)
	users.Get("/:id", userHandler.GetUser)
	users.Put("/:id/username", userHandler.UpdateUsername)
	users.Put("/:id/profile", userHandler.UpdateProfile)
	users.Get("/:id/followers", followHandler.GetFollowers)
	users.Get("/:id/following", followHandler.GetFollowing)
	users.Get("/:id/follow-stats", followHandler.GetFollowStats)

	// Follow routes
	follows := api.Group("/follows", httpmw.AdminAuth(cfg.Config))
	follows.Post("/", followHandler.FollowUser)
	follows.Delete("/", followHandler.UnfollowUser)
	follows.Get("/status", followHandler.IsFollowing)

	// Settings routes
	settings := api.Group("/settings", httpmw.AdminAuth(cfg.Config))
	settings.Get("/:userId", settingsHandler.GetSettings)
	settings.Put("/:userId", settingsHandler.UpdateSettings)

	// Manual scan trigger
	scan := api.Group("/scan", httpmw.AdminAuth(cfg.Config))
	scan.Post("/run", scanHandler.RunScan)

	return scannerService
}
