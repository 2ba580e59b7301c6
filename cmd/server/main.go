package main

import (
	"github.com/gin-gonic/gin"
	"github.com/heinhtoo/quicktask-api/internal/cache"
	"github.com/heinhtoo/quicktask-api/internal/config"
	"github.com/heinhtoo/quicktask-api/internal/database"
	"github.com/heinhtoo/quicktask-api/internal/handlers"
	"github.com/heinhtoo/quicktask-api/internal/identity"
	"github.com/heinhtoo/quicktask-api/internal/logger"
	"github.com/heinhtoo/quicktask-api/internal/middleware"
	"github.com/heinhtoo/quicktask-api/internal/repository"
	"github.com/heinhtoo/quicktask-api/internal/services"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		logger.Fatal("failed to run migrations", "error", err)
	}

	// Connect to Redis; the cache is a best-effort accelerator, so a
	// missing Redis degrades to the in-process cache instead of failing.
	var store cache.Cache
	if redisCache, err := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword); err != nil {
		logger.Warn("redis unavailable, using in-process cache", "addr", cfg.RedisAddr, "error", err)
		store = cache.NewMemory()
	} else {
		store = redisCache
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	listRepo := repository.NewTaskListRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Initialize services
	resolver := identity.NewResolver(userRepo, store)
	userService := services.NewUserService(userRepo, store)
	listService := services.NewListService(listRepo, store)
	teamService := services.NewTeamService(teamRepo, store)
	taskService := services.NewTaskService(taskRepo, store)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	listHandler := handlers.NewTaskListHandler(listService)
	teamHandler := handlers.NewTeamListHandler(teamService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Initialize Gin router
	r := gin.Default()
	r.Use(middleware.Metrics())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Quick Task API is running",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := r.Group("/api")
	{
		// User routes (public: registration is the entry point)
		api.POST("/users", userHandler.Register)
		api.GET("/users", userHandler.List)

		// Task list routes
		taskLists := api.Group("/taskLists")
		taskLists.Use(middleware.RequireUser(resolver))
		{
			taskLists.GET("", listHandler.Report)
			taskLists.POST("", listHandler.Create)
			taskLists.PUT("", listHandler.Update)
			taskLists.DELETE("", listHandler.Delete)
		}

		// Team routes
		teamLists := api.Group("/teamLists")
		teamLists.Use(middleware.RequireUser(resolver))
		{
			teamLists.GET("", teamHandler.Report)
			teamLists.POST("", teamHandler.Create)
			teamLists.PUT("", teamHandler.Update)
			teamLists.DELETE("", teamHandler.Delete)
			teamLists.PUT("/:id", teamHandler.AddMembers)
		}

		// Task routes
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireUser(resolver))
		{
			tasks.GET("", taskHandler.List)
			tasks.POST("", taskHandler.Create)
			tasks.PUT("", taskHandler.Reorder)
			tasks.DELETE("", taskHandler.Delete)
			tasks.PUT("/:id", taskHandler.Update)
			tasks.PUT("/:id/complete", taskHandler.Complete)
		}
	}

	// Start server
	logger.Info("server starting", "port", cfg.AppPort)
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logger.Fatal("failed to start server", "error", err)
	}
}
