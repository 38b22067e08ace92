package main

import (
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/teamgrid/tracker-api/internal/config"
	"github.com/teamgrid/tracker-api/internal/database"
	"github.com/teamgrid/tracker-api/internal/handlers"
	"github.com/teamgrid/tracker-api/internal/logging"
	"github.com/teamgrid/tracker-api/internal/middleware"
	"github.com/teamgrid/tracker-api/internal/repository"
	"github.com/teamgrid/tracker-api/internal/services"
)

func main() {
	cfg := config.Load()

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	gin.SetMode(cfg.GinMode)

	if err := database.Connect(cfg, log); err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}
	if err := database.AddIndexes(database.GetDB(), log); err != nil {
		log.Fatal("failed to add indexes", zap.Error(err))
	}
	if err := database.SeedStatuses(database.GetDB()); err != nil {
		log.Fatal("failed to seed statuses", zap.Error(err))
	}

	r := gin.Default()

	// Session middleware backed by Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,
		"tcp",
		redisAddr,
		"",
		"",
		[]byte(cfg.SessionSecret),
	)
	if err != nil {
		log.Fatal("failed to create redis store", zap.Error(err))
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // Lax
	})
	r.Use(sessions.Sessions("tracker_session", store))

	// Repositories and services
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	statusRepo := repository.NewStatusRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authService := services.NewAuthService(userRepo)
	companyService := services.NewCompanyService(companyRepo)
	taskService := services.NewTaskService(taskRepo, companyRepo, statusRepo, log)

	authHandler := handlers.NewAuthHandler(authService)
	companyHandler := handlers.NewCompanyHandler(companyService)
	taskHandler := handlers.NewTaskHandler(taskService)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		companies := api.Group("/companies")
		companies.Use(middleware.RequireAuth())
		{
			companies.POST("", companyHandler.CreateCompany)
			companies.GET("", companyHandler.ListCompanies)
			companies.GET("/:id", middleware.RequireCompanyAccess(), companyHandler.GetCompany)
			companies.POST("/:id/members", middleware.RequireCompanyAccess(), middleware.RequireCompanyOwner(), companyHandler.AddMember)
			companies.POST("/:id/employees", middleware.RequireCompanyAccess(), middleware.RequireCompanyOwner(), companyHandler.AddEmployee)
		}

		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/completed", taskHandler.ListCompletedTasks)
			tasks.GET("/counts", taskHandler.GetTaskCounts)
			tasks.GET("/gantt", taskHandler.ListGantt)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", middleware.RequireTaskAccess(), taskHandler.GetTask)
			tasks.PATCH("/:id", middleware.RequireTaskAccess(), taskHandler.UpdateTask)
			tasks.DELETE("/:id", middleware.RequireTaskAccess(), taskHandler.DeleteTask)
		}
	}

	log.Info("server starting", zap.String("addr", cfg.ListenAddr))
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}
