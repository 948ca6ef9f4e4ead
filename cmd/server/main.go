package main

import (
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/dafoundation/disaster-relief-api/internal/config"
	"github.com/dafoundation/disaster-relief-api/internal/database"
	"github.com/dafoundation/disaster-relief-api/internal/handlers"
	"github.com/dafoundation/disaster-relief-api/internal/middleware"
	"github.com/dafoundation/disaster-relief-api/internal/repository"
	"github.com/dafoundation/disaster-relief-api/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	gin.SetMode(cfg.GinMode)
	if cfg.GinMode == "release" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	if err := database.Connect(cfg); err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	if err := database.Migrate(); err != nil {
		logrus.WithError(err).Fatal("failed to run migrations")
	}

	r := gin.Default()

	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,
		"tcp",
		redisAddr,
		"",
		[]byte(cfg.SessionSecret),
	)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create redis session store")
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions("relief_session", store))

	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	reportRepo := repository.NewReportRepository(db)
	donationRepo := repository.NewDonationRepository(db)
	volunteerRepo := repository.NewVolunteerRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	commRepo := repository.NewCommunicationRepository(db)

	authHandler := handlers.NewAuthHandler(services.NewAuthService(userRepo, cfg.AdminEmail))
	reportHandler := handlers.NewReportHandler(services.NewReportService(reportRepo))
	donationHandler := handlers.NewDonationHandler(services.NewDonationService(donationRepo))
	volunteerHandler := handlers.NewVolunteerHandler(services.NewVolunteerService(volunteerRepo))
	taskHandler := handlers.NewTaskHandler(services.NewTaskService(taskRepo))
	taskBrowseHandler := handlers.NewTaskBrowseHandler(
		services.NewAssignmentService(taskRepo),
		services.NewTaskService(taskRepo),
	)
	commHandler := handlers.NewCommunicationHandler(services.NewCommunicationService(commRepo))
	dashboardHandler := handlers.NewDashboardHandler(services.NewDashboardService(
		userRepo, donationRepo, reportRepo, taskRepo, volunteerRepo,
	))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Disaster Relief API is running",
		})
	})

	auth := r.Group("/auth")
	{
		auth.GET("/signin", authHandler.SignIn)
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
	}

	reports := r.Group("/reports")
	reports.Use(middleware.RequireAuth())
	{
		reports.GET("", reportHandler.List)
		reports.POST("", reportHandler.Create)
		reports.GET("/:id", reportHandler.Get)
		reports.POST("/edit/:id", reportHandler.Update)
		reports.POST("/delete/:id", reportHandler.Delete)
	}

	donations := r.Group("/donations")
	donations.Use(middleware.RequireAuth())
	{
		donations.GET("", donationHandler.List)
		donations.POST("", donationHandler.Create)
		donations.GET("/inventory", middleware.RequireAdmin(), donationHandler.Inventory)
		donations.GET("/:id", donationHandler.Get)
		donations.POST("/edit/:id", donationHandler.Update)
		donations.POST("/delete/:id", donationHandler.Delete)
		donations.POST("/distribute/:id", donationHandler.Distribute)
	}

	volunteers := r.Group("/volunteers")
	volunteers.Use(middleware.RequireAuth())
	{
		volunteers.GET("", volunteerHandler.List)
		volunteers.POST("", volunteerHandler.Create)
		volunteers.GET("/:id", volunteerHandler.Get)
		volunteers.POST("/edit/:id", volunteerHandler.Update)
		volunteers.POST("/delete/:id", volunteerHandler.Delete)
	}

	tasks := r.Group("/tasks")
	tasks.Use(middleware.RequireAuth())
	{
		tasks.GET("", taskHandler.List)
		tasks.POST("", taskHandler.Create)
		tasks.GET("/:id", taskHandler.Get)
		tasks.POST("/edit/:id", taskHandler.Update)
		tasks.POST("/delete/:id", taskHandler.Delete)
	}

	taskbrowse := r.Group("/taskbrowse")
	taskbrowse.Use(middleware.RequireAuth())
	{
		taskbrowse.GET("", taskBrowseHandler.Browse)
		taskbrowse.GET("/:id", taskBrowseHandler.Details)
		taskbrowse.POST("/join/:id", taskBrowseHandler.Join)
		taskbrowse.POST("/leave/:id", taskBrowseHandler.Leave)
	}

	messages := r.Group("/messages")
	messages.Use(middleware.RequireAuth())
	{
		messages.GET("", commHandler.List)
		messages.POST("", commHandler.Send)
		messages.GET("/:id", commHandler.Get)
		messages.POST("/reply/:id", commHandler.Reply)
		messages.POST("/delete/:id", commHandler.Delete)
	}

	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuth(), middleware.RequireAdmin())
	{
		admin.GET("/dashboard", dashboardHandler.Stats)
	}

	logrus.WithField("addr", cfg.ListenAddr).Info("server starting")
	if err := r.Run(cfg.ListenAddr); err != nil {
		logrus.WithError(err).Fatal("failed to start server")
	}
}
