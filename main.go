// main.go
package main

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"gaittrib/config"
	"gaittrib/controllers"
	"gaittrib/logger"
	"gaittrib/middleware"
	"gaittrib/models"
	"gaittrib/services"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		logger.Debug.Println("No .env file found, relying on process environment")
	}

	cfg := config.FromEnv()
	logger.SetLogLevel(cfg.Env)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.DatabaseURL == "" {
		logger.Error.Fatal("DATABASE_URL is not set")
	}
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		logger.Error.Fatalf("Failed to connect to database: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		logger.Error.Fatalf("Failed to migrate schema: %v", err)
	}

	// services: the gateway client is constructed once here and injected,
	// never lazily initialized behind a package variable
	gateway := services.NewPaymentGateway(cfg)
	paymentService := services.NewPaymentService(db, gateway)
	registrationService := services.NewRegistrationService(db, paymentService)
	eventService := services.NewEventService(db)
	leaderboardService := services.NewLeaderboardService(db)
	userService := services.NewUserService(db, cfg)
	uploadService := services.NewUploadService(cfg)

	authController := controllers.NewAuthController(userService)
	eventController := controllers.NewEventController(eventService, uploadService, cfg.ApplicationURL)
	registrationController := controllers.NewRegistrationController(registrationService)
	paymentController := controllers.NewPaymentController(registrationService, paymentService, cfg.RazorpayWebhookSecret)
	leaderboardController := controllers.NewLeaderboardController(leaderboardService)
	adminController := controllers.NewAdminController(leaderboardService)

	router := gin.Default()

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.Env == "production",
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions("gaittrib_session", store))

	router.LoadHTMLGlob("templates/*.html")
	router.Static("/static", "./static")

	router.GET("/health", controllers.Health)

	// public pages
	router.GET("/", eventController.Index)
	router.GET("/events/:eventId", eventController.ShowEvent)
	router.GET("/events/:eventId/qrcode", eventController.EventQR)
	router.GET("/events/:eventId/leaderboard", leaderboardController.EventLeaderboard)
	router.GET("/leaderboard", leaderboardController.GlobalLeaderboard)

	// auth
	router.GET("/signup", authController.ShowSignupPage)
	router.POST("/signup", authController.PerformSignup)
	router.GET("/login", authController.ShowLoginPage)
	router.POST("/login", authController.PerformLogin)
	router.GET("/logout", authController.Logout)

	// logged-in surface
	user := router.Group("/", middleware.AuthRequired)
	{
		user.GET("/complete-profile", authController.ShowCompleteProfile)
		user.POST("/complete-profile", authController.PerformCompleteProfile)
		user.GET("/my-registrations", registrationController.MyRegistrations)
		user.POST("/events/:eventId/register", middleware.ProfileRequired(), registrationController.RegisterForEvent)
	}

	// payment API: order creation needs a session, the webhook authenticates
	// itself by signature
	api := router.Group("/api/payments")
	{
		api.POST("/order", middleware.APIAuthRequired, paymentController.CreateOrder)
		api.POST("/webhook", paymentController.Webhook)
	}

	// admin surface
	admin := router.Group("/admin", middleware.AuthRequired, middleware.AdminRequired())
	{
		admin.GET("/overview", adminController.Overview)
		admin.GET("/events/new", eventController.ShowCreateEvent)
		admin.POST("/events", eventController.CreateEvent)
		admin.POST("/events/:eventId", eventController.UpdateEvent)
		admin.GET("/registrations", registrationController.ListRegistrations)
		admin.POST("/registrations/:registrationId/review", registrationController.ReviewRegistration)
		admin.POST("/leaderboard", leaderboardController.AddResult)
	}

	logger.Info.Printf("Starting server on :%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Error.Fatalf("Failed to run server: %v", err)
	}
}
