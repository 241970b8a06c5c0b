package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/smarttransit/bus-ticketing-backend/internal/config"
	"github.com/smarttransit/bus-ticketing-backend/internal/database"
	"github.com/smarttransit/bus-ticketing-backend/internal/handlers"
	"github.com/smarttransit/bus-ticketing-backend/internal/middleware"
	"github.com/smarttransit/bus-ticketing-backend/internal/services"
	"github.com/smarttransit/bus-ticketing-backend/pkg/jwt"
	"github.com/smarttransit/bus-ticketing-backend/pkg/sms"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting SmartTransit Bus Ticketing Backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database connection
	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	// Initialize repositories
	vehicleRepo := database.NewVehicleRepository(db)
	tripRepo := database.NewTripRepository(db)
	ticketRepo := database.NewTicketRepository(db)
	customerRepo := database.NewCustomerRepository(db)
	employeeRepo := database.NewEmployeeRepository(db)

	// Initialize SMS gateway
	var smsGateway sms.Gateway
	if cfg.SMS.Mode == "production" {
		logger.Info("Initializing SMS gateway in production mode")
		smsGateway = sms.NewHTTPGateway(sms.HTTPGatewayConfig{
			APIURL: cfg.SMS.APIURL,
			APIKey: cfg.SMS.APIKey,
			Sender: cfg.SMS.Sender,
		})
	} else {
		logger.Info("SMS gateway in development mode (no actual SMS will be sent)")
		smsGateway = sms.NewDevGateway(logger)
	}

	// Initialize services
	logger.Info("Initializing services...")
	jwtService := jwt.NewService(cfg.JWT.Secret, cfg.JWT.TokenExpiry)
	documentService := services.NewDocumentService()
	notificationService := services.NewNotificationService(cfg.SMTP, smsGateway, documentService, logger)
	availabilityService := services.NewAvailabilityService(tripRepo, vehicleRepo, ticketRepo, logger)
	paymentService := services.NewPaymentService(logger)
	bookingService := services.NewBookingService(
		ticketRepo,
		customerRepo,
		availabilityService,
		paymentService,
		notificationService,
		logger,
	)
	relocationService := services.NewRelocationService(ticketRepo, availabilityService, notificationService, logger)
	ticketService := services.NewTicketService(ticketRepo, availabilityService, notificationService, logger)
	catalogService := services.NewTripCatalogService(tripRepo, vehicleRepo, ticketRepo, logger)
	authService := services.NewAuthService(employeeRepo, jwtService, logger)
	repairService := services.NewRepairService(tripRepo, availabilityService, logger)

	// Start the nightly sold-count reconciliation sweep
	var cronService *services.CronService
	if cfg.Repair.Enabled {
		cronService = services.NewCronService(repairService, cfg.Repair.Schedule, logger)
		if err := cronService.Start(); err != nil {
			logger.Fatalf("Failed to start repair sweep: %v", err)
		}
		logger.Infof("Repair sweep scheduled: %s", cfg.Repair.Schedule)
	}

	logger.Info("Services initialized")

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, logger)
	vehicleHandler := handlers.NewVehicleHandler(catalogService, logger)
	tripHandler := handlers.NewTripHandler(catalogService, availabilityService, logger)
	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	ticketHandler := handlers.NewTicketHandler(ticketService, relocationService, catalogService, documentService, logger)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	// CORS configuration
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", healthCheckHandler(db))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Authentication routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
		}

		// Trip and availability routes (public)
		trips := v1.Group("/trips")
		{
			trips.GET("", tripHandler.List)
			trips.GET("/:id", tripHandler.Get)
			trips.GET("/:id/seats", tripHandler.FreeSeats)
			trips.GET("/:id/seats/count", tripHandler.FreeSeatCount)
		}

		// Online booking (public, self-service)
		v1.POST("/bookings", bookingHandler.BookOnline)

		// Ticket lifecycle routes (public, keyed by redemption code)
		tickets := v1.Group("/tickets")
		{
			tickets.GET("/:code", ticketHandler.Get)
			tickets.GET("/:code/pdf", ticketHandler.Download)
			tickets.POST("/:code/relocate", ticketHandler.Relocate)
			tickets.POST("/:code/resend", ticketHandler.Resend)
			tickets.DELETE("/:code", ticketHandler.Cancel)
		}

		// Counter routes (require employee session)
		counter := v1.Group("/counter")
		counter.Use(middleware.AuthMiddleware(jwtService))
		{
			counter.POST("/bookings", bookingHandler.BookCounter)
		}

		// Fleet and schedule administration (require employee session)
		admin := v1.Group("")
		admin.Use(middleware.AuthMiddleware(jwtService))
		{
			admin.POST("/vehicles", vehicleHandler.Create)
			admin.GET("/vehicles", vehicleHandler.List)
			admin.PATCH("/vehicles/:id/capacity", vehicleHandler.UpdateCapacity)
			admin.POST("/trips", tripHandler.Create)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	if cronService != nil {
		logger.Info("Stopping repair sweep...")
		cronService.Stop()
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// healthCheckHandler returns a health check endpoint
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unhealthy",
				"error":    err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  "healthy",
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}
