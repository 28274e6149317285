package main

import (
	"log"
	"os"
	"strconv"

	_ "tailorpos/api/swagger" // swagger docs
	"tailorpos/internal/database"
	"tailorpos/internal/handler"
	"tailorpos/internal/imagestore"
	"tailorpos/internal/middleware"
	"tailorpos/internal/notify"
	"tailorpos/internal/repository"
	"tailorpos/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Tailor Shop Back Office API
// @version         1.0
// @description     Retail back office for a tailor shop: staff accounts, catalog, clients, checkout, returns, reports and notifications.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbSslMode := os.Getenv("DB_SSLMODE")

	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	if dbUser == "" {
		dbUser = "postgres"
	}
	if dbPassword == "" {
		dbPassword = "postgres"
	}
	if dbName == "" {
		dbName = "postgres"
	}
	if dbSslMode == "" {
		dbSslMode = "disable"
	}

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	// Notification feed hub
	hub := notify.NewHub()
	go hub.Run()

	// Image storage (local disk; swap the Store for a hosted provider in production)
	imageRoot := os.Getenv("IMAGE_ROOT")
	if imageRoot == "" {
		imageRoot = "uploads"
	}
	imageBaseURL := os.Getenv("IMAGE_BASE_URL")
	if imageBaseURL == "" {
		imageBaseURL = "/static"
	}
	images := imagestore.NewDiskStore(imageRoot, imageBaseURL)

	stockThreshold := service.DefaultStockThreshold
	if v := os.Getenv("STOCK_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			stockThreshold = n
		}
	}

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	tailoringRepo := repository.NewTailoringRepository(db)
	retrievedRepo := repository.NewRetrievedRepository(db)
	reportRepo := repository.NewReportRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	userService := service.NewUserService(userRepo, images)
	clientService := service.NewClientService(clientRepo)
	categoryService := service.NewCategoryService(categoryRepo, images)
	productService := service.NewProductService(productRepo, categoryRepo, images)
	checkoutService := service.NewCheckoutService(
		txManager, userRepo, clientRepo, productRepo, invoiceRepo,
		transactionRepo, tailoringRepo, retrievedRepo, reportRepo,
		notificationRepo, hub, stockThreshold,
	)
	retrievedService := service.NewRetrievedService(retrievedRepo, invoiceRepo, clientRepo)
	reportService := service.NewReportService(reportRepo, invoiceRepo, transactionRepo)
	tailoringService := service.NewTailoringService(tailoringRepo)
	notificationService := service.NewNotificationService(notificationRepo)

	// Initialize Handlers
	userHandler := handler.NewUserHandler(userService)
	clientHandler := handler.NewClientHandler(clientService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	productHandler := handler.NewProductHandler(productService)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	retrievedHandler := handler.NewRetrievedHandler(retrievedService)
	reportHandler := handler.NewReportHandler(reportService)
	tailoringHandler := handler.NewTailoringHandler(tailoringService)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:5174"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Uploaded images
	router.Static(imageBaseURL, imageRoot)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// Notification feed
	router.GET("/ws/notifications", func(c *gin.Context) {
		notify.ServeWs(hub, c, middleware.GetJWTSecret())
	})

	// API Routing
	userHandler.RegisterRoutes(router.Group(""))
	clientHandler.RegisterRoutes(router.Group(""))
	categoryHandler.RegisterRoutes(router.Group(""))
	productHandler.RegisterRoutes(router.Group(""))
	checkoutHandler.RegisterRoutes(router.Group(""))
	retrievedHandler.RegisterRoutes(router.Group(""))
	reportHandler.RegisterRoutes(router.Group(""))
	tailoringHandler.RegisterRoutes(router.Group(""))
	notificationHandler.RegisterRoutes(router.Group(""))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
