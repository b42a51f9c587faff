package main

import (
	"log"
	"os"

	"github.com/RohitAgrawal7/Journal-Backend/config"
	"github.com/RohitAgrawal7/Journal-Backend/controllers"
	"github.com/RohitAgrawal7/Journal-Backend/middleware"
	"github.com/RohitAgrawal7/Journal-Backend/routes"
	"github.com/RohitAgrawal7/Journal-Backend/services"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logFile, _ := config.InitLogging()
	if logFile != nil {
		defer logFile.Close()
	}

	// Initialize database and object storage. Both are fatal on
	// misconfiguration: the service must not accept uploads it cannot keep.
	config.InitDB()
	config.InitStorage()

	// Set Gin mode
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()
	router.MaxMultipartMemory = 16 << 20 // headroom over the 10 MiB file limit

	// Add logging middleware
	router.Use(gin.Logger())

	// Add recovery middleware
	router.Use(gin.Recovery())

	// Add security headers middleware
	router.Use(func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	})

	// Add CORS middleware
	router.Use(middleware.CORSMiddleware())

	// Wire lifecycle services and handlers
	notifier := services.NewEmailNotifier()
	submissionSvc := services.NewSubmissionService(config.DB, config.Storage, notifier, config.BucketManuscripts)
	reviewerSvc := services.NewReviewerService(config.DB, config.Storage, config.BucketReviewerCV)

	routes.SetupRoutes(
		router,
		controllers.NewSubmissionController(submissionSvc),
		controllers.NewReviewerController(reviewerSvc),
		controllers.NewHealthController(config.DB, config.Storage),
	)

	// Start server
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Journal API starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
