package routes

import (
	"github.com/RohitAgrawal7/Journal-Backend/controllers"
	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	submissions *controllers.SubmissionController,
	reviewers *controllers.ReviewerController,
	health *controllers.HealthController,
) {
	// Health check
	router.GET("/health", health.Check)

	// Manuscript submissions
	submission := router.Group("/submission")
	{
		submission.POST("", submissions.Create)
		submission.GET("", submissions.List)
		submission.GET("/track/:trackingId", submissions.Track)
		submission.GET("/author/:id/:email", submissions.GetForAuthor)
		submission.GET("/:id", submissions.Get)
		submission.PATCH("/:id/status", submissions.UpdateStatus)
		submission.DELETE("/:id", submissions.Delete)
	}

	// Reviewer applications
	reviewer := router.Group("/reviewer")
	{
		reviewer.POST("", reviewers.Create)
		reviewer.GET("", reviewers.List)
		reviewer.GET("/:id", reviewers.Get)
	}
}
