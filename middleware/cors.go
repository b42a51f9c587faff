package middleware

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// defaultOrigins covers local frontend development.
var defaultOrigins = []string{
	"http://localhost:5173",
	"http://localhost:3000",
}

// CORSMiddleware builds the CORS policy from FRONTEND_ORIGINS
// (comma-separated) on top of the local development defaults.
func CORSMiddleware() gin.HandlerFunc {
	origins := append([]string{}, defaultOrigins...)
	for _, origin := range strings.Split(os.Getenv("FRONTEND_ORIGINS"), ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
