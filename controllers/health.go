package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// storagePinger is the slice of the object store the health check needs.
type storagePinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	db    *gorm.DB
	store storagePinger
}

func NewHealthController(db *gorm.DB, store storagePinger) *HealthController {
	return &HealthController{db: db, store: store}
}

// Check handles GET /health. A failing dependency reports degraded rather
// than an error status; the process keeps serving.
func (ctl *HealthController) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	dbOk := false
	if sqlDB, err := ctl.db.DB(); err == nil {
		dbOk = sqlDB.PingContext(ctx) == nil
	}

	storageOk := ctl.store.Ping(ctx) == nil

	status := "ok"
	if !dbOk || !storageOk {
		status = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"status": status,
		"checks": gin.H{
			"database": checkLabel(dbOk),
			"storage":  checkLabel(storageOk),
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func checkLabel(ok bool) string {
	if ok {
		return "ok"
	}
	return "fail"
}
