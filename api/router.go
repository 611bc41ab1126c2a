// Package api exposes a small read-only status server so a long
// battery run can be watched without touching the terminal it runs in.
package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/thcipriani/getting-to-philosophy-battery-test/api/handler"
	"github.com/thcipriani/getting-to-philosophy-battery-test/traversal"
)

// NewRouter creates a configured Gin engine with the status routes.
// Everything here observes the walk; nothing feeds back into it.
func NewRouter(tracker *traversal.Tracker, startTime time.Time, mode string) *gin.Engine {
	gin.SetMode(mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")
	v1.GET("/health", handler.Health(startTime))
	v1.GET("/status", handler.Status(tracker))

	return r
}
