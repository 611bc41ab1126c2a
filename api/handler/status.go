package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thcipriani/getting-to-philosophy-battery-test/traversal"
)

// Status returns a handler for GET /api/v1/status: a snapshot of the
// walk in progress.
func Status(tracker *traversal.Tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, tracker.Snapshot())
	}
}
