package dashboard

import (
	"context"
	"net/http"
	"time"

	"mindnest-svc/src/internal/config"
	"mindnest-svc/src/internal/timetrack"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler interface {
	Overview(c *gin.Context)
}

type handler struct {
	config      *config.Configuration
	service     Service
	accumulator *timetrack.Accumulator
}

func NewHandler(cfg *config.Configuration, service Service, accumulator *timetrack.Accumulator) Handler {
	return &handler{
		config:      cfg,
		service:     service,
		accumulator: accumulator,
	}
}

// Overview is a tracked request: it reconciles session time before
// assembling the dashboard, so the minute total it reports is current.
func (h *handler) Overview(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
	defer cancel()

	userID := c.GetString("user_id")
	sessionID := c.GetString("session_id")

	h.accumulator.Tick(ctx, userID, sessionID)

	overview, err := h.service.Overview(ctx, userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to assemble dashboard")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve dashboard",
			"success": false,
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    overview,
		"message": "Dashboard retrieved successfully",
	})
}
