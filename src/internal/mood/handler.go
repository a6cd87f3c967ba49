package mood

import (
	"context"
	"net/http"
	"time"

	"mindnest-svc/src/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// moodHistoryChartLimit matches the mood page chart: the last 14 check-ins.
const moodHistoryChartLimit = 14

type Handler interface {
	CreateLog(c *gin.Context)
	ListLogs(c *gin.Context)
}

type handler struct {
	config  *config.Configuration
	service Service
}

func NewHandler(cfg *config.Configuration, service Service) Handler {
	return &handler{
		config:  cfg,
		service: service,
	}
}

func (h *handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
}

func (h *handler) CreateLog(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	userID := c.GetString("user_id")

	var req CreateLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.sendErrorResponse(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	log, err := h.service.CreateLog(ctx, userID, &req)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to create mood log")
		h.sendErrorResponse(c, http.StatusInternalServerError, "Failed to save check-in", err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    log,
		"message": "Mood check-in saved",
	})
}

// ListLogs returns the full mood history plus the chart series of the last
// check-ins.
func (h *handler) ListLogs(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	userID := c.GetString("user_id")

	logs, err := h.service.ListLogs(ctx, userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to list mood logs")
		h.sendErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve check-ins", err.Error())
		return
	}

	if logs == nil {
		logs = []*Log{}
	}

	recent := logs
	if len(recent) > moodHistoryChartLimit {
		recent = recent[:moodHistoryChartLimit]
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"logs":  logs,
			"chart": BuildSeries(recent),
		},
		"message": "Check-ins retrieved successfully",
	})
}

func (h *handler) sendErrorResponse(c *gin.Context, statusCode int, error, message string) {
	c.JSON(statusCode, gin.H{
		"error":   error,
		"success": false,
		"message": message,
	})
}
