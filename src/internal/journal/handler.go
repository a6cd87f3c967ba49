package journal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"mindnest-svc/src/internal/clock"
	"mindnest-svc/src/internal/config"
	"mindnest-svc/src/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler interface {
	CreateEntry(c *gin.Context)
	ListEntries(c *gin.Context)
	DeleteEntry(c *gin.Context)
}

type handler struct {
	config  *config.Configuration
	service Service
	clk     clock.Clock
}

func NewHandler(cfg *config.Configuration, service Service, clk clock.Clock) Handler {
	return &handler{
		config:  cfg,
		service: service,
		clk:     clk,
	}
}

func (h *handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
}

// CreateEntry accepts a multipart form: title, content, mood, tags and an
// optional image. A failed image save degrades to an entry without one.
func (h *handler) CreateEntry(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	userID := c.GetString("user_id")

	req := &CreateEntryRequest{
		Title:   c.PostForm("title"),
		Content: c.PostForm("content"),
		Mood:    c.PostForm("mood"),
		Tags:    c.PostForm("tags"),
	}

	if file, err := c.FormFile("image"); err == nil && file != nil && file.Filename != "" {
		safeName := fmt.Sprintf("%s_%d_%s", userID, h.clk.Now().Unix(), filepath.Base(file.Filename))
		dest := filepath.Join(h.config.Uploads.Dir, safeName)
		if err := c.SaveUploadedFile(file, dest); err != nil {
			logrus.WithError(err).WithField("user_id", userID).Warn("Could not save image, entry will be saved without it")
		} else {
			req.ImageFilename = safeName
		}
	}

	entry, err := h.service.CreateEntry(ctx, userID, req)
	if err != nil {
		if errors.Is(err, models.ErrContentRequired) {
			h.sendErrorResponse(c, http.StatusBadRequest, "Entry content is required", "Your entry needs some text")
			return
		}
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to create journal entry")
		h.sendErrorResponse(c, http.StatusInternalServerError, "Failed to save entry", err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    entry,
		"message": "Journal entry saved",
	})
}

func (h *handler) ListEntries(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	userID := c.GetString("user_id")

	entries, err := h.service.ListEntries(ctx, userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to list journal entries")
		h.sendErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve entries", err.Error())
		return
	}

	if entries == nil {
		entries = []*Entry{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entries,
		"message": "Entries retrieved successfully",
	})
}

func (h *handler) DeleteEntry(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	userID := c.GetString("user_id")
	entryID := c.Param("id")

	err := h.service.DeleteEntry(ctx, userID, entryID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrRecordNotFound):
			h.sendErrorResponse(c, http.StatusNotFound, "Entry not found", "No entry found with the provided ID")
		case errors.Is(err, models.ErrInvalidParams):
			h.sendErrorResponse(c, http.StatusBadRequest, "Invalid entry ID", "Please provide a valid entry ID")
		default:
			logrus.WithError(err).WithField("entry_id", entryID).Error("Failed to delete journal entry")
			h.sendErrorResponse(c, http.StatusInternalServerError, "Failed to delete entry", err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Entry deleted",
	})
}

func (h *handler) sendErrorResponse(c *gin.Context, statusCode int, error, message string) {
	c.JSON(statusCode, gin.H{
		"error":   error,
		"success": false,
		"message": message,
	})
}
