package admin

import (
	"context"
	"crypto/subtle"
	"net/http"
	"time"

	"mindnest-svc/src/internal/cache"
	"mindnest-svc/src/internal/config"
	"mindnest-svc/src/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Handler interface {
	Login(c *gin.Context)
	GetUserSummaries(c *gin.Context)
}

type handler struct {
	config       *config.Configuration
	service      Service
	cacheService cache.Service
}

func NewHandler(cfg *config.Configuration, service Service, cacheService cache.Service) Handler {
	return &handler{
		config:       cfg,
		service:      service,
		cacheService: cacheService,
	}
}

// Login checks the configured admin credentials and issues an admin token.
func (h *handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"success": false,
			"message": err.Error(),
		})
		return
	}

	usernameOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.config.Security.AdminUsername)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.config.Security.AdminPassword)) == 1
	if !usernameOK || !passwordOK {
		logrus.WithField("username", req.Username).Warn("Failed admin login attempt")
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Invalid admin credentials",
			"success": false,
			"message": "Invalid admin credentials",
		})
		return
	}

	token, err := middleware.GenerateAccessToken("admin", "", "", middleware.RoleAdmin,
		h.config.Security.JwtKey, time.Duration(h.config.Security.TokenExpirationMinutes)*time.Minute)
	if err != nil {
		logrus.WithError(err).Error("Failed to sign admin token")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Login failed",
			"success": false,
			"message": "Could not issue token",
		})
		return
	}

	logrus.Info("Admin logged in")

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"token": token},
		"message": "Admin login successful",
	})
}

// GetUserSummaries serves the admin panel rows, Redis cache first.
func (h *handler) GetUserSummaries(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
	defer cancel()

	cached, err := h.cacheService.GetUserSummaries(ctx)
	if err == nil && cached != nil {
		logrus.Debug("User summaries retrieved from cache")
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    cached,
			"message": "Users retrieved successfully (from cache)",
		})
		return
	}

	summaries, err := h.service.UserSummaries(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to get user summaries")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve users",
			"success": false,
			"message": err.Error(),
		})
		return
	}

	h.cacheService.SaveUserSummaries(ctx, summaries)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    summaries,
		"message": "Users retrieved successfully",
	})
}
