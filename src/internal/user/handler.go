package user

import (
	"context"
	"errors"
	"net/http"
	"time"

	"mindnest-svc/src/clients"
	"mindnest-svc/src/internal/cache"
	"mindnest-svc/src/internal/config"
	"mindnest-svc/src/internal/middleware"
	"mindnest-svc/src/internal/models"
	"mindnest-svc/src/internal/session"
	"mindnest-svc/src/internal/timetrack"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	Logout(c *gin.Context)
	Me(c *gin.Context)
}

type handler struct {
	config       *config.Configuration
	service      Service
	sessionRepo  session.Repository
	cacheService cache.Service
	accumulator  *timetrack.Accumulator
	publisher    *clients.ActivityPublisher
}

func NewHandler(cfg *config.Configuration, service Service, sessionRepo session.Repository,
	cacheService cache.Service, accumulator *timetrack.Accumulator, publisher *clients.ActivityPublisher) Handler {
	return &handler{
		config:       cfg,
		service:      service,
		sessionRepo:  sessionRepo,
		cacheService: cacheService,
		accumulator:  accumulator,
		publisher:    publisher,
	}
}

func (h *handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
}

func (h *handler) Register(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.sendErrorResponse(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	created, err := h.service.Register(ctx, &req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrMissingFields):
			h.sendErrorResponse(c, http.StatusBadRequest, "Missing required fields", "Please fill in all required fields")
		case errors.Is(err, models.ErrPasswordMismatch):
			h.sendErrorResponse(c, http.StatusBadRequest, "Passwords do not match", "Please re-enter your password")
		case errors.Is(err, models.ErrEmailTaken):
			h.sendErrorResponse(c, http.StatusConflict, "Email already registered", "That email is already registered. Please log in.")
		default:
			logrus.WithError(err).Error("Failed to register user")
			h.sendErrorResponse(c, http.StatusInternalServerError, "Registration failed", err.Error())
		}
		return
	}

	if h.publisher != nil {
		h.publisher.PublishActivity(created.ID.Hex(), "", models.ServiceAuth, models.ActionRegistered)
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    created.ToProfile(),
		"message": "Account created! You can now log in.",
	})
}

func (h *handler) Login(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.sendErrorResponse(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	authenticated, err := h.service.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			h.sendErrorResponse(c, http.StatusUnauthorized, "Invalid email or password", "Please check your credentials")
			return
		}
		logrus.WithError(err).Error("Login failed")
		h.sendErrorResponse(c, http.StatusInternalServerError, "Login failed", err.Error())
		return
	}

	userID := authenticated.ID.Hex()
	lifetime := time.Duration(h.config.Session.ExpirationMinutes) * time.Minute

	sess, err := h.sessionRepo.Create(ctx, userID, lifetime)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to create session")
		h.sendErrorResponse(c, http.StatusInternalServerError, "Login failed", "Could not create session")
		return
	}

	token, err := middleware.GenerateAccessToken(userID, sess.SessionID, authenticated.Email,
		middleware.RoleUser, h.config.Security.JwtKey,
		time.Duration(h.config.Security.TokenExpirationMinutes)*time.Minute)
	if err != nil {
		logrus.WithError(err).Error("Failed to sign access token")
		h.sendErrorResponse(c, http.StatusInternalServerError, "Login failed", "Could not issue token")
		return
	}

	h.cacheService.CacheActiveSession(ctx, sess)

	// The first tracked request of this session measures from the login instant.
	h.accumulator.Baseline(ctx, userID, sess.SessionID)

	if h.publisher != nil {
		h.publisher.PublishActivity(userID, sess.SessionID, models.ServiceAuth, models.ActionLoggedIn)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":    userID,
		"session_id": sess.SessionID,
	}).Info("User logged in")

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"token":   token,
			"profile": authenticated.ToProfile(),
		},
		"message": "Welcome back",
	})
}

func (h *handler) Logout(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	userID := c.GetString("user_id")
	sessionID := c.GetString("session_id")

	if err := h.sessionRepo.Close(ctx, sessionID); err != nil {
		logrus.WithError(err).WithField("session_id", sessionID).Error("Failed to close session")
		h.sendErrorResponse(c, http.StatusInternalServerError, "Logout failed", err.Error())
		return
	}

	// Drop the session-scoped time checkpoint; the next login baselines fresh.
	h.cacheService.ClearCheckpoint(ctx, userID, sessionID)
	h.cacheService.DeleteActiveSession(ctx, userID, sessionID)

	if h.publisher != nil {
		h.publisher.PublishActivity(userID, sessionID, models.ServiceAuth, models.ActionLoggedOut)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":    userID,
		"session_id": sessionID,
	}).Info("User logged out")

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "You have been logged out",
	})
}

func (h *handler) Me(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	userID := c.GetString("user_id")
	sessionID := c.GetString("session_id")

	h.accumulator.Tick(ctx, userID, sessionID)

	profile, err := h.service.Profile(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			h.sendErrorResponse(c, http.StatusNotFound, "User not found", "No user found with the provided ID")
			return
		}
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to load profile")
		h.sendErrorResponse(c, http.StatusInternalServerError, "Failed to load profile", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    profile,
		"message": "Profile retrieved successfully",
	})
}

func (h *handler) sendErrorResponse(c *gin.Context, statusCode int, error, message string) {
	c.JSON(statusCode, gin.H{
		"error":   error,
		"success": false,
		"message": message,
	})
}
