package server

import (
	"time"

	"mindnest-svc/src/clients"
	"mindnest-svc/src/internal/dependency"
	"mindnest-svc/src/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func SetupRoutes(deps *dependency.Manager) {
	router := deps.Router
	router.Use(enableCORS)

	// Uploaded journal images are served straight from the upload directory.
	router.Static("/static/uploads", deps.Config.Uploads.Dir)

	setupHealthEndpoint(deps)
	setupPublicRoutes(router, deps)
	setupUserRoutes(router, deps)
	setupAdminRoutes(router, deps)
}

func setupHealthEndpoint(deps *dependency.Manager) {
	router := deps.Router
	mongodb := deps.Mongodb
	redisClient := deps.Redis
	cfg := deps.Config

	router.GET("/health", func(c *gin.Context) {
		log.Info("Health check endpoint requested")

		mongoStatus := "ok"
		if err := mongodb.Client.Ping(c.Request.Context(), nil); err != nil {
			mongoStatus = "error: " + err.Error()
		}

		redisStatus := "ok"
		if err := redisClient.Client.Ping(c.Request.Context()).Err(); err != nil {
			redisStatus = "error: " + err.Error()
		}

		c.JSON(200, gin.H{
			"status":    "ok",
			"service":   cfg.App.Name,
			"version":   cfg.App.Version,
			"mongodb":   mongoStatus,
			"redis":     redisStatus,
			"timestamp": time.Now().UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	})

	router.GET("/health/detailed", func(c *gin.Context) {
		log.Info("Detailed health check endpoint requested")

		c.JSON(200, gin.H{
			"status":  "operational",
			"service": cfg.App.Name,
			"version": cfg.App.Version,
			"components": gin.H{
				"database": gin.H{
					"mongodb": getStatus(isMongoConnected(mongodb, c)),
					"redis":   getStatus(isRedisConnected(redisClient.Client, c)),
				},
				"services": gin.H{
					"auth":      "operational",
					"session":   "operational",
					"timetrack": "operational",
				},
			},
		})
	})
}

func setupPublicRoutes(router *gin.Engine, deps *dependency.Manager) {
	// API status endpoint
	router.GET("/api/v1/status", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"api_version": "v1",
			"status":      "operational",
			"service":     "mindnest-svc",
		})
	})

	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/register", setRouteName("register"), deps.UserHandler.Register)
		auth.POST("/login", setRouteName("login"), deps.UserHandler.Login)
	}

	router.POST("/api/v1/admin/login", setRouteName("adminLogin"), deps.AdminHandler.Login)
}

func setupUserRoutes(router *gin.Engine, deps *dependency.Manager) {
	authMiddleware := middleware.NewAuthMiddleware(
		deps.Config.Security.JwtKey,
		deps.CacheService,
		deps.SessionRepo,
	)

	api := router.Group("/api/v1", authMiddleware.RequireAuth())
	{
		api.POST("/auth/logout", setRouteName("logout"), deps.UserHandler.Logout)
		api.GET("/me", setRouteName("profile"), deps.UserHandler.Me)

		api.GET("/dashboard", setRouteName("dashboard"), deps.DashboardHandler.Overview)

		api.GET("/journal", setRouteName("listJournal"), deps.JournalHandler.ListEntries)
		api.POST("/journal", setRouteName("createJournal"), deps.JournalHandler.CreateEntry)
		api.DELETE("/journal/:id", setRouteName("deleteJournal"), deps.JournalHandler.DeleteEntry)

		api.GET("/mood", setRouteName("listMood"), deps.MoodHandler.ListLogs)
		api.POST("/mood", setRouteName("createMood"), deps.MoodHandler.CreateLog)

		api.GET("/resources", setRouteName("resources"), deps.ContentHandler.GetResources)
		api.GET("/sounds", setRouteName("sounds"), deps.ContentHandler.GetSounds)
	}
}

func setupAdminRoutes(router *gin.Engine, deps *dependency.Manager) {
	authMiddleware := middleware.NewAuthMiddleware(
		deps.Config.Security.JwtKey,
		deps.CacheService,
		deps.SessionRepo,
	)

	admin := router.Group("/api/v1/admin", authMiddleware.RequireAdmin())
	{
		admin.GET("/users", setRouteName("adminUserList"), deps.AdminHandler.GetUserSummaries)
	}
}

func setRouteName(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("route_name", name)
		c.Next()
	}
}

func isMongoConnected(mongodb *clients.MongoDB, c *gin.Context) bool {
	if err := mongodb.Client.Ping(c.Request.Context(), nil); err != nil {
		return false
	}
	return true
}

func isRedisConnected(redisClient *redis.Client, c *gin.Context) bool {
	if err := redisClient.Ping(c.Request.Context()).Err(); err != nil {
		return false
	}
	return true
}

func enableCORS(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if c.Request.Method == "OPTIONS" {
		c.AbortWithStatus(204)
		return
	}

	c.Next()
}

func getStatus(b bool) string {
	if b {
		return "connected"
	}
	return "disconnected"
}
