package dependency

import (
	"mindnest-svc/src/clients"
	"mindnest-svc/src/internal/admin"
	"mindnest-svc/src/internal/cache"
	"mindnest-svc/src/internal/clock"
	"mindnest-svc/src/internal/config"
	"mindnest-svc/src/internal/content"
	"mindnest-svc/src/internal/dashboard"
	"mindnest-svc/src/internal/journal"
	"mindnest-svc/src/internal/mood"
	"mindnest-svc/src/internal/session"
	"mindnest-svc/src/internal/timetrack"
	"mindnest-svc/src/internal/user"

	"github.com/gin-gonic/gin"
)

type Manager struct {
	Router       *gin.Engine
	Config       *config.Configuration
	Mongodb      *clients.MongoDB
	Redis        *clients.RedisClient
	RabbitMQ     *clients.RabbitMQ
	CacheService cache.Service
	SessionRepo  session.Repository
	Accumulator  *timetrack.Accumulator
	Publisher    *clients.ActivityPublisher

	UserHandler      user.Handler
	JournalHandler   journal.Handler
	MoodHandler      mood.Handler
	DashboardHandler dashboard.Handler
	ContentHandler   content.Handler
	AdminHandler     admin.Handler
}

func NewDependencyManager(router *gin.Engine,
	mongodb *clients.MongoDB,
	redisClient *clients.RedisClient,
	rabbitMQ *clients.RabbitMQ,
	cfg *config.Configuration) *Manager {
	clk := clock.RealClock{}

	cacheService := cache.NewCacheService(redisClient.Client, cfg)
	publisher := clients.NewActivityPublisher(cfg, rabbitMQ.Channel)

	userRepo := user.NewUserRepository(mongodb, cfg.Database.Collections.Users)
	sessionRepo := session.NewSessionRepository(mongodb, cfg.Database.Collections.Sessions, clk)
	journalRepo := journal.NewJournalRepository(mongodb, cfg.Database.Collections.Journal)
	moodRepo := mood.NewMoodRepository(mongodb, cfg.Database.Collections.Moods)

	accumulator := timetrack.NewAccumulator(cacheService, userRepo, clk, publisher)

	userService := user.NewUserService(userRepo)
	journalService := journal.NewJournalService(journalRepo, clk)
	moodService := mood.NewMoodService(moodRepo, clk)
	dashboardService := dashboard.NewDashboardService(userService, journalService, moodService, clk)
	adminService := admin.NewAdminService(userRepo, journalService, moodService)

	userHandler := user.NewHandler(cfg, userService, sessionRepo, cacheService, accumulator, publisher)
	journalHandler := journal.NewHandler(cfg, journalService, clk)
	moodHandler := mood.NewHandler(cfg, moodService)
	dashboardHandler := dashboard.NewHandler(cfg, dashboardService, accumulator)
	contentHandler := content.NewHandler()
	adminHandler := admin.NewHandler(cfg, adminService, cacheService)

	return &Manager{
		Router:       router,
		Config:       cfg,
		Mongodb:      mongodb,
		Redis:        redisClient,
		RabbitMQ:     rabbitMQ,
		CacheService: cacheService,
		SessionRepo:  sessionRepo,
		Accumulator:  accumulator,
		Publisher:    publisher,

		UserHandler:      userHandler,
		JournalHandler:   journalHandler,
		MoodHandler:      moodHandler,
		DashboardHandler: dashboardHandler,
		ContentHandler:   contentHandler,
		AdminHandler:     adminHandler,
	}
}
