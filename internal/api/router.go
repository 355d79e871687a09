package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/demanddesk/api/docs"
	"github.com/demanddesk/api/internal/api/handler"
	"github.com/demanddesk/api/internal/api/middleware"
	"github.com/demanddesk/api/internal/core/domain"
	"github.com/demanddesk/api/internal/core/service"
	mongodb "github.com/demanddesk/api/internal/infrastructure/db/mongo"
	redisdb "github.com/demanddesk/api/internal/infrastructure/db/redis"
)

// NewRouter builds the Echo instance with all routes registered. rdb and
// events may be nil: without Redis the admin statistics are recomputed per
// call, and without a dispatcher lifecycle events are dropped.
func NewRouter(db *mongo.Database, rdb *redis.Client, events service.EventSink, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("demanddesk"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	demandRepo := mongodb.NewDemandRepository(db)

	var statsCache service.StatsCache
	if rdb != nil {
		statsCache = redisdb.NewStatsCache(rdb, log)
	}

	authService := service.NewAuthService(userRepo, jwtSecret, 24*time.Hour, statsCache)
	demandService := service.NewDemandService(demandRepo, userRepo, events, statsCache, log)
	statsService := service.NewStatsService(demandRepo, userRepo, statsCache, log)

	authHandler := handler.NewAuthHandler(authService)
	demandHandler := handler.NewDemandHandler(demandService)
	adminHandler := handler.NewAdminHandler(demandService, userRepo)
	statsHandler := handler.NewStatsHandler(statsService)

	authenticated := middleware.Auth(jwtSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Public routes ---
	g := e.Group("/api")
	g.POST("/register", authHandler.Register)
	g.POST("/login", authHandler.Login)

	// --- User routes ---
	g.GET("/profile", authHandler.Profile, authenticated)
	g.POST("/demands", demandHandler.Create, authenticated)
	g.GET("/demands", demandHandler.List, authenticated)
	g.GET("/demands/:id", demandHandler.Get, authenticated)
	g.PUT("/demands/:id", demandHandler.Update, authenticated)
	g.DELETE("/demands/:id", demandHandler.Delete, authenticated)
	g.GET("/statistics", statsHandler.ForUser, authenticated)

	// --- Admin routes ---
	admin := g.Group("/admin", authenticated, adminOnly)
	admin.GET("/demands", adminHandler.ListDemands)
	admin.GET("/demands/:id", adminHandler.GetDemand)
	admin.PATCH("/demands/:id/status", adminHandler.UpdateStatus)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/statistics", statsHandler.ForAdmin)

	// --- Operational routes ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
