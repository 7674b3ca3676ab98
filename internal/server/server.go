package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pageza/mealmerge/backend/config"
	"github.com/pageza/mealmerge/backend/internal/api"
	"github.com/pageza/mealmerge/backend/internal/database"
	"github.com/pageza/mealmerge/backend/internal/metrics"
	"github.com/pageza/mealmerge/backend/internal/middleware"
	"github.com/pageza/mealmerge/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	logger *zap.Logger
}

// New wires the services and handlers into a server instance. db and
// redisClient may be nil; the corresponding features are then disabled.
func New(cfg *config.Config, db *database.DB, redisClient *redis.Client, logger *zap.Logger) *Server {
	router := gin.Default()
	router.Use(middleware.CORS())
	router.Use(metrics.GinMiddleware())

	mealdb := service.NewMealDBService(cfg, redisClient, logger)

	var store *service.MealStoreService
	var aggregator *service.Aggregator
	if db != nil {
		store = service.NewMealStoreService(db.DB, logger)
		aggregator = service.NewAggregator(mealdb, store, logger)
	} else {
		aggregator = service.NewAggregator(mealdb, nil, logger)
	}

	api.NewHealthHandler(db).RegisterRoutes(router)
	api.NewMealHandler(aggregator, store, logger).RegisterRoutes(router)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	return &Server{
		router: router,
		http: &http.Server{
			Addr:    ":" + cfg.Port,
			Handler: router,
		},
		logger: logger,
	}
}

// Start starts the server and blocks until it stops.
func (s *Server) Start() error {
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
