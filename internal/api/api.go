// Package api exposes the HTTP boundary: tick ingest, pair analytics
// queries and store introspection, all JSON over gin.
package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	pairDomain "github.com/sandesh-malleboina/helper-analytics-for-traders/internal/domain/pair"
	tickDomain "github.com/sandesh-malleboina/helper-analytics-for-traders/internal/domain/tick"
	"github.com/sandesh-malleboina/helper-analytics-for-traders/pkg/logger"
	"github.com/sandesh-malleboina/helper-analytics-for-traders/pkg/questdb"
)

const (
	defaultTimeout     = 30 * time.Second
	requestIDHeaderKey = "X-Request-ID"
)

// Handler wires the HTTP surface to the usecases behind it.
type Handler struct {
	tickUsecase tickDomain.Usecase
	pairUsecase pairDomain.Usecase
	db          questdb.QuestDBClient
	validator   *Validator
	logger      logger.Interface
}

// NewHandler creates a new API handler.
func NewHandler(
	tickUsecase tickDomain.Usecase,
	pairUsecase pairDomain.Usecase,
	db questdb.QuestDBClient,
	logger logger.Interface,
) *Handler {
	return &Handler{
		tickUsecase: tickUsecase,
		pairUsecase: pairUsecase,
		db:          db,
		validator:   NewValidator(),
		logger:      logger,
	}
}

// StartServer starts the HTTP server on the given port.
func (h *Handler) StartServer(port int) error {
	return h.SetupRoutes().Run(":" + strconv.Itoa(port))
}

// SetupRoutes configures the router with middleware and all API routes.
func (h *Handler) SetupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(requestIDMiddleware())
	router.Use(requestLoggerMiddleware(h.logger))
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	v1 := router.Group("/api/v1")
	{
		v1.POST("/ingest", h.Ingest)
		v1.GET("/analytics/pair", h.AnalyzePair)
		v1.GET("/analytics/pair/export", h.ExportPair)
		v1.GET("/symbols", h.Symbols)
		v1.GET("/ticks/count", h.TickCount)
		v1.GET("/ticks/latest", h.LatestTick)
	}
	router.GET("/health", h.Health)

	return router
}
