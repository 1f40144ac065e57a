package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	tickInfra "github.com/sandesh-malleboina/helper-analytics-for-traders/internal/infrastructure/questdb/tick"
	"github.com/sandesh-malleboina/helper-analytics-for-traders/internal/metrics"
	"github.com/sandesh-malleboina/helper-analytics-for-traders/pkg/errors"
	"github.com/sandesh-malleboina/helper-analytics-for-traders/pkg/logger"
	"github.com/sandesh-malleboina/helper-analytics-for-traders/pkg/util"
)

type ingestRequest struct {
	Symbol string    `json:"symbol" binding:"required"`
	Price  float64   `json:"price"`
	Size   float64   `json:"size"`
	Ts     time.Time `json:"ts"`
}

// Ingest handles POST /api/v1/ingest.
func (h *Handler) Ingest(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultTimeout)
	defer cancel()

	var req ingestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, errors.NewDomainf(errors.CodeInvalidTick, "invalid ingest payload: %v", err))
		return
	}

	err := h.tickUsecase.Append(ctx, &tickInfra.Tick{
		Timestamp: req.Ts,
		Symbol:    req.Symbol,
		Price:     req.Price,
		Size:      req.Size,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	metrics.TicksIngested.WithLabelValues(req.Symbol).Inc()
	c.JSON(http.StatusCreated, gin.H{"status": "stored"})
}

// AnalyzePair handles GET /api/v1/analytics/pair.
func (h *Handler) AnalyzePair(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultTimeout)
	defer cancel()

	req, err := h.validator.ValidatePairRequest(
		c.Query("symbol_a"),
		c.Query("symbol_b"),
		c.Query("bucket_width"),
		c.Query("rolling_window"),
	)
	if err != nil {
		metrics.PairQueries.WithLabelValues("invalid").Inc()
		h.respondValidationError(c, err)
		return
	}

	out, err := h.pairUsecase.Analyze(ctx, req)
	if err != nil {
		metrics.PairQueries.WithLabelValues(queryOutcome(err)).Inc()
		h.respondError(c, err)
		return
	}

	metrics.PairQueries.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, out)
}

// ExportPair handles GET /api/v1/analytics/pair/export, streaming the
// aligned pair frame as a CSV attachment.
func (h *Handler) ExportPair(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultTimeout)
	defer cancel()

	req, err := h.validator.ValidatePairRequest(
		c.Query("symbol_a"),
		c.Query("symbol_b"),
		c.Query("bucket_width"),
		c.Query("rolling_window"),
	)
	if err != nil {
		h.respondValidationError(c, err)
		return
	}

	filename := fmt.Sprintf("pair_%s_%s.csv", req.SymbolA, req.SymbolB)
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := h.pairUsecase.ExportCSV(ctx, req, c.Writer); err != nil {
		// headers may already be out; the status is best effort
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Symbols handles GET /api/v1/symbols.
func (h *Handler) Symbols(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultTimeout)
	defer cancel()

	symbols, err := h.tickUsecase.Symbols(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"symbols": symbols})
}

// TickCount handles GET /api/v1/ticks/count.
func (h *Handler) TickCount(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultTimeout)
	defer cancel()

	count, err := h.tickUsecase.Count(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// LatestTick handles GET /api/v1/ticks/latest.
func (h *Handler) LatestTick(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultTimeout)
	defer cancel()

	symbol, err := h.validator.ValidateSymbol(c.Query("symbol"))
	if err != nil {
		h.respondValidationError(c, err)
		return
	}

	t, err := h.tickUsecase.Latest(ctx, symbol)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if t == nil {
		h.respondError(c, errors.NewDomainf(errors.CodeNoData, "no ticks stored for %s", symbol))
		return
	}
	c.JSON(http.StatusOK, t)
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": "store unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// respondError maps domain error codes onto HTTP statuses. Anything without
// a known code is a 500 and gets logged with its stack.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch errors.CodeOf(err) {
	case errors.CodeInvalidTick, errors.CodeInvalidInterval:
		status = http.StatusBadRequest
	case errors.CodeUnknownSymbol, errors.CodeNoData:
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(c.Request.Context(), err,
			logger.NewField("method", c.Request.Method),
			logger.NewField("path", c.Request.URL.Path),
		)
	}

	c.JSON(status, gin.H{
		"error":      err.Error(),
		"request_id": util.GetRequestID(c.Request.Context()),
	})
}

func (h *Handler) respondValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":      err.Error(),
		"request_id": util.GetRequestID(c.Request.Context()),
	})
}

func queryOutcome(err error) string {
	switch errors.CodeOf(err) {
	case errors.CodeInvalidInterval:
		return "invalid"
	case errors.CodeUnknownSymbol, errors.CodeNoData:
		return "not_found"
	default:
		return "error"
	}
}
