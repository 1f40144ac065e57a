package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sandesh-malleboina/helper-analytics-for-traders/pkg/logger"
	"github.com/sandesh-malleboina/helper-analytics-for-traders/pkg/util"
)

// requestIDMiddleware honors an inbound X-Request-ID or mints one, echoes it
// on the response and plants it in the request context so log lines carry it.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := util.WithRequestID(c.Request.Context(), c.GetHeader(requestIDHeaderKey))
		c.Request = c.Request.WithContext(ctx)
		c.Header(requestIDHeaderKey, util.GetRequestID(ctx))
		c.Next()
	}
}

func requestLoggerMiddleware(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.InfoContext(c.Request.Context(), "http request",
			logger.NewField("method", c.Request.Method),
			logger.NewField("path", c.Request.URL.Path),
			logger.NewField("status", c.Writer.Status()),
			logger.NewField("latency_ms", time.Since(start).Milliseconds()),
		)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
