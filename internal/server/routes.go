package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// RegisterRoutes registers the API endpoints on the given router group.
//
// Endpoints:
//
//	GET  /health    - Health check
//	POST /problems  - Generate a batch of problems
//	POST /answers   - Check an answer against an exact result
func RegisterRoutes(rg *gin.RouterGroup, handlers *Handlers) {
	rg.GET("/health", handlers.HandleHealth)
	rg.POST("/problems", handlers.HandleProblems)
	rg.POST("/answers", handlers.HandleAnswers)
}

// RegisterMetrics exposes the Prometheus default registry at /metrics.
func RegisterMetrics(r gin.IRouter) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RateLimit rejects requests with 429 once the token bucket is empty.
// A nil limiter disables limiting.
func RateLimit(limiter *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter != nil && !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
				Error: "rate limit exceeded",
				Code:  codeRateLimited,
			})
			return
		}
		c.Next()
	}
}
