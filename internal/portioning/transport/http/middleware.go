package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/caterstack/portioning/pkg/logger"
)

const requestIDHeader = "X-Request-ID"

var (
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "portioning_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds, by route and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portioning_http_requests_total",
		Help: "Total HTTP requests served, by route and status.",
	}, []string{"method", "path", "status"})
)

// RequestID assigns (or propagates) a request id and makes it
// available both on the response header and the gin context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// AccessLog logs one structured line per request with its outcome.
func AccessLog(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		log.WithFields(map[string]interface{}{
			"method":     c.Request.Method,
			"path":       path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).String(),
			"request_id": c.GetString("request_id"),
		}).Info("request completed")
	}
}

// Metrics records request count and latency in Prometheus.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		requestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}

// Recovery turns a panic inside a handler into a 500 response instead
// of crashing the process.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.WithFields(map[string]interface{}{
					"panic":      r,
					"path":       c.Request.URL.Path,
					"request_id": c.GetString("request_id"),
				}).Error("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
		}()
		c.Next()
	}
}

// CORS wraps rs/cors as a gin middleware, matching the permissive
// defaults the rest of the stack uses for internal service-to-service
// traffic.
func CORS() gin.HandlerFunc {
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	handler := c.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	return func(c *gin.Context) {
		handler.ServeHTTP(c.Writer, c.Request)
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// RateLimit throttles requests to requestsPerSecond with a burst of
// burst, shared across all callers. A calculation endpoint is cheap
// but not free, so this protects against a client hammering it in a
// retry loop.
func RateLimit(requestsPerSecond float64, burst int) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
