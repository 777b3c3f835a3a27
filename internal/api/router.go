package api

import (
	"context"
	"net/http"
	"time"

	"github.com/content-platform-api/internal/config"
	"github.com/content-platform-api/internal/metrics"
	"github.com/content-platform-api/internal/models"
	"github.com/content-platform-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// Dependency is a backing system reported by /health
type Dependency struct {
	Name string
	Ping func(ctx context.Context) error
}

// Options carries the optional collaborators of the router
type Options struct {
	// Dependencies are pinged by /health
	Dependencies []Dependency
	// Metrics records per-route request counts and latency
	Metrics metrics.Recorder
	// Gatherer is served on /metrics; the route is absent when nil
	Gatherer prometheus.Gatherer
}

const healthTimeout = 2 * time.Second

// NewRouter creates and configures the Gin router. Resource routes are
// registered for every non-nil service.
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger, opts Options) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	if opts.Metrics == nil {
		opts.Metrics = metrics.Nop{}
	}

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(metricsMiddleware(opts.Metrics))
	router.Use(corsMiddleware())

	// Operational endpoints
	router.GET("/health", healthCheck(cfg.Service, opts.Dependencies))
	router.GET("/stats", statsHandler(services))
	if opts.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(metrics.Handler(opts.Gatherer)))
	}

	if services.Article != nil {
		articleHandler := NewArticleHandler(services.Article, log)
		articles := router.Group("/article")
		{
			articles.POST("", articleHandler.Save)
			articles.GET("", articleHandler.FindAll)
			articles.GET("/:id", articleHandler.FindByID)
			articles.PUT("/:id", articleHandler.Update)
			articles.DELETE("/:id", articleHandler.Delete)
			articles.POST("/search", articleHandler.Search)
			articles.POST("/search/:page/:size", articleHandler.SearchPage)
			articles.PUT("/examine/:id", articleHandler.Examine)
			articles.PUT("/thumbup/:id", articleHandler.Thumbup)
			articles.DELETE("/thumbup/:id", articleHandler.CancelThumbup)
		}
	}

	if services.Problem != nil {
		problemHandler := NewProblemHandler(services.Problem, log)
		problems := router.Group("/problem")
		{
			problems.POST("", problemHandler.Save)
			problems.GET("", problemHandler.FindAll)
			problems.GET("/:id", problemHandler.FindByID)
			problems.PUT("/:id", problemHandler.Update)
			problems.DELETE("/:id", problemHandler.Delete)
			problems.POST("/search", problemHandler.Search)
			problems.POST("/search/:page/:size", problemHandler.SearchPage)
			problems.GET("/newlist/:labelid/:page/:size", problemHandler.NewList)
			problems.GET("/hotlist/:labelid/:page/:size", problemHandler.HotList)
			problems.GET("/waitlist/:labelid/:page/:size", problemHandler.WaitList)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.Result{
			Success: false,
			Code:    models.StatusNotFound,
			Message: "route not found",
		})
	})

	return router
}

// healthCheck pings every dependency and reports 503 when one is down
func healthCheck(name string, deps []Dependency) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		status := http.StatusOK
		checks := gin.H{}
		for _, dep := range deps {
			if err := dep.Ping(ctx); err != nil {
				checks[dep.Name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			checks[dep.Name] = "ok"
		}

		state := "healthy"
		if status != http.StatusOK {
			state = "unhealthy"
		}
		c.JSON(status, gin.H{
			"status":    state,
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   name,
			"checks":    checks,
		})
	}
}

// statsHandler returns stored record counts
func statsHandler(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		counts := gin.H{}
		if services.Article != nil {
			counts["articles"], _ = services.Article.Count(ctx)
		}
		if services.Problem != nil {
			counts["problems"], _ = services.Problem.Count(ctx)
		}

		c.JSON(http.StatusOK, gin.H{
			"database":  counts,
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Str("path", c.Request.URL.Path).Msg("Panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, models.Result{
					Success: false,
					Code:    models.StatusError,
					Message: "internal server error",
				})
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// metricsMiddleware records requests by route template, so IDs do not
// explode label cardinality
func metricsMiddleware(rec metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		rec.RecordRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
