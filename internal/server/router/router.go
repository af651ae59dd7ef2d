package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shipdesk/backoffice/internal/server/handlers"
)

// RouteRegistrar mounts one collection under /api.
type RouteRegistrar interface {
	Path() string
	RegisterRoutes(rg *gin.RouterGroup, guard gin.HandlerFunc) *gin.RouterGroup
}

// Handlers bundles every HTTP handler served by the API.
type Handlers struct {
	Auth       *handlers.AuthHandler
	Stats      *handlers.StatsHandler
	Express    RouteRegistrar
	Exceptions RouteRegistrar
	Containers RouteRegistrar
	Inventory  RouteRegistrar
}

// Options tunes the engine.
type Options struct {
	AllowedOrigin string
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, opts Options, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))
	if opts.AllowedOrigin != "" {
		r.Use(corsMiddleware(opts.AllowedOrigin))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/logout", h.Auth.Logout)

	guard := h.Auth.RequireSession()

	express := h.Express.RegisterRoutes(api, guard)
	express.GET("/stats/week", h.Stats.WorkWeek)

	exceptions := h.Exceptions.RegisterRoutes(api, guard)
	exceptions.GET("/stats/summary", h.Stats.Summary)
	exceptions.GET("/stats/analysis", h.Stats.Analysis)
	exceptions.GET("/stats/snapshots", h.Stats.Snapshots)

	containers := h.Containers.RegisterRoutes(api, guard)
	containers.GET("/stats/summary", h.Stats.Containers)

	inventory := h.Inventory.RegisterRoutes(api, guard)
	inventory.GET("/stats/summary", h.Stats.Inventory)

	if logger != nil {
		logger.Info("router initialized",
			zap.Strings("resources", []string{h.Express.Path(), h.Exceptions.Path(), h.Containers.Path(), h.Inventory.Path()}))
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}

func corsMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.Writer.Header()
		header.Set("Access-Control-Allow-Origin", origin)
		header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		header.Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		header.Set("Access-Control-Expose-Headers", "Content-Disposition")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
