package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/killallgit/clipset/api/dataset"
	"github.com/killallgit/clipset/api/engagement"
	"github.com/killallgit/clipset/api/health"
	"github.com/killallgit/clipset/api/records"
	"github.com/killallgit/clipset/api/types"
	"github.com/killallgit/clipset/api/version"
	_ "github.com/killallgit/clipset/docs/swagger"
)

// RegisterRoutes registers all API routes. rateLimit may be nil.
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimit gin.HandlerFunc) error {
	if deps == nil {
		return fmt.Errorf("dependencies are nil")
	}

	// Register public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	if deps.Registry != nil {
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	}

	// Register Swagger documentation route
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Setup 404 handler
	engine.NoRoute(NotFoundHandler())

	// Core dataset operations
	apiGroup := engine.Group("/api")
	if rateLimit != nil {
		apiGroup.Use(rateLimit)
	}

	records.RegisterRoutes(apiGroup, deps)
	dataset.RegisterRoutes(apiGroup, deps)
	engagement.RegisterRoutes(apiGroup, deps)

	return nil
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
