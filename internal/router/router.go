package router

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/wizerservices/tripz-api/internal/config"
	"github.com/wizerservices/tripz-api/internal/handlers"
	"github.com/wizerservices/tripz-api/internal/logger"
	"github.com/wizerservices/tripz-api/internal/middleware"
	"github.com/wizerservices/tripz-api/internal/service"
)

// SetupRouter sets up the Gin router. Background work started by middleware
// stops when ctx is done.
func SetupRouter(ctx context.Context, cfg *config.Config, recommendationService *service.RecommendationService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// Add request ID middleware for request correlation
	r.Use(logger.RequestIDMiddleware())
	r.Use(logger.RequestLogger())

	r.Use(cors.New(corsConfig(cfg.EnvVars.CORSAllowedOrigins)))

	if cfg.EnvVars.RateLimitRPS > 0 {
		r.Use(middleware.RateLimitByIP(ctx, cfg.EnvVars.RateLimitRPS, time.Minute, 10*time.Minute))
	}

	// Ping route for testing
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	recommendationHandler := handlers.NewRecommendationHandler(recommendationService)

	// Provider calls are bounded by REQUEST_TIMEOUT
	api := r.Group("/")
	api.Use(middleware.RequestTimeout(cfg.EnvVars.RequestTimeout))
	{
		// Search-backed topic lists
		for _, topic := range service.Topics {
			api.GET(topic.Path, recommendationHandler.GetTopic(topic))
		}

		// Budget itinerary, no search
		api.GET("/getreccomendations", recommendationHandler.GetTripPlan)
	}

	return r
}

// corsConfig echoes any origin with credentials when no origins are listed.
// TODO: require CORS_ALLOWED_ORIGINS once the production web origin is fixed.
func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowCredentials = true
	c.AllowHeaders = []string{"Origin", "Content-Type", "Content-Length", "Accept", "Authorization", "X-Requested-With", "X-Request-ID"}
	c.ExposeHeaders = []string{"X-Request-ID"}
	c.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	if len(origins) > 0 {
		c.AllowOrigins = origins
	} else {
		c.AllowOriginFunc = func(string) bool { return true }
	}
	return c
}
