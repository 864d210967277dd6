package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"sunnyway/internal/api/handlers"
	"sunnyway/internal/api/middleware"
)

type Router struct {
	navigationHandler *handlers.NavigationHandler
	mapHandler        *handlers.MapHandler
	logger            *zap.Logger
}

func NewRouter(
	navigationHandler *handlers.NavigationHandler,
	mapHandler *handlers.MapHandler,
	logger *zap.Logger,
) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		navigationHandler: navigationHandler,
		mapHandler:        mapHandler,
		logger:            logger,
	}
}

// corsConfig lets the browser map UI, served from any origin, call the API.
func corsConfig() cors.Config {
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader}
	config.ExposeHeaders = []string{middleware.RequestIDHeader, "Retry-After"}
	config.MaxAge = 12 * time.Hour
	return config
}

func (r *Router) Setup(engine *gin.Engine) {
	engine.Use(
		middleware.RequestID(),
		middleware.Logger(r.logger),
		middleware.Recovery(r.logger),
		cors.New(corsConfig()),
	)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api")
	{
		api.GET("/service-area", r.mapHandler.ServiceArea)
		api.POST("/nav", r.navigationHandler.Navigate)
		api.POST("/shadow-map", r.mapHandler.ShadowMap)
		api.POST("/sun", r.mapHandler.Sun)
	}
}
