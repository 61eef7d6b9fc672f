package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"library-backend/internal/graph"
	"library-backend/internal/shared/middleware"
	"library-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	router.GET("/health", healthCheckHandler(c))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	setupGraphQLRoutes(router, c)

	return router
}

// ========================================
// GRAPHQL ROUTES
// ========================================
// POST carries queries and mutations; GET is the websocket upgrade for
// subscriptions. The gate runs before either reaches a resolver.
func setupGraphQLRoutes(router *gin.Engine, c *container.Container) {
	handler := gin.WrapH(graph.NewHandler(c.Schema))

	gql := router.Group("/graphql", middleware.Authenticate(c.JWTManager, c.UserService))
	{
		gql.POST("", handler)
		gql.GET("", handler)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"store":     appCtx.Config.Store.Driver,
		}

		status := http.StatusOK
		if err := appCtx.Health(ctx); err != nil {
			health["status"] = "degraded"
			health["error"] = err.Error()
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, health)
	}
}
