package router

import (
	"time"

	"github.com/bms-digital/user-service/config"
	"github.com/bms-digital/user-service/internal/handler"
	"github.com/bms-digital/user-service/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authHandler   *handler.AuthHandler
	userHandler   *handler.UserHandler
	systemHandler *handler.SystemHandler
	healthHandler *handler.HealthHandler

	authMw  *middleware.AuthMiddleware
	validMw *middleware.ValidationMiddleware
	Config  *config.Config
}

func NewRouter(
	auth *handler.AuthHandler,
	user *handler.UserHandler,
	system *handler.SystemHandler,
	health *handler.HealthHandler,

	authMw *middleware.AuthMiddleware,
	validMw *middleware.ValidationMiddleware,
	config *config.Config,
) *Router {
	return &Router{
		authHandler:   auth,
		userHandler:   user,
		systemHandler: system,
		healthHandler: health,

		authMw:  authMw,
		validMw: validMw,
		Config:  config,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	router := gin.New()

	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORS())

	api := router.Group("/api")
	{
		api.GET("/health", r.healthHandler.BasicHealth)
		api.GET("/health/detail", r.healthHandler.HealthCheck)

		v1 := api.Group("/v1")
		{
			v1.Use(middleware.RateLimit(r.Config.RateLimit.Request, time.Duration(r.Config.RateLimit.Duration)*time.Second))

			r.authRoutes(v1)
			r.userRoutes(v1)
			r.systemRoutes(v1)
		}
	}

	return router
}
