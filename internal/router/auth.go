package router

import "github.com/gin-gonic/gin"

// authRoutes defines authentication routes
func (r *Router) authRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", r.authHandler.Login)
	}
}
