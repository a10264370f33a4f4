package router

import "github.com/gin-gonic/gin"

// systemRoutes defines system parameter cache routes
func (r *Router) systemRoutes(rg *gin.RouterGroup) {
	system := rg.Group("/system")
	system.Use(r.authMw.RequireAuth())
	{
		system.POST("/cache/refresh", r.systemHandler.RefreshCache)
	}
}
