package router

import (
	"github.com/bms-digital/user-service/internal/dto"
	"github.com/gin-gonic/gin"
)

// userRoutes defines user management routes, all token protected
func (r *Router) userRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(r.authMw.RequireAuth())
	{
		users.POST("",
			r.validMw.ValidateRequestBody(func() interface{} { return &dto.CreateUserRequest{} }),
			r.userHandler.CreateUser)
		users.GET("/:user_id", r.userHandler.GetUser)
		users.PUT("/:user_id", r.userHandler.UpdateUser)
		users.PUT("/:user_id/password", r.userHandler.UpdatePassword)
		users.DELETE("/:user_id", r.userHandler.DeleteUser)
	}
}
