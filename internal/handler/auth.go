package handler

import (
	"net/http"

	"github.com/bms-digital/user-service/internal/constants"
	"github.com/bms-digital/user-service/internal/dto"
	apperrors "github.com/bms-digital/user-service/internal/errors"
	"github.com/bms-digital/user-service/internal/service"
	ctxutil "github.com/bms-digital/user-service/pkg/context"
	"github.com/bms-digital/user-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	userService *service.UserService
}

func NewAuthHandler(userService *service.UserService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
	}
}

// Login handles user authentication
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := ctxutil.NewContext(c.Request.Context(), "handler", "Login")
	log := logger.GetLogger().With(ctxutil.Fields(ctx)...)

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgBadRequest, err.Error()))
		return
	}

	log.Info("User login attempt", zap.String("user_id", req.UserID))

	response, err := h.userService.Login(ctx, &req)
	if err != nil {
		log.Warn("Login failed",
			zap.String("user_id", req.UserID),
			zap.Error(err),
		)
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	log.Info("User logged in successfully", zap.String("user_id", req.UserID))

	c.JSON(http.StatusOK, response)
}
