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

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// CreateUser registers a new user with a generated one-time password
func (h *UserHandler) CreateUser(c *gin.Context) {
	ctx := ctxutil.NewContext(c.Request.Context(), "handler", "CreateUser")
	log := logger.GetLogger().With(ctxutil.Fields(ctx)...)

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create user request", zap.Error(err))
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgBadRequest, err.Error()))
		return
	}

	response, err := h.userService.CreateUser(ctx, &req)
	if err != nil {
		log.Error("Failed to create user",
			zap.String("user_id", req.UserID),
			zap.Error(err),
		)
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	log.Info("User created", zap.String("user_id", req.UserID))

	c.JSON(http.StatusCreated, constants.BuildDataResponse(constants.MsgUserCreated, response))
}

// GetUser returns a single user by ID
func (h *UserHandler) GetUser(c *gin.Context) {
	ctx := ctxutil.NewContext(c.Request.Context(), "handler", "GetUser")
	log := logger.GetLogger().With(ctxutil.Fields(ctx)...)

	userID := c.Param("user_id")

	response, err := h.userService.GetUser(ctx, userID)
	if err != nil {
		log.Warn("Failed to fetch user",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, response)
}

// UpdateUser applies a partial update to user profile fields
func (h *UserHandler) UpdateUser(c *gin.Context) {
	ctx := ctxutil.NewContext(c.Request.Context(), "handler", "UpdateUser")
	log := logger.GetLogger().With(ctxutil.Fields(ctx)...)

	userID := c.Param("user_id")

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update user request",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgBadRequest, err.Error()))
		return
	}

	response, err := h.userService.UpdateUser(ctx, userID, &req)
	if err != nil {
		log.Warn("Failed to update user",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	log.Info("User updated", zap.String("user_id", userID))

	c.JSON(http.StatusOK, constants.BuildDataResponse(constants.MsgUserUpdated, response))
}

// UpdatePassword replaces a user's password
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	ctx := ctxutil.NewContext(c.Request.Context(), "handler", "UpdatePassword")
	log := logger.GetLogger().With(ctxutil.Fields(ctx)...)

	userID := c.Param("user_id")

	var req dto.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid password update request",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgBadRequest, err.Error()))
		return
	}

	if err := h.userService.UpdatePassword(ctx, userID, &req); err != nil {
		log.Warn("Failed to update password",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	log.Info("Password updated", zap.String("user_id", userID))

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(constants.MsgPasswordUpdated))
}

// DeleteUser removes a user record
func (h *UserHandler) DeleteUser(c *gin.Context) {
	ctx := ctxutil.NewContext(c.Request.Context(), "handler", "DeleteUser")
	log := logger.GetLogger().With(ctxutil.Fields(ctx)...)

	userID := c.Param("user_id")

	if err := h.userService.DeleteUser(ctx, userID); err != nil {
		log.Warn("Failed to delete user",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	log.Info("User deleted", zap.String("user_id", userID))

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(constants.MsgUserDeleted))
}
