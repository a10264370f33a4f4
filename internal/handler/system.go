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

type SystemHandler struct {
	systemCache *service.SystemCache
}

func NewSystemHandler(systemCache *service.SystemCache) *SystemHandler {
	return &SystemHandler{
		systemCache: systemCache,
	}
}

// RefreshCache forces an immediate reload of system parameters from the
// database, bypassing the periodic refresh timer.
func (h *SystemHandler) RefreshCache(c *gin.Context) {
	ctx := ctxutil.NewContext(c.Request.Context(), "handler", "RefreshCache")
	log := logger.GetLogger().With(ctxutil.Fields(ctx)...)

	if err := h.systemCache.Refresh(ctx); err != nil {
		log.Error("System parameter refresh failed", zap.Error(err))
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	flags := h.systemCache.Flags()
	log.Info("System parameter cache refreshed",
		zap.Bool("password_hashing_required", flags.PasswordHashingRequired),
		zap.Duration("auto_refresh_interval", flags.AutoCacheRefreshInterval),
	)

	c.JSON(http.StatusOK, dto.CacheRefreshResponse{
		Message:     constants.MsgCacheRefreshed,
		Flags:       flags,
		LastUpdated: h.systemCache.LastUpdated(),
	})
}
