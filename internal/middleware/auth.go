package middleware

import (
	"github.com/bms-digital/user-service/internal/constants"
	apperrors "github.com/bms-digital/user-service/internal/errors"
	"github.com/bms-digital/user-service/internal/service"
	"github.com/bms-digital/user-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys populated on authenticated requests
const (
	ContextKeyUserID = "user_id"
	ContextKeyRoleID = "role_id"
)

type AuthMiddleware struct {
	auth *service.AuthService
}

func NewAuthMiddleware(auth *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// RequireAuth gates the request on the auth service's decision and attaches
// the decoded identity to the gin context on success.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := m.auth.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			// Credential rejections stay at debug/info; only infrastructure
			// failures are worth an error-level entry, and the auth service
			// already logged those.
			logger.GetLogger().Debug("Request rejected by auth gate",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.String("code", rejectionCode(err)),
			)
			c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, identity.UserID)
		c.Set(ContextKeyRoleID, identity.RoleID)

		c.Next()
	}
}

func rejectionCode(err error) string {
	if domainErr := apperrors.GetDomainError(err); domainErr != nil {
		return domainErr.Code
	}
	return "UNKNOWN"
}
