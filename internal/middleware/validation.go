package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/bms-digital/user-service/pkg/logger"
	"github.com/bms-digital/user-service/pkg/validation"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ValidationMiddleware validates request bodies against DTO binding rules
// before the handler runs, so handlers can bind without re-checking.
type ValidationMiddleware struct {
	validate *validator.Validate
}

func NewValidationMiddleware() *ValidationMiddleware {
	v := validator.New()
	// DTOs carry gin binding tags, reuse them here
	v.SetTagName("binding")
	return &ValidationMiddleware{validate: v}
}

func (m *ValidationMiddleware) ValidateRequestBody(factory func() interface{}) gin.HandlerFunc {
	return func(c *gin.Context) {
		var bodyBytes []byte
		if c.Request.Body != nil {
			var err error
			bodyBytes, err = io.ReadAll(c.Request.Body)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to read request body"})
				c.Abort()
				return
			}
		}

		// Restore the body so the handler can bind it again
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		request := factory()
		if err := json.Unmarshal(bodyBytes, request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "Invalid JSON format",
				"details": err.Error(),
			})
			c.Abort()
			return
		}

		if err := m.validate.Struct(request); err != nil {
			var details []string
			for _, e := range err.(validator.ValidationErrors) {
				details = append(details, validation.Message(e.Field(), e.Tag(), e.Param()))
			}

			logger.GetLogger().Warn("Request validation failed",
				zap.String("path", c.Request.URL.Path),
				zap.Strings("validation_errors", details),
			)

			c.JSON(http.StatusBadRequest, gin.H{
				"message": "Validation failed",
				"details": details,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

