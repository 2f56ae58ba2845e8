package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tylum123/gendercare-admin/internal/clients"
	"github.com/tylum123/gendercare-admin/internal/response"
)

const requestIDKey = "request_id"

// RequestID đảm bảo mỗi request có X-Request-ID và truyền nó xuống remote API
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(clients.HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(clients.HeaderRequestID, id)
		c.Request = c.Request.WithContext(clients.ContextWithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// GinLogger middleware ghi log cho mỗi request
func GinLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		// Process request
		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}

		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Int("size", c.Writer.Size()),
		}
		if errorMessage := c.Errors.ByType(gin.ErrorTypePrivate).String(); errorMessage != "" {
			fields = append(fields, zap.String("errors", errorMessage))
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			logger.Error("request", fields...)
		case status >= 400:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}

// Recovery converts panics into a 500 and logs them
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString(requestIDKey)))
		response.Error(c, http.StatusInternalServerError, response.CodeInternalError, "internal server error")
	})
}
