package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tylum123/gendercare-admin/internal/domain"
	"github.com/tylum123/gendercare-admin/internal/response"
	"github.com/tylum123/gendercare-admin/internal/session"
)

const (
	// HeaderSessionID carries the id returned by POST /api/v1/session
	HeaderSessionID = "X-Session-ID"
	sessionKey      = "session"
)

// SessionAuth resolves the caller's session from X-Session-ID (or a
// "Session <id>" Authorization header) and stores it in the context.
func SessionAuth(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := SessionIDFromRequest(c)
		if id == "" {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Missing session")
			return
		}

		s, err := manager.Resolve(c.Request.Context(), id)
		if err != nil {
			AbortWithError(c, err, nil)
			return
		}

		c.Set(sessionKey, s)
		c.Set("user_id", s.UserID)
		c.Set("platform_role", string(s.Role))
		c.Next()
	}
}

// SessionIDFromRequest lấy session id từ header
func SessionIDFromRequest(c *gin.Context) string {
	if id := strings.TrimSpace(c.GetHeader(HeaderSessionID)); id != "" {
		return id
	}
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && parts[0] == "Session" {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// RequirePrivileged chỉ cho Admin và Manager đi tiếp
func RequirePrivileged() gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := SessionFrom(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Missing session")
			return
		}
		if !s.Role.Privileged() {
			AbortWithError(c, &domain.PermissionError{Action: "access the admin area", Role: s.Role}, nil)
			return
		}
		c.Next()
	}
}

// SessionFrom lấy session đã được SessionAuth gắn vào context
func SessionFrom(c *gin.Context) (*session.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*session.Session)
	return s, ok
}
