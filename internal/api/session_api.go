package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tylum123/gendercare-admin/internal/middleware"
	"github.com/tylum123/gendercare-admin/internal/response"
	"github.com/tylum123/gendercare-admin/internal/session"
)

// SessionAPI xử lý đăng nhập / đăng xuất của BFF
type SessionAPI struct {
	manager *session.Manager
	logger  *zap.Logger
}

// NewSessionAPI tạo mới SessionAPI handler
func NewSessionAPI(manager *session.Manager, logger *zap.Logger) *SessionAPI {
	return &SessionAPI{manager: manager, logger: logger}
}

func sessionData(s *session.Session) gin.H {
	data := gin.H{
		"session_id": s.ID,
		"user_id":    s.UserID,
		"role":       s.Role,
		"role_label": s.Role.Label(),
		"name":       s.Name,
		"email":      s.Email,
		"privileged": s.Role.Privileged(),
		"created_at": s.CreatedAt.Format(time.RFC3339),
	}
	if !s.ExpiresAt.IsZero() {
		data["expires_at"] = s.ExpiresAt.Format(time.RFC3339)
	}
	return data
}

// Login godoc
// @Summary      Open a session from an access token
// @Description  Exchanges the bearer token issued by the identity provider for a BFF session id. The token is forwarded verbatim on every remote call.
// @Tags         Session
// @Accept       json
// @Produce      json
// @Param        request body object{access_token=string} true "Access token"
// @Success      201  {object}  object{code=string,message=string,data=object{session_id=string,user_id=string,role=string}}
// @Failure      400  {object}  object{code=string,message=string}
// @Failure      401  {object}  object{code=string,message=string}
// @Router       /session [post]
func (api *SessionAPI) Login(c *gin.Context) {
	var reqBody struct {
		AccessToken string `json:"access_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&reqBody); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		return
	}

	s, err := api.manager.Login(c.Request.Context(), reqBody.AccessToken)
	if err != nil {
		api.logger.Info("login refused", zap.Error(err))
		middleware.AbortWithError(c, err, nil)
		return
	}

	response.Created(c, "Session created", sessionData(s))
}

// Current xử lý GET /api/v1/session
func (api *SessionAPI) Current(c *gin.Context) {
	s, ok := middleware.SessionFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Missing session")
		return
	}
	response.Success(c, "success", sessionData(s))
}

// Logout xử lý DELETE /api/v1/session
func (api *SessionAPI) Logout(c *gin.Context) {
	s, ok := middleware.SessionFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Missing session")
		return
	}

	if err := api.manager.Logout(c.Request.Context(), s.ID); err != nil {
		middleware.AbortWithError(c, err, nil)
		return
	}

	response.Success(c, "Logged out", nil)
}
