package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tylum123/gendercare-admin/internal/controller"
	"github.com/tylum123/gendercare-admin/internal/middleware"
	"github.com/tylum123/gendercare-admin/internal/response"
)

// AdminAPI xử lý các HTTP endpoints dành cho Admin / Manager
// Giải thích: Tách riêng admin endpoints để dễ apply admin middleware
type AdminAPI struct {
	registry *controller.Registry
	logger   *zap.Logger
}

// NewAdminAPI tạo mới AdminAPI handler
func NewAdminAPI(registry *controller.Registry, logger *zap.Logger) *AdminAPI {
	return &AdminAPI{registry: registry, logger: logger}
}

// GetStats godoc
// @Summary      Dashboard statistics (Admin, Manager)
// @Description  Counts users by role and activity, and posts by moderation status, from the session's snapshots.
// @Tags         Admin - Dashboard
// @Produce      json
// @Param        X-Session-ID  header  string  true  "Session id"
// @Success      200  {object}  object{code=string,message=string,data=object{users=object,posts=map[string]int}}
// @Failure      401  {object}  object{code=string,message=string}
// @Failure      403  {object}  object{code=string,message=string}
// @Failure      503  {object}  object{code=string,message=string}
// @Router       /admin/stats [get]
func (api *AdminAPI) GetStats(c *gin.Context) {
	s, ok := middleware.SessionFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Missing session")
		return
	}
	ctrls := api.registry.For(s)
	ctx := c.Request.Context()

	if err := ctrls.Users.EnsureLoaded(ctx); err != nil {
		api.logger.Warn("failed to load users for stats", zap.Error(err))
		middleware.AbortWithError(c, err, nil)
		return
	}
	if err := ctrls.Posts.EnsureLoaded(ctx); err != nil {
		api.logger.Warn("failed to load posts for stats", zap.Error(err))
		middleware.AbortWithError(c, err, nil)
		return
	}

	response.Success(c, "Statistics retrieved successfully", gin.H{
		"users": ctrls.Users.Stats(),
		"posts": ctrls.Posts.Stats(),
	})
}
