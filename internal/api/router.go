package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tylum123/gendercare-admin/internal/clients"
	"github.com/tylum123/gendercare-admin/internal/controller"
	"github.com/tylum123/gendercare-admin/internal/middleware"
	"github.com/tylum123/gendercare-admin/internal/session"
)

// RouterConfig gathers what the HTTP surface needs
type RouterConfig struct {
	Sessions           *session.Manager
	Registry           *controller.Registry
	Logger             *zap.Logger
	AllowedOrigins     []string
	AllowedCredentials bool
}

// NewRouter wires every endpoint under /api/v1.
func NewRouter(cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.GinLogger(logger))

	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.HeaderSessionID, clients.HeaderRequestID},
			ExposeHeaders:    []string{"Content-Length", clients.HeaderRequestID},
			AllowCredentials: cfg.AllowedCredentials,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "gendercare-admin"})
	})

	sessionAPI := NewSessionAPI(cfg.Sessions, logger)
	userAPI := NewUserAPI(cfg.Registry)
	postAPI := NewPostAPI(cfg.Registry)
	adminAPI := NewAdminAPI(cfg.Registry, logger)
	cycleAPI := NewCycleAPI()

	v1 := r.Group("/api/v1")

	// Public
	v1.POST("/session", sessionAPI.Login)
	v1.POST("/cycle/predict", cycleAPI.Predict)
	v1.GET("/categories", postAPI.Categories)

	authed := v1.Group("")
	authed.Use(middleware.SessionAuth(cfg.Sessions))
	{
		authed.GET("/session", sessionAPI.Current)
		authed.DELETE("/session", sessionAPI.Logout)

		posts := authed.Group("/posts")
		posts.GET("", postAPI.ListPosts)
		posts.POST("/refresh", postAPI.RefreshPosts)
		posts.POST("", postAPI.CreatePost)
		posts.PUT("/:id", postAPI.UpdatePost)
		posts.DELETE("/:id", postAPI.DeletePost)
		posts.PUT("/:id/status", postAPI.ChangePostStatus)
	}

	privileged := authed.Group("")
	privileged.Use(middleware.RequirePrivileged())
	{
		users := privileged.Group("/users")
		users.GET("", userAPI.ListUsers)
		users.POST("/refresh", userAPI.RefreshUsers)
		users.POST("", userAPI.CreateUser)
		users.POST("/validate", userAPI.ValidateUser)
		users.PUT("/:id", userAPI.UpdateUser)
		users.PATCH("/:id/status", userAPI.ToggleUserStatus)
		users.DELETE("/:id", userAPI.DeleteUser)

		privileged.GET("/admin/stats", adminAPI.GetStats)
	}

	return r
}
