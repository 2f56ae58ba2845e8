package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tylum123/gendercare-admin/configs"
	"github.com/tylum123/gendercare-admin/internal/api"
	"github.com/tylum123/gendercare-admin/internal/clients"
	"github.com/tylum123/gendercare-admin/internal/controller"
	"github.com/tylum123/gendercare-admin/internal/logger"
	"github.com/tylum123/gendercare-admin/internal/session"
)

func main() {
	// 1. Load configuration từ environment variables
	cfg, err := configs.Load()
	if err != nil {
		// logger is not configured yet
		zap.NewExample().Fatal("failed to load config", zap.Error(err))
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		zap.NewExample().Fatal("failed to build logger", zap.Error(err))
	}
	defer func() { _ = log.Sync() }()

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info("starting admin backend",
		zap.Int("port", cfg.Server.Port),
		zap.String("api_base_url", cfg.API.BaseURL),
		zap.String("session_store", cfg.Session.Store))

	// 2. Session store
	var store session.Store
	switch cfg.Session.Store {
	case "redis":
		redisStore := session.NewRedisStore(session.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB))
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisStore.Ping(pingCtx)
		cancel()
		if err != nil {
			log.Fatal("failed to connect to redis", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		store = redisStore
	default:
		store = session.NewMemoryStore()
	}
	if cfg.JWT.Secret == "" {
		log.Warn("JWT_SECRET not set: token claims are read without signature verification")
	}
	sessions := session.NewManager(store, cfg.JWT.Secret, cfg.Session.TTL, log)

	// 3. Remote API client và controllers theo session
	core := clients.NewClient(cfg.API.BaseURL, cfg.API.Timeout, log.Named("remote"))
	registry := controller.NewRegistry(core, cfg.API.UsersPath, cfg.API.PostsPath, cfg.DefaultPageSize, log)
	sessions.OnLogout(registry.Drop)

	// Session store TTL không gọi hook logout, nên dọn controllers idle định kỳ
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	if cfg.Session.TTL > 0 {
		go registry.Run(sweepCtx, time.Minute, cfg.Session.TTL)
	}

	// 4. Setup HTTP router
	router := api.NewRouter(api.RouterConfig{
		Sessions:           sessions,
		Registry:           registry,
		Logger:             log,
		AllowedOrigins:     cfg.AllowedOrigins,
		AllowedCredentials: cfg.AllowedCredentials,
	})

	// 5. Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.API.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 6. Graceful shutdown setup
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("stopped")
}
