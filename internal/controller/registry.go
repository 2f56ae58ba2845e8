package controller

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tylum123/gendercare-admin/internal/clients"
	"github.com/tylum123/gendercare-admin/internal/session"
)

// Controllers is the controller set bound to one session.
type Controllers struct {
	Users *UserController
	Posts *PostController
}

// Registry keeps one Controllers per session. Each set talks to the remote
// API with its own session's bearer token.
type Registry struct {
	base      *clients.Client
	usersPath string
	postsPath string
	pageSize  int
	logger    *zap.Logger

	mu      sync.Mutex
	entries map[string]*registryEntry
	now     func() time.Time
}

type registryEntry struct {
	set      *Controllers
	lastUsed time.Time
}

func NewRegistry(base *clients.Client, usersPath, postsPath string, pageSize int, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		base:      base,
		usersPath: usersPath,
		postsPath: postsPath,
		pageSize:  pageSize,
		logger:    logger,
		entries:   make(map[string]*registryEntry),
		now:       time.Now,
	}
}

// For returns the controllers of s, creating them on first use.
func (r *Registry) For(s *session.Session) *Controllers {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if e, ok := r.entries[s.ID]; ok {
		e.lastUsed = now
		return e.set
	}

	core := r.base.WithToken(s.Token)
	logger := r.logger.With(zap.String("session_id", s.ID), zap.String("user_id", s.UserID))
	c := &Controllers{
		Users: NewUserController(clients.NewUserClient(core, r.usersPath), s.Actor(), r.pageSize, logger),
		Posts: NewPostController(clients.NewPostClient(core, r.postsPath), s.Actor(), r.pageSize, logger),
	}
	r.entries[s.ID] = &registryEntry{set: c, lastUsed: now}
	return c
}

// Drop forgets the controllers of a closed session.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	delete(r.entries, sessionID)
	r.mu.Unlock()
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep drops the sets not used within maxIdle and returns how many went.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-maxIdle)
	dropped := 0
	for id, e := range r.entries {
		if e.lastUsed.Before(cutoff) {
			delete(r.entries, id)
			dropped++
		}
	}
	if dropped > 0 {
		r.logger.Info("dropped idle session controllers", zap.Int("count", dropped), zap.Int("remaining", len(r.entries)))
	}
	return dropped
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep(maxIdle)
		}
	}
}
