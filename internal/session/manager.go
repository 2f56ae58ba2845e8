package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tylum123/gendercare-admin/internal/domain"
)

// Manager owns the session lifecycle: set at login, cleared at logout.
type Manager struct {
	store  Store
	secret string
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
	// onLogout is called with the session id after a successful logout.
	onLogout func(id string)
}

// NewManager creates a session manager
// secret: JWT signing secret, rỗng thì chỉ đọc claims không verify
func NewManager(store Store, secret string, ttl time.Duration, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{store: store, secret: secret, ttl: ttl, logger: logger, now: time.Now}
}

// OnLogout registers a hook run after a session is removed or found gone.
func (m *Manager) OnLogout(fn func(id string)) {
	m.onLogout = fn
}

// Login creates a session from a bearer token issued by the identity provider.
func (m *Manager) Login(ctx context.Context, token string) (*Session, error) {
	s, err := FromToken(token, m.secret)
	if err != nil {
		return nil, err
	}
	now := m.now()
	if s.Expired(now) {
		return nil, domain.ErrSessionExpired
	}

	s.ID = uuid.NewString()
	s.CreatedAt = now

	ttl := m.ttl
	if !s.ExpiresAt.IsZero() {
		if untilExp := s.ExpiresAt.Sub(now); ttl <= 0 || untilExp < ttl {
			ttl = untilExp
		}
	}
	if err := m.store.Save(ctx, s, ttl); err != nil {
		return nil, err
	}

	m.logger.Info("session opened",
		zap.String("session_id", s.ID),
		zap.String("user_id", s.UserID),
		zap.String("role", string(s.Role)))
	return s, nil
}

// Resolve loads a live session. Expired sessions are deleted, and ids the
// store no longer knows are passed to the logout hook.
func (m *Manager) Resolve(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, domain.ErrNoSession
	}
	s, err := m.store.Get(ctx, id)
	if errors.Is(err, domain.ErrNoSession) {
		// the store expired it; release anything still bound to the id
		if m.onLogout != nil {
			m.onLogout(id)
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	if s.Expired(m.now()) {
		if err := m.Logout(ctx, id); err != nil {
			m.logger.Warn("failed to drop expired session", zap.String("session_id", id), zap.Error(err))
		}
		return nil, domain.ErrSessionExpired
	}
	return s, nil
}

// Logout removes the session. Unknown ids are not an error.
func (m *Manager) Logout(ctx context.Context, id string) error {
	if err := m.store.Delete(ctx, id); err != nil && !errors.Is(err, domain.ErrNoSession) {
		return err
	}
	if m.onLogout != nil {
		m.onLogout(id)
	}
	m.logger.Info("session closed", zap.String("session_id", id))
	return nil
}
