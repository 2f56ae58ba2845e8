package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/tylum123/gendercare-admin/internal/domain"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

func TestFromToken(t *testing.T) {
	future := time.Now().Add(time.Hour).Unix()
	tests := []struct {
		name     string
		claims   jwt.MapClaims
		secret   string
		signWith string
		wantErr  error
		wantUser string
		wantRole domain.Role
	}{
		{
			name:     "Platform role claim",
			claims:   jwt.MapClaims{"user_id": "u1", "platform_role": "Admin", "exp": future},
			secret:   testSecret,
			signWith: testSecret,
			wantUser: "u1",
			wantRole: domain.RoleAdmin,
		},
		{
			name:     "Standard claims without verification",
			claims:   jwt.MapClaims{"sub": "u2", "role": "manager", "name": "Lan", "exp": future},
			signWith: "other",
			wantUser: "u2",
			wantRole: domain.RoleManager,
		},
		{
			name:     "Role list takes first",
			claims:   jwt.MapClaims{"nameid": "u3", "role": []interface{}{"consultant", "customer"}},
			signWith: "x",
			wantUser: "u3",
			wantRole: domain.RoleConsultant,
		},
		{
			name:     "Unknown role falls back to customer",
			claims:   jwt.MapClaims{"user_id": "u4", "role": "superuser"},
			signWith: "x",
			wantUser: "u4",
			wantRole: domain.RoleCustomer,
		},
		{
			name:     "Bad signature",
			claims:   jwt.MapClaims{"user_id": "u5", "role": "admin"},
			secret:   testSecret,
			signWith: "wrong",
			wantErr:  domain.ErrNoSession,
		},
		{
			name:     "Missing user id",
			claims:   jwt.MapClaims{"role": "admin"},
			signWith: "x",
			wantErr:  domain.ErrNoSession,
		},
		{
			name:     "Expired with secret",
			claims:   jwt.MapClaims{"user_id": "u6", "exp": time.Now().Add(-time.Hour).Unix()},
			secret:   testSecret,
			signWith: testSecret,
			wantErr:  domain.ErrSessionExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := signToken(t, tt.claims, tt.signWith)
			s, err := FromToken("Bearer "+token, tt.secret)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("FromToken() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("FromToken() unexpected error: %v", err)
			}
			if s.UserID != tt.wantUser || s.Role != tt.wantRole {
				t.Errorf("session = %+v", s)
			}
			if s.Token != token {
				t.Error("token should be stored without the Bearer prefix")
			}
		})
	}
}

func TestFromTokenEmpty(t *testing.T) {
	if _, err := FromToken("  ", ""); !errors.Is(err, domain.ErrNoSession) {
		t.Errorf("expected ErrNoSession, got %v", err)
	}
	if _, err := FromToken("not-a-jwt", ""); !errors.Is(err, domain.ErrNoSession) {
		t.Errorf("expected ErrNoSession, got %v", err)
	}
}

func TestManagerLifecycle(t *testing.T) {
	ctx := context.Background()
	logoutCalls := 0
	m := NewManager(NewMemoryStore(), "", 8*time.Hour, nil)
	m.OnLogout(func(string) { logoutCalls++ })

	token := signToken(t, jwt.MapClaims{"user_id": "u1", "role": "staff", "email": "a@b.com"}, "x")
	s, err := m.Login(ctx, token)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if s.ID == "" || s.Email != "a@b.com" {
		t.Fatalf("session = %+v", s)
	}

	got, err := m.Resolve(ctx, s.ID)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got.Actor().Role != domain.RoleStaff || got.Actor().UserID != "u1" {
		t.Errorf("actor = %+v", got.Actor())
	}

	if err := m.Logout(ctx, s.ID); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if logoutCalls != 1 {
		t.Errorf("logout hook calls = %d", logoutCalls)
	}
	if _, err := m.Resolve(ctx, s.ID); !errors.Is(err, domain.ErrNoSession) {
		t.Errorf("Resolve() after logout error = %v", err)
	}
}

func TestManagerRejectsExpiredUnverifiedToken(t *testing.T) {
	m := NewManager(NewMemoryStore(), "", time.Hour, nil)
	token := signToken(t, jwt.MapClaims{"user_id": "u1", "exp": time.Now().Add(-time.Minute).Unix()}, "x")
	if _, err := m.Login(context.Background(), token); !errors.Is(err, domain.ErrSessionExpired) {
		t.Errorf("Login() error = %v, want ErrSessionExpired", err)
	}
}

func TestManagerResolveExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	m := NewManager(NewMemoryStore(), "", 0, nil)
	m.now = func() time.Time { return now }

	exp := now.Add(30 * time.Minute)
	token := signToken(t, jwt.MapClaims{"user_id": "u1", "exp": exp.Unix()}, "x")
	s, err := m.Login(ctx, token)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	now = now.Add(time.Hour)
	if _, err := m.Resolve(ctx, s.ID); !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("Resolve() error = %v, want ErrSessionExpired", err)
	}
	if _, err := m.store.Get(ctx, s.ID); !errors.Is(err, domain.ErrNoSession) {
		t.Error("expired session should be deleted")
	}
}

func TestMemoryStoreTTL(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	store := NewMemoryStore()
	store.now = func() time.Time { return now }

	if err := store.Save(ctx, &Session{ID: "s1", UserID: "u1"}, time.Minute); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get(ctx, "s1"); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	now = now.Add(2 * time.Minute)
	if _, err := store.Get(ctx, "s1"); !errors.Is(err, domain.ErrNoSession) {
		t.Errorf("Get() after ttl error = %v", err)
	}
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	store := NewRedisStore(NewRedisClient(mr.Addr(), "", 0))

	if err := store.Ping(ctx); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}

	in := &Session{ID: "s1", Token: "tok", UserID: "u1", Role: domain.RoleManager, Name: "Minh"}
	if err := store.Save(ctx, in, time.Hour); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if ttl := mr.TTL(redisKeyPrefix + "s1"); ttl != time.Hour {
		t.Errorf("ttl = %v", ttl)
	}

	got, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Role != domain.RoleManager || got.Token != "tok" || got.Name != "Minh" {
		t.Errorf("Get() = %+v", got)
	}

	mr.FastForward(2 * time.Hour)
	if _, err := store.Get(ctx, "s1"); !errors.Is(err, domain.ErrNoSession) {
		t.Errorf("Get() after ttl error = %v", err)
	}

	if err := store.Save(ctx, in, time.Hour); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(ctx, "s1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Get(ctx, "s1"); !errors.Is(err, domain.ErrNoSession) {
		t.Errorf("Get() after delete error = %v", err)
	}
}

func TestManagerResolveGoneSessionRunsHook(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }

	var dropped []string
	m := NewManager(store, "", 20*time.Minute, nil)
	m.OnLogout(func(id string) { dropped = append(dropped, id) })

	s, err := m.Login(ctx, signToken(t, jwt.MapClaims{"user_id": "u1", "role": "admin"}, "x"))
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	now = now.Add(40 * time.Minute)
	if _, err := m.Resolve(ctx, s.ID); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("Resolve() error = %v, want ErrNoSession", err)
	}
	if len(dropped) != 1 || dropped[0] != s.ID {
		t.Errorf("logout hook ids = %v", dropped)
	}
}
