package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/tylum123/gendercare-admin/internal/clients"
	"github.com/tylum123/gendercare-admin/internal/domain"
	"github.com/tylum123/gendercare-admin/internal/response"
	"github.com/tylum123/gendercare-admin/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"Validation", domain.NewValidationError(map[string]string{"email": "Email is required"}), http.StatusBadRequest, "400"},
		{"Invalid transition", fmt.Errorf("%w: approved -> draft", domain.ErrInvalidTransition), http.StatusBadRequest, "400"},
		{"Permission", &domain.PermissionError{Action: "approve a post", Role: domain.RoleCustomer}, http.StatusForbidden, "403"},
		{"No session", domain.ErrNoSession, http.StatusUnauthorized, "401"},
		{"Expired session", domain.ErrSessionExpired, http.StatusUnauthorized, "401"},
		{"Upstream not found", fmt.Errorf("get post: %w", &domain.ServerError{Status: 404, Message: "Post not found"}), http.StatusNotFound, "404"},
		{"Upstream conflict", &domain.ServerError{Status: 409, Message: "Email already exists"}, http.StatusConflict, "409"},
		{"Upstream failure", &domain.ServerError{Status: 500, Message: "boom"}, http.StatusBadGateway, "502"},
		{"Network", &domain.NetworkError{Op: "list users", Err: errors.New("dial tcp: refused")}, http.StatusServiceUnavailable, "503"},
		{"Unknown", errors.New("something else"), http.StatusInternalServerError, "500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code, msg := ErrorToHTTP(tt.err)
			if status != tt.wantStatus || code != tt.wantCode {
				t.Errorf("ErrorToHTTP() = %d %s, want %d %s", status, code, tt.wantStatus, tt.wantCode)
			}
			if msg == "" {
				t.Error("message should not be empty")
			}
		})
	}
}

func TestRequestIDPropagates(t *testing.T) {
	var seen string
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		seen = clients.RequestIDFrom(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(clients.HeaderRequestID, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if seen != "abc-123" {
		t.Errorf("context request id = %q", seen)
	}
	if w.Header().Get(clients.HeaderRequestID) != "abc-123" {
		t.Errorf("response header = %q", w.Header().Get(clients.HeaderRequestID))
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Header().Get(clients.HeaderRequestID) == "" {
		t.Error("expected a generated request id")
	}
}

func TestSessionAuth(t *testing.T) {
	manager := session.NewManager(session.NewMemoryStore(), "", time.Hour, nil)
	staffToken, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "s1", "role": "staff"}).SignedString([]byte("x"))
	adminToken, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "a1", "role": "admin"}).SignedString([]byte("x"))
	staff, err := manager.Login(context.Background(), staffToken)
	if err != nil {
		t.Fatal(err)
	}
	admin, err := manager.Login(context.Background(), adminToken)
	if err != nil {
		t.Fatal(err)
	}

	r := gin.New()
	r.Use(SessionAuth(manager))
	r.GET("/me", func(c *gin.Context) {
		s, _ := SessionFrom(c)
		c.String(http.StatusOK, s.UserID)
	})
	r.GET("/admin", RequirePrivileged(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	tests := []struct {
		name       string
		path       string
		header     string
		value      string
		wantStatus int
	}{
		{"Missing session", "/me", "", "", http.StatusUnauthorized},
		{"Unknown session", "/me", HeaderSessionID, "nope", http.StatusUnauthorized},
		{"Session header", "/me", HeaderSessionID, staff.ID, http.StatusOK},
		{"Authorization scheme", "/me", "Authorization", "Session " + staff.ID, http.StatusOK},
		{"Staff on admin route", "/admin", HeaderSessionID, staff.ID, http.StatusForbidden},
		{"Admin on admin route", "/admin", HeaderSessionID, admin.ID, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (%s)", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestRecoveryUsesEnvelope(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Recovery(zap.NewNop()))
	r.GET("/boom", func(c *gin.Context) {
		panic("nil map write")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	var body response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Code != response.CodeInternalError || body.Message == "" {
		t.Errorf("body = %+v", body)
	}
}
