package clients

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tylum123/gendercare-admin/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second, nil)
}

func TestUserClientList(t *testing.T) {
	var gotAuth, gotRequestID, gotPath string
	core := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get(HeaderRequestID)
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"id":"u1","name":"An","email":"an@example.com","role":"admin","isActive":true},
			{"id":"u2","name":"Binh","email":"binh@example.com","role":"customer","isActive":false}]`)
	})

	users := NewUserClient(core.WithToken("tok-123"), "/users")
	ctx := ContextWithRequestID(context.Background(), "req-1")
	got, err := users.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 || got[1].IsActive || got[0].Role != domain.RoleAdmin {
		t.Errorf("List() = %+v", got)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotRequestID != "req-1" {
		t.Errorf("X-Request-ID = %q", gotRequestID)
	}
	if gotPath != "/users" {
		t.Errorf("path = %q", gotPath)
	}
}

func TestRequestIDGeneratedWhenMissing(t *testing.T) {
	var gotRequestID string
	core := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get(HeaderRequestID)
		_, _ = io.WriteString(w, `[]`)
	})

	if _, err := NewUserClient(core, "").List(context.Background()); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if gotRequestID == "" {
		t.Error("expected a generated request id")
	}
}

func TestUserClientSetActiveSendsFullPayload(t *testing.T) {
	var body domain.UserPayload
	var method, path string
	core := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = io.WriteString(w, `{"id":"u7"}`)
	})

	user := domain.User{ID: "u7", Name: "Chi", Email: "chi@example.com", Role: domain.RoleStaff, IsActive: true}
	if err := NewUserClient(core, "/users").SetActive(context.Background(), user, false); err != nil {
		t.Fatalf("SetActive() error = %v", err)
	}
	if method != http.MethodPut || path != "/users/u7" {
		t.Errorf("request = %s %s", method, path)
	}
	if body.IsActive || body.Name != "Chi" || body.Role != "staff" {
		t.Errorf("payload = %+v", body)
	}
}

func TestServerErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantMsg    string
		wantFields map[string]string
		notFound   bool
	}{
		{
			name:       "Message and field errors",
			status:     http.StatusBadRequest,
			body:       `{"message":"Invalid data","fieldErrors":{"Email":"Email already exists"}}`,
			wantMsg:    "Invalid data",
			wantFields: map[string]string{"Email": "Email already exists"},
		},
		{
			name:       "Problem details with error lists",
			status:     http.StatusUnprocessableEntity,
			body:       `{"title":"One or more validation errors occurred.","errors":{"PhoneNumber":["Too short","Digits only"]}}`,
			wantMsg:    "One or more validation errors occurred.",
			wantFields: map[string]string{"PhoneNumber": "Too short; Digits only"},
		},
		{
			name:    "Plain text",
			status:  http.StatusInternalServerError,
			body:    "boom",
			wantMsg: "boom",
		},
		{
			name:     "Empty not found",
			status:   http.StatusNotFound,
			body:     "",
			wantMsg:  "Not Found",
			notFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := NewUserClient(core, "/users").GetByID(context.Background(), "x")
			var serverErr *domain.ServerError
			if !errors.As(err, &serverErr) {
				t.Fatalf("expected ServerError, got %v", err)
			}
			if !errors.Is(err, domain.ErrServer) {
				t.Error("expected errors.Is(err, ErrServer)")
			}
			if serverErr.Status != tt.status {
				t.Errorf("status = %d", serverErr.Status)
			}
			if serverErr.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", serverErr.Message, tt.wantMsg)
			}
			for k, v := range tt.wantFields {
				if serverErr.FieldErrors[k] != v {
					t.Errorf("field %s = %q, want %q", k, serverErr.FieldErrors[k], v)
				}
			}
			if got := errors.Is(err, domain.ErrNotFound); got != tt.notFound {
				t.Errorf("errors.Is(ErrNotFound) = %v", got)
			}
		})
	}
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewPostClient(NewClient(url, time.Second, nil), "/posts").List(context.Background())
	if !errors.Is(err, domain.ErrNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
	var netErr *domain.NetworkError
	if !errors.As(err, &netErr) || netErr.Op != "list posts" {
		t.Errorf("NetworkError = %+v", netErr)
	}
}

func TestTimeoutIsNetworkError(t *testing.T) {
	done := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-done:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(done)
		srv.Close()
	})

	_, err := NewUserClient(NewClient(srv.URL, 50*time.Millisecond, nil), "").List(context.Background())
	if !errors.Is(err, domain.ErrNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
}

func TestPostClientEnvelope(t *testing.T) {
	core := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"is_success":true,"message":"ok","data":[
			{"id":"p1","title":"Safe sex basics","category":0,"authorId":"a1","status":1},
			{"id":"p2","title":"Cycle tracking","category":2,"authorId":"a2","status":3}]}`)
	})

	posts, err := NewPostClient(core, "/posts").List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("len = %d", len(posts))
	}
	if posts[0].Status != domain.StatusPending || posts[1].Category != domain.CategoryMenstrualHealth {
		t.Errorf("posts = %+v", posts)
	}
}

func TestPostClientUnsuccessfulEnvelope(t *testing.T) {
	core := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"is_success":false,"message":"Title already used","data":null}`)
	})

	_, err := NewPostClient(core, "/posts").Create(context.Background(), domain.PostPayload{Title: "dup"})
	var serverErr *domain.ServerError
	if !errors.As(err, &serverErr) {
		t.Fatalf("expected ServerError, got %v", err)
	}
	if serverErr.Message != "Title already used" {
		t.Errorf("message = %q", serverErr.Message)
	}
}

func TestPostClientSetStatus(t *testing.T) {
	var method, path, status string
	core := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		status = r.URL.Query().Get("status")
		_, _ = io.WriteString(w, `{"is_success":true,"data":null}`)
	})

	if err := NewPostClient(core, "/posts").SetStatus(context.Background(), "p 1", domain.StatusApproved); err != nil {
		t.Fatalf("SetStatus() error = %v", err)
	}
	if method != http.MethodPut {
		t.Errorf("method = %s", method)
	}
	if path != "/posts/p 1/status" {
		t.Errorf("path = %q", path)
	}
	if status != "3" {
		t.Errorf("status query = %q", status)
	}
}

func TestWithTokenDoesNotMutateShared(t *testing.T) {
	base := NewClient("http://example.invalid", time.Second, nil)
	scoped := base.WithToken("abc")
	if base.token != "" {
		t.Error("base client token changed")
	}
	if scoped.token != "abc" {
		t.Errorf("scoped token = %q", scoped.token)
	}
}
