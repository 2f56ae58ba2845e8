package clients

import (
	"context"
	"net/http"
	"net/url"

	"github.com/tylum123/gendercare-admin/internal/domain"
)

// UserClient là wrapper cho users resource của remote API.
// Responses are bare JSON arrays/objects.
type UserClient struct {
	core *Client
	path string
}

// NewUserClient tạo client cho users resource tại path (vd: "/users")
func NewUserClient(core *Client, path string) *UserClient {
	if path == "" {
		path = "/users"
	}
	return &UserClient{core: core, path: path}
}

func (c *UserClient) itemPath(id string) string {
	return c.path + "/" + url.PathEscape(id)
}

// List gọi GET /users
func (c *UserClient) List(ctx context.Context) ([]domain.User, error) {
	_, raw, err := c.core.send(ctx, "list users", http.MethodGet, c.path, nil, nil)
	if err != nil {
		return nil, err
	}
	users := []domain.User{}
	if err := decodeJSON("list users", raw, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetByID gọi GET /users/{id}
func (c *UserClient) GetByID(ctx context.Context, id string) (domain.User, error) {
	var user domain.User
	_, raw, err := c.core.send(ctx, "get user", http.MethodGet, c.itemPath(id), nil, nil)
	if err != nil {
		return user, err
	}
	err = decodeJSON("get user", raw, &user)
	return user, err
}

// Create gọi POST /users
func (c *UserClient) Create(ctx context.Context, payload domain.UserPayload) (domain.User, error) {
	var user domain.User
	_, raw, err := c.core.send(ctx, "create user", http.MethodPost, c.path, nil, payload)
	if err != nil {
		return user, err
	}
	err = decodeJSON("create user", raw, &user)
	return user, err
}

// Update gọi PUT /users/{id}
func (c *UserClient) Update(ctx context.Context, id string, payload domain.UserPayload) (domain.User, error) {
	var user domain.User
	_, raw, err := c.core.send(ctx, "update user", http.MethodPut, c.itemPath(id), nil, payload)
	if err != nil {
		return user, err
	}
	err = decodeJSON("update user", raw, &user)
	return user, err
}

// Delete gọi DELETE /users/{id}
func (c *UserClient) Delete(ctx context.Context, id string) error {
	_, _, err := c.core.send(ctx, "delete user", http.MethodDelete, c.itemPath(id), nil, nil)
	return err
}

// SetActive gửi lại toàn bộ user với isActive mới; the API has no dedicated toggle endpoint.
func (c *UserClient) SetActive(ctx context.Context, user domain.User, active bool) error {
	payload := domain.PayloadOf(user)
	payload.IsActive = active
	_, err := c.Update(ctx, user.ID, payload)
	return err
}
