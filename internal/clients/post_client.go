package clients

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tylum123/gendercare-admin/internal/domain"
)

// PostClient là wrapper cho posts resource của remote API.
// Every response is wrapped in the {is_success, data, message} envelope.
type PostClient struct {
	core *Client
	path string
}

// NewPostClient tạo client cho posts resource tại path (vd: "/posts")
func NewPostClient(core *Client, path string) *PostClient {
	if path == "" {
		path = "/posts"
	}
	return &PostClient{core: core, path: path}
}

func (c *PostClient) itemPath(id string) string {
	return c.path + "/" + url.PathEscape(id)
}

// List gọi GET /posts
func (c *PostClient) List(ctx context.Context) ([]domain.Post, error) {
	status, raw, err := c.core.send(ctx, "list posts", http.MethodGet, c.path, nil, nil)
	if err != nil {
		return nil, err
	}
	posts := []domain.Post{}
	if err := decodeEnvelope("list posts", status, raw, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetByID gọi GET /posts/{id}
func (c *PostClient) GetByID(ctx context.Context, id string) (domain.Post, error) {
	var post domain.Post
	status, raw, err := c.core.send(ctx, "get post", http.MethodGet, c.itemPath(id), nil, nil)
	if err != nil {
		return post, err
	}
	err = decodeEnvelope("get post", status, raw, &post)
	return post, err
}

// Create gọi POST /posts
func (c *PostClient) Create(ctx context.Context, payload domain.PostPayload) (domain.Post, error) {
	var post domain.Post
	status, raw, err := c.core.send(ctx, "create post", http.MethodPost, c.path, nil, payload)
	if err != nil {
		return post, err
	}
	err = decodeEnvelope("create post", status, raw, &post)
	return post, err
}

// Update gọi PUT /posts/{id}
func (c *PostClient) Update(ctx context.Context, id string, payload domain.PostPayload) (domain.Post, error) {
	var post domain.Post
	status, raw, err := c.core.send(ctx, "update post", http.MethodPut, c.itemPath(id), nil, payload)
	if err != nil {
		return post, err
	}
	err = decodeEnvelope("update post", status, raw, &post)
	return post, err
}

// Delete gọi DELETE /posts/{id}
func (c *PostClient) Delete(ctx context.Context, id string) error {
	status, raw, err := c.core.send(ctx, "delete post", http.MethodDelete, c.itemPath(id), nil, nil)
	if err != nil {
		return err
	}
	return decodeEnvelope("delete post", status, raw, nil)
}

// SetStatus gọi PUT /posts/{id}/status?status=N
func (c *PostClient) SetStatus(ctx context.Context, id string, st domain.PostStatus) error {
	query := url.Values{"status": []string{strconv.Itoa(int(st))}}
	status, raw, err := c.core.send(ctx, "set post status", http.MethodPut, c.itemPath(id)+"/status", query, nil)
	if err != nil {
		return err
	}
	return decodeEnvelope("set post status", status, raw, nil)
}
