package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tylum123/gendercare-admin/internal/domain"
)

const (
	HeaderRequestID = "X-Request-ID"

	maxErrorBody = 64 << 10
)

type requestIDKey struct{}

// ContextWithRequestID tags outgoing calls made with ctx.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the request id carried by ctx, if any.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Client is the shared HTTP transport for the remote healthcare API.
// It is safe for concurrent use; WithToken derives a per-session copy.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	token      string
	logger     *zap.Logger
}

// NewClient tạo client tới remote API
// timeout: thời gian timeout cho mỗi request
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		timeout:    timeout,
		logger:     logger,
	}
}

// WithHTTPClient swaps the underlying transport (tests use httptest clients).
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	cp := *c
	cp.httpClient = hc
	return &cp
}

// WithToken returns a copy that forwards token verbatim as the bearer credential.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	id := RequestIDFrom(ctx)
	if id == "" {
		id = uuid.NewString()
	}
	req.Header.Set(HeaderRequestID, id)
	return req, nil
}

// send performs one round trip. Transport failures become NetworkError,
// HTTP >= 400 becomes ServerError; on success the raw body is returned.
func (c *Client) send(ctx context.Context, op, method, path string, query url.Values, body any) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: %w", op, err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("remote call failed",
			zap.String("op", op),
			zap.String("method", method),
			zap.String("path", path),
			zap.Duration("latency", time.Since(start)),
			zap.Error(err))
		return 0, nil, &domain.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return resp.StatusCode, nil, &domain.NetworkError{Op: op, Err: err}
	}

	c.logger.Debug("remote call",
		zap.String("op", op),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
		zap.String("request_id", req.Header.Get(HeaderRequestID)))

	if resp.StatusCode >= http.StatusBadRequest {
		return resp.StatusCode, nil, parseServerError(resp.StatusCode, raw)
	}
	return resp.StatusCode, raw, nil
}

// errorPayload covers both {message, fieldErrors} and {title, errors} shapes.
type errorPayload struct {
	Message     string                     `json:"message"`
	Title       string                     `json:"title"`
	FieldErrors map[string]json.RawMessage `json:"fieldErrors"`
	Errors      map[string]json.RawMessage `json:"errors"`
}

func parseServerError(status int, raw []byte) *domain.ServerError {
	serverErr := &domain.ServerError{Status: status}
	if len(raw) > maxErrorBody {
		raw = raw[:maxErrorBody]
	}

	var payload errorPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		// Plain-text error bodies
		serverErr.Message = strings.TrimSpace(string(raw))
		if serverErr.Message == "" {
			serverErr.Message = http.StatusText(status)
		}
		return serverErr
	}

	serverErr.Message = payload.Message
	if serverErr.Message == "" {
		serverErr.Message = payload.Title
	}
	if serverErr.Message == "" {
		serverErr.Message = http.StatusText(status)
	}

	fields := payload.FieldErrors
	if len(fields) == 0 {
		fields = payload.Errors
	}
	if len(fields) > 0 {
		serverErr.FieldErrors = make(map[string]string, len(fields))
		for name, rawMsg := range fields {
			if msg := flattenMessage(rawMsg); msg != "" {
				serverErr.FieldErrors[name] = msg
			}
		}
	}
	return serverErr
}

// flattenMessage accepts "msg" or ["msg1","msg2"].
func flattenMessage(raw json.RawMessage) string {
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err == nil {
		return strings.Join(many, "; ")
	}
	return ""
}

func decodeJSON(op string, raw []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// envelope is the {is_success, data, message} wrapper used by the posts resource.
type envelope struct {
	IsSuccess bool            `json:"is_success"`
	Data      json.RawMessage `json:"data"`
	Message   string          `json:"message"`
}

func decodeEnvelope(op string, status int, raw []byte, out any) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("%s: decode envelope: %w", op, err)
	}
	if !env.IsSuccess {
		msg := env.Message
		if msg == "" {
			msg = "request was not successful"
		}
		return &domain.ServerError{Status: status, Message: msg}
	}
	data := bytes.TrimSpace(env.Data)
	if out == nil || len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: decode data: %w", op, err)
	}
	return nil
}
