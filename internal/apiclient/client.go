// Package apiclient implements service.Service over the project, user and AI
// backends. Every call waits for the identity layer, attaches the bearer token
// when one is available, and normalizes failures into *APIError.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"pmctl/internal/service"
)

const (
	// DefaultBaseURL is the primary project service.
	DefaultBaseURL = "http://localhost:8003"

	// DefaultUserServiceURL is the user directory service.
	DefaultUserServiceURL = "http://localhost:8001"

	// DefaultAIServiceURL is the assistant webhook.
	DefaultAIServiceURL = "https://n8n.serperp.com/webhook-test/chat"

	// DefaultRequestTimeout is the timeout for one API call.
	DefaultRequestTimeout = 30 * time.Second
)

// Base selects which backend a call targets.
type Base int

const (
	// Primary is the project/task/department service.
	Primary Base = iota

	// UserService is the user directory service.
	UserService
)

// Options configures a Client. Zero values fall back to the defaults above.
type Options struct {
	BaseURL        string
	UserServiceURL string
	AIServiceURL   string
	HTTPClient     *http.Client
	Gate           *Gate
	Tokens         *Bridge
	ReadyTimeout   time.Duration
	RequestTimeout time.Duration
	Logger         *slog.Logger
}

var _ service.Service = (*Client)(nil)

// Client is safe for concurrent use.
type Client struct {
	baseURL        string
	userServiceURL string
	aiServiceURL   string
	http           *http.Client
	gate           *Gate
	tokens         *Bridge
	readyTimeout   time.Duration
	requestTimeout time.Duration
	logger         *slog.Logger
}

// New creates a client. A nil Gate is treated as already ready and a nil
// Bridge as a signed-out session.
func New(opts Options) *Client {
	c := &Client{
		baseURL:        strings.TrimRight(orDefault(opts.BaseURL, DefaultBaseURL), "/"),
		userServiceURL: strings.TrimRight(orDefault(opts.UserServiceURL, DefaultUserServiceURL), "/"),
		aiServiceURL:   orDefault(opts.AIServiceURL, DefaultAIServiceURL),
		http:           opts.HTTPClient,
		gate:           opts.Gate,
		tokens:         opts.Tokens,
		readyTimeout:   opts.ReadyTimeout,
		requestTimeout: opts.RequestTimeout,
		logger:         opts.Logger,
	}
	if c.http == nil {
		c.http = http.DefaultClient
	}
	if c.gate == nil {
		c.gate = NewGate()
		c.gate.SetReady(true)
	}
	if c.tokens == nil {
		c.tokens = NewBridge()
	}
	if c.readyTimeout <= 0 {
		c.readyTimeout = DefaultReadyTimeout
	}
	if c.requestTimeout <= 0 {
		c.requestTimeout = DefaultRequestTimeout
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// Call describes one request.
type Call struct {
	Method   string
	Base     Base
	Endpoint string
	Body     any
	Header   http.Header
}

// Request issues exactly one HTTP request and decodes a 2xx JSON body into out.
// A 204 leaves out at its zero value (an empty map for *map[string]any).
// Any other status is returned as *APIError.
func (c *Client) Request(ctx context.Context, call Call, out any) error {
	method := call.Method
	if method == "" {
		method = http.MethodGet
	}
	url := c.urlFor(call.Base) + call.Endpoint
	log := c.logger.With(slog.String("request_id", uuid.NewString()))
	log.Debug("api request", slog.String("method", method), slog.String("url", url))

	if err := c.gate.Wait(ctx, c.readyTimeout); err != nil {
		return err
	}

	var body io.Reader
	if call.Body != nil {
		data, err := json.Marshal(call.Body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for key, values := range call.Header {
		req.Header.Del(key)
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	c.authorize(ctx, req, log)

	resp, err := c.http.Do(req)
	if err != nil {
		apiErr := transportError(err)
		log.Error("api request failed", slog.String("error", apiErr.Message))
		return apiErr
	}
	defer resp.Body.Close()

	log.Debug("api response", slog.Int("status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, readErr := io.ReadAll(resp.Body)
		apiErr := classifyResponse(resp.StatusCode, data, readErr)
		if apiErr.Type == ErrorNoDepartment {
			log.Info("caller has no department", slog.Int("status", apiErr.Status))
		} else {
			log.Error("api error", slog.Int("status", apiErr.Status), slog.String("error", apiErr.Message))
		}
		return apiErr
	}

	if resp.StatusCode == http.StatusNoContent {
		if m, ok := out.(*map[string]any); ok && *m == nil {
			*m = map[string]any{}
		}
		return nil
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", call.Endpoint, err)
	}
	return nil
}

// authorize attaches the bearer token when the provider yields one.
// Provider failures never fail the request; the backend decides whether
// the call needed auth.
func (c *Client) authorize(ctx context.Context, req *http.Request, log *slog.Logger) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		log.Warn("auth token provider failed, proceeding without Authorization header", slog.String("error", err.Error()))
		return
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (c *Client) urlFor(base Base) string {
	if base == UserService {
		return c.userServiceURL
	}
	return c.baseURL
}

func transportError(err error) *APIError {
	msg := fmt.Sprintf("request failed: %v", err)
	if errors.Is(err, context.DeadlineExceeded) {
		msg = "request timed out"
	}
	return &APIError{Type: ErrorGeneric, Message: msg, Err: err}
}

// send issues a call and decodes the response as T.
func send[T any](ctx context.Context, c *Client, method string, base Base, endpoint string, body any) (T, error) {
	var out T
	err := c.Request(ctx, Call{Method: method, Base: base, Endpoint: endpoint, Body: body}, &out)
	return out, err
}

// get is send with GET and no body.
func get[T any](ctx context.Context, c *Client, base Base, endpoint string) (T, error) {
	return send[T](ctx, c, http.MethodGet, base, endpoint, nil)
}

// remove issues a DELETE and discards the response body.
func remove(ctx context.Context, c *Client, endpoint string) error {
	return c.Request(ctx, Call{Method: http.MethodDelete, Endpoint: endpoint}, nil)
}
