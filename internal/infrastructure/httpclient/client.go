// Package httpclient is the single chokepoint for calls to the dashboard
// REST API. It injects the bearer credential, unwraps successful payloads and
// turns every failure into a *domain.APIError.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/admindash/console/internal/core/domain"
	"github.com/admindash/console/internal/core/ports"
	"github.com/admindash/console/internal/pkg/metrics"
)

const (
	// DefaultTimeout bounds every request; there is no other cancellation.
	DefaultTimeout = 10 * time.Second

	maxBodyBytes = 8 << 20
)

// Config holds client configuration.
type Config struct {
	// BaseURL is the API origin including the /api prefix.
	BaseURL string
	Timeout time.Duration
	// HTTPClient overrides the transport; its Timeout is left untouched.
	HTTPClient *http.Client
}

// Request describes one API call. Path is relative to the base URL.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// Client performs API calls on behalf of the console.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     ports.TokenStore
	log        zerolog.Logger

	mu        sync.RWMutex
	onExpired []func(ctx context.Context)
}

// New validates cfg and returns a ready client.
func New(cfg Config, tokens ports.TokenStore, log zerolog.Logger) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", cfg.BaseURL)
	}
	if tokens == nil {
		return nil, errors.New("token store is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		tokens:     tokens,
		log:        log,
	}, nil
}

// OnSessionExpired registers fn to run after a 401 has cleared the token
// store and before the error is returned to the caller.
func (c *Client) OnSessionExpired(fn func(ctx context.Context)) {
	c.mu.Lock()
	c.onExpired = append(c.onExpired, fn)
	c.mu.Unlock()
}

// Do executes r and decodes the JSON payload into out (which may be nil).
// Any returned error is a *domain.APIError.
func (c *Client) Do(ctx context.Context, r Request, out any) error {
	start := time.Now()
	err := c.do(ctx, r, out)

	outcome := "ok"
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		outcome = string(apiErr.Kind)
	}
	metrics.ObserveAPIRequest(r.Method, resourceOf(r.Path), outcome, time.Since(start))

	return err
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body}, out)
}

// Patch performs a PATCH request.
func (c *Client) Patch(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPatch, Path: path, Query: query, Body: body}, out)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path}, out)
}

func (c *Client) do(ctx context.Context, r Request, out any) error {
	req, err := c.newRequest(ctx, r)
	if err != nil {
		return domain.NewRequestError(err)
	}
	c.authorize(ctx, req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("method", r.Method).Str("path", r.Path).Msg("api request got no response")
		return transportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &domain.APIError{Message: domain.MsgNetworkError, Kind: domain.KindNetwork}
	}

	c.log.Debug().
		Str("method", r.Method).
		Str("path", r.Path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(ctx, resp, body)
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return domain.NewRequestError(fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, r Request) (*http.Request, error) {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	target := c.baseURL + "/" + strings.TrimLeft(r.Path, "/")
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}

	var body io.Reader
	if r.Body != nil {
		payload, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// authorize attaches the stored credential. A missing or unreadable
// credential only means the header is omitted.
func (c *Client) authorize(ctx context.Context, req *http.Request) {
	token, err := c.tokens.Get(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNoCredential) {
			c.log.Warn().Err(err).Msg("token store read failed, sending request without credential")
		}
		return
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (c *Client) statusError(ctx context.Context, resp *http.Response, body []byte) error {
	msg := messageFromBody(body)
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, statusText(resp))
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.expire(ctx)
		return &domain.APIError{Message: msg, Kind: domain.KindUnauthorized, Status: resp.StatusCode}
	}
	return &domain.APIError{Message: msg, Kind: domain.KindServer, Status: resp.StatusCode}
}

// expire drops the credential and notifies subscribers. It runs even when
// the caller's context is already done.
func (c *Client) expire(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	if err := c.tokens.Clear(ctx); err != nil {
		c.log.Error().Err(err).Msg("failed to clear credential after 401")
	}
	metrics.SessionExpiredTotal.Inc()

	c.mu.RLock()
	listeners := append([]func(context.Context){}, c.onExpired...)
	c.mu.RUnlock()

	for _, fn := range listeners {
		fn(ctx)
	}
}

// messageFromBody picks the server's `message`, then `error` field. Empty
// strings, zero, false and null are skipped. An array is joined with commas
// and an object is returned as its JSON text.
func messageFromBody(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	for _, field := range []string{"message", "error"} {
		if msg := fieldMessage(gjson.GetBytes(body, field)); msg != "" {
			return msg
		}
	}
	return ""
}

func fieldMessage(v gjson.Result) string {
	switch {
	case v.Type == gjson.String:
		return v.Str
	case v.Type == gjson.Number && v.Num != 0,
		v.Type == gjson.True:
		return v.String()
	case v.IsArray():
		parts := make([]string, 0, len(v.Array()))
		for _, el := range v.Array() {
			parts = append(parts, fieldMessage(el))
		}
		return strings.Join(parts, ",")
	case v.IsObject():
		return v.Raw
	}
	return ""
}

// statusText is the reason phrase the server sent, falling back to the
// standard one.
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

// transportError classifies a failure of http.Client.Do. A request
// abandoned by its caller is a request failure; anything else means the
// request left but no response came back.
func transportError(err error) *domain.APIError {
	if errors.Is(err, context.Canceled) {
		return domain.NewRequestError(context.Canceled)
	}
	return &domain.APIError{Message: domain.MsgNetworkError, Kind: domain.KindNetwork}
}

func resourceOf(path string) string {
	path = strings.TrimLeft(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "root"
	}
	return path
}
