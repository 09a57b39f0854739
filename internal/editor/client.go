package editor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/libovin/cocos-skills/internal/foundation/errors"
	"github.com/libovin/cocos-skills/internal/logfields"
	"github.com/libovin/cocos-skills/internal/metrics"
)

// DefaultServerURL is where the editor bridge listens unless configured otherwise.
const DefaultServerURL = "http://127.0.0.1:54321"

// DefaultTimeout bounds a single bridge round trip.
const DefaultTimeout = 30 * time.Second

// Client issues editor messages over the HTTP bridge.
type Client struct {
	httpClient *http.Client
	baseURL    string
	validate   bool
	recorder   metrics.Recorder

	mu     sync.Mutex
	remote actionSet // lazily fetched listing from the server
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient = &http.Client{Timeout: d}
		}
	}
}

// WithRecorder attaches a metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(c *Client) {
		if r != nil {
			c.recorder = r
		}
	}
}

// WithValidation toggles the module/action allow-list check before Execute.
func WithValidation(enabled bool) Option {
	return func(c *Client) { c.validate = enabled }
}

// NewClient creates a bridge client for baseURL. An empty baseURL selects
// DefaultServerURL.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultServerURL
	}
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		validate:   true,
		recorder:   metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the bridge address this client targets.
func (c *Client) BaseURL() string { return c.baseURL }

type executeRequest struct {
	Params []any `json:"params"`
}

// Execute sends one editor message. A transport failure returns an error; an
// editor-side rejection returns a Response with Success=false and a nil error.
func (c *Client) Execute(ctx context.Context, module, action string, params ...any) (Response, error) {
	if c.validate {
		if err := c.checkAction(ctx, module, action); err != nil {
			return Response{}, err
		}
	}
	if params == nil {
		params = []any{}
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/"+module+"/"+action, executeRequest{Params: params})
	if err != nil {
		return Response{}, err
	}

	start := time.Now()
	resp, err := c.doRequest(req)
	elapsed := time.Since(start)
	c.recorder.ObserveRequestDuration(module, action, elapsed, err == nil && resp.Success)

	attrs := []any{logfields.Module(module), logfields.Action(action), logfields.DurationMS(float64(elapsed.Microseconds()) / 1000)}
	if err != nil {
		slog.Debug("Editor request failed", append(attrs, logfields.Error(err))...)
		return Response{}, err
	}
	slog.Debug("Editor request completed", append(attrs, slog.Bool("success", resp.Success))...)
	return resp, nil
}

// Health queries the bridge health endpoint.
func (c *Client) Health(ctx context.Context) (Response, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/server/health", nil)
	if err != nil {
		return Response{}, err
	}
	return c.doRequest(req)
}

// Modules lists the modules the running bridge exposes.
func (c *Client) Modules(ctx context.Context) ([]string, error) {
	var modules []string
	if err := c.getList(ctx, "/api/modules", &modules); err != nil {
		return nil, err
	}
	return modules, nil
}

// Actions lists the actions the running bridge exposes for module.
func (c *Client) Actions(ctx context.Context, module string) ([]string, error) {
	var actions []string
	if err := c.getList(ctx, "/api/modules/"+module+"/actions", &actions); err != nil {
		return nil, err
	}
	return actions, nil
}

func (c *Client) getList(ctx context.Context, endpoint string, out *[]string) error {
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := c.doRequest(req)
	if err != nil {
		return err
	}
	if !resp.Success {
		return errors.EditorError("editor rejected listing request").
			WithContext("endpoint", endpoint).
			WithContext("editor_error", resp.Error).
			Build()
	}
	return resp.DecodeData(out)
}

// checkAction accepts pairs from the static table first and only asks the
// server when a pair is unknown locally. The server listing is cached for
// the lifetime of the client.
func (c *Client) checkAction(ctx context.Context, module, action string) error {
	if known.has(module, action) {
		return nil
	}

	remote, err := c.remoteActions(ctx, module)
	if err != nil {
		slog.Debug("Could not fetch action listing from editor", logfields.Module(module), logfields.Error(err))
		remote = actionSet{}
	}
	if remote.has(module, action) {
		return nil
	}

	if !known.hasModule(module) && !remote.hasModule(module) {
		modules := known.modules()
		return errors.ValidationError(fmt.Sprintf("unknown module %q", module)).
			WithContext("available", strings.Join(modules, ", ")).
			Build()
	}
	available := known.actions(module)
	if len(available) == 0 {
		available = remote.actions(module)
	}
	return errors.ValidationError(fmt.Sprintf("unknown action %q for module %q", action, module)).
		WithContext("available", strings.Join(available, ", ")).
		Build()
}

// InvalidateActions drops the cached server listing so the next unknown pair
// is checked against a fresh one.
func (c *Client) InvalidateActions() {
	c.mu.Lock()
	c.remote = nil
	c.mu.Unlock()
}

func (c *Client) remoteActions(ctx context.Context, module string) (actionSet, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.remote != nil && c.remote.hasModule(module) {
		return c.remote, nil
	}
	if c.remote == nil {
		c.remote = actionSet{}
	}
	actions, err := c.Actions(ctx, module)
	if err != nil {
		return c.remote, err
	}
	c.remote.add(module, actions)
	return c.remote, nil
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, body any) (*http.Request, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, errors.ConfigError("failed to parse editor server URL").
			WithCause(err).
			WithContext("server_url", c.baseURL).
			Build()
	}
	u.Path = path.Join(strings.TrimSuffix(u.Path, "/"), strings.TrimPrefix(endpoint, "/"))

	var reader io.Reader = http.NoBody
	if body != nil {
		payload, mErr := json.Marshal(body)
		if mErr != nil {
			return nil, errors.InternalError("failed to marshal request body").WithCause(mErr).Build()
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, errors.NetworkError("failed to create request").
			WithCause(err).
			WithContext("method", method).
			WithContext("url", u.String()).
			Build()
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "cocos-skills/1.0")
	return req, nil
}

// doRequest executes req and decodes the bridge envelope. Error statuses whose
// body is still a bridge envelope are returned as editor rejections.
func (c *Client) doRequest(req *http.Request) (Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, errors.NetworkError("cannot reach editor").
			WithCause(err).
			WithContext("url", req.URL.String()).
			Build()
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, errors.NetworkError("failed to read editor response").
			WithCause(err).
			WithContext("url", req.URL.String()).
			Build()
	}

	var out Response
	decodeErr := json.Unmarshal(raw, &out)

	if resp.StatusCode >= 400 {
		if decodeErr == nil && out.Error != "" {
			return out, nil
		}
		body := strings.ReplaceAll(string(raw[:min(len(raw), 512)]), "\n", " ")
		return Failed(fmt.Sprintf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(body))), nil
	}
	if decodeErr != nil {
		return Response{}, errors.EditorError("editor returned malformed response").
			WithCause(decodeErr).
			WithContext("url", req.URL.String()).
			WithContext("status", resp.StatusCode).
			Build()
	}
	return out, nil
}
