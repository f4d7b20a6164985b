package rxn4chemistry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rxn4chemistry/rxn4chemistry-go/ratelimit"
)

// Config holds construction options for a Client.
type Config struct {
	APIKey    string
	BaseURL   string
	ProjectID string
	Timeout   time.Duration

	// HTTPClient overrides the default client; Timeout is ignored then.
	HTTPClient *http.Client

	// Governor is consulted before every request. Defaults to a fail-fast
	// window governor with the platform limits.
	Governor ratelimit.Governor

	// Logger defaults to zap.NewNop(); pass a real logger to see error
	// classification details.
	Logger *zap.Logger
}

// DefaultConfig returns sensible defaults for the production platform.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:  apiKey,
		BaseURL: DefaultBaseURL,
		Timeout: 60 * time.Second,
	}
}

// Client calls the IBM RXN for Chemistry REST API.
type Client struct {
	httpClient *http.Client
	governor   ratelimit.Governor
	logger     *zap.Logger

	mu        sync.RWMutex
	apiKey    string
	projectID string
	endpoints *endpoints
}

// New creates a Client for the production platform.
func New(apiKey string) (*Client, error) {
	return NewWithConfig(DefaultConfig(apiKey))
}

// NewWithConfig creates a Client from an explicit configuration.
func NewWithConfig(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("rxn4chemistry: api key required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	eps, err := newEndpoints(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	governor := cfg.Governor
	if governor == nil {
		governor = ratelimit.NewWindow(ratelimit.DefaultMaxPerMinute, ratelimit.DefaultMinInterval)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		httpClient: httpClient,
		governor:   governor,
		logger:     logger,
		apiKey:     cfg.APIKey,
		projectID:  cfg.ProjectID,
		endpoints:  eps,
	}, nil
}

// SetProject sets the project id used by prediction and synthesis endpoints.
// The id can also be read off the project page URL.
func (c *Client) SetProject(projectID string) {
	c.mu.Lock()
	c.projectID = projectID
	c.mu.Unlock()
	c.logger.Info("project id set", zap.String("project_id", projectID))
}

// ProjectID returns the currently set project id.
func (c *Client) ProjectID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.projectID
}

// SetAPIKey replaces the API key used for authorization.
func (c *Client) SetAPIKey(apiKey string) {
	c.mu.Lock()
	c.apiKey = apiKey
	c.mu.Unlock()
	c.logger.Info("api key updated")
}

// SetBaseURL points the client at a different deployment of the platform.
func (c *Client) SetBaseURL(baseURL string) error {
	eps, err := newEndpoints(baseURL)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.endpoints = eps
	c.mu.Unlock()
	c.logger.Info("base url set", zap.String("base_url", baseURL))
	return nil
}

// requireProject returns the set project id or ErrNoProject.
func (c *Client) requireProject() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.projectID == "" {
		return "", ErrNoProject
	}
	return c.projectID, nil
}

func (c *Client) routes() *endpoints {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.endpoints
}

// send performs one governed HTTP call and returns the response with its
// fully read body. Every endpoint method funnels through here.
func (c *Client) send(ctx context.Context, method string, u *url.URL, query url.Values, body any) (*http.Response, []byte, error) {
	if err := c.governor.Acquire(ctx); err != nil {
		return nil, nil, err
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	target := *u
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return nil, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.mu.RLock()
	req.Header.Set("Authorization", c.apiKey)
	c.mu.RUnlock()

	requestID := uuid.NewString()
	c.logger.Debug("api request",
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("url", target.Redacted()))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("api request failed",
			zap.String("request_id", requestID), zap.Error(err))
		return nil, nil, fmt.Errorf("request %s %s: %w", method, target.Redacted(), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read response body: %w", err)
	}

	c.logger.Debug("api response",
		zap.String("request_id", requestID),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("body_bytes", len(respBody)))

	return resp, respBody, nil
}

// do issues a JSON API call and classifies the response, returning the
// payload on success.
func (c *Client) do(ctx context.Context, method string, u *url.URL, query url.Values, body any, wantStatus int) (json.RawMessage, error) {
	resp, respBody, err := c.send(ctx, method, u, query, body)
	if err != nil {
		return nil, err
	}
	return c.classify(resp, respBody, wantStatus)
}

// doRaw issues a call whose successful response is not a JSON envelope
// (report downloads). Non-matching status codes still go through the
// classifier so error payloads surface properly.
func (c *Client) doRaw(ctx context.Context, method string, u *url.URL, wantStatus int) ([]byte, error) {
	resp, respBody, err := c.send(ctx, method, u, nil, nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != wantStatus {
		if _, err := c.classify(resp, respBody, wantStatus); err != nil {
			return nil, err
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Body: respBody}
	}
	return respBody, nil
}
