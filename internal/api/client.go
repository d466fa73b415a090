package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TokenSource yields the current access token, or "" when nobody is
// logged in. The auth manager implements it; the client itself never
// reads or writes session state.
type TokenSource interface {
	AccessToken() string
}

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// BaseURL is the base URL of the event-management backend
	// (e.g., "http://localhost:3000").
	BaseURL string
	// HTTPClient is used for all requests. If nil, a client with a
	// default timeout is used.
	HTTPClient *http.Client
	// Logger is used for structured logging. If nil, slog.Default().
	Logger *slog.Logger
}

// Client issues REST calls against the backend, attaching the bearer
// token when one is available and normalizing error responses.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	tokens     TokenSource
}

const defaultTimeout = 15 * time.Second

func NewClient(config ClientConfig) (*Client, error) {
	if strings.TrimSpace(config.BaseURL) == "" {
		return nil, fmt.Errorf("api: BaseURL is required")
	}
	if _, err := url.Parse(config.BaseURL); err != nil {
		return nil, fmt.Errorf("api: invalid BaseURL %q: %w", config.BaseURL, err)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// SetTokenSource wires the token source after construction. The auth
// manager needs the client to log in, so it cannot exist first.
func (c *Client) SetTokenSource(tokens TokenSource) {
	c.tokens = tokens
}

// do performs an HTTP request and returns the response body. On 2xx,
// returns the body. On 4xx/5xx, returns a *APIError carrying the
// backend-supplied message when present. withAuth controls whether the
// Authorization header is attached.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, requestBody any, withAuth bool) ([]byte, error) {
	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("api: encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("api: create request: %w", err)
	}
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if withAuth && c.tokens != nil {
		if token := c.tokens.AccessToken(); token != "" {
			request.Header.Set("Authorization", "Bearer "+token)
		}
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("api: request %s %s failed: %w", method, path, err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("api: read response body: %w", err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return responseBody, nil
	}

	apiErr := &APIError{StatusCode: response.StatusCode}
	// Backend error bodies carry either "message" or "error".
	var errBody struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(responseBody, &errBody) == nil {
		if errBody.Message != "" {
			apiErr.Message = errBody.Message
		} else if errBody.Error != "" {
			apiErr.Message = errBody.Error
		}
	}
	c.logger.Debug("backend call failed",
		"method", method,
		"path", path,
		"status", response.StatusCode,
		"message", apiErr.Message,
	)
	return responseBody, apiErr
}
