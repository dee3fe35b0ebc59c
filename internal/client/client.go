package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/username/tool-rental/internal/api"
	"github.com/username/tool-rental/internal/catalog"
	"github.com/username/tool-rental/internal/rental"
)

const (
	defaultTimeout = 30 * time.Second
	defaultRetries = 3
	defaultBackoff = time.Second
)

// Client represents a rental service API client
type Client struct {
	baseURL    string
	httpClient *http.Client
	retries    int
	backoff    time.Duration // Multiplied by the attempt number
	logger     *zap.Logger
}

// APIError is a non-2xx response from the rental service
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Message)
}

// Is reports a 400 response as rental.ErrInvalidArgument
func (e *APIError) Is(target error) bool {
	return target == rental.ErrInvalidArgument && e.StatusCode == http.StatusBadRequest
}

func (e *APIError) temporary() bool {
	return e.StatusCode >= 500
}

// NewClient creates a new rental service client
func NewClient(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		retries: defaultRetries,
		backoff: defaultBackoff,
		logger:  logger,
	}
}

// SetRetryPolicy sets the number of attempts and the base backoff between them
func (c *Client) SetRetryPolicy(retries int, backoff time.Duration) {
	if retries < 1 {
		retries = 1
	}
	c.retries = retries
	c.backoff = backoff
}

// Checkout posts a checkout request and returns the agreement
func (c *Client) Checkout(ctx context.Context, req api.CheckoutRequest) (*rental.Agreement, error) {
	var agreement rental.Agreement
	if err := c.doRequest(ctx, http.MethodPost, "/checkout", req, &agreement); err != nil {
		return nil, fmt.Errorf("failed to check out %s: %w", req.ToolCode, err)
	}

	c.logger.Info("Remote checkout completed",
		zap.String("tool_code", agreement.ToolCode),
		zap.Int("charge_days", agreement.ChargeDays),
		zap.String("final_charge", agreement.FinalCharge.StringFixed(2)))

	return &agreement, nil
}

// ListTools returns the remote tool catalog
func (c *Client) ListTools(ctx context.Context) ([]catalog.Tool, error) {
	var tools []catalog.Tool
	if err := c.doRequest(ctx, http.MethodGet, "/tools", nil, &tools); err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}
	return tools, nil
}

// doRequest performs HTTP request with retry logic. Only network errors
// and 5xx responses are retried.
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var payload []byte
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		payload = jsonData
	}

	url := c.baseURL + path

	var lastErr error
	for attempt := 1; attempt <= c.retries; attempt++ {
		err := c.doRequestOnce(ctx, method, url, payload, result)
		if err == nil {
			return nil
		}

		var apiErr *APIError
		if errors.As(err, &apiErr) && !apiErr.temporary() {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		lastErr = err
		c.logger.Warn("Request failed, retrying",
			zap.String("url", url),
			zap.Int("attempt", attempt),
			zap.Int("max_retries", c.retries),
			zap.Error(err))

		if attempt < c.retries {
			timer := time.NewTimer(c.backoff * time.Duration(attempt))
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
	}

	return fmt.Errorf("request failed after %d attempts: %w", c.retries, lastErr)
}

// doRequestOnce performs a single HTTP request
func (c *Client) doRequestOnce(ctx context.Context, method, url string, payload []byte, result interface{}) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// Execute request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	// Read response
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Check status code
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(respBody)}
	}

	// Parse response
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// errorMessage extracts the server's error text, falling back to the raw body
func errorMessage(body []byte) string {
	var resp api.ErrorResponse
	if err := json.Unmarshal(body, &resp); err == nil && resp.Error != "" {
		return resp.Error
	}
	return strings.TrimSpace(string(body))
}
