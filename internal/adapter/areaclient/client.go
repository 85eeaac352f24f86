// Package areaclient talks to the areacheck HTTP API.
package areaclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	domainErrors "github.com/polkiloo/areacheck/internal/domain/errors"
	"github.com/polkiloo/areacheck/internal/server/http/dto"
)

const defaultTimeout = 10 * time.Second

// APIError is a non-2xx response decoded from the error envelope.
type APIError struct {
	Status  int
	Kind    string
	Message string
}

func (e *APIError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("http %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("http %d %s: %s", e.Status, e.Kind, e.Message)
}

// Unwrap maps the error kind back onto the domain sentinel.
func (e *APIError) Unwrap() error {
	switch e.Kind {
	case dto.KindInvalidArgument:
		return domainErrors.ErrInvalidArgument
	case dto.KindUsernameTaken:
		return domainErrors.ErrUsernameTaken
	case dto.KindInvalidCredentials:
		return domainErrors.ErrInvalidCredentials
	case dto.KindUnauthenticated:
		return domainErrors.ErrUnauthenticated
	case dto.KindStoreUnavailable:
		return domainErrors.ErrStoreUnavailable
	case dto.KindRequestInProgress:
		return domainErrors.ErrRequestInProgress
	}
	return nil
}

// Client is a thin resty wrapper holding the current bearer token.
type Client struct {
	http  *resty.Client
	token string
}

// New validates baseURL and builds a Client. A missing scheme defaults to http.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	normalized, err := normalizeBaseURL(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server address: %w", err)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	rc := resty.New().
		SetBaseURL(normalized).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &Client{http: rc}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}
	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken sets the bearer token for subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = strings.TrimSpace(token)
}

func (c *Client) Token() string {
	return c.token
}

func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if c.token != "" {
		req.SetAuthToken(c.token)
	}
	return req
}

func (c *Client) Register(ctx context.Context, username, password string) error {
	resp, err := c.request(ctx).
		SetBody(dto.AuthRequest{Username: username, Password: password}).
		Post("/api/register")
	if err != nil {
		return fmt.Errorf("register request: %w", err)
	}
	return mapHTTPError(resp)
}

// Login authenticates and keeps the issued token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var out dto.TokenResponse
	resp, err := c.request(ctx).
		SetBody(dto.AuthRequest{Username: username, Password: password}).
		SetResult(&out).
		Post("/api/login")
	if err != nil {
		return "", fmt.Errorf("login request: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", fmt.Errorf("login: empty token in response")
	}
	c.SetToken(out.Token)
	return out.Token, nil
}

// Logout ends the session and forgets the token.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.request(ctx).Post("/api/logout")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return err
	}
	c.token = ""
	return nil
}

// Submit checks a point. A non-empty idempotencyKey makes retries safe.
func (c *Client) Submit(ctx context.Context, x, y, r float64, idempotencyKey string) (*dto.PointResponse, error) {
	var out dto.PointResponse
	req := c.request(ctx).
		SetBody(dto.PointRequest{X: &x, Y: &y, R: &r}).
		SetResult(&out)
	if idempotencyKey != "" {
		req.SetHeader("Idempotency-Key", idempotencyKey)
	}
	resp, err := req.Post("/api/points")
	if err != nil {
		return nil, fmt.Errorf("submit request: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Points(ctx context.Context) ([]dto.PointResponse, error) {
	var out []dto.PointResponse
	resp, err := c.request(ctx).SetResult(&out).Get("/api/points")
	if err != nil {
		return nil, fmt.Errorf("list request: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	var out dto.StatsResponse
	resp, err := c.request(ctx).SetResult(&out).Get("/api/stats")
	if err != nil {
		return nil, fmt.Errorf("stats request: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return nil, err
	}
	return &out, nil
}

func mapHTTPError(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}
	apiErr := &APIError{Status: resp.StatusCode()}
	var envelope dto.ErrorResponse
	if err := json.Unmarshal(resp.Body(), &envelope); err == nil && envelope.Error.Kind != "" {
		apiErr.Kind = envelope.Error.Kind
		apiErr.Message = envelope.Error.Message
		return apiErr
	}
	apiErr.Message = strings.TrimSpace(string(resp.Body()))
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode())
	}
	return apiErr
}
