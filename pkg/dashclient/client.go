/**
 * @description
 * This package provides a client for the dashboard service's REST API. It
 * encapsulates the session fetch, the admin choice list, the deposit info,
 * the send-mail call and the two login endpoints, authenticating with a
 * bearer token.
 */
package dashclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/selewanto/dashboard/internal/domain"
)

// ErrUnauthorized is returned for 401 responses; callers treat it as a
// signed-out session.
var ErrUnauthorized = errors.New("unauthorized")

// Client is a client for the dashboard service.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a new dashboard client with the given bearer token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}) error {
	if c.baseURL == "" {
		return fmt.Errorf("dashboard service base url is empty")
	}

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(raw)
	} else {
		body = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if strings.TrimSpace(c.token) != "" {
		req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(c.token))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request to dashboard service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("dashboard service returned error status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// GetCurrentUser fetches the session user via GET /users/me.
func (c *Client) GetCurrentUser(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListAdmins fetches the admin choice list via GET /users/admins.
func (c *Client) ListAdmins(ctx context.Context) ([]domain.AdminSummary, error) {
	var admins []domain.AdminSummary
	if err := c.do(ctx, http.MethodGet, "/users/admins", nil, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

// DepositInfo is the payload returned by GET /deposit-wallets.
type DepositInfo struct {
	Wallets []domain.DepositWallet `json:"wallets"`
	Limits  []domain.DepositLimit  `json:"limits"`
}

// GetDepositInfo fetches the deposit addresses and transfer limits via
// GET /deposit-wallets.
func (c *Client) GetDepositInfo(ctx context.Context) (*DepositInfo, error) {
	var info DepositInfo
	if err := c.do(ctx, http.MethodGet, "/deposit-wallets", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// SendMail submits a transfer mail request via POST /send-mail.
func (c *Client) SendMail(ctx context.Context, req domain.MailRequest) error {
	return c.do(ctx, http.MethodPost, "/send-mail", req, nil)
}

// LoginResponse is the payload returned by the login endpoints.
type LoginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Login authenticates a dashboard account and returns the issued token.
func Login(ctx context.Context, baseURL, email, password string) (*LoginResponse, error) {
	return login(ctx, baseURL, "/auth/login", email, password)
}

// AdminLogin authenticates an admin account and returns the issued token.
func AdminLogin(ctx context.Context, baseURL, email, password string) (*LoginResponse, error) {
	return login(ctx, baseURL, "/auth/admin/login", email, password)
}

func login(ctx context.Context, baseURL, path, email, password string) (*LoginResponse, error) {
	c := NewClient(baseURL, "")
	payload := map[string]string{"email": email, "password": password}
	var out LoginResponse
	if err := c.do(ctx, http.MethodPost, path, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
