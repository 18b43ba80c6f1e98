// Package api is the typed client for the marketplace admin API. Every
// response travels in a `{success, data, message}` envelope which the client
// decodes at the boundary instead of trusting the payload shape downstream.
package api

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

	"go.uber.org/zap"
)

// trialExtensionMonths is the fixed increment granted by the extend-trial
// action; the console does not let the operator choose another value.
const trialExtensionMonths = 3

// Client issues authenticated requests against the admin API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *zap.Logger
}

// NewClient creates a client for the given base URL and bearer token.
func NewClient(baseURL, token string, timeout time.Duration, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// envelope is the wire shape shared by every endpoint.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Me validates the stored token against the identity-check endpoint.
func (c *Client) Me(ctx context.Context) (Identity, error) {
	var identity Identity
	if err := c.do(ctx, "me", http.MethodGet, "/api/v1/users/me", nil, &identity); err != nil {
		return Identity{}, err
	}
	return identity, nil
}

type chefListData struct {
	Chefs []ChefRecord `json:"chefs"`
	Stats ChefStats    `json:"stats"`
}

// ListChefs fetches the roster. FilterAll omits the status parameter; any
// other filter is passed through as ?status=<filter>.
func (c *Client) ListChefs(ctx context.Context, filter StatusFilter) ([]ChefRecord, ChefStats, error) {
	path := "/api/v1/admin/chefs"
	if filter != "" && filter != FilterAll {
		path += "?status=" + url.QueryEscape(string(filter))
	}
	var data chefListData
	if err := c.do(ctx, "list chefs", http.MethodGet, path, nil, &data); err != nil {
		return nil, ChefStats{}, err
	}
	return data.Chefs, data.Stats, nil
}

// ApproveChef marks the chef as verified. No body is required.
func (c *Client) ApproveChef(ctx context.Context, chefID string) error {
	path := fmt.Sprintf("/api/v1/admin/chefs/%s/approve", url.PathEscape(chefID))
	return c.do(ctx, "approve chef", http.MethodPost, path, nil, nil)
}

// RejectChef records a rejection with a free-text reason. An empty reason is
// accepted by the contract.
func (c *Client) RejectChef(ctx context.Context, chefID, reason string) error {
	path := fmt.Sprintf("/api/v1/admin/chefs/%s/reject", url.PathEscape(chefID))
	body := struct {
		Reason string `json:"reason"`
	}{Reason: reason}
	return c.do(ctx, "reject chef", http.MethodPost, path, body, nil)
}

// ExtendChefTrial pushes the chef's trial window out by the fixed increment.
func (c *Client) ExtendChefTrial(ctx context.Context, chefID string) error {
	path := fmt.Sprintf("/api/v1/admin/chefs/%s/extend-trial", url.PathEscape(chefID))
	body := struct {
		Months int `json:"months"`
	}{Months: trialExtensionMonths}
	return c.do(ctx, "extend chef trial", http.MethodPost, path, body, nil)
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindTransport, Op: op, Err: fmt.Errorf("encode body: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Kind: KindTransport, Op: op, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("request failed", zap.String("op", op), zap.Error(err))
		return &Error{Kind: KindTransport, Op: op, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		c.log.Warn("credential rejected", zap.String("op", op), zap.Int("status", resp.StatusCode))
		return &Error{Kind: KindAuth, Op: op, Message: fmt.Sprintf("status %d", resp.StatusCode)}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return &Error{Kind: KindTransport, Op: op, Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindTransport, Op: op, Err: fmt.Errorf("read response: %w", err)}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &Error{Kind: KindTransport, Op: op, Err: fmt.Errorf("decode envelope: %w", err)}
	}
	if !env.Success {
		c.log.Warn("server declared failure", zap.String("op", op), zap.String("message", env.Message))
		return &Error{Kind: KindApplication, Op: op, Message: env.Message}
	}
	if out != nil {
		if env.Data == nil {
			return &Error{Kind: KindApplication, Op: op, Message: "missing data in response"}
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &Error{Kind: KindTransport, Op: op, Err: fmt.Errorf("decode data: %w", err)}
		}
	}
	return nil
}
