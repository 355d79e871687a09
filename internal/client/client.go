// Package client implements the dashboard side of the API: a typed HTTP
// client that carries the session token, and the view controller managing
// page-local state over fetched records.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/demanddesk/api/internal/core/domain"
	"github.com/demanddesk/api/internal/core/ports"
	"github.com/demanddesk/api/internal/session"
)

// Client calls the REST API, attaching the bearer token from the session
// context to every protected request. Calls are never retried; a failure is
// reported once and the caller must re-trigger the action.
type Client struct {
	baseURL string
	http    *http.Client
	session *session.Context
}

func New(baseURL string, sess *session.Context) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		session: sess,
	}
}

type loginResult struct {
	Msg   string       `json:"msg"`
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Login authenticates and stores the returned token + user snapshot in the
// session context.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.User, error) {
	var res loginResult
	err := c.do(ctx, http.MethodPost, "/api/login", map[string]string{
		"email":    email,
		"password": password,
	}, &res, false)
	if err != nil {
		return nil, err
	}

	if err := c.session.Save(&session.Session{
		Token:     res.Token,
		UserID:    res.User.ID,
		Name:      res.User.Name,
		Email:     res.User.Email,
		Role:      res.User.Role,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		return nil, err
	}
	return res.User, nil
}

// Register creates an account; it does not log in.
func (c *Client) Register(ctx context.Context, name, email, password, phone string) error {
	return c.do(ctx, http.MethodPost, "/api/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
		"phone":    phone,
	}, nil, false)
}

// Logout clears both session stores.
func (c *Client) Logout() error {
	return c.session.Clear()
}

// ListDemands fetches the caller's demands, newest first.
func (c *Client) ListDemands(ctx context.Context) ([]*domain.Demand, error) {
	var demands []*domain.Demand
	if err := c.do(ctx, http.MethodGet, "/api/demands", nil, &demands, true); err != nil {
		return nil, err
	}
	return demands, nil
}

// GetDemand fetches one of the caller's demands by id.
func (c *Client) GetDemand(ctx context.Context, id string) (*domain.Demand, error) {
	var demand domain.Demand
	if err := c.do(ctx, http.MethodGet, "/api/demands/"+id, nil, &demand, true); err != nil {
		return nil, err
	}
	return &demand, nil
}

type demandEnvelope struct {
	Msg    string         `json:"msg"`
	Demand *domain.Demand `json:"demand"`
}

// CreateDemand submits a new demand.
func (c *Client) CreateDemand(ctx context.Context, input ports.CreateDemandInput) (*domain.Demand, error) {
	var res demandEnvelope
	err := c.do(ctx, http.MethodPost, "/api/demands", map[string]any{
		"title":             input.Title,
		"category":          input.Category,
		"description":       input.Description,
		"budget":            input.Budget,
		"deadline":          input.Deadline,
		"contactPreference": input.ContactPreference,
		"files":             input.Files,
	}, &res, true)
	if err != nil {
		return nil, err
	}
	return res.Demand, nil
}

// DeleteDemand removes one of the caller's demands.
func (c *Client) DeleteDemand(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/demands/"+id, nil, nil, true)
}

// Statistics fetches the caller's demand counts.
func (c *Client) Statistics(ctx context.Context) (*ports.UserStats, error) {
	var stats ports.UserStats
	if err := c.do(ctx, http.MethodGet, "/api/statistics", nil, &stats, true); err != nil {
		return nil, err
	}
	return &stats, nil
}

// do performs one request/response cycle. When authed, the session token is
// attached; a missing session fails before any network traffic.
func (c *Client) do(ctx context.Context, method, path string, body any, out any, authed bool) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	if authed {
		sess, err := c.session.Load()
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Msg string `json:"msg"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Msg == "" {
			e.Msg = resp.Status
		}
		return fmt.Errorf("%s %s: %s", method, path, e.Msg)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
