// Package client is the Go API client for the family service. It owns the
// client side of the session contract: the persisted token, the eager
// "who am I" bootstrap, and uniform logout on any authentication failure.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// ErrNetwork tags transport failures (no response received). These are
// never conflated with validation or authentication failures.
var ErrNetwork = errors.New("network error")

// APIError is a structured error response from the service.
type APIError struct {
	Status   int
	Message  string
	Errors   map[string]string
	Messages []string
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("%s (%d): %v", e.Message, e.Status, e.Errors)
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.Status)
}

// User is the authenticated identity as carried in the token.
type User struct {
	ID   string
	Name string
}

// Client is a family-service API client with in-memory session state.
// Methods are safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	store   *TokenStore

	mu      sync.Mutex
	token   string
	user    *User
	loading bool
}

// New builds a client against baseURL, persisting tokens through store.
func New(baseURL string, store *TokenStore) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		store:   store,
	}
}

// Bootstrap loads a persisted token, if any, and eagerly verifies it against
// the dashboard endpoint. Any failure clears the token and leaves the
// session unauthenticated; a partial user is never exposed.
func (c *Client) Bootstrap(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.loading = false
		c.mu.Unlock()
	}()

	token, err := c.store.Load()
	if err != nil {
		return err
	}
	if token == "" {
		return nil
	}

	c.mu.Lock()
	c.token = token
	c.mu.Unlock()

	if _, _, err := c.Dashboard(ctx); err != nil {
		c.Logout()
		return nil
	}

	user, err := identityFromToken(token)
	if err != nil {
		c.Logout()
		return nil
	}

	c.mu.Lock()
	c.user = user
	c.mu.Unlock()
	return nil
}

// Register creates an account and starts a session with the issued token.
func (c *Client) Register(ctx context.Context, username, email, password string) (*User, error) {
	var out struct {
		User struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"user"`
		Token string `json:"token"`
	}
	body := map[string]string{"username": username, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/register", body, &out); err != nil {
		return nil, err
	}

	user := &User{ID: out.User.ID, Name: out.User.Name}
	if err := c.startSession(out.Token, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates and starts a session with the issued token.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var out struct {
		Token string `json:"token"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", body, &out); err != nil {
		return nil, err
	}

	user, err := identityFromToken(out.Token)
	if err != nil {
		return nil, err
	}
	if err := c.startSession(out.Token, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (c *Client) startSession(token string, user *User) error {
	if err := c.store.Save(token); err != nil {
		return err
	}
	c.mu.Lock()
	c.token = token
	c.user = user
	c.mu.Unlock()
	return nil
}

// Logout clears persisted and in-memory session state.
func (c *Client) Logout() {
	_ = c.store.Clear()
	c.mu.Lock()
	c.token = ""
	c.user = nil
	c.mu.Unlock()
}

// CurrentUser returns the authenticated identity, if any.
func (c *Client) CurrentUser() (*User, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return nil, false
	}
	u := *c.user
	return &u, true
}

// IsAuthenticated reports whether a session is active.
func (c *Client) IsAuthenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user != nil
}

// IsLoading reports whether the initial bootstrap is in flight.
func (c *Client) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Dashboard calls the protected dashboard endpoint.
func (c *Client) Dashboard(ctx context.Context) (message, secret string, err error) {
	var out struct {
		Message string `json:"message"`
		Secret  string `json:"secret"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/auth/dashboard", nil, &out); err != nil {
		return "", "", err
	}
	return out.Message, out.Secret, nil
}

// identityFromToken decodes the user identity from the token payload. The
// signature is not checked here; the server is the verifier.
func identityFromToken(token string) (*User, error) {
	var claims struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		jwt.RegisteredClaims
	}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, err
	}
	if claims.ID == "" {
		return nil, errors.New("token carries no identity")
	}
	return &User{ID: claims.ID, Name: claims.Name}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	if resp.StatusCode >= 400 {
		if resp.StatusCode == http.StatusUnauthorized {
			// The server rejected our credential; drop it everywhere.
			c.Logout()
		}
		return parseAPIError(resp.StatusCode, raw)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func parseAPIError(status int, raw []byte) error {
	var env struct {
		Message  string            `json:"message"`
		Errors   map[string]string `json:"errors"`
		Error    string            `json:"error"`
		Messages []string          `json:"messages"`
	}
	_ = json.Unmarshal(raw, &env)

	message := env.Message
	if message == "" {
		message = env.Error
	}
	if message == "" {
		message = "request failed with status " + strconv.Itoa(status)
	}
	return &APIError{Status: status, Message: message, Errors: env.Errors, Messages: env.Messages}
}
