// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

var (
	ErrNoSession      = errors.New("no active session")
	ErrBadCredentials = errors.New("invalid email or password")
)

// Session is the token bundle returned by a password sign-in.
type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
}

// User identifies the holder of a verified access token.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Client talks to a GoTrue-compatible auth provider (Supabase auth).
// Verified tokens are cached briefly so the session guard does not hit the
// provider on every request.
type Client struct {
	base    string
	anonKey string
	client  *http.Client

	mu    sync.Mutex
	cache map[string]cachedUser
	now   func() time.Time
}

type cachedUser struct {
	user    User
	expires time.Time
}

const cacheTTL = time.Minute

// NewClient returns an auth client for the provider at baseURL (including
// the /auth/v1 prefix on Supabase).
func NewClient(baseURL, anonKey string) *Client {
	return &Client{
		base:    strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		client:  &http.Client{Timeout: 15 * time.Second},
		cache:   make(map[string]cachedUser),
		now:     time.Now,
	}
}

// SignIn performs the password grant and returns the session tokens.
func (c *Client) SignIn(ctx context.Context, email, password string) (Session, error) {
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.base+"/token?grant_type=password", bytes.NewReader(body))
	if err != nil {
		return Session{}, err
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Session{}, fmt.Errorf("sign in: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
		io.Copy(io.Discard, resp.Body)
		return Session{}, ErrBadCredentials
	}
	if resp.StatusCode != http.StatusOK {
		return Session{}, fmt.Errorf("sign in: status %d", resp.StatusCode)
	}

	var sess Session
	if err := json.NewDecoder(resp.Body).Decode(&sess); err != nil {
		return Session{}, fmt.Errorf("sign in: decode: %w", err)
	}
	if sess.AccessToken == "" {
		return Session{}, ErrNoSession
	}
	return sess, nil
}

// User verifies an access token against the provider and returns its user.
// Tokens the provider rejects map to ErrNoSession.
func (c *Client) User(ctx context.Context, token string) (User, error) {
	if token == "" {
		return User{}, ErrNoSession
	}

	c.mu.Lock()
	if hit, ok := c.cache[token]; ok && c.now().Before(hit.expires) {
		c.mu.Unlock()
		return hit.user, nil
	}
	c.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/user", nil)
	if err != nil {
		return User{}, err
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return User{}, fmt.Errorf("verify session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		io.Copy(io.Discard, resp.Body)
		return User{}, ErrNoSession
	}
	if resp.StatusCode != http.StatusOK {
		return User{}, fmt.Errorf("verify session: status %d", resp.StatusCode)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return User{}, fmt.Errorf("verify session: decode: %w", err)
	}

	c.mu.Lock()
	c.cache[token] = cachedUser{user: user, expires: c.now().Add(cacheTTL)}
	c.mu.Unlock()

	return user, nil
}
