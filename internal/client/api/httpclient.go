package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/ndemidova/chattr/internal/client/models"
	"github.com/ndemidova/chattr/internal/common"
)

// HTTPClient talks JSON over HTTP to the chat API. The base URL varies per
// deployment and must end with a slash; paths are joined onto it verbatim.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient returns a client bound to baseURL. The timeout bounds every
// request end to end so a hung server cannot stall the caller indefinitely;
// zero means no client-side deadline.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// envelope is the response body shape shared by all endpoints:
// {status, reason?, data?}.
type envelope struct {
	Status string          `json:"status"`
	Reason string          `json:"reason"`
	Data   json.RawMessage `json:"data"`
}

// do sends one request and decodes the response envelope. Any transport or
// decode problem is collapsed into ErrUnavailable; the envelope is returned
// even when its status is not success so callers can inspect it.
func (c *HTTPClient) do(ctx context.Context, method, path, token string, body any) (*envelope, error) {
	var reqBody *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, ErrUnavailable
		}
		reqBody = bytes.NewBuffer(encoded)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, ErrUnavailable
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(common.AuthHeaderName, token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, ErrUnavailable
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, ErrUnavailable
	}
	return &env, nil
}

// check converts a non-success envelope into a *RejectedError.
func (c *HTTPClient) check(env *envelope) error {
	if env.Status != common.StatusSuccess {
		return &RejectedError{Reason: env.Reason}
	}
	return nil
}

// Login exchanges a username and password digest for a session token.
// A success envelope without a token is a protocol violation and is treated
// as unavailability rather than a refusal.
func (c *HTTPClient) Login(ctx context.Context, username, passwordDigest string) (string, error) {
	env, err := c.do(ctx, http.MethodPost, "auth/login", "", map[string]string{
		"username": username,
		"password": passwordDigest,
	})
	if err != nil {
		return "", err
	}
	if err := c.check(env); err != nil {
		return "", err
	}

	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.Token == "" {
		return "", ErrUnavailable
	}
	return data.Token, nil
}

// Logout revokes the token and returns the remote status string verbatim.
// On transport failure the status is the "error" sentinel. Logout never
// touches local state; clearing the stored token is the caller's decision.
func (c *HTTPClient) Logout(ctx context.Context, token string) (string, error) {
	env, err := c.do(ctx, http.MethodGet, "auth/logout", token, nil)
	if err != nil {
		return common.StatusError, err
	}
	return env.Status, nil
}

// Register creates a new account. Nothing is persisted locally: the user
// still has to log in afterwards.
func (c *HTTPClient) Register(ctx context.Context, name, email, username, passwordDigest string) error {
	env, err := c.do(ctx, http.MethodPost, "users", "", map[string]string{
		"name":     name,
		"email":    email,
		"username": username,
		"password": passwordDigest,
	})
	if err != nil {
		return err
	}
	return c.check(env)
}

// DeleteAccount removes the account and returns the remote status string for
// the caller to inspect.
func (c *HTTPClient) DeleteAccount(ctx context.Context, token, username string) (string, error) {
	env, err := c.do(ctx, http.MethodDelete, "users/"+url.PathEscape(username), token, nil)
	if err != nil {
		return common.StatusError, err
	}
	return env.Status, nil
}

// ListChats fetches the user's conversation overviews.
func (c *HTTPClient) ListChats(ctx context.Context, token string) ([]models.Chat, error) {
	env, err := c.do(ctx, http.MethodGet, "api/chats", token, nil)
	if err != nil {
		return nil, err
	}
	if err := c.check(env); err != nil {
		return nil, err
	}

	var chats []models.Chat
	if err := json.Unmarshal(env.Data, &chats); err != nil {
		return nil, ErrUnavailable
	}
	return chats, nil
}
