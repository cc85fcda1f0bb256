package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newServer builds a test server plus a client pointed at it. The handler
// receives every request; tests switch on method+path inside it.
func newServer(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL+"/", 5*time.Second)
}

func TestLogin_Success_ReturnsToken(t *testing.T) {
	var gotBody map[string]string
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"status":"success","data":{"token":"tok-1"}}`))
	})

	token, err := c.Login(context.Background(), "alice", "abc123")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
	assert.Equal(t, "alice", gotBody["username"])
	assert.Equal(t, "abc123", gotBody["password"])
}

func TestLogin_Rejected_CarriesReason(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status":"error","reason":"invalid username or password"}`))
	})

	_, err := c.Login(context.Background(), "alice", "bad")
	require.ErrorIs(t, err, ErrRejected)

	var rej *RejectedError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, "invalid username or password", rej.Reason)
}

func TestLogin_SuccessWithoutToken_Unavailable(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","data":{}}`))
	})

	_, err := c.Login(context.Background(), "alice", "abc")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestLogin_UnreachableHost_Unavailable(t *testing.T) {
	// Point at a server that is already closed.
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := NewHTTPClient(srv.URL+"/", time.Second)

	_, err := c.Login(context.Background(), "alice", "abc")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestLogin_MalformedBody_Unavailable(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>gateway error</html>`))
	})

	_, err := c.Login(context.Background(), "alice", "abc")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestLogout_ReturnsStatusVerbatim(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/auth/logout", r.URL.Path)
		require.Equal(t, "tok-1", r.Header.Get("Authorization"))
		w.Write([]byte(`{"status":"success"}`))
	})

	status, err := c.Logout(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "success", status)
}

func TestLogout_RemoteError_StatusPassedThrough(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"status":"error","reason":"failed to get token parts"}`))
	})

	status, err := c.Logout(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "error", status)
}

func TestLogout_TransportFailure_SentinelAndError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := NewHTTPClient(srv.URL+"/", time.Second)

	status, err := c.Logout(context.Background(), "tok-1")
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, "error", status)
}

func TestRegister_Success(t *testing.T) {
	var gotBody map[string]string
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/users", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"status":"success"}`))
	})

	err := c.Register(context.Background(), "Alice A", "alice@example.org", "alice", "abc123")
	require.NoError(t, err)
	assert.Equal(t, "Alice A", gotBody["name"])
	assert.Equal(t, "alice@example.org", gotBody["email"])
	assert.Equal(t, "alice", gotBody["username"])
	assert.Equal(t, "abc123", gotBody["password"])
}

func TestRegister_DuplicateUsername_Rejected(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"status":"error","reason":"username already taken"}`))
	})

	err := c.Register(context.Background(), "A", "a@b.c", "alice", "abc")
	require.ErrorIs(t, err, ErrRejected)
}

func TestDeleteAccount_EscapesUsernameAndSendsToken(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/users/alice", r.URL.Path)
		require.Equal(t, "tok-1", r.Header.Get("Authorization"))
		w.Write([]byte(`{"status":"success"}`))
	})

	status, err := c.DeleteAccount(context.Background(), "tok-1", "alice")
	require.NoError(t, err)
	assert.Equal(t, "success", status)
}

func TestListChats_ReturnsData(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chats", r.URL.Path)
		require.Equal(t, "tok-1", r.Header.Get("Authorization"))
		w.Write([]byte(`{"status":"success","data":[
			{"uuid":"c1","name":"pair","users":["alice","bob"],
			 "messages":[{"id":"m1","text":"hi","author":"peer"}]}
		]}`))
	})

	chats, err := c.ListChats(context.Background(), "tok-1")
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, "c1", chats[0].UUID)
	require.NotNil(t, chats[0].LastMessage())
	assert.Equal(t, "hi", chats[0].LastMessage().Text)
}

func TestListChats_EmptyData(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","data":[]}`))
	})

	chats, err := c.ListChats(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Empty(t, chats)
}

func TestListChats_Unauthorized_Rejected(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status":"error","reason":"invalid token"}`))
	})

	_, err := c.ListChats(context.Background(), "stale")
	require.ErrorIs(t, err, ErrRejected)
}
