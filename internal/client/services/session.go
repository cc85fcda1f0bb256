// Package services contains the application services of the chattr client.
// This file defines the session service: the single owner of the persisted
// session token and username, the startup gate, and the remote auth flows.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/ndemidova/chattr/internal/client/api"
	"github.com/ndemidova/chattr/internal/client/models"
	"github.com/ndemidova/chattr/internal/client/repositories/session"
	"github.com/ndemidova/chattr/internal/common"
	"github.com/ndemidova/chattr/internal/cryptox"
	"github.com/ndemidova/chattr/internal/dbx"
	"github.com/ndemidova/chattr/internal/logging"
)

// SessionService owns all session state. Nothing else reads or writes the
// token and username keys; UI layers observe changes through Subscribe and
// re-run the Gate decision instead of polling storage.
//
// Contract:
//   - Login: authenticate and persist username+token atomically.
//   - Logout: revoke remotely; clear local state only on a success status.
//   - Register: create an account. Never persists anything (no auto-login).
//   - DeleteAccount: remove the account behind the cached username; clears
//     local state on success.
//   - IsLoggedIn/Gate: the startup decision. An absent and an empty token
//     are the same thing: unauthenticated.
//   - Chats: authorized fetch of the user's conversation overviews.
//
// All methods honor context cancellation. Session mutation is serialized:
// overlapping operations are applied in commit order, and a remote response
// that started against an older session generation is discarded rather than
// letting the last write win.
type SessionService interface {
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) (string, error)
	Register(ctx context.Context, name, email, username, password string) error
	DeleteAccount(ctx context.Context) (string, error)

	IsLoggedIn(ctx context.Context) (bool, error)
	Gate(ctx context.Context) (models.Route, error)
	Subscribe(fn func())

	Token(ctx context.Context) (string, error)
	Username(ctx context.Context) (string, error)
	TokenExpiresAt(ctx context.Context) (time.Time, error)

	Chats(ctx context.Context) ([]models.Chat, error)
}

type sessionService struct {
	client api.Client
	db     *sql.DB
	log    logging.Logger

	mu         sync.Mutex
	generation uint64
	subs       []func()
}

// NewSessionService constructs a SessionService bound to the given API
// client and local database.
func NewSessionService(client api.Client, db *sql.DB, log logging.Logger) SessionService {
	return &sessionService{client: client, db: db, log: log.With("component", "session")}
}

func (s *sessionService) repo() session.Repository {
	return session.NewSQLiteRepository(s.db)
}

// snapshot returns the current session generation.
func (s *sessionService) snapshot() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// commit runs fn under the mutation lock if the session generation is still
// the one the caller started from, bumps the generation, and schedules
// subscriber notification. A stale caller gets common.ErrStaleSession and
// must not retry blindly.
func (s *sessionService) commit(started uint64, fn func() error) error {
	s.mu.Lock()
	if s.generation != started {
		s.mu.Unlock()
		return common.ErrStaleSession
	}
	if err := fn(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.generation++
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
	return nil
}

// Login digests the password, authenticates remotely, and persists the
// username and token in a single transaction. On any failure local state is
// untouched.
func (s *sessionService) Login(ctx context.Context, username, password string) error {
	started := s.snapshot()

	token, err := s.client.Login(ctx, username, cryptox.PasswordDigest(password))
	if err != nil {
		s.log.Warn(ctx, "login failed", "username", username, "error", err)
		return fmt.Errorf("login error: %w", err)
	}

	err = s.commit(started, func() error {
		return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			repo := session.NewSQLiteRepository(tx)
			if err := repo.Set(ctx, common.KeyAuthToken, token); err != nil {
				return err
			}
			return repo.Set(ctx, common.KeyCurrentUser, username)
		})
	})
	if err != nil {
		s.log.Warn(ctx, "login response discarded", "username", username, "error", err)
		return err
	}

	s.log.Info(ctx, "logged in", "username", username)
	return nil
}

// Logout sends the stored token for revocation and returns the remote status
// verbatim. Local state is cleared only when that status is success; a failed
// logout leaves it byte-for-byte identical.
func (s *sessionService) Logout(ctx context.Context) (string, error) {
	started := s.snapshot()

	token, err := s.repo().Get(ctx, common.KeyAuthToken)
	if err != nil {
		return common.StatusError, err
	}
	if token == "" {
		return common.StatusError, common.ErrNotLoggedIn
	}

	status, err := s.client.Logout(ctx, token)
	if err != nil {
		s.log.Warn(ctx, "logout failed", "error", err)
		return status, fmt.Errorf("logout error: %w", err)
	}
	if status != common.StatusSuccess {
		return status, nil
	}

	if err := s.commit(started, func() error {
		return s.repo().Clear(ctx)
	}); err != nil {
		return status, err
	}

	s.log.Info(ctx, "logged out")
	return status, nil
}

// Register creates the account. It deliberately persists nothing: the user
// logs in afterwards with the same credentials.
func (s *sessionService) Register(ctx context.Context, name, email, username, password string) error {
	if err := s.client.Register(ctx, name, email, username, cryptox.PasswordDigest(password)); err != nil {
		s.log.Warn(ctx, "registration failed", "username", username, "error", err)
		return fmt.Errorf("register error: %w", err)
	}
	s.log.Info(ctx, "registered", "username", username)
	return nil
}

// DeleteAccount removes the account behind the cached username and clears
// local state when the server confirms.
func (s *sessionService) DeleteAccount(ctx context.Context) (string, error) {
	started := s.snapshot()

	repo := s.repo()
	token, err := repo.Get(ctx, common.KeyAuthToken)
	if err != nil {
		return common.StatusError, err
	}
	username, err := repo.Get(ctx, common.KeyCurrentUser)
	if err != nil {
		return common.StatusError, err
	}
	if token == "" || username == "" {
		return common.StatusError, common.ErrNotLoggedIn
	}

	status, err := s.client.DeleteAccount(ctx, token, username)
	if err != nil {
		return status, fmt.Errorf("delete account error: %w", err)
	}
	if status != common.StatusSuccess {
		return status, nil
	}

	if err := s.commit(started, func() error {
		return s.repo().Clear(ctx)
	}); err != nil {
		return status, err
	}

	s.log.Info(ctx, "account deleted", "username", username)
	return status, nil
}

// IsLoggedIn reports session presence. Storage failures surface as errors
// instead of silently reading as logged-out.
func (s *sessionService) IsLoggedIn(ctx context.Context) (bool, error) {
	token, err := s.repo().Get(ctx, common.KeyAuthToken)
	if err != nil {
		return false, err
	}
	return token != "", nil
}

// Gate is the one-shot startup decision between the two application regions.
func (s *sessionService) Gate(ctx context.Context) (models.Route, error) {
	loggedIn, err := s.IsLoggedIn(ctx)
	if err != nil {
		return models.RouteAuth, err
	}
	if loggedIn {
		return models.RouteChat, nil
	}
	return models.RouteAuth, nil
}

// Subscribe registers fn to run after every committed session change.
// Callbacks run outside the service lock, on the mutating goroutine.
func (s *sessionService) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *sessionService) Token(ctx context.Context) (string, error) {
	return s.repo().Get(ctx, common.KeyAuthToken)
}

func (s *sessionService) Username(ctx context.Context) (string, error) {
	return s.repo().Get(ctx, common.KeyCurrentUser)
}

// TokenExpiresAt reports when the stored token lapses, for display purposes.
func (s *sessionService) TokenExpiresAt(ctx context.Context) (time.Time, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return time.Time{}, err
	}
	if token == "" {
		return time.Time{}, common.ErrNotLoggedIn
	}
	return cryptox.TokenExpiry(token)
}

// Chats fetches the user's conversation overviews with the stored token.
func (s *sessionService) Chats(ctx context.Context) ([]models.Chat, error) {
	token, err := s.repo().Get(ctx, common.KeyAuthToken)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, common.ErrNotLoggedIn
	}

	chats, err := s.client.ListChats(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("list chats error: %w", err)
	}
	return chats, nil
}
