// Package api implements the remote session client: stateless request and
// response functions against the chat service's HTTP API. The package owns
// no local state; persisting tokens and usernames is the session service's
// job.
package api

import (
	"context"

	"github.com/ndemidova/chattr/internal/client/models"
)

// Client describes the remote operations the application relies on.
//
// Contract:
//   - Login: exchange credentials for a session token.
//   - Logout: revoke the given token; the remote status string is returned
//     verbatim so the caller decides whether to clear local state.
//   - Register: create an account. Registration is not auto-login.
//   - DeleteAccount: remove the account behind the token.
//   - ListChats: fetch the signed-in user's conversation overviews.
//
// All methods honor context cancellation. Transport failures surface as
// ErrUnavailable and remote refusals as *RejectedError; no method panics or
// leaks an unclassified error for those cases.
type Client interface {
	Login(ctx context.Context, username, passwordDigest string) (string, error)
	Logout(ctx context.Context, token string) (string, error)
	Register(ctx context.Context, name, email, username, passwordDigest string) error
	DeleteAccount(ctx context.Context, token, username string) (string, error)
	ListChats(ctx context.Context, token string) ([]models.Chat, error)
}
