package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ndemidova/chattr/internal/client/api"
	"github.com/ndemidova/chattr/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// reportAuthError prints a user-facing line for a failed auth call. A
// rejection carries the server's reason; anything else is reported as the
// server being unreachable.
func reportAuthError(action string, err error) {
	var rej *api.RejectedError
	if errors.As(err, &rej) {
		printlnFn(fmt.Sprintf("%s failed: %s", action, rej.Reason))
		return
	}
	printlnFn(fmt.Sprintf("%s failed: server unavailable, try again later", action))
}

// Register prompts for the profile fields and attempts to create a new
// account. Registration never logs the user in; on success they are told to
// log in with the same credentials.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.Register(ctx, name, email, username, password); err != nil {
		reportAuthError("Registration", err)
		return err
	}

	printlnFn("Account created, you can log in now.")
	return nil
}

// Login prompts for credentials and tries to authenticate. On success the
// session is persisted and the command set switches to the chat commands.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.Login(ctx, username, password); err != nil {
		reportAuthError("Login", err)
		return err
	}

	printlnFn(fmt.Sprintf("Logged in as %s", username))
	return nil
}

// Logout revokes the session remotely. Local state survives a failed
// revocation, so the user can retry.
func (a *App) Logout(ctx context.Context) error {
	status, err := a.session.Logout(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNotLoggedIn) {
			printlnFn("Not logged in.")
			return err
		}
		reportAuthError("Logout", err)
		return err
	}
	if status != common.StatusSuccess {
		printlnFn("Logout was not confirmed by the server, session kept.")
		return nil
	}

	printlnFn("Logged out.")
	return nil
}

// DeleteAccount asks for confirmation and removes the account behind the
// current session.
func (a *App) DeleteAccount(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "Delete this account? Type 'yes' to confirm", os.Stdout)
	if err != nil {
		return err
	}
	if answer != "yes" {
		printlnFn("Cancelled.")
		return nil
	}

	status, err := a.session.DeleteAccount(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNotLoggedIn) {
			printlnFn("Not logged in.")
			return err
		}
		reportAuthError("Account deletion", err)
		return err
	}
	if status != common.StatusSuccess {
		printlnFn("Deletion was not confirmed by the server, session kept.")
		return nil
	}

	printlnFn("Account deleted.")
	return nil
}

// WhoAmI prints the current session: username and token expiry.
func (a *App) WhoAmI(ctx context.Context) error {
	username, err := a.session.Username(ctx)
	if err != nil {
		return err
	}
	if username == "" {
		printlnFn("Not logged in.")
		return common.ErrNotLoggedIn
	}

	printlnFn(fmt.Sprintf("Logged in as %s", username))

	expiry, err := a.session.TokenExpiresAt(ctx)
	if err != nil {
		if errors.Is(err, common.ErrInvalidToken) {
			printlnFn("Token expiry: unknown")
			return nil
		}
		return err
	}
	printlnFn(fmt.Sprintf("Token expires at %s", expiry.Format("2006-01-02 15:04:05 MST")))
	return nil
}
