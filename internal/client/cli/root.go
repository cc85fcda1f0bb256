package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/ndemidova/chattr/internal/client/models"
)

// getStatus renders the prompt status: the cached username when logged in,
// "guest" otherwise.
func (a *App) getStatus() string {
	username, err := a.session.Username(context.Background())
	if err != nil || username == "" {
		return "guest"
	}
	return username
}

// Root runs the startup gate once and then hands control to the REPL. There
// is no session refresh: whatever token is on disk decides where the user
// lands, and the command set follows later logins and logouts.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to chattr (type 'help' for commands)")

	route, err := a.session.Gate(ctx)
	if err != nil {
		a.log.Error(ctx, "startup gate failed, assuming logged out", "error", err)
		route = models.RouteAuth
	}
	if route == models.RouteChat {
		printlnFn(fmt.Sprintf("Welcome back, %s.", a.getStatus()))
	} else {
		printlnFn("Please 'login' or 'register' to get started.")
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
