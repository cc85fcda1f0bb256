// Package cli is the interactive terminal front end of the chattr client.
// It wires the storage and service layers together and drives a small REPL
// whose command set follows the session gate: unauthenticated users see the
// auth commands, authenticated users see the chat commands.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/ndemidova/chattr/internal/client/api"
	"github.com/ndemidova/chattr/internal/client/config"
	"github.com/ndemidova/chattr/internal/client/services"
	"github.com/ndemidova/chattr/internal/client/storage"
	"github.com/ndemidova/chattr/internal/logging"

	_ "modernc.org/sqlite"
)

// App holds everything the REPL needs: the resolved configuration, the
// session and thread services, and the open store so it can be closed on
// exit.
type App struct {
	config  *config.Config
	session services.SessionService
	thread  services.ThreadService
	store   *storage.Store
	log     logging.Logger
	reader  *bufio.Reader
}

// NewApp opens the local database, builds the API client and services, and
// returns an App ready to Run.
func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	store, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		log.Error(ctx, "error opening local store", "path", cfg.DatabasePath, "error", err)
		return nil, err
	}

	apiClient := api.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout)

	return &App{
		config:  cfg,
		session: services.NewSessionService(apiClient, store.DB, log),
		thread:  services.NewThreadService(store.Messages, cfg.MaxCachedMessages, log),
		store:   store,
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

// Run starts the REPL and releases the store when it returns.
func (a *App) Run(ctx context.Context) {
	defer a.store.Close()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	ok, err := a.session.IsLoggedIn(context.Background())
	if err != nil {
		a.log.Error(context.Background(), "error reading session state", "error", err)
		return false
	}
	return ok
}
