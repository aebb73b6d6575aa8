// Package app wires configuration, session storage, the API client and the
// auth manager together for the commands.
package app

import (
	"fmt"

	"github.com/casedesk/cli/internal/api"
	"github.com/casedesk/cli/internal/auth"
	"github.com/casedesk/cli/internal/config"
	"github.com/casedesk/cli/internal/format"
	"github.com/casedesk/cli/internal/session"
	"github.com/casedesk/cli/internal/utils"
)

// App is an initialized client
type App struct {
	Config  *config.Config
	Client  *api.Client
	Store   *session.Store
	Manager *auth.Manager
	Guard   *auth.Guard

	closeKV func() error
}

// Open builds the client from cfg and restores any persisted session.
// Initialization completes before Open returns.
func Open(cfg *config.Config) (*App, error) {
	if err := utils.ValidateURL(cfg.Server.URL); err != nil {
		return nil, fmt.Errorf("server.url: %w", err)
	}

	kv, closeKV, err := session.Open(cfg.Session)
	if err != nil {
		return nil, fmt.Errorf("failed to open session storage: %w", err)
	}

	return New(cfg, kv, closeKV), nil
}

// New assembles an App on an already opened session medium
func New(cfg *config.Config, kv session.KV, closeKV func() error) *App {
	client := api.NewClient(cfg.Server.URL, cfg.Timeout())
	store := session.NewStore(kv)
	manager := auth.NewManager(client, store)

	client.OnUnauthorized = manager.HandleCredentialRejected
	manager.OnReauthRequired = func() {
		format.PrintWarning("Session expired or revoked. Run 'casedesk auth login' to sign in again.")
	}

	manager.Initialize()

	if closeKV == nil {
		closeKV = func() error { return nil }
	}
	return &App{
		Config:  cfg,
		Client:  client,
		Store:   store,
		Manager: manager,
		Guard:   auth.NewGuard(manager),
		closeKV: closeKV,
	}
}

// Require checks the guard for route and returns ErrNotLoggedIn when the
// caller would be redirected to the login view
func (a *App) Require(route string) error {
	target, allowed := a.Guard.Resolve(route)
	if allowed {
		return nil
	}
	if target == auth.LoginRoute {
		return fmt.Errorf("%w: run 'casedesk auth login' first", utils.ErrNotLoggedIn)
	}
	return fmt.Errorf("already logged in")
}

// Close releases the session medium
func (a *App) Close() error {
	return a.closeKV()
}
