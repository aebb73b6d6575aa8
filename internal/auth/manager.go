// Package auth holds the client-side session state: who is logged in, how
// logins are carried out against the backend, and which routes need a session.
package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/casedesk/cli/internal/api"
	"github.com/casedesk/cli/internal/format"
	"github.com/casedesk/cli/internal/models"
	"github.com/casedesk/cli/internal/utils"
)

// Service is the remote side of the login flow
type Service interface {
	RequestOTP(ctx context.Context, mobile string) error
	LoginWithOTP(ctx context.Context, mobile, otp string) (*models.Session, error)
	LoginWithPIN(ctx context.Context, token, pin string) (*models.Session, error)
}

// SessionStore persists the session between runs
type SessionStore interface {
	Load() (*models.Session, bool)
	Save(sess *models.Session) error
	Clear() error
}

// Result is the outcome of a login step. Error is empty on success.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func ok() Result { return Result{Success: true} }

func failed(err error, fallback string) Result {
	var authErr *utils.AuthError
	if errors.As(err, &authErr) && authErr.Message != "" {
		return Result{Error: authErr.Message}
	}
	return Result{Error: fallback}
}

// Manager owns the current session and drives the store and service
type Manager struct {
	service Service
	store   SessionStore

	mu      sync.RWMutex
	current *models.Session

	// OnReauthRequired is called after the backend rejects the current
	// credential and the session has been dropped.
	OnReauthRequired func()
}

// NewManager creates a Manager with no session. Call Initialize before
// deciding whether to show protected views.
func NewManager(service Service, store SessionStore) *Manager {
	return &Manager{service: service, store: store}
}

// Initialize adopts the persisted session, if any
func (m *Manager) Initialize() {
	sess, found := m.store.Load()

	m.mu.Lock()
	defer m.mu.Unlock()
	if found {
		m.current = sess
		format.PrintDebug("auth: restored session for user %s", sess.User.ID)
		return
	}
	m.current = nil
}

// IsAuthenticated reports whether a session is held
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil
}

// Session returns a copy of the current session, or nil
func (m *Manager) Session() *models.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil
	}
	cp := *m.current
	return &cp
}

// Token returns the bearer credential for authenticated calls
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return ""
	}
	return m.current.Token
}

// SendOTP asks the backend to dispatch an OTP
func (m *Manager) SendOTP(ctx context.Context, mobile string) Result {
	if err := m.service.RequestOTP(ctx, mobile); err != nil {
		return failed(err, api.SendOTPFailed)
	}
	return ok()
}

// LoginWithOTP verifies the OTP and adopts the issued session
func (m *Manager) LoginWithOTP(ctx context.Context, mobile, otp string) Result {
	sess, err := m.service.LoginWithOTP(ctx, mobile, otp)
	if err != nil {
		return failed(err, api.LoginFailed)
	}
	return m.adopt(sess, api.LoginFailed)
}

// LoginWithPIN re-authenticates with a PIN using the session from the OTP step
func (m *Manager) LoginWithPIN(ctx context.Context, pin string) Result {
	token := m.Token()
	if token == "" {
		return Result{Error: api.PINLoginFailed}
	}

	sess, err := m.service.LoginWithPIN(ctx, token, pin)
	if err != nil {
		return failed(err, api.PINLoginFailed)
	}
	return m.adopt(sess, api.PINLoginFailed)
}

func (m *Manager) adopt(sess *models.Session, fallback string) Result {
	if err := m.store.Save(sess); err != nil {
		format.PrintDebug("auth: saving session: %v", err)
		return Result{Error: fallback}
	}

	m.mu.Lock()
	m.current = sess
	m.mu.Unlock()
	return ok()
}

// Logout drops the session locally. It always succeeds.
func (m *Manager) Logout() {
	if err := m.store.Clear(); err != nil {
		format.PrintDebug("auth: clearing session: %v", err)
	}

	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()
}

// HandleCredentialRejected drops the session after the backend refused its
// token and notifies OnReauthRequired. It is meant to be wired as the API
// client's OnUnauthorized hook.
func (m *Manager) HandleCredentialRejected() {
	format.PrintDebug("auth: credential rejected, dropping session")
	m.Logout()
	if m.OnReauthRequired != nil {
		m.OnReauthRequired()
	}
}
