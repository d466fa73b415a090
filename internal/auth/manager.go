package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"eventmgmt/admin-console/internal/api"
	"eventmgmt/admin-console/internal/session"
)

// State is the manager's answer to "who is logged in".
type State int

const (
	// StateUnknown is the initial state before Restore has run.
	StateUnknown State = iota
	// StateAnonymous means no user; login is the only way out.
	StateAnonymous
	// StateAuthenticated means a trusted session snapshot is loaded.
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

var ErrInvalidCredentials = errors.New("invalid credentials")

// Backend is the slice of the API client the manager needs.
type Backend interface {
	Login(ctx context.Context, email, password string) (api.LoginResult, error)
	Logout(ctx context.Context) error
}

// Notifier surfaces user-facing notifications. Implemented by the UI;
// nil until the UI is up, and all calls are nil-safe.
type Notifier interface {
	Success(title, detail string)
	Error(title, detail string)
}

// AuditLogger records operator actions.
type AuditLogger interface {
	Log(actor, action, target, outcome, detail string) error
}

type ManagerConfig struct {
	Audit  AuditLogger
	Logger *slog.Logger
}

// Manager is the single source of truth for the authentication state.
// It owns the session store exclusively: no other component reads or
// writes it.
type Manager struct {
	backend Backend
	store   session.Store
	audit   AuditLogger
	logger  *slog.Logger

	mu       sync.RWMutex
	notifier Notifier
	state    State
	session  session.Session
	restored bool
}

func NewManager(backend Backend, store session.Store, cfg ManagerConfig) (*Manager, error) {
	if backend == nil {
		return nil, fmt.Errorf("backend is required")
	}
	if store == nil {
		return nil, fmt.Errorf("session store is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		backend: backend,
		store:   store,
		audit:   cfg.Audit,
		logger:  logger,
		state:   StateUnknown,
	}, nil
}

// SetNotifier wires the UI-side notifier once the program exists.
func (m *Manager) SetNotifier(n Notifier) {
	m.mu.Lock()
	m.notifier = n
	m.mu.Unlock()
}

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// CurrentUser returns the logged-in user snapshot, if any.
func (m *Manager) CurrentUser() (session.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state != StateAuthenticated {
		return session.User{}, false
	}
	return m.session.User, true
}

// AccessToken implements api.TokenSource.
func (m *Manager) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.AccessToken
}

// Restore resolves the initial Unknown state from the session store,
// exactly once. A valid stored session is trusted without a network
// round trip; later calls return the already-resolved state.
func (m *Manager) Restore() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.restored {
		return m.state
	}
	m.restored = true

	sess, ok := m.store.Load()
	if !ok || !sess.Valid() {
		m.state = StateAnonymous
		m.logger.Info("no stored session, starting anonymous")
		return m.state
	}

	m.session = sess
	m.state = StateAuthenticated
	m.logger.Info("session restored", "username", sess.User.Username, "role", sess.User.Role)
	m.auditLog(sess.User.Username, "auth.restore", "", "success", "")
	return m.state
}

// Login authenticates against the backend. On success the session is
// persisted and the state becomes Authenticated. On failure the state
// is left untouched and the error is returned so the calling view can
// keep its form open.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	result, err := m.backend.Login(ctx, email, password)
	if err != nil {
		reason := api.ErrorMessage(err, "Invalid credentials")
		m.logger.Warn("login failed", "email", email, "error", err)
		m.auditLog(email, "auth.login", "", "failed", reason)
		m.notifyError("Login failed", reason)
		if api.IsUnauthorized(err) {
			return fmt.Errorf("%w: %s", ErrInvalidCredentials, reason)
		}
		return err
	}

	sess := session.Session{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		User: session.User{
			ID:       result.User.ID,
			Username: result.User.Username,
			Email:    result.User.Email,
			Role:     session.Role(result.User.Role),
		},
	}
	if err := m.store.Save(sess); err != nil {
		// The in-memory session still works for this run; the next
		// start will just come up anonymous.
		m.logger.Error("persist session failed", "error", err)
	}

	m.mu.Lock()
	m.session = sess
	m.state = StateAuthenticated
	m.restored = true
	m.mu.Unlock()

	m.logger.Info("login succeeded", "username", sess.User.Username, "role", sess.User.Role)
	m.auditLog(sess.User.Username, "auth.login", "", "success", "")
	m.notifySuccess("Login successful", fmt.Sprintf("Welcome back, %s!", sess.User.Username))
	return nil
}

// Logout tears the session down. The backend call is best-effort: its
// failure never prevents local teardown, and the caller always ends up
// Anonymous with an empty store.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.RLock()
	username := m.session.User.Username
	m.mu.RUnlock()

	if err := m.backend.Logout(ctx); err != nil {
		m.logger.Debug("backend logout failed, clearing locally anyway", "error", err)
	}
	if err := m.store.Clear(); err != nil {
		m.logger.Error("clear session store failed", "error", err)
	}

	m.mu.Lock()
	m.session = session.Session{}
	m.state = StateAnonymous
	m.restored = true
	m.mu.Unlock()

	m.logger.Info("logged out", "username", username)
	m.auditLog(username, "auth.logout", "", "success", "")
	m.notifySuccess("Logged out", "You have been successfully logged out.")
}

func (m *Manager) auditLog(actor, action, target, outcome, detail string) {
	if m.audit == nil {
		return
	}
	if err := m.audit.Log(actor, action, target, outcome, detail); err != nil {
		m.logger.Error("audit log write failed", "action", action, "error", err)
	}
}

func (m *Manager) notifySuccess(title, detail string) {
	m.mu.RLock()
	n := m.notifier
	m.mu.RUnlock()
	if n != nil {
		n.Success(title, detail)
	}
}

func (m *Manager) notifyError(title, detail string) {
	m.mu.RLock()
	n := m.notifier
	m.mu.RUnlock()
	if n != nil {
		n.Error(title, detail)
	}
}
