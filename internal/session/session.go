// Package session owns the authenticated-user identity and its lifecycle.
// The manager is a two-state machine, Anonymous and Authenticated; every
// public method settles to a plain Result and emits exactly one notification,
// and no gateway error ever propagates past this package.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"spendly/internal/core"
	"spendly/internal/gateway"
	applog "spendly/internal/log"
	"spendly/internal/notify"
	"spendly/internal/store"
)

type (
	// Manager holds the current session and persists it through the store.
	Manager struct {
		gw       *gateway.Client
		sessions store.SessionStore
		notifier notify.Notifier
		nav      notify.Navigator
		logger   *applog.Logger

		mu    sync.Mutex
		token string
		user  core.User
	}

	// Credentials is the login payload.
	Credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	// Registration is the account-creation payload.
	Registration struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	// PasswordChange is the change-password payload.
	PasswordChange struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}

	// Result is the uniform outcome shape every session operation returns.
	Result struct {
		Success bool
		User    core.User
		Error   string
	}
)

// NewManager builds a manager and restores state from the store: both keys
// present and parseable restores Authenticated, anything else (including a
// partial write) clears the store and starts Anonymous.
func NewManager(ctx context.Context, gw *gateway.Client, sessions store.SessionStore, notifier notify.Notifier, nav notify.Navigator, logger *applog.Logger) *Manager {
	m := &Manager{
		gw:       gw,
		sessions: sessions,
		notifier: notifier,
		nav:      nav,
		logger:   logger.WithComponent("session"),
	}
	m.restore(ctx)
	return m
}

func (m *Manager) restore(ctx context.Context) {
	sess, err := m.sessions.LoadSession(ctx)
	if err != nil {
		m.logger.Warn("session restore failed", "error", err)
		return
	}
	if !sess.IsComplete() {
		if sess.Token != "" || len(sess.User) > 0 {
			m.logger.Warn("discarding partial persisted session")
			if err := m.sessions.ClearSession(ctx); err != nil {
				m.logger.Error("clear partial session failed", "error", err)
			}
		}
		return
	}
	var user core.User
	if err := json.Unmarshal(sess.User, &user); err != nil {
		m.logger.Warn("persisted user record unreadable, discarding session", "error", err)
		if err := m.sessions.ClearSession(ctx); err != nil {
			m.logger.Error("clear unreadable session failed", "error", err)
		}
		return
	}
	m.token = sess.Token
	m.user = user
	m.logger.Info("session restored", "user_id", user.ID())
}

// Login authenticates against the public login endpoint and transitions to
// Authenticated on success.
func (m *Manager) Login(ctx context.Context, creds Credentials) Result {
	env, err := m.gw.PostPublic(ctx, "/auth/login", creds)
	if err != nil {
		return m.fail(err)
	}
	if env.Token == "" {
		return m.fail(errors.New("login response missing token"))
	}
	m.setSession(ctx, env.Token, env.User)
	m.notifier.Notify(notify.New(notify.LevelSuccess, "Welcome back!"))
	return Result{Success: true, User: env.User}
}

// Register creates an account and transitions to Authenticated on success.
func (m *Manager) Register(ctx context.Context, reg Registration) Result {
	env, err := m.gw.PostPublic(ctx, "/auth/register", reg)
	if err != nil {
		return m.fail(err)
	}
	if env.Token == "" {
		return m.fail(errors.New("registration response missing token"))
	}
	m.setSession(ctx, env.Token, env.User)
	m.notifier.Notify(notify.New(notify.LevelSuccess, "Account created successfully!"))
	return Result{Success: true, User: env.User}
}

// UpdateProfile sends a profile update and shallow-merges the returned user
// fields into the current record; the token is unchanged.
func (m *Manager) UpdateProfile(ctx context.Context, updates core.User) Result {
	env, err := m.gw.Put(ctx, "/auth/profile", updates)
	if err != nil {
		return m.fail(err)
	}

	m.mu.Lock()
	merged := m.user.Merge(env.User)
	m.user = merged
	token := m.token
	m.mu.Unlock()

	m.persist(ctx, token, merged)
	m.notifier.Notify(notify.New(notify.LevelSuccess, "Profile updated!"))
	return Result{Success: true, User: merged}
}

// ChangePassword changes the account password. Session state is unchanged.
func (m *Manager) ChangePassword(ctx context.Context, change PasswordChange) Result {
	if _, err := m.gw.Put(ctx, "/auth/password", change); err != nil {
		return m.fail(err)
	}
	m.notifier.Notify(notify.New(notify.LevelSuccess, "Password changed successfully!"))
	return Result{Success: true, User: m.CurrentUser()}
}

// SubmitPasswordForm validates the confirmation locally before calling
// ChangePassword, surfacing a mismatch through the same Result shape.
func (m *Manager) SubmitPasswordForm(ctx context.Context, current, newPassword, confirm string) Result {
	if newPassword != confirm {
		return m.fail(&gateway.ValidationError{Message: "Passwords do not match"})
	}
	return m.ChangePassword(ctx, PasswordChange{CurrentPassword: current, NewPassword: newPassword})
}

// Logout clears state and requests navigation to the login route.
func (m *Manager) Logout(ctx context.Context) {
	m.clearMemory()
	if err := m.sessions.ClearSession(ctx); err != nil {
		m.logger.Error("clear session failed", "error", err)
	}
	m.notifier.Notify(notify.New(notify.LevelInfo, "Logged out successfully"))
	m.nav.NavigateTo(notify.RouteLogin)
}

// IsAuthenticated reports whether a session is held.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token != ""
}

// CurrentUser returns the current user record, nil when Anonymous.
func (m *Manager) CurrentUser() core.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// RequireAuth gates authenticated pages: when Anonymous it requests
// navigation to the login route and returns false so callers short-circuit.
func (m *Manager) RequireAuth() bool {
	if !m.IsAuthenticated() {
		m.nav.NavigateTo(notify.RouteLogin)
		return false
	}
	return true
}

// RedirectIfAuth gates the entry pages: when Authenticated it requests
// navigation to the dashboard and returns true so callers short-circuit.
func (m *Manager) RedirectIfAuth() bool {
	if m.IsAuthenticated() {
		m.nav.NavigateTo(notify.RouteDashboard)
		return true
	}
	return false
}

func (m *Manager) setSession(ctx context.Context, token string, user core.User) {
	m.mu.Lock()
	m.token = token
	m.user = user
	m.mu.Unlock()
	m.persist(ctx, token, user)
}

func (m *Manager) persist(ctx context.Context, token string, user core.User) {
	raw, err := json.Marshal(user)
	if err != nil {
		m.logger.Error("encode user for persistence failed", "error", err)
		return
	}
	if err := m.sessions.SaveSession(ctx, token, raw); err != nil {
		m.logger.Error("persist session failed", "error", err)
	}
}

func (m *Manager) clearMemory() {
	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.mu.Unlock()
}

// fail settles any failure into a Result, emitting exactly one error
// notification. A session-expiry signal from the gateway also drops the
// in-memory state; the gateway has already cleared the store and requested
// navigation.
func (m *Manager) fail(err error) Result {
	if errors.Is(err, gateway.ErrSessionExpired) {
		m.clearMemory()
	}
	m.notifier.Notify(notify.New(notify.LevelError, err.Error()))
	return Result{Error: err.Error()}
}
