// Package session holds the in-memory authoritative session state and
// the transitions the front end dispatches. Successful logins and profile
// updates are mirrored to the persistent store so a session survives
// restarts; the in-memory state always wins for the current run.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"adminportal/internal/models"
	"adminportal/internal/store"
)

// Status enumerates the session states.
type Status string

const (
	StatusIdle          Status = "idle"
	StatusLoading       Status = "loading"
	StatusAuthenticated Status = "authenticated"
	StatusError         Status = "error"
)

var (
	// ErrLoginNotAllowed is returned by Login when the session is already
	// authenticated or a login is in flight. Log out first.
	ErrLoginNotAllowed = errors.New("login not allowed in current session state")

	// ErrNotAuthenticated is returned by UpdateProfile outside an
	// authenticated session.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrUpdateInFlight is returned by UpdateProfile while a previous
	// update has not resolved yet.
	ErrUpdateInFlight = errors.New("profile update already in flight")
)

// Snapshot is a copy of the session state handed to callers.
type Snapshot struct {
	Status Status
	// User is meaningful only when Status is StatusAuthenticated.
	User models.User
	// Err carries the last login failure message while Status is
	// StatusError.
	Err string
	// Updating reports a profile update in flight. It is independent of
	// Status: profile updates do not pass through StatusLoading.
	Updating bool
}

// IsAuthenticated reports whether the snapshot belongs to a logged-in
// session.
func (s Snapshot) IsAuthenticated() bool {
	return s.Status == StatusAuthenticated
}

// Store is the durable mirror contract the manager needs.
type Store interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
	Remove(ctx context.Context, key string)
}

// Backend is the slice of the mock API the manager drives.
type Backend interface {
	Login(ctx context.Context, username, password string) (models.User, error)
	UpdateProfile(ctx context.Context, patch models.UserPatch) (models.User, error)
}

// Manager owns the session state machine.
type Manager struct {
	mu       sync.Mutex
	status   Status
	user     models.User
	err      string
	updating bool

	store   Store
	backend Backend
	log     *zap.Logger
}

// NewManager builds a manager and restores a prior session from the store
// if one was persisted as authenticated.
func NewManager(backend Backend, st Store, log *zap.Logger) *Manager {
	m := &Manager{
		status:  StatusIdle,
		store:   st,
		backend: backend,
		log:     log,
	}
	m.restore()
	return m
}

func (m *Manager) restore() {
	raw, ok := m.store.Get(context.Background(), store.KeySession)
	if !ok {
		return
	}
	var rec models.SessionRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		m.log.Warn("ignoring corrupt session record", zap.Error(err))
		return
	}
	if rec.IsAuthenticated {
		m.status = StatusAuthenticated
		m.user = rec.User
		m.log.Info("session restored", zap.String("username", rec.User.Username))
	}
}

// Snapshot returns a copy of the current session state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{Status: m.status, User: m.user, Err: m.err, Updating: m.updating}
}

// BeginLogin moves an idle or failed session to loading and clears any
// prior error. It reports whether the transition was taken: an
// authenticated session must log out before logging in again, and a
// pending login cannot be restarted.
func (m *Manager) BeginLogin() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status != StatusIdle && m.status != StatusError {
		m.log.Warn("begin login ignored", zap.String("status", string(m.status)))
		return false
	}
	m.status = StatusLoading
	m.err = ""
	return true
}

// LoginSucceeded resolves a pending login with the returned profile and
// mirrors the authenticated session to the store.
func (m *Manager) LoginSucceeded(ctx context.Context, user models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status != StatusLoading {
		m.log.Warn("login success ignored", zap.String("status", string(m.status)))
		return
	}
	m.status = StatusAuthenticated
	m.user = user
	m.err = ""
	m.persistLocked(ctx)
	m.log.Info("logged in", zap.String("username", user.Username))
}

// LoginFailed resolves a pending login with a failure message. The user
// stays unset.
func (m *Manager) LoginFailed(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status != StatusLoading {
		m.log.Warn("login failure ignored", zap.String("status", string(m.status)))
		return
	}
	m.status = StatusError
	m.err = message
}

// Logout clears the session from any state and removes the durable
// mirror. The cached profile is dropped, not retained.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = StatusIdle
	m.user = models.User{}
	m.err = ""
	m.store.Remove(ctx, store.KeySession)
	m.log.Info("logged out")
}

// Login runs the full login cycle: begin, call the backend, resolve. The
// backend error is returned as-is and its message is kept in the snapshot
// for the front end to display.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	if !m.BeginLogin() {
		return ErrLoginNotAllowed
	}
	user, err := m.backend.Login(ctx, username, password)
	if err != nil {
		m.LoginFailed(err.Error())
		return err
	}
	m.LoginSucceeded(ctx, user)
	return nil
}

// UpdateProfile merges the patch into the current profile through the
// backend and re-mirrors the session. Outside an authenticated session it
// is a logged no-op that leaves the state untouched. A dedicated in-flight
// flag serializes updates without moving the session status through
// loading.
func (m *Manager) UpdateProfile(ctx context.Context, patch models.UserPatch) (models.User, error) {
	m.mu.Lock()
	if m.status != StatusAuthenticated {
		m.mu.Unlock()
		m.log.Warn("profile update ignored while unauthenticated")
		return models.User{}, ErrNotAuthenticated
	}
	if m.updating {
		m.mu.Unlock()
		return models.User{}, ErrUpdateInFlight
	}
	m.updating = true
	m.mu.Unlock()

	user, err := m.backend.UpdateProfile(ctx, patch)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.updating = false
	if err != nil {
		return models.User{}, err
	}
	if m.status != StatusAuthenticated {
		// Logged out while the update was in flight; the merged profile
		// is returned but no longer mirrored.
		return user, nil
	}
	m.user = user
	m.persistLocked(ctx)
	return user, nil
}

// persistLocked mirrors the authenticated session to the store. Must be
// called with m.mu held.
func (m *Manager) persistLocked(ctx context.Context) {
	raw, err := json.Marshal(models.SessionRecord{User: m.user, IsAuthenticated: true})
	if err != nil {
		m.log.Error("encode session record", zap.Error(err))
		return
	}
	m.store.Set(ctx, store.KeySession, string(raw))
}
