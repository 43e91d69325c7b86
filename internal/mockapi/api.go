// Package mockapi simulates the portal's remote API. Operations add
// artificial latency, validate input against the persistent store, and
// write updated records back, standing in for a real network backend.
package mockapi

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"adminportal/internal/models"
	"adminportal/internal/store"
)

// Default simulated network latency per operation, taken from the portal
// this backend stands in for.
const (
	defaultLoginDelay  = time.Second
	defaultChangeDelay = time.Second
	defaultUpdateDelay = 800 * time.Millisecond
)

// Store is the key-value contract the backend needs. Reads report
// presence; writes never fail from the caller's perspective.
type Store interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
	Remove(ctx context.Context, key string)
}

// API simulates the remote admin API against a persistent store.
//
// The mutex serializes operations so no two writes to the same record can
// overlap; the surrounding front end additionally disables its controls
// while a call is in flight.
type API struct {
	mu    sync.Mutex
	store Store
	log   *zap.Logger

	loginDelay  time.Duration
	changeDelay time.Duration
	updateDelay time.Duration
}

// Option configures an API.
type Option func(*API)

// WithDelays overrides the simulated network latency per operation.
// Zero disables a delay; tests rely on that.
func WithDelays(login, change, update time.Duration) Option {
	return func(a *API) {
		a.loginDelay = login
		a.changeDelay = change
		a.updateDelay = update
	}
}

// New creates an API over the given store.
func New(st Store, log *zap.Logger, opts ...Option) *API {
	a := &API{
		store:       st,
		log:         log,
		loginDelay:  defaultLoginDelay,
		changeDelay: defaultChangeDelay,
		updateDelay: defaultUpdateDelay,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Login validates the credentials against the stored records and returns
// the admin profile on success. Both the unknown-username and the
// wrong-password case produce ErrInvalidCredentials.
func (a *API) Login(ctx context.Context, username, password string) (models.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	reqID := uuid.NewString()
	a.log.Info("login request",
		zap.String("request_id", reqID),
		zap.String("username", username),
	)
	a.simulateLatency(a.loginDelay)

	user := a.currentProfile(ctx)
	if username != user.Username || password != a.currentPassword(ctx) {
		a.log.Info("login rejected", zap.String("request_id", reqID))
		return models.User{}, ErrInvalidCredentials
	}

	a.log.Info("login ok", zap.String("request_id", reqID))
	return user, nil
}

// ChangePassword replaces the stored credential with newPassword if
// currentPassword matches the one in effect. Length and equality rules
// are the caller's concern, not the backend's.
func (a *API) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	reqID := uuid.NewString()
	a.log.Info("change password request", zap.String("request_id", reqID))
	a.simulateLatency(a.changeDelay)

	if currentPassword != a.currentPassword(ctx) {
		a.log.Info("change password rejected", zap.String("request_id", reqID))
		return ErrIncorrectPassword
	}

	a.store.Set(ctx, store.KeyPassword, newPassword)
	a.log.Info("password changed", zap.String("request_id", reqID))
	return nil
}

// UpdateProfile merges the patch into the stored profile, persists the
// result and returns it. No validation failures are modeled.
func (a *API) UpdateProfile(ctx context.Context, patch models.UserPatch) (models.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	reqID := uuid.NewString()
	a.log.Info("update profile request", zap.String("request_id", reqID))
	a.simulateLatency(a.updateDelay)

	merged := patch.Apply(a.currentProfile(ctx))
	raw, err := json.Marshal(merged)
	if err != nil {
		return models.User{}, err
	}
	a.store.Set(ctx, store.KeyProfile, string(raw))

	a.log.Info("profile updated", zap.String("request_id", reqID))
	return merged, nil
}

// ResetPassword deletes the stored credential override so the built-in
// default password is accepted again. It always succeeds.
func (a *API) ResetPassword(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.store.Remove(ctx, store.KeyPassword)
	a.log.Info("password reset to default")
}

// PasswordIsDefault reports whether the built-in default password is
// currently in effect.
func (a *API) PasswordIsDefault(ctx context.Context) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.currentPassword(ctx) == models.DefaultPassword
}

// currentPassword returns the stored credential, falling back to the
// built-in default when no override exists.
func (a *API) currentPassword(ctx context.Context) string {
	if v, ok := a.store.Get(ctx, store.KeyPassword); ok {
		return v
	}
	return models.DefaultPassword
}

// currentProfile returns the stored profile, falling back to the built-in
// admin profile when no record exists or the record cannot be decoded.
func (a *API) currentProfile(ctx context.Context) models.User {
	raw, ok := a.store.Get(ctx, store.KeyProfile)
	if !ok {
		return models.DefaultUser()
	}
	var u models.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		a.log.Warn("corrupt profile record, using default", zap.Error(err))
		return models.DefaultUser()
	}
	return u
}

// simulateLatency blocks for the configured delay. Operations are never
// cancelled once started, so the context is not consulted here.
func (a *API) simulateLatency(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}
