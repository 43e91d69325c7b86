// Package store provides the durable key-value layer behind the mock
// backend and the session container. A small set of independent records
// is persisted: the credential override, the admin profile, and the
// session mirror.
package store

import (
	"context"
	"errors"
)

// Logical record keys. They match the browser localStorage keys of the
// portal this layer stands in for.
const (
	// KeyPassword holds the current password override as a plain string.
	KeyPassword = "user_password"
	// KeyProfile holds the serialized admin profile.
	KeyProfile = "user_profile"
	// KeySession holds the serialized session mirror.
	KeySession = "auth"
)

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("store: key not found")

// Store is a durable string key-value record store.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error
	// Remove deletes the value under key. Removing an absent key is not
	// an error.
	Remove(ctx context.Context, key string) error
}
