package store

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// BestEffort wraps a Store and absorbs backend failures: a failed read
// behaves as an absent key, a failed write or remove is dropped.
// Failures are logged, never returned, so an unavailable backend
// degrades the portal to in-memory-only behavior for that call instead
// of breaking the feature that triggered it.
type BestEffort struct {
	inner Store
	log   *zap.Logger
}

// NewBestEffort wraps inner with failure absorption.
func NewBestEffort(inner Store, log *zap.Logger) *BestEffort {
	return &BestEffort{inner: inner, log: log}
}

// Get returns the value under key and whether it was present.
func (s *BestEffort) Get(ctx context.Context, key string) (string, bool) {
	v, err := s.inner.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Warn("store read failed", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	return v, true
}

// Set stores value under key, dropping the write on backend failure.
func (s *BestEffort) Set(ctx context.Context, key, value string) {
	if err := s.inner.Set(ctx, key, value); err != nil {
		s.log.Warn("store write failed", zap.String("key", key), zap.Error(err))
	}
}

// Remove deletes the value under key, dropping the delete on backend
// failure.
func (s *BestEffort) Remove(ctx context.Context, key string) {
	if err := s.inner.Remove(ctx, key); err != nil {
		s.log.Warn("store remove failed", zap.String("key", key), zap.Error(err))
	}
}
