package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// failingStore is a Store whose every operation fails.
type failingStore struct {
	err error
}

func (f *failingStore) Get(ctx context.Context, key string) (string, error) {
	return "", f.err
}
func (f *failingStore) Set(ctx context.Context, key, value string) error { return f.err }
func (f *failingStore) Remove(ctx context.Context, key string) error     { return f.err }

func TestBestEffort_Passthrough(t *testing.T) {
	ctx := context.Background()
	s := NewBestEffort(NewMemory(), zap.NewNop())

	_, ok := s.Get(ctx, KeyPassword)
	assert.False(t, ok)

	s.Set(ctx, KeyPassword, "secret1")
	v, ok := s.Get(ctx, KeyPassword)
	assert.True(t, ok)
	assert.Equal(t, "secret1", v)

	s.Remove(ctx, KeyPassword)
	_, ok = s.Get(ctx, KeyPassword)
	assert.False(t, ok)
}

func TestBestEffort_SwallowsBackendFailures(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zap.WarnLevel)
	s := NewBestEffort(&failingStore{err: errors.New("quota exceeded")}, zap.New(core))

	// reads behave as absent, writes no-op, nothing panics or errors
	_, ok := s.Get(ctx, KeyProfile)
	assert.False(t, ok)
	s.Set(ctx, KeyProfile, "{}")
	s.Remove(ctx, KeyProfile)

	assert.Equal(t, 3, logs.Len(), "each failure should be logged")
}

func TestBestEffort_AbsentKeyIsNotLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	s := NewBestEffort(NewMemory(), zap.New(core))

	_, ok := s.Get(context.Background(), KeySession)
	assert.False(t, ok)
	assert.Zero(t, logs.Len())
}
