package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// File is a JSON-file-backed Store. The whole record set lives in a
// single file that is rewritten on every mutation, which is how the
// original portal used browser local storage.
type File struct {
	path string

	mu   sync.Mutex
	data map[string]string
}

// NewFile opens (or lazily creates) the store file at path. A missing
// file is treated as an empty store; a corrupt file is an error.
func NewFile(path string) (*File, error) {
	f := &File{path: path, data: make(map[string]string)}
	if err := f.load(); err != nil {
		return nil, fmt.Errorf("load store file: %w", err)
	}
	return f, nil
}

func (f *File) load() error {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return json.Unmarshal(b, &f.data)
}

// save must be called with f.mu held.
func (f *File) save() error {
	b, err := json.Marshal(f.data)
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, b, 0o600)
}

func (f *File) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (f *File) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return f.save()
}

func (f *File) Remove(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.data[key]; !ok {
		return nil
	}
	delete(f.data, key)
	return f.save()
}
