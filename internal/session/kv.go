// Package session persists the bearer token and user profile between runs.
//
// The store talks to a narrow key-value interface so the medium (memory,
// a YAML file, a bbolt database) can change without touching callers.
package session

import (
	"fmt"
	"sync"

	"github.com/casedesk/cli/internal/config"
)

// KV is the key-value medium behind a Store.
type KV interface {
	// Get returns the value and whether the key exists.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
}

// MemoryKV is a thread-safe in-memory KV. Suitable for tests and
// single-process use.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]string
}

var _ KV = (*MemoryKV)(nil)

// NewMemoryKV creates an empty MemoryKV
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Open returns the KV selected by the session configuration. The returned
// close function releases any file handles and is always non-nil.
func Open(cfg config.SessionConfig) (KV, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case config.BackendMemory:
		return NewMemoryKV(), noop, nil
	case config.BackendBolt:
		kv, err := OpenBoltKV(cfg.Path)
		if err != nil {
			return nil, noop, err
		}
		return kv, kv.Close, nil
	case config.BackendFile, "":
		return NewFileKV(cfg.Path), noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown session backend: %s", cfg.Backend)
	}
}
