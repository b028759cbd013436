package store

import (
	"fmt"
	"strings"
	"sync"
)

// Backend is the medium a store persists its collections to. Each key holds
// one serialized collection that is always overwritten as a whole.
type Backend interface {
	// Read returns the stored bytes for key, or nil if nothing is stored.
	Read(key string) ([]byte, error)
	// Write atomically replaces the bytes stored for key.
	Write(key string, data []byte) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error
	Close() error
}

// BackendType selects a Backend implementation.
type BackendType string

const (
	BackendFile   BackendType = "file"
	BackendSQLite BackendType = "sqlite"
	BackendMemory BackendType = "memory"
)

// BackendConfig holds the settings OpenBackend needs.
type BackendConfig struct {
	Type       BackendType
	Dir        string // file backend data directory
	SQLitePath string // sqlite database file
}

// OpenBackend creates the backend selected by cfg.Type.
func OpenBackend(cfg BackendConfig) (Backend, error) {
	switch BackendType(strings.ToLower(string(cfg.Type))) {
	case BackendFile, "":
		return NewFileBackend(cfg.Dir)
	case BackendSQLite:
		return NewSQLiteBackend(cfg.SQLitePath)
	case BackendMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Type)
	}
}

// MemoryBackend keeps collections in process memory.
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryBackend returns an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

// Read returns a copy of the bytes stored under key.
func (m *MemoryBackend) Read(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

// Write stores a copy of data under key.
func (m *MemoryBackend) Write(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), data...)
	return nil
}

// Remove deletes key.
func (m *MemoryBackend) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Close is a no-op.
func (m *MemoryBackend) Close() error { return nil }
