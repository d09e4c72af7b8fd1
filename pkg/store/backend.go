package store

import (
	"errors"
	"sort"
	"sync"
)

// ErrNotExist is returned by a Backend when a key has never been written or
// has been erased.
var ErrNotExist = errors.New("store: key does not exist")

// Backend is a string keyed byte store.
type Backend interface {
	Read(key string) ([]byte, error)
	Write(key string, val []byte) error
	Erase(key string) error
	Has(key string) bool
	Keys() []string
}

// KV is one key/value pair of a batch write.
type KV struct {
	Key   string
	Value []byte
}

// BatchWriter is implemented by backends that can write several keys
// atomically.
type BatchWriter interface {
	WriteBatch(pairs []KV) error
}

// MemoryBackend keeps values in process memory.
type MemoryBackend struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryBackend returns an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

func (m *MemoryBackend) Read(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[key]
	if !ok {
		return nil, ErrNotExist
	}
	return append([]byte(nil), val...), nil
}

func (m *MemoryBackend) Write(key string, val []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), val...)
	return nil
}

func (m *MemoryBackend) Erase(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryBackend) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

func (m *MemoryBackend) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// WriteBatch applies all pairs under one lock.
func (m *MemoryBackend) WriteBatch(pairs []KV) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range pairs {
		m.data[p.Key] = append([]byte(nil), p.Value...)
	}
	return nil
}
