// Package ident generates record identifiers and timestamps.
package ident

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Source produces identifiers and epoch millisecond timestamps.
type Source interface {
	NewID() string
	Now() int64
}

type systemSource struct{}

func (systemSource) NewID() string {
	return uuid.NewString()
}

func (systemSource) Now() int64 {
	return time.Now().UnixMilli()
}

// System is the Source backed by crypto random UUIDs and the wall clock.
var System Source = systemSource{}

var (
	mu      sync.RWMutex
	current = System
)

// NewID returns a random version 4 UUID. There is no uniqueness registry.
func NewID() string {
	mu.RLock()
	defer mu.RUnlock()
	return current.NewID()
}

// Now returns the current time in epoch milliseconds. Ties are possible.
func Now() int64 {
	mu.RLock()
	defer mu.RUnlock()
	return current.Now()
}

// Use swaps the package Source and returns a func restoring the previous one.
// Intended for tests.
func Use(s Source) (restore func()) {
	mu.Lock()
	prev := current
	current = s
	mu.Unlock()
	return func() {
		mu.Lock()
		current = prev
		mu.Unlock()
	}
}

// Sequence is a deterministic Source: ids are "<prefix>-<n>" and the clock
// advances by Step milliseconds on every call to Now.
type Sequence struct {
	mu     sync.Mutex
	Prefix string
	Start  int64
	Step   int64
	ids    int
	ticks  int64
}

func (s *Sequence) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids++
	prefix := s.Prefix
	if prefix == "" {
		prefix = "id"
	}
	return prefix + "-" + strconv.Itoa(s.ids)
}

func (s *Sequence) Now() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.Start + s.ticks*s.Step
	s.ticks++
	return now
}
