// Package store persists accounts, characters, tasks and settings as JSON
// documents in a key-value Backend, upgrading older layouts on open.
package store

import (
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Storage keys.
const (
	KeyMeta       = "prasia.meta"
	KeyAccounts   = "prasia.accounts"
	KeyCharacters = "prasia.characters"
	KeyTasks      = "prasia.tasks"
	KeySettings   = "prasia.settings"
)

// Keys returns every current storage key.
func Keys() []string {
	return []string{KeyMeta, KeyAccounts, KeyCharacters, KeyTasks, KeySettings}
}

// Store is the single owner of the persisted representation. Callers get
// snapshots and must write changes back; there is no locking, so the last
// writer wins.
type Store struct {
	backend   Backend
	log       *log.Logger
	migration MigrationReport
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for storage failures and corrupt data.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// Open wraps backend and runs schema migration. A process should call Open
// once per backend; concurrent migrations race on the legacy keys.
func Open(backend Backend, opts ...Option) (*Store, error) {
	if backend == nil {
		return nil, errors.New("store: nil backend")
	}
	s := &Store{
		backend: backend,
		log: log.NewWithOptions(os.Stderr, log.Options{
			Level:  log.WarnLevel,
			Prefix: "store",
		}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.migration = s.migrate()
	return s, nil
}

// Backend returns the underlying backend.
func (s *Store) Backend() Backend {
	return s.backend
}

// Migration reports what the migration run during Open did.
func (s *Store) Migration() MigrationReport {
	return s.migration
}

// Close releases the backend when it holds resources.
func (s *Store) Close() error {
	if c, ok := s.backend.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Save encodes v as JSON under key. Failures are logged and reported as false.
func (s *Store) Save(key string, v any) bool {
	data, err := json.Marshal(v)
	if err != nil {
		s.log.Warn("encode failed", "key", key, "err", err)
		return false
	}
	if err := s.backend.Write(key, data); err != nil {
		s.log.Warn("write failed", "key", key, "err", err)
		return false
	}
	return true
}

// Load decodes the value stored under key into a T. A missing key, a read
// failure or an unparseable value all yield def.
func Load[T any](s *Store, key string, def T) T {
	data, err := s.backend.Read(key)
	if err != nil {
		if !errors.Is(err, ErrNotExist) {
			s.log.Warn("read failed", "key", key, "err", err)
		}
		return def
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		s.log.Warn("corrupt value treated as absent", "key", key, "err", err)
		return def
	}
	return v
}

// Remove erases key. Failures are logged and reported as false.
func (s *Store) Remove(key string) bool {
	if err := s.backend.Erase(key); err != nil {
		s.log.Warn("erase failed", "key", key, "err", err)
		return false
	}
	return true
}

// ClearAll removes every current key. The next Open starts from scratch.
func (s *Store) ClearAll() bool {
	ok := true
	for _, key := range Keys() {
		ok = s.Remove(key) && ok
	}
	return ok
}

// loadRecords decodes a JSON array stored under key one element at a time,
// dropping elements that fail to decode.
func loadRecords[T any](s *Store, key string) []T {
	raws := Load[[]json.RawMessage](s, key, nil)
	out := make([]T, 0, len(raws))
	for i, raw := range raws {
		var rec T
		if err := json.Unmarshal(raw, &rec); err != nil {
			s.log.Warn("skipping corrupt record", "key", key, "index", i, "err", err)
			continue
		}
		out = append(out, rec)
	}
	return out
}

// saveAll writes several values, atomically when the backend is a
// BatchWriter and otherwise in order, stopping at the first failure.
func (s *Store) saveAll(values ...keyValue) bool {
	pairs := make([]KV, 0, len(values))
	for _, kv := range values {
		data, err := json.Marshal(kv.value)
		if err != nil {
			s.log.Warn("encode failed", "key", kv.key, "err", err)
			return false
		}
		pairs = append(pairs, KV{Key: kv.key, Value: data})
	}
	if bw, ok := s.backend.(BatchWriter); ok {
		if err := bw.WriteBatch(pairs); err != nil {
			s.log.Warn("batch write failed", "err", err)
			return false
		}
		return true
	}
	for _, p := range pairs {
		if err := s.backend.Write(p.Key, p.Value); err != nil {
			s.log.Warn("write failed", "key", p.Key, "err", err)
			return false
		}
	}
	return true
}

type keyValue struct {
	key   string
	value any
}

// SchemaVersion returns the stored schema version.
func (s *Store) SchemaVersion() int {
	return Load(s, KeyMeta, meta{}).SchemaVersion
}
