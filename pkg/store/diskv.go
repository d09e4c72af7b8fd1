package store

import (
	"fmt"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// DiskvBackend stores each key as one file below BasePath. Keys are split on
// "." into directories, so "prasia.tasks" lives at <base>/prasia/tasks.
type DiskvBackend struct {
	d        *diskv.Diskv
	basePath string
}

// NewDiskvBackend creates a DiskvBackend rooted at basePath.
func NewDiskvBackend(basePath string) *DiskvBackend {
	return &DiskvBackend{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}
}

// BasePath returns the root directory.
func (b *DiskvBackend) BasePath() string {
	return b.basePath
}

func (b *DiskvBackend) Read(key string) ([]byte, error) {
	if !b.d.Has(key) {
		return nil, ErrNotExist
	}
	val, err := b.d.Read(key)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	return val, nil
}

func (b *DiskvBackend) Write(key string, val []byte) error {
	if err := b.d.Write(key, val); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (b *DiskvBackend) Erase(key string) error {
	if !b.d.Has(key) {
		return nil
	}
	if err := b.d.Erase(key); err != nil {
		return fmt.Errorf("store: erase %s: %w", key, err)
	}
	return nil
}

func (b *DiskvBackend) Has(key string) bool {
	return b.d.Has(key)
}

func (b *DiskvBackend) Keys() []string {
	keys := make([]string, 0)
	for key := range b.d.Keys(nil) {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, ".")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s.%s", strings.Join(pathKey.Path, "."), pathKey.FileName)
}
