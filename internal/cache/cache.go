// SPDX-License-Identifier: MPL-2.0

package cache

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zeebo/blake3"
)

// Key is the content address of one rendered document.
type Key string

// Sum returns the blake3 content key for source text.
func Sum(source string) Key {
	digest := blake3.Sum256([]byte(source))
	return Key(hex.EncodeToString(digest[:]))
}

// Store persists rendered documents under a directory, one file per key.
// The zero value is a disabled store: lookups miss and writes are dropped.
type Store struct {
	dir string
}

// Open returns a Store rooted at dir, creating it if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: create %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) enabled() bool {
	return s != nil && s.dir != ""
}

func (s *Store) path(key Key) string {
	return filepath.Join(s.dir, string(key)+".md")
}

// Get returns the rendering stored under key, if present.
func (s *Store) Get(key Key) (string, bool) {
	if !s.enabled() {
		return "", false
	}
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Put stores a rendering under key. A write failure disables the entry but
// is not fatal: the build can always re-render.
func (s *Store) Put(key Key, rendered string) error {
	if !s.enabled() {
		return nil
	}
	return os.WriteFile(s.path(key), []byte(rendered), 0o644)
}

// Clear removes every cached rendering.
func (s *Store) Clear() error {
	if !s.enabled() {
		return nil
	}
	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("cache: clear %s: %w", s.dir, err)
	}
	return os.MkdirAll(s.dir, 0o755)
}
