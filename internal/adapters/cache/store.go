// Package cache persists command results in memory and on disk.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/perilune/inocli/internal/core/domain"
	"github.com/perilune/inocli/internal/core/ports"
	"go.trai.ch/zerr"
)

// Store implements ports.ResultStore with an LRU memory tier mirrored to one
// JSON record per key on disk.
//
// The two tiers may diverge: the durable store is never truncated on
// restart, and memory evicts under capacity pressure. Lookups therefore
// check memory first and fall through to disk; absence in both means "not
// yet executed", never failure.
//
// The memory tier is safe for concurrent use. The durable tier is
// file-per-key without locking: concurrent writers to the same key race and
// the last writer wins silently.
type Store struct {
	dir    string
	memory *lru.Cache[string, domain.CommandResult]

	// mu serializes disk writes for the same process; cross-process
	// writers remain unsynchronized.
	mu sync.Mutex
}

var _ ports.ResultStore = (*Store)(nil)

// NewStore creates a result store rooted at dir with the given in-memory
// capacity. The directory is created if absent.
func NewStore(dir string, capacity int) (*Store, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, zerr.Wrap(err, "failed to create result store directory")
	}

	memory, err := lru.New[string, domain.CommandResult](capacity)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create memory cache")
	}

	return &Store{dir: filepath.Clean(dir), memory: memory}, nil
}

// Key derives the stable store key for a logical command string.
func Key(logical string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(logical))
}

// Save persists the result under the logical command's key, overwriting any
// previous record. Last write wins; there is no versioning.
func (s *Store) Save(logical string, result domain.CommandResult) error {
	key := Key(logical)
	s.memory.Add(key, result)

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal command result")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	path := s.recordPath(key)
	//nolint:gosec // path is derived from the store dir and a hex key
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write command result"), "path", path)
	}
	return nil
}

// Get returns the most recent result for the logical command, memory first,
// then durable storage. Returns nil, nil when the command was never saved.
func (s *Store) Get(logical string) (*domain.CommandResult, error) {
	key := Key(logical)

	if result, ok := s.memory.Get(key); ok {
		return &result, nil
	}

	path := s.recordPath(key)
	//nolint:gosec // path is derived from the store dir and a hex key
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read command result"), "path", path)
	}

	var result domain.CommandResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to unmarshal command result"), "path", path)
	}

	// Re-warm the memory tier for the next lookup.
	s.memory.Add(key, result)
	return &result, nil
}

func (s *Store) recordPath(key string) string {
	return filepath.Join(s.dir, key+".json")
}
