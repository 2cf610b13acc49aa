package adapter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	m "github.com/mouse-blink/lintel/internal/model"
)

// CacheStore persists the serialized linter cache as one opaque blob.
type CacheStore interface {
	// Load returns the stored blob, or nil when nothing was stored yet.
	Load() ([]byte, error)
	// Save replaces the stored blob.
	Save(data []byte) error
}

// FileCacheStore keeps the blob zstd-compressed in a single file.
type FileCacheStore struct {
	path m.Path
	mu   sync.Mutex
}

// NewFileCacheStore constructs a store writing to path.
func NewFileCacheStore(path m.Path) *FileCacheStore {
	return &FileCacheStore{path: path}
}

// Path returns the location of the cache file.
func (s *FileCacheStore) Path() m.Path {
	return s.path
}

// Load reads and decompresses the cache file.
func (s *FileCacheStore) Load() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// #nosec G304 - path is the configured cache location
	compressed, err := os.ReadFile(string(s.path))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("read cache %s: %w", s.path, err)
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd reader: %w", err)
	}

	defer dec.Close()

	data, err := dec.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress cache %s: %w", s.path, err)
	}

	return data, nil
}

// Save compresses data and writes it atomically.
func (s *FileCacheStore) Save(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return fmt.Errorf("create zstd writer: %w", err)
	}

	compressed := enc.EncodeAll(data, nil)
	_ = enc.Close()

	dir := filepath.Dir(string(s.path))
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".lintel-cache-*")
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}

	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(compressed); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write cache: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close cache: %w", err)
	}

	if err := os.Rename(tmp.Name(), string(s.path)); err != nil {
		return fmt.Errorf("replace cache %s: %w", s.path, err)
	}

	return nil
}

// MemoryCacheStore keeps the blob in memory. Several caches sharing one
// MemoryCacheStore behave like consecutive processes sharing a cache file.
type MemoryCacheStore struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryCacheStore constructs an empty in-memory store.
func NewMemoryCacheStore() *MemoryCacheStore {
	return &MemoryCacheStore{}
}

// Load returns a copy of the stored blob.
func (s *MemoryCacheStore) Load() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return nil, nil
	}

	return append([]byte(nil), s.data...), nil
}

// Save stores a copy of data.
func (s *MemoryCacheStore) Save(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = append([]byte(nil), data...)

	return nil
}
