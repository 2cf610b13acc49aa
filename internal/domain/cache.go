package domain

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mouse-blink/lintel/internal/adapter"
	m "github.com/mouse-blink/lintel/internal/model"
)

// CacheVersion marks the layout and rule semantics cached results were
// produced with. Caches written under another version are discarded.
const CacheVersion = "lintel-cache/1"

// CacheEntry is what the cache remembers about one file. Violation
// locations are stored relative to the root.
type CacheEntry struct {
	ModTime     time.Time     `json:"mtime"`
	Fingerprint string        `json:"fingerprint"`
	Violations  []m.Violation `json:"violations"`
}

type cacheBlob struct {
	Version string                `json:"version"`
	Entries map[string]CacheEntry `json:"entries"`
}

// LinterCache remembers the violations of unchanged files between runs.
//
// Load is called once before the parallel phase; CachedViolations is then
// safe to call concurrently. Cache and Flush run on the coordinating
// goroutine after the parallel phase.
type LinterCache struct {
	store    adapter.CacheStore
	fs       adapter.SourceFSAdapter
	registry *Registry
	root     string
	version  string
	log      zerolog.Logger

	mu      sync.RWMutex
	entries map[string]CacheEntry
	pending map[string]CacheEntry
}

// NewLinterCache creates a cache for files under root.
func NewLinterCache(
	store adapter.CacheStore,
	fs adapter.SourceFSAdapter,
	registry *Registry,
	root string,
	version string,
	log zerolog.Logger,
) *LinterCache {
	return &LinterCache{
		store:    store,
		fs:       fs,
		registry: registry,
		root:     filepath.Clean(root),
		version:  version,
		log:      log,
		entries:  map[string]CacheEntry{},
		pending:  map[string]CacheEntry{},
	}
}

// Load reads the persisted entries. An unreadable, corrupt or outdated
// cache is treated as empty.
func (c *LinterCache) Load() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = map[string]CacheEntry{}

	data, err := c.store.Load()
	if err != nil {
		c.log.Debug().Err(err).Msg("cache unreadable, starting empty")
		return
	}

	if data == nil {
		return
	}

	var blob cacheBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		c.log.Debug().Err(err).Msg("cache corrupt, starting empty")
		return
	}

	if blob.Version != c.version {
		c.log.Debug().Str("cached", blob.Version).Str("current", c.version).Msg("cache version changed, starting empty")
		return
	}

	if blob.Entries != nil {
		c.entries = blob.Entries
	}
}

// key is the root-relative, slash-separated path of file, or file itself
// when it cannot be made relative.
func (c *LinterCache) key(file m.Path) string {
	rel, err := c.fs.RelPath(m.Path(c.root), file)
	if err != nil {
		return string(file)
	}

	return filepath.ToSlash(string(rel))
}

// CachedViolations returns the stored violations of file, or nil when the
// file has to be linted again.
func (c *LinterCache) CachedViolations(file m.Path, cfg Configuration) []m.Violation {
	c.mu.RLock()
	entry, ok := c.entries[c.key(file)]
	c.mu.RUnlock()

	if !ok {
		return nil
	}

	modTime, ok := c.fs.ModTime(file)
	if !ok || !modTime.Equal(entry.ModTime) {
		return nil
	}

	if entry.Fingerprint != cfg.Fingerprint(c.registry, c.version) {
		return nil
	}

	out := make([]m.Violation, len(entry.Violations))
	for i, v := range entry.Violations {
		v.Location.File = file
		out[i] = v
	}

	return out
}

// Cache records the violations of file under the fingerprint of cfg.
func (c *LinterCache) Cache(violations []m.Violation, file m.Path, cfg Configuration) {
	modTime, ok := c.fs.ModTime(file)
	if !ok {
		return
	}

	stored := make([]m.Violation, len(violations))
	for i, v := range violations {
		v.Location.File = m.Path(c.key(file))
		stored[i] = v
	}

	entry := CacheEntry{
		ModTime:     modTime,
		Fingerprint: cfg.Fingerprint(c.registry, c.version),
		Violations:  stored,
	}

	c.mu.Lock()
	c.pending[c.key(file)] = entry
	c.mu.Unlock()
}

// Flush merges recorded entries into the loaded ones, drops entries of
// files that no longer exist and persists the result.
func (c *LinterCache) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	merged := make(map[string]CacheEntry, len(c.entries)+len(c.pending))
	for k, v := range c.entries {
		merged[k] = v
	}

	for k, v := range c.pending {
		merged[k] = v
	}

	for k := range merged {
		if !c.fs.Exists(m.Path(filepath.Join(c.root, filepath.FromSlash(k)))) {
			delete(merged, k)
		}
	}

	data, err := json.Marshal(cacheBlob{Version: c.version, Entries: merged})
	if err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}

	if err := c.store.Save(data); err != nil {
		return fmt.Errorf("save cache: %w", err)
	}

	c.entries = merged
	c.pending = map[string]CacheEntry{}

	return nil
}
