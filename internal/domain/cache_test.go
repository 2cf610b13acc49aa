package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/lintel/internal/adapter"
	adaptermocks "github.com/mouse-blink/lintel/internal/adapter/mocks"
	"github.com/mouse-blink/lintel/internal/domain/rules"
	m "github.com/mouse-blink/lintel/internal/model"
)

func newTestCache(store adapter.CacheStore, fsys *memFS, root string) *LinterCache {
	c := NewLinterCache(store, fsys, DefaultRegistry(), root, CacheVersion, zerolog.Nop())
	c.Load()

	return c
}

func TestLinterCache_FlushIsVisibleToNewCache(t *testing.T) {
	fsys := newMemFS(map[string]string{"/repo/a.go": "package a\n", "/repo/b.go": "package b\n"})
	store := adapter.NewMemoryCacheStore()
	cfg := DefaultConfiguration("/repo")

	first := newTestCache(store, fsys, "/repo")
	assert.Nil(t, first.CachedViolations("/repo/a.go", cfg))

	first.Cache(nil, "/repo/a.go", cfg)
	first.Cache(nil, "/repo/b.go", cfg)
	require.NoError(t, first.Flush())

	second := newTestCache(store, fsys, "/repo")
	a := second.CachedViolations("/repo/a.go", cfg)
	require.NotNil(t, a)
	assert.Empty(t, a)
	assert.NotNil(t, second.CachedViolations("/repo/b.go", cfg))
}

func TestLinterCache_InvalidationGranularity(t *testing.T) {
	fsys := newMemFS(map[string]string{"/repo/a.go": "package a\n", "/repo/b.go": "package b\n"})
	store := adapter.NewMemoryCacheStore()
	cfg := DefaultConfiguration("/repo")

	c := newTestCache(store, fsys, "/repo")
	c.Cache(nil, "/repo/a.go", cfg)
	c.Cache(nil, "/repo/b.go", cfg)
	require.NoError(t, c.Flush())

	fsys.touch("/repo/b.go")

	c = newTestCache(store, fsys, "/repo")
	assert.NotNil(t, c.CachedViolations("/repo/a.go", cfg))
	assert.Nil(t, c.CachedViolations("/repo/b.go", cfg))

	fsys.remove("/repo/b.go")
	require.NoError(t, c.Flush())

	c = newTestCache(store, fsys, "/repo")
	assert.NotNil(t, c.CachedViolations("/repo/a.go", cfg))

	blob, err := store.Load()
	require.NoError(t, err)
	assert.Contains(t, string(blob), `"a.go"`)
	assert.NotContains(t, string(blob), `"b.go"`)
}

func TestLinterCache_ConfigurationShape(t *testing.T) {
	resolveDoc := func(doc string) Configuration {
		fsys := newMemFS(map[string]string{"/repo/.lintel.yml": doc})
		return newTestResolver(fsys, nil, nil).Resolve(context.Background(), ResolveArgs{Root: "/repo"}).Config
	}

	registry := DefaultRegistry()
	base := resolveDoc("disabled_rules: [todo, nesting]\nline_length:\n  warning: 100\n  error: 150\n")
	fingerprint := base.Fingerprint(registry, CacheVersion)

	same := []string{
		"# reordered\nline_length:\n  error: 150\n  warning: 100\n\ndisabled_rules:\n  - nesting\n  - todo\n",
		"disabled_rules: [todo, nesting]   # trailing comment\nline_length: {warning: 100, error: 150}\n",
	}
	for _, doc := range same {
		assert.Equal(t, fingerprint, resolveDoc(doc).Fingerprint(registry, CacheVersion), doc)
	}

	different := []string{
		"disabled_rules: [todo]\nline_length:\n  warning: 100\n  error: 150\n",
		"disabled_rules: [todo, nesting]\nline_length:\n  warning: 110\n  error: 150\n",
		"disabled_rules: [todo, nesting]\nopt_in_rules: [print_statement]\nline_length:\n  warning: 100\n  error: 150\n",
		"only_rules: [line_length]\nline_length:\n  warning: 100\n  error: 150\n",
	}
	for _, doc := range different {
		assert.NotEqual(t, fingerprint, resolveDoc(doc).Fingerprint(registry, CacheVersion), doc)
	}

	assert.NotEqual(t, fingerprint, base.Fingerprint(registry, "other-version"))

	t.Run("shape change invalidates every entry", func(t *testing.T) {
		fsys := newMemFS(map[string]string{"/repo/a.go": "package a\n", "/repo/b.go": "package b\n"})
		store := adapter.NewMemoryCacheStore()

		c := newTestCache(store, fsys, "/repo")
		c.Cache(nil, "/repo/a.go", base)
		c.Cache(nil, "/repo/b.go", base)
		require.NoError(t, c.Flush())

		changed := resolveDoc("disabled_rules: [todo]\n")
		c = newTestCache(store, fsys, "/repo")
		assert.Nil(t, c.CachedViolations("/repo/a.go", changed))
		assert.Nil(t, c.CachedViolations("/repo/b.go", changed))
		assert.NotNil(t, c.CachedViolations("/repo/a.go", base))
	})
}

func TestLinterCache_RootMoveAndSameBasename(t *testing.T) {
	fsys := newMemFS(map[string]string{
		"/repo/x/a.go": "package x\n",
		"/repo/y/a.go": "package y\n",
	})
	store := adapter.NewMemoryCacheStore()
	cfg := DefaultConfiguration("/repo")

	vx := m.Violation{RuleID: rules.TodoID, Severity: m.SeverityWarning, Location: m.Location{File: "/repo/x/a.go", Line: 3, Character: 4}, Reason: "x"}
	vy := m.Violation{RuleID: rules.NestingID, Severity: m.SeverityError, Location: m.Location{File: "/repo/y/a.go", Line: 7}, Reason: "y"}

	c := newTestCache(store, fsys, "/repo")
	c.Cache([]m.Violation{vx}, "/repo/x/a.go", cfg)
	c.Cache([]m.Violation{vy}, "/repo/y/a.go", cfg)
	require.NoError(t, c.Flush())

	c = newTestCache(store, fsys, "/repo")
	assert.Equal(t, []m.Violation{vx}, c.CachedViolations("/repo/x/a.go", cfg))
	assert.Equal(t, []m.Violation{vy}, c.CachedViolations("/repo/y/a.go", cfg))

	fsys.move("/repo", "/moved")

	moved := DefaultConfiguration("/moved")
	c = newTestCache(store, fsys, "/moved")

	got := c.CachedViolations("/moved/x/a.go", moved)
	require.Len(t, got, 1)
	assert.Equal(t, m.Path("/moved/x/a.go"), got[0].Location.File)
	assert.Equal(t, 3, got[0].Location.Line)

	got = c.CachedViolations("/moved/y/a.go", moved)
	require.Len(t, got, 1)
	assert.Equal(t, m.Path("/moved/y/a.go"), got[0].Location.File)
	assert.Equal(t, rules.NestingID, got[0].RuleID)
}

func TestLinterCache_UnusableBlobs(t *testing.T) {
	fsys := newMemFS(map[string]string{"/repo/a.go": "package a\n"})
	cfg := DefaultConfiguration("/repo")

	t.Run("corrupt", func(t *testing.T) {
		store := adapter.NewMemoryCacheStore()
		require.NoError(t, store.Save([]byte("{not json")))

		assert.Nil(t, newTestCache(store, fsys, "/repo").CachedViolations("/repo/a.go", cfg))
	})

	t.Run("version mismatch", func(t *testing.T) {
		store := adapter.NewMemoryCacheStore()

		old := NewLinterCache(store, fsys, DefaultRegistry(), "/repo", "lintel-cache/0", zerolog.Nop())
		old.Cache(nil, "/repo/a.go", cfg)
		require.NoError(t, old.Flush())

		assert.Nil(t, newTestCache(store, fsys, "/repo").CachedViolations("/repo/a.go", cfg))
	})

	t.Run("store errors", func(t *testing.T) {
		store := adaptermocks.NewMockCacheStore(t)
		store.EXPECT().Load().Return(nil, errors.New("disk gone"))
		store.EXPECT().Save(mock.Anything).Return(errors.New("read-only"))

		c := newTestCache(store, fsys, "/repo")
		assert.Nil(t, c.CachedViolations("/repo/a.go", cfg))

		c.Cache(nil, "/repo/a.go", cfg)
		assert.Error(t, c.Flush())
	})
}
