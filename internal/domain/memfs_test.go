package domain

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mouse-blink/lintel/internal/adapter"
	m "github.com/mouse-blink/lintel/internal/model"
)

// memFS is an in-memory SourceFSAdapter keyed by absolute path.
type memFS struct {
	mu    sync.Mutex
	files map[string]*memFile
	clock time.Time
}

type memFile struct {
	data    []byte
	modTime time.Time
}

var _ adapter.SourceFSAdapter = (*memFS)(nil)

func newMemFS(files map[string]string) *memFS {
	f := &memFS{files: map[string]*memFile{}, clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	for path, content := range files {
		f.put(path, content)
	}

	return f
}

func (f *memFS) put(path, content string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.clock = f.clock.Add(time.Second)
	f.files[filepath.Clean(path)] = &memFile{data: []byte(content), modTime: f.clock}
}

func (f *memFS) touch(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.clock = f.clock.Add(time.Second)
	f.files[filepath.Clean(path)].modTime = f.clock
}

func (f *memFS) remove(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.files, filepath.Clean(path))
}

// move relocates every file under from to the same place under to,
// keeping contents and modification times.
func (f *memFS) move(from, to string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	moved := map[string]*memFile{}

	for path, file := range f.files {
		if rel, err := filepath.Rel(from, path); err == nil && !strings.HasPrefix(rel, "..") {
			moved[filepath.Join(to, rel)] = file
			continue
		}

		moved[path] = file
	}

	f.files = moved
}

func (f *memFS) FilesToLint(path m.Path, _ m.Path) ([]m.Path, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	base := filepath.Clean(string(path))

	var out []m.Path

	for p := range f.files {
		if filepath.Ext(p) != ".go" {
			continue
		}

		if p == base || strings.HasPrefix(p, base+string(filepath.Separator)) {
			out = append(out, m.Path(p))
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out, nil
}

func (f *memFS) ReadFile(path m.Path) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	file, ok := f.files[filepath.Clean(string(path))]
	if !ok {
		return nil, fs.ErrNotExist
	}

	return append([]byte(nil), file.data...), nil
}

func (f *memFS) WriteFile(path m.Path, content []byte) error {
	f.put(string(path), string(content))
	return nil
}

func (f *memFS) ModTime(path m.Path) (time.Time, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	file, ok := f.files[filepath.Clean(string(path))]
	if !ok {
		return time.Time{}, false
	}

	return file.modTime, true
}

func (f *memFS) Exists(path m.Path) bool {
	_, ok := f.ModTime(path)
	return ok
}

func (f *memFS) RelPath(base, target m.Path) (m.Path, error) {
	rel, err := filepath.Rel(string(base), string(target))
	return m.Path(rel), err
}

// newTestResolver wires a resolver over fsys with canned remote documents.
func newTestResolver(fsys *memFS, remote adapter.RemoteFetcher, env map[string]string) ConfigResolver {
	if remote == nil {
		remote = adapter.StaticFetcher{}
	}

	decoder := adapter.NewStructuredDecoderWithEnv(func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	})

	return NewConfigResolver(fsys, decoder, remote, DefaultRegistry(), zerolog.Nop())
}
