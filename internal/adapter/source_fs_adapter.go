// Package adapter contains the infrastructure the linter domain depends on:
// filesystem access, parsing, document decoding, remote fetching and cache
// persistence.
package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	m "github.com/mouse-blink/lintel/internal/model"
)

const goFileExt = ".go"

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when scanning user projects. It intentionally hides direct `os`
// access so the linter logic can be tested without touching the disk.
//
//nolint:interfacebloat // A richer interface keeps workflow logic decoupled from os/fs.
type SourceFSAdapter interface {
	// FilesToLint expands path (a file, a directory or a `dir/...` pattern)
	// into the Go source files below it. Relative paths resolve against root.
	FilesToLint(path m.Path, root m.Path) ([]m.Path, error)

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// WriteFile replaces the contents of an existing file, keeping its mode.
	WriteFile(path m.Path, content []byte) error

	// ModTime returns the modification time of path, or false if it is gone.
	ModTime(path m.Path) (time.Time, bool)

	// Exists reports whether a regular file exists at path.
	Exists(path m.Path) bool

	// RelPath returns the relative path from base to target.
	RelPath(base, target m.Path) (m.Path, error)
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here to avoid leaking the standard-library type directly into the
// domain layer.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalSourceFSAdapter is the disk-backed SourceFSAdapter.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// FilesToLint returns the sorted, de-duplicated Go files for path.
func (a *LocalSourceFSAdapter) FilesToLint(path m.Path, root m.Path) ([]m.Path, error) {
	rootPath := trimPattern(string(path))
	if rootPath == "" {
		rootPath = "."
	}

	if !filepath.IsAbs(rootPath) {
		rootPath = filepath.Join(string(root), rootPath)
	}

	rootPath = filepath.Clean(rootPath)

	info, err := os.Stat(rootPath)
	if err != nil {
		return nil, fmt.Errorf("root path error: %w", err)
	}

	if !info.IsDir() {
		if filepath.Ext(rootPath) != goFileExt {
			return nil, nil
		}

		return []m.Path{m.Path(rootPath)}, nil
	}

	seen := make(map[string]struct{})

	var files []m.Path

	// A bare directory is scanned recursively, matching `dir/...`.
	err = a.Walk(m.Path(rootPath), func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if p != rootPath && skipDir(info.Name()) {
				return filepath.SkipDir
			}

			return nil
		}

		if filepath.Ext(p) != goFileExt {
			return nil
		}

		if _, ok := seen[p]; ok {
			return nil
		}

		seen[p] = struct{}{}
		files = append(files, m.Path(p))

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i] < files[j] })

	return files, nil
}

func skipDir(name string) bool {
	if name == "vendor" || name == "testdata" || name == "node_modules" {
		return true
	}

	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

// Walk iterates over every file and directory under root.
func (a *LocalSourceFSAdapter) Walk(root m.Path, fn FilepathWalkFunc) error {
	return filepath.Walk(string(root), func(path string, info os.FileInfo, err error) error {
		return fn(path, info, err)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// WriteFile rewrites path keeping its permissions.
func (a *LocalSourceFSAdapter) WriteFile(path m.Path, content []byte) error {
	info, err := os.Stat(string(path))
	if err != nil {
		return err
	}

	return os.WriteFile(string(path), content, info.Mode().Perm())
}

// ModTime returns the modification time of path.
func (a *LocalSourceFSAdapter) ModTime(path m.Path) (time.Time, bool) {
	info, err := os.Stat(string(path))
	if err != nil {
		return time.Time{}, false
	}

	return info.ModTime(), true
}

// Exists reports whether path is an existing regular file.
func (a *LocalSourceFSAdapter) Exists(path m.Path) bool {
	info, err := os.Stat(string(path))
	if err != nil {
		return false
	}

	return info.Mode().IsRegular()
}

// RelPath returns the relative path from base to target.
func (a *LocalSourceFSAdapter) RelPath(base, target m.Path) (m.Path, error) {
	rel, err := filepath.Rel(string(base), string(target))
	if err != nil {
		return "", err
	}

	return m.Path(rel), nil
}

// trimPattern strips a trailing `/...` so Go-style package patterns name
// their directory.
func trimPattern(path string) string {
	if path == "..." {
		return "."
	}

	return strings.TrimSuffix(path, "/...")
}
