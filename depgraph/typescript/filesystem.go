package typescript

import (
	"io/fs"
	"os"
	"path/filepath"
)

// FileSystem is the read-only view of the disk the resolver and loader probe.
type FileSystem interface {
	// Canonical returns the canonical absolute form of path when it names an
	// existing regular file.
	Canonical(path string) (string, bool)
	// ReadFile returns the contents of the file at path.
	ReadFile(path string) ([]byte, error)
}

// OSFileSystem reads from the host filesystem.
type OSFileSystem struct{}

// Canonical makes path absolute, follows symlinks and requires a regular file.
func (OSFileSystem) Canonical(path string) (string, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", false
	}
	info, err := os.Stat(resolved)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return resolved, true
}

func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// MemoryFileSystem is an in-memory FileSystem keyed by cleaned absolute path.
// Symlinks are modelled as path aliases.
type MemoryFileSystem struct {
	files map[string][]byte
	links map[string]string
}

// NewMemoryFileSystem builds a MemoryFileSystem from path → contents.
func NewMemoryFileSystem(files map[string]string) *MemoryFileSystem {
	m := &MemoryFileSystem{
		files: make(map[string][]byte, len(files)),
		links: make(map[string]string),
	}
	for path, content := range files {
		m.files[filepath.Clean(path)] = []byte(content)
	}
	return m
}

// Symlink makes link an alias of target. Both are cleaned absolute paths.
func (m *MemoryFileSystem) Symlink(target, link string) {
	m.links[filepath.Clean(link)] = filepath.Clean(target)
}

func (m *MemoryFileSystem) Canonical(path string) (string, bool) {
	path = filepath.Clean(path)
	if !filepath.IsAbs(path) {
		return "", false
	}
	path = m.follow(path)
	if _, ok := m.files[path]; !ok {
		return "", false
	}
	return path, true
}

func (m *MemoryFileSystem) ReadFile(path string) ([]byte, error) {
	content, ok := m.files[m.follow(filepath.Clean(path))]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return content, nil
}

// follow resolves link aliases on path and each of its ancestors. A link loop
// yields "", which names no file.
func (m *MemoryFileSystem) follow(path string) string {
	for range 64 {
		next, changed := m.followOnce(path)
		if !changed {
			return next
		}
		path = next
	}
	return ""
}

func (m *MemoryFileSystem) followOnce(path string) (string, bool) {
	for prefix := path; ; prefix = filepath.Dir(prefix) {
		if target, ok := m.links[prefix]; ok {
			rest, _ := filepath.Rel(prefix, path)
			return filepath.Join(target, rest), true
		}
		if parent := filepath.Dir(prefix); parent == prefix {
			return path, false
		}
	}
}
