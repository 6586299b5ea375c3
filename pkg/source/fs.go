package source

import (
	"errors"
	"os"
	"path"
	"sync"
)

// ErrFileNotFound is returned by MemFS for unknown paths.
var ErrFileNotFound = errors.New("file not found")

// FS reads whole source files.
type FS interface {
	ReadFile(name string) ([]byte, error)
	Exists(name string) bool
}

// OSFS reads from the host filesystem.
type OSFS struct{}

func (OSFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (OSFS) Exists(name string) bool {
	_, err := os.Stat(name)
	return err == nil
}

// MemFS is an in-memory file set keyed by cleaned slash-separated paths.
type MemFS struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemFS creates a MemFS holding files.
func NewMemFS(files map[string]string) *MemFS {
	m := &MemFS{files: make(map[string][]byte, len(files))}
	for name, content := range files {
		m.Write(name, []byte(content))
	}
	return m
}

// Write stores a copy of data under name, replacing any previous content.
func (m *MemFS) Write(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	buf := make([]byte, len(data))
	copy(buf, data)
	m.files[path.Clean(name)] = buf
}

func (m *MemFS) ReadFile(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.files[path.Clean(name)]
	if !ok {
		return nil, ErrFileNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *MemFS) Exists(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.files[path.Clean(name)]
	return ok
}
