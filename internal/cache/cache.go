package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DefaultTTL is the default cache time-to-live (24 hours)
	DefaultTTL = 24 * time.Hour

	// CacheDir is the cache directory name
	CacheDir = "linear-cli"
)

// Entry represents a cached item with timestamp
type Entry[T any] struct {
	Data      T         `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

// Manager handles cache operations
type Manager struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

// NewManager creates a cache manager under $XDG_CACHE_HOME (or ~/.cache)
func NewManager() (*Manager, error) {
	cacheDir, err := getCacheDir()
	if err != nil {
		return nil, err
	}

	return NewManagerAt(cacheDir, DefaultTTL), nil
}

// NewManagerAt creates a cache manager rooted at dir
func NewManagerAt(dir string, ttl time.Duration) *Manager {
	return &Manager{
		dir: dir,
		ttl: ttl,
		now: time.Now,
	}
}

// Dir returns the cache directory
func (m *Manager) Dir() string {
	return m.dir
}

func getCacheDir() (string, error) {
	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		cacheHome = filepath.Join(home, ".cache")
	}

	return filepath.Join(cacheHome, CacheDir), nil
}

func (m *Manager) keyPath(key string) string {
	return filepath.Join(m.dir, key+".json")
}

// Read retrieves a cached item, returns nil if not found or expired
func Read[T any](m *Manager, key string) (*T, error) {
	path := m.keyPath(key)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // Cache miss, not an error
		}
		return nil, err
	}

	var entry Entry[T]
	if err := json.Unmarshal(data, &entry); err != nil {
		// Corrupt entry, treat as miss
		return nil, nil
	}

	if m.now().Sub(entry.Timestamp) > m.ttl {
		os.Remove(path)
		return nil, nil
	}

	return &entry.Data, nil
}

// Write stores an item in the cache
func Write[T any](m *Manager, key string, data T) error {
	if err := os.MkdirAll(m.dir, 0755); err != nil {
		return err
	}

	entry := Entry[T]{
		Data:      data,
		Timestamp: m.now(),
	}

	bytes, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(m.keyPath(key), bytes, 0644)
}

// ClearAll removes all cache entries and returns how many were removed
func (m *Manager) ClearAll() (int, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	removed := 0
	for _, entry := range entries {
		if filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		if err := os.Remove(filepath.Join(m.dir, entry.Name())); err == nil {
			removed++
		}
	}

	return removed, nil
}

// GetOrFetch retrieves from cache or calls fetch function if not cached.
// Write failures are ignored; the fetched value is still returned.
func GetOrFetch[T any](m *Manager, key string, fetch func() (T, error)) (T, error) {
	cached, err := Read[T](m, key)
	if err == nil && cached != nil {
		return *cached, nil
	}

	data, err := fetch()
	if err != nil {
		return data, err
	}

	Write(m, key, data)

	return data, nil
}

// TeamIDKey returns the cache key for a team key → ID lookup
func TeamIDKey(teamKey string) string {
	return "team-id-" + strings.ToUpper(teamKey)
}
