package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

const (
	// ServiceName is the keyring service name
	ServiceName = "linear-cli"

	// EnvAPIKey is the environment variable holding a personal API key
	EnvAPIKey = "LINEAR_API_KEY"

	// APIKeyPrefix is the prefix of Linear personal API keys
	APIKeyPrefix = "lin_api_"
)

// ErrNotAuthenticated is returned when no API key could be found
var ErrNotAuthenticated = errors.New("LINEAR_API_KEY not set: run 'linear auth login' or set LINEAR_API_KEY (get a key from https://linear.app/settings/api)")

// Source identifies where a credential came from
type Source string

const (
	SourceNone     Source = "none"
	SourceEnv      Source = "env:LINEAR_API_KEY"
	SourceKeychain Source = "keychain"
	SourceConfig   Source = "config"
)

// AuthStatus represents the current authentication status
type AuthStatus struct {
	Authenticated bool   `json:"authenticated"`
	Source        Source `json:"source"`
	Key           string `json:"key,omitempty"` // masked
}

// Manager handles authentication operations
type Manager struct {
	storage   Storage
	getenv    func(string) string
	configKey string
}

// ManagerOption configures a Manager
type ManagerOption func(*Manager)

// WithStorage replaces the keychain storage
func WithStorage(s Storage) ManagerOption {
	return func(m *Manager) {
		m.storage = s
	}
}

// WithConfigKey sets the api_key value read from the config file, used as
// the last fallback
func WithConfigKey(key string) ManagerOption {
	return func(m *Manager) {
		m.configKey = key
	}
}

// WithGetenv replaces the environment lookup
func WithGetenv(getenv func(string) string) ManagerOption {
	return func(m *Manager) {
		m.getenv = getenv
	}
}

// NewManager creates a new auth manager
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		storage: NewKeyringStorage(),
		getenv:  os.Getenv,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// GetToken returns the API key using priority order:
// 1. LINEAR_API_KEY environment variable
// 2. Keychain storage
// 3. Config file api_key
func (m *Manager) GetToken(ctx context.Context) (string, Source, error) {
	if key := strings.TrimSpace(m.getenv(EnvAPIKey)); key != "" {
		return key, SourceEnv, nil
	}

	if key, err := m.storage.GetAPIKey(); err == nil && key != "" {
		return key, SourceKeychain, nil
	}

	if key := strings.TrimSpace(m.configKey); key != "" {
		return key, SourceConfig, nil
	}

	return "", SourceNone, ErrNotAuthenticated
}

// GetStatus returns the current authentication status
func (m *Manager) GetStatus(ctx context.Context) (*AuthStatus, error) {
	key, source, err := m.GetToken(ctx)
	if errors.Is(err, ErrNotAuthenticated) {
		return &AuthStatus{Source: SourceNone}, nil
	}
	if err != nil {
		return nil, err
	}

	return &AuthStatus{
		Authenticated: true,
		Source:        source,
		Key:           MaskKey(key),
	}, nil
}

// LoginWithAPIKey stores an API key in the keychain
func (m *Manager) LoginWithAPIKey(apiKey string) error {
	apiKey = strings.TrimSpace(apiKey)
	if !strings.HasPrefix(apiKey, APIKeyPrefix) {
		return fmt.Errorf("invalid API key format: should start with '%s'", APIKeyPrefix)
	}

	return m.storage.SetAPIKey(apiKey)
}

// Logout removes the stored API key
func (m *Manager) Logout() error {
	if err := m.storage.DeleteAPIKey(); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	return nil
}

// MaskKey hides all but the prefix and last four characters of a key
func MaskKey(key string) string {
	if len(key) <= len(APIKeyPrefix)+4 {
		return strings.Repeat("*", len(key))
	}

	prefix := ""
	if strings.HasPrefix(key, APIKeyPrefix) {
		prefix = APIKeyPrefix
	}
	hidden := len(key) - len(prefix) - 4
	return prefix + strings.Repeat("*", hidden) + key[len(key)-4:]
}
