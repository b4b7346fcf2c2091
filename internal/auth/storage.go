package auth

import (
	"errors"

	"github.com/zalando/go-keyring"
)

const apiKeyAccount = "api_key"

// Storage persists credentials
type Storage interface {
	GetAPIKey() (string, error)
	SetAPIKey(key string) error
	DeleteAPIKey() error
}

// KeyringStorage stores credentials in the OS keychain
type KeyringStorage struct {
	service string
}

// NewKeyringStorage creates a keychain-backed storage
func NewKeyringStorage() *KeyringStorage {
	return &KeyringStorage{service: ServiceName}
}

// GetAPIKey returns the stored key, or "" when none is stored
func (s *KeyringStorage) GetAPIKey() (string, error) {
	key, err := keyring.Get(s.service, apiKeyAccount)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	return key, err
}

// SetAPIKey stores the key
func (s *KeyringStorage) SetAPIKey(key string) error {
	return keyring.Set(s.service, apiKeyAccount, key)
}

// DeleteAPIKey removes the key. Deleting a missing key is not an error.
func (s *KeyringStorage) DeleteAPIKey() error {
	err := keyring.Delete(s.service, apiKeyAccount)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
