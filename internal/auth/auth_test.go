package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

type memStorage struct {
	key string
}

func (s *memStorage) GetAPIKey() (string, error) { return s.key, nil }
func (s *memStorage) SetAPIKey(key string) error  { s.key = key; return nil }
func (s *memStorage) DeleteAPIKey() error         { s.key = ""; return nil }

func env(values map[string]string) func(string) string {
	return func(k string) string { return values[k] }
}

func TestGetTokenPriority(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("env wins", func(t *testing.T) {
		t.Parallel()
		m := NewManager(
			WithStorage(&memStorage{key: "lin_api_keychain"}),
			WithConfigKey("lin_api_config"),
			WithGetenv(env(map[string]string{EnvAPIKey: "lin_api_env"})),
		)
		key, source, err := m.GetToken(ctx)
		require.NoError(t, err)
		assert.Equal(t, "lin_api_env", key)
		assert.Equal(t, SourceEnv, source)
	})

	t.Run("keychain before config", func(t *testing.T) {
		t.Parallel()
		m := NewManager(
			WithStorage(&memStorage{key: "lin_api_keychain"}),
			WithConfigKey("lin_api_config"),
			WithGetenv(env(nil)),
		)
		key, source, err := m.GetToken(ctx)
		require.NoError(t, err)
		assert.Equal(t, "lin_api_keychain", key)
		assert.Equal(t, SourceKeychain, source)
	})

	t.Run("config fallback", func(t *testing.T) {
		t.Parallel()
		m := NewManager(
			WithStorage(&memStorage{}),
			WithConfigKey("lin_api_config"),
			WithGetenv(env(nil)),
		)
		key, source, err := m.GetToken(ctx)
		require.NoError(t, err)
		assert.Equal(t, "lin_api_config", key)
		assert.Equal(t, SourceConfig, source)
	})

	t.Run("nothing configured", func(t *testing.T) {
		t.Parallel()
		m := NewManager(WithStorage(&memStorage{}), WithGetenv(env(nil)))
		_, source, err := m.GetToken(ctx)
		require.ErrorIs(t, err, ErrNotAuthenticated)
		assert.Equal(t, SourceNone, source)
	})

	t.Run("blank env ignored", func(t *testing.T) {
		t.Parallel()
		m := NewManager(
			WithStorage(&memStorage{}),
			WithGetenv(env(map[string]string{EnvAPIKey: "   "})),
		)
		_, _, err := m.GetToken(ctx)
		require.ErrorIs(t, err, ErrNotAuthenticated)
	})
}

func TestGetStatus(t *testing.T) {
	t.Parallel()

	m := NewManager(WithStorage(&memStorage{}), WithGetenv(env(nil)))
	status, err := m.GetStatus(context.Background())
	require.NoError(t, err)
	assert.False(t, status.Authenticated)

	m = NewManager(WithStorage(&memStorage{key: "lin_api_abcdefgh1234"}), WithGetenv(env(nil)))
	status, err = m.GetStatus(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Authenticated)
	assert.Equal(t, SourceKeychain, status.Source)
	assert.Equal(t, "lin_api_********1234", status.Key)
}

func TestLoginValidatesPrefix(t *testing.T) {
	t.Parallel()

	storage := &memStorage{}
	m := NewManager(WithStorage(storage), WithGetenv(env(nil)))

	require.Error(t, m.LoginWithAPIKey("not-a-key"))
	assert.Empty(t, storage.key)

	require.NoError(t, m.LoginWithAPIKey("  lin_api_valid  \n"))
	assert.Equal(t, "lin_api_valid", storage.key)

	require.NoError(t, m.Logout())
	assert.Empty(t, storage.key)
}

func TestKeyringStorage(t *testing.T) {
	keyring.MockInit()

	s := NewKeyringStorage()

	key, err := s.GetAPIKey()
	require.NoError(t, err)
	assert.Empty(t, key)

	require.NoError(t, s.SetAPIKey("lin_api_stored"))
	key, err = s.GetAPIKey()
	require.NoError(t, err)
	assert.Equal(t, "lin_api_stored", key)

	require.NoError(t, s.DeleteAPIKey())
	require.NoError(t, s.DeleteAPIKey(), "deleting twice is fine")
}

func TestMaskKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "****", MaskKey("abcd"))
	assert.Equal(t, "************", MaskKey("abcdefgh5678"))
	assert.Equal(t, "*********5678", MaskKey("abcdefghi5678"))
	assert.Equal(t, "lin_api_***wxyz", MaskKey("lin_api_abcwxyz"))
}
