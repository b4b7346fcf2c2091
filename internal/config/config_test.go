package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	m := NewManagerAt(filepath.Join(t.TempDir(), FileName))
	cfg, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestSaveAndLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", FileName)
	m := NewManagerAt(path)

	cfg := &Config{}
	require.NoError(t, cfg.Set("team_key", "ENG"))
	require.NoError(t, cfg.Set("no_color", "true"))
	require.NoError(t, m.Save(cfg))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, "ENG", loaded.TeamKey)
	assert.True(t, loaded.NoColor)
	assert.Empty(t, loaded.APIKey)
}

func TestLoadParsesTOML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), FileName)
	content := "api_key = \"lin_api_x\"\napi_url = \"http://localhost:8080/graphql\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := NewManagerAt(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "lin_api_x", cfg.APIKey)
	assert.Equal(t, "http://localhost:8080/graphql", cfg.APIURL)
}

func TestLoadInvalidTOML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("api_key = "), 0600))

	_, err := NewManagerAt(path).Load()
	require.Error(t, err)
}

func TestGetSet(t *testing.T) {
	t.Parallel()

	cfg := &Config{}

	tests := []struct {
		key     string
		value   string
		want    string
		wantErr bool
	}{
		{key: "api_key", value: "lin_api_k", want: "lin_api_k"},
		{key: "team_key", value: "ENG", want: "ENG"},
		{key: "no_color", value: "1", want: "true"},
		{key: "no_color", value: "maybe", wantErr: true},
		{key: "api_url", value: "http://x", want: "http://x"},
		{key: "colour", value: "x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			err := cfg.Set(tt.key, tt.value)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			got, err := cfg.Get(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := cfg.Get("colour")
	require.ErrorIs(t, err, ErrUnknownKey)
}

func TestMapOmitsEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, (&Config{}).Map())
	assert.Equal(t,
		map[string]interface{}{"team_key": "ENG", "no_color": true},
		(&Config{TeamKey: "ENG", NoColor: true}).Map(),
	)
}

func TestKeys(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"api_key", "api_url", "no_color", "team_key"}, Keys())
}
