package cache

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWrite(t *testing.T) {
	t.Parallel()

	m := NewManagerAt(filepath.Join(t.TempDir(), CacheDir), time.Hour)

	got, err := Read[string](m, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, Write(m, "team-id-ENG", "uuid-1"))
	got, err = Read[string](m, "team-id-ENG")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "uuid-1", *got)
}

func TestExpiredEntryIsRemoved(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	m := NewManagerAt(dir, time.Hour)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	require.NoError(t, Write(m, "k", 42))

	now = now.Add(2 * time.Hour)
	got, err := Read[int](m, "k")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = os.Stat(filepath.Join(dir, "k.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestCorruptEntryIsMiss(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{"), 0644))

	got, err := Read[string](NewManagerAt(dir, time.Hour), "bad")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetOrFetch(t *testing.T) {
	t.Parallel()

	m := NewManagerAt(t.TempDir(), time.Hour)
	calls := 0
	fetch := func() (string, error) {
		calls++
		return "uuid-2", nil
	}

	for i := 0; i < 3; i++ {
		v, err := GetOrFetch(m, TeamIDKey("eng"), fetch)
		require.NoError(t, err)
		assert.Equal(t, "uuid-2", v)
	}
	assert.Equal(t, 1, calls)

	_, err := GetOrFetch(m, "other", func() (string, error) {
		return "", errors.New("boom")
	})
	require.EqualError(t, err, "boom")

	got, err := Read[string](m, "other")
	require.NoError(t, err)
	assert.Nil(t, got, "failed fetches are not cached")
}

func TestClearAll(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	m := NewManagerAt(dir, time.Hour)

	n, err := NewManagerAt(filepath.Join(dir, "absent"), time.Hour).ClearAll()
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, Write(m, "a", 1))
	require.NoError(t, Write(m, "b", 2))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keep.txt"), nil, 0644))

	n, err = m.ClearAll()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = os.Stat(filepath.Join(dir, "keep.txt"))
	assert.NoError(t, err)
}

func TestTeamIDKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "team-id-ENG", TeamIDKey("eng"))
}
