package update

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		goos, goarch string
		want         string
	}{
		{"darwin", "arm64", "linear-macos-aarch64"},
		{"darwin", "amd64", "linear-macos-x86_64"},
		{"linux", "amd64", "linear-linux-x86_64"},
		{"linux", "arm64", "linear-linux-aarch64"},
	}
	for _, tt := range tests {
		got, err := AssetName(tt.goos, tt.goarch)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := AssetName("windows", "amd64")
	require.ErrorIs(t, err, ErrUnsupportedPlatform)
	assert.Contains(t, err.Error(), "windows-amd64")
}

func TestCompare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		current, latest string
		want            Status
	}{
		{"0.2.0", "v0.2.0", StatusUpToDate},
		{"v0.2.0", "0.2.0", StatusUpToDate},
		{"0.2.0", "v0.3.0", StatusAvailable},
		{"0.3.0", "v0.2.0", StatusAhead},
		{"dev", "v0.3.0", StatusAvailable},
		{"1.0.0", "v1.0", StatusUpToDate},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Compare(tt.current, tt.latest), "%s vs %s", tt.current, tt.latest)
	}
}

type fakeRelease struct {
	server    *httptest.Server
	downloads atomic.Int32
	agents    chan string
}

func newFakeRelease(t *testing.T, tag string, assets []string, binary string) *fakeRelease {
	t.Helper()

	return newFakeReleaseServing(t, tag, assets, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(binary))
	})
}

// newFakeReleaseServing answers asset downloads with download
func newFakeReleaseServing(t *testing.T, tag string, assets []string, download http.HandlerFunc) *fakeRelease {
	t.Helper()

	f := &fakeRelease{agents: make(chan string, 8)}
	mux := http.NewServeMux()
	mux.HandleFunc("/releases/latest", func(w http.ResponseWriter, r *http.Request) {
		f.agents <- r.Header.Get("User-Agent")
		release := Release{TagName: tag}
		for _, name := range assets {
			release.Assets = append(release.Assets, Asset{
				Name:               name,
				BrowserDownloadURL: f.server.URL + "/download/" + name,
			})
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(release)
	})
	mux.HandleFunc("/download/", func(w http.ResponseWriter, r *http.Request) {
		f.downloads.Add(1)
		download(w, r)
	})
	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func writeExecutable(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "linear")
	require.NoError(t, os.WriteFile(path, []byte("old binary"), 0755))
	return path
}

func newTestUpdater(f *fakeRelease, current, exe string) *Updater {
	return New(current,
		WithReleaseURL(f.server.URL+"/releases/latest"),
		WithPlatform("linux", "amd64"),
		WithExecutable(func() (string, error) { return exe, nil }),
	)
}

func TestRunUpToDateDoesNotDownload(t *testing.T) {
	t.Parallel()

	f := newFakeRelease(t, "v0.2.0", []string{"linear-linux-x86_64"}, "new binary")
	exe := writeExecutable(t)

	result, err := newTestUpdater(f, "0.2.0", exe).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusUpToDate, result.Status)
	assert.False(t, result.Updated)
	assert.Zero(t, f.downloads.Load())
	assert.Equal(t, UserAgent, <-f.agents)

	data, err := os.ReadFile(exe)
	require.NoError(t, err)
	assert.Equal(t, "old binary", string(data))
}

func TestRunReplacesExecutable(t *testing.T) {
	t.Parallel()

	f := newFakeRelease(t, "v0.3.0", []string{"linear-macos-aarch64", "linear-linux-x86_64"}, "new binary")
	exe := writeExecutable(t)

	result, err := newTestUpdater(f, "0.2.0", exe).Run(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Updated)
	assert.Equal(t, "0.3.0", result.Latest)
	assert.Equal(t, "linear-linux-x86_64", result.Asset)
	assert.EqualValues(t, 1, f.downloads.Load())

	data, err := os.ReadFile(exe)
	require.NoError(t, err)
	assert.Equal(t, "new binary", string(data))

	info, err := os.Stat(exe)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(exe))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestRunMissingAssetLeavesBinary(t *testing.T) {
	t.Parallel()

	f := newFakeRelease(t, "v0.3.0", []string{"linear-macos-aarch64"}, "new binary")
	exe := writeExecutable(t)

	_, err := newTestUpdater(f, "0.2.0", exe).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "linear-linux-x86_64")
	assert.Zero(t, f.downloads.Load())

	data, err := os.ReadFile(exe)
	require.NoError(t, err)
	assert.Equal(t, "old binary", string(data))
}

func assertBinaryUntouched(t *testing.T, exe string) {
	t.Helper()

	data, err := os.ReadFile(exe)
	require.NoError(t, err)
	assert.Equal(t, "old binary", string(data))

	entries, err := os.ReadDir(filepath.Dir(exe))
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), ".linear-update-"), "temp file %s left behind", e.Name())
	}
	assert.Len(t, entries, 1)
}

func TestRunDownloadErrorLeavesBinary(t *testing.T) {
	t.Parallel()

	f := newFakeReleaseServing(t, "v0.3.0", []string{"linear-linux-x86_64"}, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	exe := writeExecutable(t)

	_, err := newTestUpdater(f, "0.2.0", exe).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "download failed")
	assert.Contains(t, err.Error(), "500")
	assert.EqualValues(t, 1, f.downloads.Load())

	assertBinaryUntouched(t, exe)
}

func TestRunTruncatedDownloadLeavesBinary(t *testing.T) {
	t.Parallel()

	f := newFakeReleaseServing(t, "v0.3.0", []string{"linear-linux-x86_64"}, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1024")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("partial"))
	})
	exe := writeExecutable(t)

	_, err := newTestUpdater(f, "0.2.0", exe).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "download failed")

	assertBinaryUntouched(t, exe)
}

func TestStatusJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(Result{Current: "1.0.0", Latest: "2.0.0", Status: StatusAvailable})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status":"available"`)

	assert.Equal(t, "up_to_date", StatusUpToDate.String())
	assert.Equal(t, "ahead", StatusAhead.String())
}

func TestRunUnsupportedPlatform(t *testing.T) {
	t.Parallel()

	f := newFakeRelease(t, "v0.3.0", []string{"linear-linux-x86_64"}, "new binary")
	exe := writeExecutable(t)

	u := New("0.2.0",
		WithReleaseURL(f.server.URL+"/releases/latest"),
		WithPlatform("plan9", "386"),
		WithExecutable(func() (string, error) { return exe, nil }),
	)
	_, err := u.Run(context.Background())
	require.ErrorIs(t, err, ErrUnsupportedPlatform)
	assert.Zero(t, f.downloads.Load())
}

func TestRunDoesNotDowngrade(t *testing.T) {
	t.Parallel()

	f := newFakeRelease(t, "v0.1.0", []string{"linear-linux-x86_64"}, "old release")
	exe := writeExecutable(t)

	result, err := newTestUpdater(f, "0.2.0", exe).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusAhead, result.Status)
	assert.Zero(t, f.downloads.Load())
}

func TestLatestHTTPError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(server.Close)

	_, err := New("0.2.0", WithReleaseURL(server.URL)).Latest(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
