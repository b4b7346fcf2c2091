// Package update replaces the running binary with the latest GitHub release.
package update

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/go-resty/resty/v2"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultReleaseURL is the GitHub API endpoint for the latest release
	DefaultReleaseURL = "https://api.github.com/repos/juanbermudez/linear-cli/releases/latest"

	// UserAgent is required by the GitHub API
	UserAgent = "linear-cli"
)

// ErrUnsupportedPlatform is returned when no release asset exists for the OS/architecture
var ErrUnsupportedPlatform = errors.New("unsupported platform")

var assetNames = map[string]string{
	"darwin/arm64": "linear-macos-aarch64",
	"darwin/amd64": "linear-macos-x86_64",
	"linux/amd64":  "linear-linux-x86_64",
	"linux/arm64":  "linear-linux-aarch64",
}

// AssetName returns the release asset built for goos/goarch
func AssetName(goos, goarch string) (string, error) {
	name, ok := assetNames[goos+"/"+goarch]
	if !ok {
		return "", fmt.Errorf("%w: %s-%s", ErrUnsupportedPlatform, goos, goarch)
	}
	return name, nil
}

// Release is the subset of the GitHub release payload used here
type Release struct {
	TagName string  `json:"tag_name"`
	Assets  []Asset `json:"assets"`
}

// Asset is a downloadable release file
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// Status is the outcome of comparing the running version with the latest release
type Status int

const (
	// StatusUpToDate means the release tag equals the running version
	StatusUpToDate Status = iota
	// StatusAhead means the running build is newer than the latest release
	StatusAhead
	// StatusAvailable means the release should be installed
	StatusAvailable
)

var statusNames = map[Status]string{
	StatusUpToDate:  "up_to_date",
	StatusAhead:     "ahead",
	StatusAvailable: "available",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// MarshalText encodes the status as its snake_case name in JSON output
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Compare decides what to do given the running and latest versions.
// Versions equal after stripping a leading "v" are up to date, and so are
// versions that differ in text but are equal as semantic versions (1.0.0 and
// v1.0). When both parse as semantic versions an older release is never
// installed. Anything else, such as a "dev" build, is treated as out of date.
func Compare(current, latest string) Status {
	current = strings.TrimPrefix(current, "v")
	latest = strings.TrimPrefix(latest, "v")
	if current == latest {
		return StatusUpToDate
	}

	cv, cerr := semver.NewVersion(current)
	lv, lerr := semver.NewVersion(latest)
	if cerr == nil && lerr == nil {
		switch {
		case lv.Equal(cv):
			return StatusUpToDate
		case lv.LessThan(cv):
			return StatusAhead
		}
	}

	return StatusAvailable
}

// Result describes a check or an applied update
type Result struct {
	Current string `json:"current"`
	Latest  string `json:"latest"`
	Status  Status `json:"status"`
	Asset   string `json:"asset,omitempty"`
	Path    string `json:"path,omitempty"`
	Updated bool   `json:"updated"`
}

// Updater checks for and installs releases
type Updater struct {
	client     *resty.Client
	releaseURL string
	current    string
	goos       string
	goarch     string
	executable func() (string, error)
	log        *logrus.Entry
}

// Option configures an Updater
type Option func(*Updater)

// WithReleaseURL overrides the release endpoint
func WithReleaseURL(url string) Option {
	return func(u *Updater) {
		u.releaseURL = url
	}
}

// WithPlatform overrides the detected OS and architecture
func WithPlatform(goos, goarch string) Option {
	return func(u *Updater) {
		u.goos = goos
		u.goarch = goarch
	}
}

// WithExecutable overrides how the running binary's path is found
func WithExecutable(fn func() (string, error)) Option {
	return func(u *Updater) {
		u.executable = fn
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(log *logrus.Entry) Option {
	return func(u *Updater) {
		u.log = log
	}
}

// New creates an updater for the running version
func New(current string, opts ...Option) *Updater {
	u := &Updater{
		client:     resty.New().SetHeader("User-Agent", UserAgent),
		releaseURL: DefaultReleaseURL,
		current:    current,
		goos:       runtime.GOOS,
		goarch:     runtime.GOARCH,
		executable: currentExecutable,
	}
	for _, opt := range opts {
		opt(u)
	}
	if u.log == nil {
		silent := logrus.New()
		silent.SetOutput(io.Discard)
		u.log = logrus.NewEntry(silent)
	}
	return u
}

func currentExecutable() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(exe)
}

// Latest fetches the latest release metadata
func (u *Updater) Latest(ctx context.Context) (*Release, error) {
	u.log.Debugf("GET %s", u.releaseURL)

	var release Release
	resp, err := u.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/vnd.github+json").
		SetResult(&release).
		Get(u.releaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest release: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to fetch latest release: %s", resp.Status())
	}
	if release.TagName == "" {
		return nil, errors.New("latest release has no tag")
	}

	return &release, nil
}

// Check reports whether an update is available without downloading it
func (u *Updater) Check(ctx context.Context) (*Result, *Release, error) {
	release, err := u.Latest(ctx)
	if err != nil {
		return nil, nil, err
	}

	result := &Result{
		Current: strings.TrimPrefix(u.current, "v"),
		Latest:  strings.TrimPrefix(release.TagName, "v"),
		Status:  Compare(u.current, release.TagName),
	}
	return result, release, nil
}

// Run checks for a newer release and, when one is available, replaces the
// running binary with it. On any failure the existing binary is untouched.
func (u *Updater) Run(ctx context.Context) (*Result, error) {
	result, release, err := u.Check(ctx)
	if err != nil {
		return nil, err
	}
	if result.Status != StatusAvailable {
		return result, nil
	}

	name, err := AssetName(u.goos, u.goarch)
	if err != nil {
		return nil, err
	}
	result.Asset = name

	asset, ok := lo.Find(release.Assets, func(a Asset) bool {
		return a.Name == name
	})
	if !ok {
		return nil, fmt.Errorf("no release asset found for %s", name)
	}

	path, err := u.executable()
	if err != nil {
		return nil, fmt.Errorf("failed to locate executable: %w", err)
	}
	result.Path = path

	if err := u.install(ctx, asset.BrowserDownloadURL, path); err != nil {
		return nil, err
	}

	result.Updated = true
	return result, nil
}

// install downloads url into a temp file beside target, then renames it over target
func (u *Updater) install(ctx context.Context, url, target string) (err error) {
	u.log.Debugf("GET %s", url)

	resp, err := u.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(url)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.IsError() {
		return fmt.Errorf("download failed: %s", resp.Status())
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".linear-update-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if _, err = io.Copy(tmp, body); err != nil {
		tmp.Close()
		return fmt.Errorf("download failed: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0755); err != nil {
		return err
	}
	if err = os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("failed to replace executable: %w", err)
	}

	return nil
}
