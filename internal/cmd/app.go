package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/juanbermudez/linear-cli/internal/api"
	"github.com/juanbermudez/linear-cli/internal/auth"
	"github.com/juanbermudez/linear-cli/internal/cache"
	"github.com/juanbermudez/linear-cli/internal/config"
	"github.com/juanbermudez/linear-cli/internal/output"
)

// requestTimeout bounds a single GraphQL round trip
const requestTimeout = 30 * time.Second

// App carries process-wide dependencies into every command. Fields left
// zero fall back to the real environment.
type App struct {
	Version string
	Commit  string
	Date    string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string

	// ConfigPath overrides the .linear.toml lookup
	ConfigPath string
	// CacheDir overrides the XDG cache directory
	CacheDir string
	// Storage overrides the OS keychain
	Storage auth.Storage
	// ReleaseURL overrides the GitHub release endpoint used by update
	ReleaseURL string

	Log *logrus.Logger

	viper         *viper.Viper
	configManager *config.Manager
	config        *config.Config
	printer       *output.Printer
	cache         *cache.Manager
}

// NewApp creates an App bound to the process streams and environment
func NewApp(version, commit, date string) *App {
	return &App{
		Version: version,
		Commit:  commit,
		Date:    date,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
	}
}

// setup resolves configuration, logging and output once flags are parsed
func (a *App) setup(v *viper.Viper) error {
	if a.Getenv == nil {
		a.Getenv = os.Getenv
	}

	if a.Log == nil {
		a.Log = logrus.New()
	}
	a.Log.SetOutput(a.Stderr)
	a.Log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	a.Log.SetLevel(logrus.WarnLevel)
	if v.GetBool("debug") {
		a.Log.SetLevel(logrus.DebugLevel)
	}

	if a.ConfigPath != "" {
		a.configManager = config.NewManagerAt(a.ConfigPath)
	} else {
		m, err := config.NewManager()
		if err != nil {
			return err
		}
		a.configManager = m
	}

	cfg, err := a.configManager.Load()
	if err != nil {
		return err
	}
	a.config = cfg

	if err := v.MergeConfigMap(cfg.Map()); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	a.viper = v

	colorOn := output.ColorEnabled(
		v.GetBool("no_color"),
		a.Getenv("NO_COLOR"),
		cfg.NoColor,
		output.IsTerminal(a.Stdout),
	)
	a.printer = output.New(a.Stdout, a.Stderr, colorOn)

	a.Log.WithField("config", a.configManager.Path()).Debug("configuration loaded")
	return nil
}

// Printer returns the configured printer, or a plain one before setup has run
func (a *App) Printer() *output.Printer {
	if a.printer == nil {
		return output.New(a.Stdout, a.Stderr, false)
	}
	return a.printer
}

// JSONOutput reports whether --json was requested
func (a *App) JSONOutput() bool {
	return a.viper != nil && a.viper.GetBool("json")
}

// AuthManager builds the credential resolver for this invocation
func (a *App) AuthManager() *auth.Manager {
	opts := []auth.ManagerOption{auth.WithGetenv(a.Getenv)}
	if a.Storage != nil {
		opts = append(opts, auth.WithStorage(a.Storage))
	}
	if a.config != nil {
		opts = append(opts, auth.WithConfigKey(a.config.APIKey))
	}
	return auth.NewManager(opts...)
}

// NewClient creates an API client from the resolved credentials and config
func (a *App) NewClient(ctx context.Context) (*api.Client, error) {
	endpoint := ""
	if a.viper != nil {
		endpoint = a.viper.GetString("api_url")
	}

	return api.NewClient(ctx, a.AuthManager(),
		api.WithEndpoint(endpoint),
		api.WithTimeout(requestTimeout),
		api.WithLogger(logrus.NewEntry(a.Log).WithField("component", "api")),
	)
}

// Cache returns the lookup cache
func (a *App) Cache() (*cache.Manager, error) {
	if a.cache != nil {
		return a.cache, nil
	}

	if a.CacheDir != "" {
		a.cache = cache.NewManagerAt(a.CacheDir, cache.DefaultTTL)
		return a.cache, nil
	}

	m, err := cache.NewManager()
	if err != nil {
		return nil, err
	}
	a.cache = m
	return a.cache, nil
}

// errTeamRequired is returned when neither --team nor team_key is set
var errTeamRequired = errors.New("team is required: pass --team or run 'linear config set team_key <KEY>'")

// requiredTeam returns the --team value, falling back to the configured team_key
func (a *App) requiredTeam(flag string) (string, error) {
	if flag = strings.TrimSpace(flag); flag != "" {
		return flag, nil
	}
	if a.viper != nil {
		if key := strings.TrimSpace(a.viper.GetString("team_key")); key != "" {
			return key, nil
		}
	}
	return "", errTeamRequired
}

// resolveTeamID maps a team key to its ID, consulting the lookup cache first
func (a *App) resolveTeamID(ctx context.Context, client *api.Client, key string) (string, error) {
	lookup := func() (string, error) {
		team, err := client.GetTeam(ctx, key)
		if err != nil {
			return "", err
		}
		return team.ID, nil
	}

	c, err := a.Cache()
	if err != nil {
		a.Log.WithError(err).Debug("cache unavailable")
		return lookup()
	}

	return cache.GetOrFetch(c, cache.TeamIDKey(key), lookup)
}

// render writes v as JSON in --json mode, otherwise calls human
func (a *App) render(v interface{}, human func(p *output.Printer)) error {
	if a.JSONOutput() {
		return a.Printer().JSON(v)
	}
	human(a.Printer())
	return nil
}

// reportError prints err in the active output mode and returns the exit code
func (a *App) reportError(err error) int {
	p := a.Printer()
	if a.JSONOutput() {
		p.JSONError(api.ErrorCode(err), err.Error())
	} else {
		p.ErrorHuman(api.ErrorLabel(err), err.Error())
	}
	return api.ExitCode(err)
}

// noChanges reports an update that was given no fields; nothing is sent
func (a *App) noChanges() error {
	result := map[string]interface{}{"changed": false, "message": "No changes requested."}
	return a.render(result, func(p *output.Printer) {
		p.HumanLn("No changes requested.")
	})
}
