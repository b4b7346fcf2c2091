package cmd

import (
	"github.com/spf13/cobra"

	"github.com/juanbermudez/linear-cli/internal/auth"
	"github.com/juanbermudez/linear-cli/internal/config"
	"github.com/juanbermudez/linear-cli/internal/output"
)

// ConfigEntry is one key/value pair in config list output
type ConfigEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// NewConfigCmd creates the config command group
func NewConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long: `View and modify settings in .linear.toml.

The file in the current directory is used when present, otherwise ~/.linear.toml.

Available keys:
  api_key   - Linear API key (prefer 'linear auth login')
  api_url   - GraphQL endpoint override
  no_color  - Disable colored output (true/false)
  team_key  - Default team key (e.g., ENG)

Examples:
  linear config list
  linear config get team_key
  linear config set team_key ENG`,
	}

	cmd.AddCommand(newConfigGetCmd(app))
	cmd.AddCommand(newConfigSetCmd(app))
	cmd.AddCommand(newConfigListCmd(app))
	cmd.AddCommand(newConfigPathCmd(app))

	return cmd
}

func newConfigGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "get <key>",
		Short:     "Get a configuration value",
		Args:      cobra.ExactArgs(1),
		ValidArgs: config.Keys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := app.config.Get(args[0])
			if err != nil {
				return err
			}

			return app.render(ConfigEntry{Key: args[0], Value: value}, func(p *output.Printer) {
				p.HumanLn("%s", value)
			})
		},
	}
}

func newConfigSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Set a configuration value",
		Args:      cobra.ExactArgs(2),
		ValidArgs: config.Keys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if err := app.config.Set(key, value); err != nil {
				return err
			}
			if err := app.configManager.Save(app.config); err != nil {
				return err
			}

			shown := value
			if key == "api_key" {
				shown = auth.MaskKey(value)
			}
			return app.render(ConfigEntry{Key: key, Value: shown}, func(p *output.Printer) {
				p.SuccessHuman("✓ Set %s = %s", key, shown)
			})
		},
	}
}

func newConfigListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configuration values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := configEntries(app.config)

			return app.render(entries, func(p *output.Printer) {
				p.HumanLn("%s", p.Muted("# %s", app.configManager.Path()))
				for _, e := range entries {
					value := e.Value
					if value == "" {
						value = p.Muted("(not set)")
					}
					p.HumanLn("%s = %s", p.Bold("%s", e.Key), value)
				}
			})
		},
	}
}

func newConfigPathCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.configManager.Path()
			return app.render(map[string]string{"path": path}, func(p *output.Printer) {
				p.HumanLn("%s", path)
			})
		},
	}
}

// configEntries lists every key in order with api_key masked
func configEntries(cfg *config.Config) []ConfigEntry {
	keys := config.Keys()
	entries := make([]ConfigEntry, 0, len(keys))
	for _, k := range keys {
		value, _ := cfg.Get(k)
		if k == "api_key" && value != "" {
			value = auth.MaskKey(value)
		}
		entries = append(entries, ConfigEntry{Key: k, Value: value})
	}
	return entries
}
