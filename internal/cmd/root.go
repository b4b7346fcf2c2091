package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/juanbermudez/linear-cli/internal/api"
)

// NewRootCmd creates the root command with every subcommand attached
func NewRootCmd(app *App) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("LINEAR")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "linear",
		Short: "Command-line client for Linear",
		Long: `Work with Linear issues, projects, cycles and documents from the terminal.

Authentication (in priority order):
  1. LINEAR_API_KEY environment variable
  2. System keychain ('linear auth login')
  3. api_key in .linear.toml

Examples:
  linear issue list --team ENG
  linear issue create --title "Fix login" --team ENG --priority 2
  linear project list --json
  linear search "authentication"`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", app.Version, app.Commit, app.Date),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(v)
		},
	}

	flags := root.PersistentFlags()
	flags.Bool("no-color", false, "Disable colored output")
	flags.Bool("json", false, "Output JSON instead of human-readable text")
	flags.Bool("debug", false, "Log API requests to stderr")

	_ = v.BindPFlag("no_color", flags.Lookup("no-color"))
	_ = v.BindPFlag("json", flags.Lookup("json"))
	_ = v.BindPFlag("debug", flags.Lookup("debug"))

	root.SetIn(app.Stdin)
	root.SetOut(app.Stdout)
	root.SetErr(app.Stderr)

	root.AddCommand(NewUserCmd(app))
	root.AddCommand(NewWhoamiCmd(app))
	root.AddCommand(NewIssueCmd(app))
	root.AddCommand(NewTeamCmd(app))
	root.AddCommand(NewProjectCmd(app))
	root.AddCommand(NewCycleCmd(app))
	root.AddCommand(NewLabelCmd(app))
	root.AddCommand(NewWorkflowCmd(app))
	root.AddCommand(NewCommentCmd(app))
	root.AddCommand(NewDocumentCmd(app))
	root.AddCommand(NewSearchCmd(app))
	root.AddCommand(NewUpdateCmd(app))
	root.AddCommand(NewAuthCmd(app))
	root.AddCommand(NewConfigCmd(app))
	root.AddCommand(NewCacheCmd(app))

	return root
}

// Run executes the CLI with args and returns the process exit code
func Run(ctx context.Context, app *App, args []string) int {
	root := NewRootCmd(app)
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		return app.reportError(err)
	}
	return api.ExitOK
}

// Execute is the entry point used by main
func Execute(version, commit, date string) int {
	app := NewApp(version, commit, date)

	// .env never overrides variables already set in the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(app.Stderr, "warning: failed to load .env: %v\n", err)
	}

	return Run(context.Background(), app, nil)
}
