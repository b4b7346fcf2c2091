package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/juanbermudez/linear-cli/internal/auth"
	"github.com/juanbermudez/linear-cli/internal/output"
)

// NewAuthCmd creates the auth command group
func NewAuthCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage authentication",
		Long: `Store, inspect and remove the Linear API key.

The key is looked up in this order:
  1. LINEAR_API_KEY environment variable
  2. System keychain (written by 'linear auth login')
  3. api_key in .linear.toml

Examples:
  linear auth login
  echo $LINEAR_API_KEY | linear auth login --with-token
  linear auth status
  linear auth logout`,
	}

	cmd.AddCommand(newAuthLoginCmd(app))
	cmd.AddCommand(newAuthStatusCmd(app))
	cmd.AddCommand(newAuthLogoutCmd(app))

	return cmd
}

func newAuthLoginCmd(app *App) *cobra.Command {
	var withToken bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store an API key in the system keychain",
		Long: `Store a Linear personal API key in the system keychain.

Get a key from https://linear.app/settings/api. Without --with-token the key
is prompted for with hidden input.

Examples:
  linear auth login
  linear auth login --with-token < key.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := readAPIKey(app, withToken)
			if err != nil {
				return err
			}
			if key == "" {
				return errors.New("API key cannot be empty")
			}

			if err := app.AuthManager().LoginWithAPIKey(key); err != nil {
				return err
			}

			result := map[string]interface{}{
				"success": true,
				"storage": string(auth.SourceKeychain),
				"key":     auth.MaskKey(strings.TrimSpace(key)),
			}
			return app.render(result, func(p *output.Printer) {
				p.SuccessHuman("✓ Authentication successful")
				p.HumanLn("  Key stored in system keychain")
			})
		},
	}

	cmd.Flags().BoolVar(&withToken, "with-token", false, "Read the API key from standard input")

	return cmd
}

// readAPIKey reads a key from stdin, prompting with hidden input on a terminal
func readAPIKey(app *App, fromStdin bool) (string, error) {
	in := app.Stdin
	if in == nil {
		in = os.Stdin
	}

	if f, ok := in.(*os.File); ok && !fromStdin && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(app.Stderr, "Paste your Linear API key: ")
		keyBytes, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(app.Stderr)
		if err != nil {
			return "", fmt.Errorf("failed to read API key: %w", err)
		}
		return strings.TrimSpace(string(keyBytes)), nil
	}

	return readLine(in)
}

func readLine(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text()), nil
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read from stdin: %w", err)
	}
	return "", nil
}

func newAuthStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show where the API key is read from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := app.AuthManager().GetStatus(cmd.Context())
			if err != nil {
				return err
			}

			return app.render(status, func(p *output.Printer) {
				if !status.Authenticated {
					p.HumanLn("Not authenticated.")
					p.HumanLn("Run 'linear auth login' or set %s.", auth.EnvAPIKey)
					return
				}
				p.SuccessHuman("✓ Authenticated")
				p.HumanLn("  Source: %s", status.Source)
				p.HumanLn("  Key:    %s", status.Key)
			})
		},
	}
}

func newAuthLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the API key from the system keychain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.AuthManager().Logout(); err != nil {
				return err
			}

			result := map[string]interface{}{"success": true}
			return app.render(result, func(p *output.Printer) {
				p.SuccessHuman("✓ Logged out")
				if app.Getenv(auth.EnvAPIKey) != "" {
					p.Warn("%s is still set in the environment", auth.EnvAPIKey)
				}
			})
		},
	}
}
