package cmd

import (
	"github.com/spf13/cobra"

	"github.com/juanbermudez/linear-cli/internal/api"
	"github.com/juanbermudez/linear-cli/internal/auth"
	"github.com/juanbermudez/linear-cli/internal/output"
)

// WhoamiResponse represents the whoami command output
type WhoamiResponse struct {
	User *api.Viewer      `json:"user"`
	Auth *auth.AuthStatus `json:"auth"`
}

// NewWhoamiCmd creates the whoami command
func NewWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Display current user and where the API key came from",
		Long: `Display the authenticated user together with the credential source
(environment, keychain or config file).

Examples:
  linear whoami
  linear whoami --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			status, err := app.AuthManager().GetStatus(ctx)
			if err != nil {
				return err
			}
			if !status.Authenticated {
				return auth.ErrNotAuthenticated
			}

			client, err := app.NewClient(ctx)
			if err != nil {
				return err
			}

			viewer, err := client.GetViewer(ctx)
			if err != nil {
				return err
			}

			response := WhoamiResponse{User: viewer, Auth: status}
			return app.render(response, func(p *output.Printer) {
				printWhoamiHuman(p, &response)
			})
		},
	}
}

func printWhoamiHuman(p *output.Printer, r *WhoamiResponse) {
	p.HumanLn("%s", p.Accent("User"))
	p.HumanLn("  Name:  %s", r.User.Name)
	p.HumanLn("  Email: %s", r.User.Email)
	p.HumanLn("")
	p.HumanLn("%s", p.Accent("Authentication"))
	p.HumanLn("  Source: %s", r.Auth.Source)
	p.HumanLn("  Key:    %s", r.Auth.Key)
}
