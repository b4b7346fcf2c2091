package cmd

import (
	"github.com/spf13/cobra"

	"github.com/juanbermudez/linear-cli/internal/api"
	"github.com/juanbermudez/linear-cli/internal/output"
)

const defaultUserLimit = 50

// UserListResponse is the response for user list command
type UserListResponse struct {
	Users []api.User `json:"users"`
	Count int        `json:"count"`
}

// NewUserCmd creates the user command group
func NewUserCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "user",
		Aliases: []string{"u"},
		Short:   "View Linear users",
		Long: `View the authenticated user and workspace members.

Examples:
  linear user me
  linear user list`,
	}

	cmd.AddCommand(newUserMeCmd(app))
	cmd.AddCommand(newUserListCmd(app))

	return cmd
}

func newUserMeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the authenticated user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := app.NewClient(ctx)
			if err != nil {
				return err
			}

			viewer, err := client.GetViewer(ctx)
			if err != nil {
				return err
			}

			return app.render(viewer, func(p *output.Printer) {
				printViewerHuman(p, viewer)
			})
		},
	}
}

func newUserListCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List workspace members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := app.NewClient(ctx)
			if err != nil {
				return err
			}

			users, err := client.GetUsers(ctx, limit)
			if err != nil {
				return err
			}

			response := UserListResponse{Users: users, Count: len(users)}
			return app.render(response, func(p *output.Printer) {
				printUsersHuman(p, users)
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", defaultUserLimit, "Maximum number of users")

	return cmd
}

func printViewerHuman(p *output.Printer, viewer *api.Viewer) {
	p.HumanLn("%s: %s", p.Bold("Name"), viewer.Name)
	p.HumanLn("%s: %s", p.Bold("Email"), viewer.Email)
	p.HumanLn("%s: %s", p.Muted("ID"), p.Muted("%s", viewer.ID))
}

func printUsersHuman(p *output.Printer, users []api.User) {
	if len(users) == 0 {
		p.HumanLn("No users found.")
		return
	}

	headers := []string{"NAME", "EMAIL", "STATUS"}
	rows := make([][]string, len(users))
	for i, u := range users {
		status := "active"
		if !u.Active {
			status = p.Muted("inactive")
		}
		rows[i] = []string{u.Name, u.Email, status}
	}

	p.Table(headers, rows)
}
