package cmd

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/juanbermudez/linear-cli/internal/api"
	"github.com/juanbermudez/linear-cli/internal/output"
)

// TeamListResponse is the response for team list command
type TeamListResponse struct {
	Teams []api.Team `json:"teams"`
	Count int        `json:"count"`
}

// NewTeamCmd creates the team command group
func NewTeamCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "team",
		Aliases: []string{"t"},
		Short:   "Manage Linear teams",
		Long: `List and view Linear teams in your workspace.

Examples:
  linear team list
  linear team get ENG`,
	}

	cmd.AddCommand(newTeamListCmd(app))
	cmd.AddCommand(newTeamGetCmd(app))

	return cmd
}

func newTeamListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all teams",
		Long: `List all teams in your Linear workspace, sorted by key.

Examples:
  linear team list
  linear team list --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := app.NewClient(ctx)
			if err != nil {
				return err
			}

			teams, err := client.GetTeams(ctx)
			if err != nil {
				return err
			}

			sort.Slice(teams, func(i, j int) bool {
				return teams[i].Key < teams[j].Key
			})

			response := TeamListResponse{Teams: teams, Count: len(teams)}
			return app.render(response, func(p *output.Printer) {
				printTeamsHuman(p, teams)
			})
		},
	}
}

func newTeamGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "get <team-key>",
		Aliases: []string{"view"},
		Short:   "View a team",
		Long: `View a team by key (ENG) or ID.

Examples:
  linear team get ENG`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := app.NewClient(ctx)
			if err != nil {
				return err
			}

			team, err := client.GetTeam(ctx, args[0])
			if err != nil {
				return err
			}

			return app.render(team, func(p *output.Printer) {
				printTeamDetailHuman(p, team)
			})
		},
	}
}

func printTeamsHuman(p *output.Printer, teams []api.Team) {
	if len(teams) == 0 {
		p.HumanLn("No teams found.")
		return
	}

	for _, t := range teams {
		p.HumanLn("%s - %s", p.Accent("%s", t.Key), t.Name)
	}
}

func printTeamDetailHuman(p *output.Printer, team *api.Team) {
	p.HumanLn("%s %s", p.Accent("%s", team.Key), p.Bold("%s", team.Name))
	p.HumanLn("%s: %s", p.Muted("ID"), p.Muted("%s", team.ID))

	if team.Description != nil && *team.Description != "" {
		p.HumanLn("")
		p.HumanLn("%s", *team.Description)
	}
}
