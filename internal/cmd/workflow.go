package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/juanbermudez/linear-cli/internal/api"
	"github.com/juanbermudez/linear-cli/internal/display"
	"github.com/juanbermudez/linear-cli/internal/output"
)

// WorkflowStatesResponse is the response for workflow list command
type WorkflowStatesResponse struct {
	Team   string              `json:"team"`
	States []api.WorkflowState `json:"states"`
	Count  int                 `json:"count"`
}

// NewWorkflowCmd creates the workflow command group
func NewWorkflowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workflow",
		Aliases: []string{"wf"},
		Short:   "View workflow states",
		Long: `View the workflow states of a team.

States are listed by type: backlog, unstarted, started, completed, canceled.

Examples:
  linear workflow list --team ENG`,
	}

	cmd.AddCommand(newWorkflowListCmd(app))

	return cmd
}

func newWorkflowListCmd(app *App) *cobra.Command {
	var teamKey string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List workflow states for a team",
		Long: `List workflow states for a team, grouped by type in position order.

The team defaults to team_key from .linear.toml when --team is omitted.

Examples:
  linear workflow list --team ENG
  linear workflow list --team ENG --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			team, err := app.requiredTeam(teamKey)
			if err != nil {
				return err
			}

			client, err := app.NewClient(ctx)
			if err != nil {
				return err
			}

			states, err := client.GetWorkflowStates(ctx, team)
			if err != nil {
				return err
			}

			response := WorkflowStatesResponse{Team: team, States: states, Count: len(states)}
			return app.render(response, func(p *output.Printer) {
				printWorkflowStatesHuman(p, states)
			})
		},
	}

	cmd.Flags().StringVarP(&teamKey, "team", "t", "", "Team key (e.g., ENG)")

	return cmd
}

func printWorkflowStatesHuman(p *output.Printer, states []api.WorkflowState) {
	if len(states) == 0 {
		p.HumanLn("No workflow states found.")
		return
	}

	groups := display.GroupByType(states, func(s api.WorkflowState) string { return s.Type })
	for _, g := range groups {
		p.HumanLn("%s:", p.Bold("%s", strings.ToUpper(g.Type)))
		for _, s := range g.States {
			p.HumanLn("  %s", s.Name)
		}
	}
}
