package cmd

import (
	"github.com/spf13/cobra"

	"github.com/juanbermudez/linear-cli/internal/api"
	"github.com/juanbermudez/linear-cli/internal/display"
	"github.com/juanbermudez/linear-cli/internal/output"
)

const defaultProjectLimit = 25

// ProjectListResponse is the response for project list command
type ProjectListResponse struct {
	Projects []api.Project `json:"projects"`
	Count    int           `json:"count"`
}

// NewProjectCmd creates the project command group
func NewProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"p"},
		Short:   "Manage Linear projects",
		Long: `List, view, create and update Linear projects.

Examples:
  linear project list --team ENG
  linear project get <project-id>
  linear project create --name "Q3 Roadmap" --team ENG`,
	}

	cmd.AddCommand(newProjectListCmd(app))
	cmd.AddCommand(newProjectGetCmd(app))
	cmd.AddCommand(newProjectCreateCmd(app))
	cmd.AddCommand(newProjectUpdateCmd(app))

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var opts api.ProjectListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Long: `List projects, optionally limited to those a team can access.

Examples:
  linear project list
  linear project list --team ENG --limit 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := app.NewClient(ctx)
			if err != nil {
				return err
			}

			projects, err := client.GetProjects(ctx, opts)
			if err != nil {
				return err
			}

			response := ProjectListResponse{Projects: projects, Count: len(projects)}
			return app.render(response, func(p *output.Printer) {
				printProjectsHuman(p, projects)
			})
		},
	}

	cmd.Flags().StringVarP(&opts.Team, "team", "t", "", "Filter by team key")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "l", defaultProjectLimit, "Maximum number of projects")

	return cmd
}

func newProjectGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "get <project-id>",
		Aliases: []string{"view"},
		Short:   "View project details",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := app.NewClient(ctx)
			if err != nil {
				return err
			}

			project, err := client.GetProject(ctx, args[0])
			if err != nil {
				return err
			}

			return app.render(project, func(p *output.Printer) {
				printProjectDetailHuman(p, project)
			})
		},
	}
}

func newProjectCreateCmd(app *App) *cobra.Command {
	var (
		name        string
		teamKey     string
		description string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project",
		Long: `Create a project owned by a team.

The team defaults to team_key from .linear.toml when --team is omitted.

Examples:
  linear project create --name "Q3 Roadmap" --team ENG
  linear project create --name "Billing v2" --team ENG --description "Usage-based billing"`,
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

			teamID, err := app.resolveTeamID(ctx, client, team)
			if err != nil {
				return err
			}

			input := api.ProjectCreateInput{Name: name, TeamIDs: []string{teamID}}
			if cmd.Flags().Changed("description") {
				input.Description = &description
			}

			ref, err := client.CreateProject(ctx, input)
			if err != nil {
				return err
			}

			return app.render(ref, func(p *output.Printer) {
				printProjectMutationHuman(p, "Created", ref)
			})
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Project name (required)")
	cmd.Flags().StringVarP(&teamKey, "team", "t", "", "Team key (e.g., ENG)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Project description")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var (
		name        string
		description string
		state       string
	)

	cmd := &cobra.Command{
		Use:   "update <project-id>",
		Short: "Update a project",
		Long: `Update fields on a project. Only the flags you pass are changed.

State: planned, started, paused, completed, canceled

Examples:
  linear project update <project-id> --state started
  linear project update <project-id> --name "Q4 Roadmap"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var update api.ProjectUpdate
			if cmd.Flags().Changed("name") {
				update.Name = &name
			}
			if cmd.Flags().Changed("description") {
				update.Description = &description
			}
			if cmd.Flags().Changed("state") {
				update.State = &state
			}

			if update.Empty() {
				return app.noChanges()
			}

			client, err := app.NewClient(ctx)
			if err != nil {
				return err
			}

			ref, err := client.UpdateProject(ctx, args[0], update)
			if err != nil {
				return err
			}

			return app.render(ref, func(p *output.Printer) {
				printProjectMutationHuman(p, "Updated", ref)
			})
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "New project name")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	cmd.Flags().StringVarP(&state, "state", "s", "", "New project state")

	return cmd
}

func printProjectsHuman(p *output.Printer, projects []api.Project) {
	if len(projects) == 0 {
		p.HumanLn("No projects found.")
		return
	}

	for _, project := range projects {
		p.HumanLn("%s [%s] %s",
			p.Bold("%s", project.Name),
			project.State,
			p.Muted("%s", display.Percent(project.Progress)),
		)
	}
}

func printProjectDetailHuman(p *output.Printer, project *api.ProjectDetail) {
	p.HumanLn("%s", p.Bold("%s", project.Name))
	p.HumanLn("")
	p.HumanLn("%s: %s", p.Muted("State"), project.State)
	p.HumanLn("%s: %s", p.Muted("Progress"), display.Percent(project.Progress))

	if project.StartDate != nil {
		p.HumanLn("%s: %s", p.Muted("Start"), display.Date(*project.StartDate))
	}
	if project.TargetDate != nil {
		p.HumanLn("%s: %s", p.Muted("Target"), display.Date(*project.TargetDate))
	}
	if project.URL != "" {
		p.HumanLn("%s: %s", p.Muted("URL"), project.URL)
	}

	if project.Description != nil && *project.Description != "" {
		p.HumanLn("")
		p.HumanLn("%s", *project.Description)
	}
}

func printProjectMutationHuman(p *output.Printer, verb string, ref *api.ProjectRef) {
	if ref == nil {
		p.SuccessHuman("%s project.", verb)
		return
	}

	p.SuccessHuman("%s project: %s", verb, ref.Name)
	if ref.URL != "" {
		p.HumanLn("%s", ref.URL)
	}
}
