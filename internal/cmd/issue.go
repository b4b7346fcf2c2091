package cmd

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/juanbermudez/linear-cli/internal/api"
	"github.com/juanbermudez/linear-cli/internal/display"
	"github.com/juanbermudez/linear-cli/internal/output"
)

const defaultIssueLimit = 25

// IssueListResponse is the response for issue list command
type IssueListResponse struct {
	Issues []api.Issue `json:"issues"`
	Count  int         `json:"count"`
}

// NewIssueCmd creates the issue command group
func NewIssueCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "issue",
		Aliases: []string{"i"},
		Short:   "Manage Linear issues",
		Long: `List, view, create, update and delete Linear issues.

Examples:
  linear issue list --team ENG
  linear issue get ENG-123
  linear issue create --title "Fix bug" --team ENG
  linear issue update ENG-123 --state "In Progress"`,
	}

	cmd.AddCommand(newIssueListCmd(app))
	cmd.AddCommand(newIssueGetCmd(app))
	cmd.AddCommand(newIssueCreateCmd(app))
	cmd.AddCommand(newIssueUpdateCmd(app))
	cmd.AddCommand(newIssueDeleteCmd(app))

	return cmd
}

func newIssueListCmd(app *App) *cobra.Command {
	var opts api.IssueListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List issues",
		Long: `List issues, optionally filtered by team, state and assignee.

Only the filters you pass are applied; with no flags every issue you can
see is listed, most recent first.

Assignee accepts "me", an email address, or a display name.

Examples:
  linear issue list
  linear issue list --team ENG --state "In Progress"
  linear issue list --assignee me --limit 50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := app.NewClient(ctx)
			if err != nil {
				return err
			}

			issues, err := client.GetIssues(ctx, opts)
			if err != nil {
				return err
			}

			response := IssueListResponse{Issues: issues, Count: len(issues)}
			return app.render(response, func(p *output.Printer) {
				printIssuesHuman(p, issues)
			})
		},
	}

	cmd.Flags().StringVarP(&opts.Team, "team", "t", "", "Filter by team key (e.g., ENG)")
	cmd.Flags().StringVarP(&opts.State, "state", "s", "", "Filter by workflow state name")
	cmd.Flags().StringVarP(&opts.Assignee, "assignee", "a", "", "Filter by assignee (me, email, or name)")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "l", defaultIssueLimit, "Maximum number of issues")

	return cmd
}

func newIssueGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "get <issue-id>",
		Aliases: []string{"view", "show"},
		Short:   "View issue details",
		Long: `View an issue by identifier (ENG-123) or ID.

Examples:
  linear issue get ENG-123
  linear issue view ENG-123 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := app.NewClient(ctx)
			if err != nil {
				return err
			}

			issue, err := client.GetIssue(ctx, args[0])
			if err != nil {
				return err
			}

			return app.render(issue, func(p *output.Printer) {
				printIssueDetailHuman(p, issue)
			})
		},
	}
}

func newIssueCreateCmd(app *App) *cobra.Command {
	var (
		title       string
		teamKey     string
		description string
		priority    int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new issue",
		Long: `Create a new issue in a team.

Priority: 0 = none, 1 = urgent, 2 = high, 3 = normal, 4 = low

The team defaults to team_key from .linear.toml when --team is omitted.

Examples:
  linear issue create --title "Fix login" --team ENG
  linear issue create --title "Outage" --team ENG --priority 1 --description "Checkout returns 500"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			team, err := app.requiredTeam(teamKey)
			if err != nil {
				return err
			}

			input := api.IssueCreateInput{Title: title}
			if cmd.Flags().Changed("description") {
				input.Description = &description
			}
			if cmd.Flags().Changed("priority") {
				if err := validatePriority(priority); err != nil {
					return err
				}
				input.Priority = &priority
			}

			client, err := app.NewClient(ctx)
			if err != nil {
				return err
			}

			input.TeamID, err = app.resolveTeamID(ctx, client, team)
			if err != nil {
				return err
			}

			ref, err := client.CreateIssue(ctx, input)
			if err != nil {
				return err
			}

			return app.render(ref, func(p *output.Printer) {
				printIssueMutationHuman(p, "Created", ref)
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Issue title (required)")
	cmd.Flags().StringVarP(&teamKey, "team", "t", "", "Team key (e.g., ENG)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Issue description (markdown)")
	cmd.Flags().IntVarP(&priority, "priority", "p", 0, "Priority (0-4)")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newIssueUpdateCmd(app *App) *cobra.Command {
	var (
		title       string
		state       string
		description string
		priority    int
	)

	cmd := &cobra.Command{
		Use:   "update <issue-id>",
		Short: "Update an issue",
		Long: `Update fields on an issue. Only the flags you pass are changed.

The state is given by name and matched case-insensitively against the
workflow states of the issue's team.

Examples:
  linear issue update ENG-123 --state "In Progress"
  linear issue update ENG-123 --title "New title" --priority 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var update api.IssueUpdate
			if cmd.Flags().Changed("title") {
				update.Title = &title
			}
			if cmd.Flags().Changed("state") {
				update.State = &state
			}
			if cmd.Flags().Changed("description") {
				update.Description = &description
			}
			if cmd.Flags().Changed("priority") {
				if err := validatePriority(priority); err != nil {
					return err
				}
				update.Priority = &priority
			}

			if update.Empty() {
				return app.noChanges()
			}

			client, err := app.NewClient(ctx)
			if err != nil {
				return err
			}

			ref, err := client.UpdateIssue(ctx, args[0], update)
			if err != nil {
				return err
			}

			return app.render(ref, func(p *output.Printer) {
				printIssueMutationHuman(p, "Updated", ref)
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVarP(&state, "state", "s", "", "New workflow state name")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description (markdown)")
	cmd.Flags().IntVarP(&priority, "priority", "p", 0, "New priority (0-4)")

	return cmd
}

func newIssueDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <issue-id>",
		Short: "Delete an issue",
		Long: `Move an issue to the trash.

Examples:
  linear issue delete ENG-123`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := app.NewClient(ctx)
			if err != nil {
				return err
			}

			if err := client.DeleteIssue(ctx, args[0]); err != nil {
				return err
			}

			result := map[string]interface{}{"deleted": true, "id": args[0]}
			return app.render(result, func(p *output.Printer) {
				p.SuccessHuman("Deleted issue %s", args[0])
			})
		},
	}
}

func validatePriority(priority int) error {
	if priority < 0 || priority > 4 {
		return fmt.Errorf("invalid priority %d: must be between 0 (none) and 4 (low)", priority)
	}
	return nil
}

func printIssuesHuman(p *output.Printer, issues []api.Issue) {
	if len(issues) == 0 {
		p.HumanLn("No issues found.")
		return
	}

	headers := []string{"ID", "TITLE", "STATE", "ASSIGNEE", "PRIORITY"}
	rows := make([][]string, len(issues))

	for i, issue := range issues {
		state := display.Placeholder
		if issue.State != nil {
			state = issue.State.Name
		}
		assignee := display.Placeholder
		if issue.Assignee != nil {
			assignee = issue.Assignee.Name
		}

		rows[i] = []string{
			p.Accent("%s", issue.Identifier),
			display.Truncate(issue.Title, 40),
			state,
			assignee,
			display.PriorityLabel(issue.Priority),
		}
	}

	p.Table(headers, rows)
}

func printIssueDetailHuman(p *output.Printer, issue *api.IssueDetail) {
	p.HumanLn("%s %s", p.Accent("%s", issue.Identifier), p.Bold("%s", issue.Title))
	p.HumanLn("")

	state := display.Missing
	if issue.State != nil {
		state = issue.State.Name
	}
	assignee := display.Missing
	if issue.Assignee != nil {
		assignee = issue.Assignee.Name
	}

	p.HumanLn("%s: %s (%s)", p.Muted("Team"), issue.Team.Name, issue.Team.Key)
	p.HumanLn("%s: %s", p.Muted("State"), state)
	p.HumanLn("%s: %s", p.Muted("Assignee"), assignee)
	p.HumanLn("%s: %s", p.Muted("Priority"), display.PriorityLabel(issue.Priority))

	if len(issue.Labels.Nodes) > 0 {
		names := lo.Map(issue.Labels.Nodes, func(l api.IssueLabel, _ int) string { return l.Name })
		p.HumanLn("%s: %s", p.Muted("Labels"), strings.Join(names, ", "))
	}

	p.HumanLn("%s: %s", p.Muted("Created"), display.Date(issue.CreatedAt))
	p.HumanLn("%s: %s", p.Muted("Updated"), display.Date(issue.UpdatedAt))

	if issue.URL != "" {
		p.HumanLn("%s: %s", p.Muted("URL"), issue.URL)
	}

	if issue.Description != nil && *issue.Description != "" {
		p.HumanLn("")
		p.HumanLn("%s", p.Muted("Description:"))
		p.HumanLn("%s", *issue.Description)
	}
}

func printIssueMutationHuman(p *output.Printer, verb string, ref *api.IssueRef) {
	if ref == nil {
		p.SuccessHuman("%s issue.", verb)
		return
	}

	p.SuccessHuman("%s issue %s", verb, ref.Identifier)
	p.HumanLn("%s", ref.Title)
	if ref.URL != "" {
		p.HumanLn("%s", p.Muted("%s", ref.URL))
	}
}
