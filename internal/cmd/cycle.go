package cmd

import (
	"github.com/spf13/cobra"

	"github.com/juanbermudez/linear-cli/internal/api"
	"github.com/juanbermudez/linear-cli/internal/display"
	"github.com/juanbermudez/linear-cli/internal/output"
)

const defaultCycleLimit = 10

// CycleListResponse is the response for cycle list command
type CycleListResponse struct {
	Cycles []api.Cycle `json:"cycles"`
	Count  int         `json:"count"`
}

// NewCycleCmd creates the cycle command group
func NewCycleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cycle",
		Aliases: []string{"c"},
		Short:   "View Linear cycles",
		Long: `List and view sprint cycles.

Examples:
  linear cycle list --team ENG
  linear cycle get <cycle-id>`,
	}

	cmd.AddCommand(newCycleListCmd(app))
	cmd.AddCommand(newCycleGetCmd(app))

	return cmd
}

func newCycleListCmd(app *App) *cobra.Command {
	var opts api.CycleListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cycles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := app.NewClient(ctx)
			if err != nil {
				return err
			}

			cycles, err := client.GetCycles(ctx, opts)
			if err != nil {
				return err
			}

			response := CycleListResponse{Cycles: cycles, Count: len(cycles)}
			return app.render(response, func(p *output.Printer) {
				printCyclesHuman(p, cycles)
			})
		},
	}

	cmd.Flags().StringVarP(&opts.Team, "team", "t", "", "Filter by team key")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "l", defaultCycleLimit, "Maximum number of cycles")

	return cmd
}

func newCycleGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "get <cycle-id>",
		Aliases: []string{"view"},
		Short:   "View cycle details",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := app.NewClient(ctx)
			if err != nil {
				return err
			}

			cycle, err := client.GetCycle(ctx, args[0])
			if err != nil {
				return err
			}

			return app.render(cycle, func(p *output.Printer) {
				printCycleDetailHuman(p, cycle)
			})
		},
	}
}

func printCyclesHuman(p *output.Printer, cycles []api.Cycle) {
	if len(cycles) == 0 {
		p.HumanLn("No cycles found.")
		return
	}

	for _, c := range cycles {
		name := ""
		if c.Name != nil {
			name = *c.Name
		}
		p.HumanLn("Cycle %s %s %s %s",
			p.Accent("%d", c.Number),
			name,
			p.Muted("%s → %s", display.Date(c.StartsAt), display.Date(c.EndsAt)),
			p.Muted("%s", display.Percent(c.Progress)),
		)
	}
}

func printCycleDetailHuman(p *output.Printer, cycle *api.CycleDetail) {
	name := ""
	if cycle.Name != nil {
		name = *cycle.Name
	}

	p.HumanLn("Cycle %s %s", p.Accent("%d", cycle.Number), p.Bold("%s", name))
	p.HumanLn("")
	p.HumanLn("%s: %s → %s", p.Muted("Period"), display.Date(cycle.StartsAt), display.Date(cycle.EndsAt))
	p.HumanLn("%s: %s", p.Muted("Progress"), display.Percent(cycle.Progress))

	if cycle.Description != nil && *cycle.Description != "" {
		p.HumanLn("")
		p.HumanLn("%s", *cycle.Description)
	}
}
