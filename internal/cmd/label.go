package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/juanbermudez/linear-cli/internal/api"
	"github.com/juanbermudez/linear-cli/internal/output"
)

// LabelListResponse is the response for label list command
type LabelListResponse struct {
	Labels []api.Label `json:"labels"`
	Count  int         `json:"count"`
}

// NewLabelCmd creates the label command group
func NewLabelCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "label",
		Aliases: []string{"l"},
		Short:   "View issue labels",
		Long: `List issue labels in the workspace or a team.

Examples:
  linear label list
  linear label list --team ENG`,
	}

	cmd.AddCommand(newLabelListCmd(app))

	return cmd
}

func newLabelListCmd(app *App) *cobra.Command {
	var opts api.LabelListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List labels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := app.NewClient(ctx)
			if err != nil {
				return err
			}

			labels, err := client.GetLabels(ctx, opts)
			if err != nil {
				return err
			}

			response := LabelListResponse{Labels: labels, Count: len(labels)}
			return app.render(response, func(p *output.Printer) {
				printLabelsHuman(p, labels)
			})
		},
	}

	cmd.Flags().StringVarP(&opts.Team, "team", "t", "", "Filter by team key")

	return cmd
}

func printLabelsHuman(p *output.Printer, labels []api.Label) {
	if len(labels) == 0 {
		p.HumanLn("No labels found.")
		return
	}

	for _, l := range labels {
		p.HumanLn("%s %s", swatch(p, l.Color), l.Name)
	}
}

// swatch renders a dot in the nearest terminal color to the label's hex color
func swatch(p *output.Printer, hex string) string {
	const dot = "●"
	var r, g, b int
	if !p.ColorOn() || len(hex) != 7 {
		return dot
	}
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return dot
	}
	c := color.New(nearestColor(r, g, b))
	c.EnableColor()
	return c.Sprint(dot)
}

// ansiPalette is the xterm rendering of the 16 basic foreground colors
var ansiPalette = []struct {
	attr    color.Attribute
	r, g, b int
}{
	{color.FgBlack, 0, 0, 0},
	{color.FgRed, 205, 0, 0},
	{color.FgGreen, 0, 205, 0},
	{color.FgYellow, 205, 205, 0},
	{color.FgBlue, 0, 0, 238},
	{color.FgMagenta, 205, 0, 205},
	{color.FgCyan, 0, 205, 205},
	{color.FgWhite, 229, 229, 229},
	{color.FgHiBlack, 127, 127, 127},
	{color.FgHiRed, 255, 0, 0},
	{color.FgHiGreen, 0, 255, 0},
	{color.FgHiYellow, 255, 255, 0},
	{color.FgHiBlue, 92, 92, 255},
	{color.FgHiMagenta, 255, 0, 255},
	{color.FgHiCyan, 0, 255, 255},
	{color.FgHiWhite, 255, 255, 255},
}

func nearestColor(r, g, b int) color.Attribute {
	best := ansiPalette[0].attr
	bestDist := -1
	for _, c := range ansiPalette {
		dr, dg, db := r-c.r, g-c.g, b-c.b
		dist := dr*dr + dg*dg + db*db
		if bestDist < 0 || dist < bestDist {
			best, bestDist = c.attr, dist
		}
	}
	return best
}
