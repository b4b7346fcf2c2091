package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/juanbermudez/linear-cli/internal/output"
	"github.com/juanbermudez/linear-cli/internal/update"
)

// NewUpdateCmd creates the self-update command
func NewUpdateCmd(app *App) *cobra.Command {
	var checkOnly bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update linear to the latest release",
		Long: `Download the latest GitHub release for this platform and replace the
running binary. An older release is never installed over a newer build.

Examples:
  linear update
  linear update --check`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			opts := []update.Option{
				update.WithLogger(logrus.NewEntry(app.Log).WithField("component", "update")),
			}
			if app.ReleaseURL != "" {
				opts = append(opts, update.WithReleaseURL(app.ReleaseURL))
			}
			updater := update.New(app.Version, opts...)

			var (
				result *update.Result
				err    error
			)
			if checkOnly {
				result, _, err = updater.Check(ctx)
			} else {
				result, err = updater.Run(ctx)
			}
			if err != nil {
				return err
			}

			return app.render(result, func(p *output.Printer) {
				printUpdateHuman(p, result, checkOnly)
			})
		},
	}

	cmd.Flags().BoolVar(&checkOnly, "check", false, "Only report whether an update is available")

	return cmd
}

func printUpdateHuman(p *output.Printer, r *update.Result, checkOnly bool) {
	p.HumanLn("Current version: v%s", r.Current)
	p.HumanLn("Latest version: v%s", r.Latest)

	switch {
	case r.Status == update.StatusUpToDate:
		p.SuccessHuman("Already up to date!")
	case r.Status == update.StatusAhead:
		p.HumanLn("Running build is newer than the latest release")
	case checkOnly:
		p.HumanLn("Update available. Run 'linear update' to install it.")
	case r.Updated:
		p.SuccessHuman("Updated to v%s!", r.Latest)
	}
}
