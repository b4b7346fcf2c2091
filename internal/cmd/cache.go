package cmd

import (
	"github.com/spf13/cobra"

	"github.com/juanbermudez/linear-cli/internal/output"
)

// NewCacheCmd creates the cache command group
func NewCacheCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local lookup cache",
		Long: `The CLI caches team key to ID lookups for 24 hours.

Examples:
  linear cache clear`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all cached entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Cache()
			if err != nil {
				return err
			}

			n, err := c.ClearAll()
			if err != nil {
				return err
			}

			return app.render(map[string]int{"cleared": n}, func(p *output.Printer) {
				p.SuccessHuman("Cleared %d cache entries", n)
			})
		},
	})

	return cmd
}
