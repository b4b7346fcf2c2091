package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/juanbermudez/linear-cli/internal/api"
	"github.com/juanbermudez/linear-cli/internal/display"
	"github.com/juanbermudez/linear-cli/internal/output"
)

const defaultSearchLimit = 10

// SearchResponse is the response for search command
type SearchResponse struct {
	Query   string             `json:"query"`
	Results []api.SearchResult `json:"results"`
	Count   int                `json:"count"`
}

// NewSearchCmd creates the search command
func NewSearchCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search issues",
		Long: `Full-text search across issue titles and descriptions.

Examples:
  linear search "login timeout"
  linear search checkout --limit 25`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			query := strings.Join(args, " ")

			client, err := app.NewClient(ctx)
			if err != nil {
				return err
			}

			results, err := client.SearchIssues(ctx, query, limit)
			if err != nil {
				return err
			}

			response := SearchResponse{Query: query, Results: results, Count: len(results)}
			return app.render(response, func(p *output.Printer) {
				printSearchResultsHuman(p, results)
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", defaultSearchLimit, "Maximum number of results")

	return cmd
}

func printSearchResultsHuman(p *output.Printer, results []api.SearchResult) {
	if len(results) == 0 {
		p.HumanLn("No results.")
		return
	}

	headers := []string{"ID", "TITLE", "STATE"}
	rows := make([][]string, len(results))
	for i, r := range results {
		state := display.Placeholder
		if r.State != nil {
			state = r.State.Name
		}
		rows[i] = []string{
			p.Accent("%s", r.Identifier),
			display.Truncate(r.Title, 50),
			state,
		}
	}

	p.Table(headers, rows)
}
