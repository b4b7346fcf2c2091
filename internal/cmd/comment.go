package cmd

import (
	"github.com/spf13/cobra"

	"github.com/juanbermudez/linear-cli/internal/api"
	"github.com/juanbermudez/linear-cli/internal/display"
	"github.com/juanbermudez/linear-cli/internal/output"
)

// CommentListResponse is the response for comment list command
type CommentListResponse struct {
	Issue    string        `json:"issue"`
	Comments []api.Comment `json:"comments"`
	Count    int           `json:"count"`
}

// NewCommentCmd creates the comment command group
func NewCommentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Manage issue comments",
		Long: `List and add comments on issues.

Examples:
  linear comment list ENG-123
  linear comment create --issue ENG-123 --body "Fixed in #42"`,
	}

	cmd.AddCommand(newCommentListCmd(app))
	cmd.AddCommand(newCommentCreateCmd(app))

	return cmd
}

func newCommentListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <issue-id>",
		Short: "List comments on an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := app.NewClient(ctx)
			if err != nil {
				return err
			}

			comments, err := client.GetIssueComments(ctx, args[0])
			if err != nil {
				return err
			}

			response := CommentListResponse{Issue: args[0], Comments: comments, Count: len(comments)}
			return app.render(response, func(p *output.Printer) {
				printCommentsHuman(p, comments)
			})
		},
	}
}

func newCommentCreateCmd(app *App) *cobra.Command {
	var input api.CommentCreateInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a comment to an issue",
		Long: `Add a markdown comment to an issue.

Examples:
  linear comment create --issue ENG-123 --body "Deployed to staging"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := app.NewClient(ctx)
			if err != nil {
				return err
			}

			comment, err := client.CreateComment(ctx, input)
			if err != nil {
				return err
			}

			return app.render(comment, func(p *output.Printer) {
				p.SuccessHuman("Comment added.")
			})
		},
	}

	cmd.Flags().StringVarP(&input.IssueID, "issue", "i", "", "Issue identifier (required)")
	cmd.Flags().StringVarP(&input.Body, "body", "b", "", "Comment body in markdown (required)")
	_ = cmd.MarkFlagRequired("issue")
	_ = cmd.MarkFlagRequired("body")

	return cmd
}

func printCommentsHuman(p *output.Printer, comments []api.Comment) {
	if len(comments) == 0 {
		p.HumanLn("No comments.")
		return
	}

	for i, c := range comments {
		if i > 0 {
			p.HumanLn("")
		}
		author := display.Missing
		if c.User != nil {
			author = c.User.Name
		}
		p.HumanLn("%s %s", p.Bold("%s", author), p.Muted("%s", display.Date(c.CreatedAt)))
		p.HumanLn("%s", c.Body)
	}
}
