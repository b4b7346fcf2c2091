package cmd

import (
	"github.com/spf13/cobra"

	"github.com/juanbermudez/linear-cli/internal/api"
	"github.com/juanbermudez/linear-cli/internal/display"
	"github.com/juanbermudez/linear-cli/internal/output"
)

const defaultDocumentLimit = 25

// DocumentListResponse is the response for document list command
type DocumentListResponse struct {
	Documents []api.Document `json:"documents"`
	Count     int            `json:"count"`
}

// NewDocumentCmd creates the document command group
func NewDocumentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "document",
		Aliases: []string{"doc", "docs"},
		Short:   "Manage Linear documents",
		Long: `List, view, create and update project documents.

Examples:
  linear document list --project <project-id>
  linear document get <document-id>
  linear document create --title "Design notes" --project <project-id>`,
	}

	cmd.AddCommand(newDocumentListCmd(app))
	cmd.AddCommand(newDocumentGetCmd(app))
	cmd.AddCommand(newDocumentCreateCmd(app))
	cmd.AddCommand(newDocumentUpdateCmd(app))

	return cmd
}

func newDocumentListCmd(app *App) *cobra.Command {
	var opts api.DocumentListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := app.NewClient(ctx)
			if err != nil {
				return err
			}

			documents, err := client.GetDocuments(ctx, opts)
			if err != nil {
				return err
			}

			response := DocumentListResponse{Documents: documents, Count: len(documents)}
			return app.render(response, func(p *output.Printer) {
				printDocumentsHuman(p, documents)
			})
		},
	}

	cmd.Flags().StringVarP(&opts.Project, "project", "p", "", "Filter by project ID")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "l", defaultDocumentLimit, "Maximum number of documents")

	return cmd
}

func newDocumentGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "get <document-id>",
		Aliases: []string{"view"},
		Short:   "View a document",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := app.NewClient(ctx)
			if err != nil {
				return err
			}

			document, err := client.GetDocument(ctx, args[0])
			if err != nil {
				return err
			}

			return app.render(document, func(p *output.Printer) {
				printDocumentDetailHuman(p, document)
			})
		},
	}
}

func newDocumentCreateCmd(app *App) *cobra.Command {
	var (
		title     string
		projectID string
		content   string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a document in a project",
		Long: `Create a markdown document attached to a project.

Examples:
  linear document create --title "Design notes" --project <project-id>
  linear document create --title "RFC" --project <project-id> --content "$(cat rfc.md)"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			input := api.DocumentCreateInput{Title: title, ProjectID: projectID}
			if cmd.Flags().Changed("content") {
				input.Content = &content
			}

			client, err := app.NewClient(ctx)
			if err != nil {
				return err
			}

			ref, err := client.CreateDocument(ctx, input)
			if err != nil {
				return err
			}

			return app.render(ref, func(p *output.Printer) {
				printDocumentMutationHuman(p, "Created", ref)
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Document title (required)")
	cmd.Flags().StringVarP(&projectID, "project", "p", "", "Project ID (required)")
	cmd.Flags().StringVarP(&content, "content", "c", "", "Document content in markdown")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newDocumentUpdateCmd(app *App) *cobra.Command {
	var (
		title   string
		content string
	)

	cmd := &cobra.Command{
		Use:   "update <document-id>",
		Short: "Update a document",
		Long: `Update a document's title or content. Only the flags you pass are changed.

Examples:
  linear document update <document-id> --title "Design notes v2"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var update api.DocumentUpdate
			if cmd.Flags().Changed("title") {
				update.Title = &title
			}
			if cmd.Flags().Changed("content") {
				update.Content = &content
			}

			if update.Empty() {
				return app.noChanges()
			}

			client, err := app.NewClient(ctx)
			if err != nil {
				return err
			}

			ref, err := client.UpdateDocument(ctx, args[0], update)
			if err != nil {
				return err
			}

			return app.render(ref, func(p *output.Printer) {
				printDocumentMutationHuman(p, "Updated", ref)
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVarP(&content, "content", "c", "", "New content in markdown")

	return cmd
}

func printDocumentsHuman(p *output.Printer, documents []api.Document) {
	if len(documents) == 0 {
		p.HumanLn("No documents found.")
		return
	}

	headers := []string{"TITLE", "UPDATED", "ID"}
	rows := make([][]string, len(documents))
	for i, d := range documents {
		rows[i] = []string{
			display.Truncate(d.Title, 50),
			display.Date(d.UpdatedAt),
			p.Muted("%s", d.ID),
		}
	}

	p.Table(headers, rows)
}

func printDocumentDetailHuman(p *output.Printer, d *api.DocumentDetail) {
	p.HumanLn("%s", p.Bold("%s", d.Title))
	p.HumanLn("%s: %s", p.Muted("Created"), display.Date(d.CreatedAt))
	p.HumanLn("%s: %s", p.Muted("Updated"), display.Date(d.UpdatedAt))
	p.HumanLn("")
	p.HumanLn("%s", display.OrMissing(d.Content))
}

func printDocumentMutationHuman(p *output.Printer, verb string, ref *api.DocumentRef) {
	if ref == nil {
		p.SuccessHuman("%s document.", verb)
		return
	}

	p.SuccessHuman("%s document: %s", verb, ref.Title)
	p.HumanLn("ID: %s", ref.ID)
}
