package api

import "context"

// Document represents a document in a list
type Document struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	UpdatedAt string `json:"updatedAt"`
}

// DocumentDetail represents a full document
type DocumentDetail struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Content   *string `json:"content"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

// DocumentRef is what document mutations return
type DocumentRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// DocumentListOptions contains filters for listing documents
type DocumentListOptions struct {
	Project string
	Limit   int
}

// Filter builds the DocumentFilter for the supplied options
func (o DocumentListOptions) Filter() Filter {
	filter := Filter{}
	if o.Project != "" {
		filter["project"] = map[string]interface{}{"id": eq(o.Project)}
	}
	return filter
}

// DocumentCreateInput represents input for creating a document
type DocumentCreateInput struct {
	Title     string
	ProjectID string
	Content   *string
}

// Input builds the DocumentCreateInput object
func (in DocumentCreateInput) Input() Input {
	input := Input{
		"title":     in.Title,
		"projectId": in.ProjectID,
	}
	input.setString("content", in.Content)
	return input
}

// DocumentUpdate holds the fields to change on a document
type DocumentUpdate struct {
	Title   *string
	Content *string
}

// Empty reports whether no field was supplied
func (u DocumentUpdate) Empty() bool {
	return u.Title == nil && u.Content == nil
}

// Input builds the DocumentUpdateInput object
func (u DocumentUpdate) Input() Input {
	input := Input{}
	input.setString("title", u.Title)
	input.setString("content", u.Content)
	return input
}

const documentsQuery = `query Documents($first: Int, $filter: DocumentFilter) {
  documents(first: $first, filter: $filter) {
    nodes { id title updatedAt }
  }
}`

const documentQuery = `query Document($id: String!) {
  document(id: $id) { id title content createdAt updatedAt }
}`

const createDocumentMutation = `mutation CreateDocument($input: DocumentCreateInput!) {
  documentCreate(input: $input) {
    success
    document { id title }
  }
}`

const updateDocumentMutation = `mutation UpdateDocument($id: String!, $input: DocumentUpdateInput!) {
  documentUpdate(id: $id, input: $input) {
    success
    document { id title }
  }
}`

// GetDocuments fetches documents matching the options
func (c *Client) GetDocuments(ctx context.Context, opts DocumentListOptions) ([]Document, error) {
	var result struct {
		Documents Connection[Document] `json:"documents"`
	}

	if err := c.Do(ctx, documentsQuery, listVariables(opts.Limit, opts.Filter()), &result); err != nil {
		return nil, err
	}

	return result.Documents.Nodes, nil
}

// GetDocument fetches a single document
func (c *Client) GetDocument(ctx context.Context, id string) (*DocumentDetail, error) {
	var result struct {
		Document *DocumentDetail `json:"document"`
	}

	if err := c.Do(ctx, documentQuery, map[string]interface{}{"id": id}, &result); err != nil {
		return nil, err
	}
	if result.Document == nil {
		return nil, &NotFoundError{Resource: "document", ID: id}
	}

	return result.Document, nil
}

// CreateDocument creates a new document in a project
func (c *Client) CreateDocument(ctx context.Context, input DocumentCreateInput) (*DocumentRef, error) {
	var result struct {
		DocumentCreate struct {
			Success  bool         `json:"success"`
			Document *DocumentRef `json:"document"`
		} `json:"documentCreate"`
	}

	variables := map[string]interface{}{"input": input.Input()}
	if err := c.Do(ctx, createDocumentMutation, variables, &result); err != nil {
		return nil, err
	}
	if err := checkSuccess(result.DocumentCreate.Success, "create document"); err != nil {
		return nil, err
	}

	return result.DocumentCreate.Document, nil
}

// UpdateDocument applies the supplied fields to a document
func (c *Client) UpdateDocument(ctx context.Context, id string, update DocumentUpdate) (*DocumentRef, error) {
	if update.Empty() {
		return nil, ErrNoChanges
	}

	var result struct {
		DocumentUpdate struct {
			Success  bool         `json:"success"`
			Document *DocumentRef `json:"document"`
		} `json:"documentUpdate"`
	}

	variables := map[string]interface{}{
		"id":    id,
		"input": update.Input(),
	}
	if err := c.Do(ctx, updateDocumentMutation, variables, &result); err != nil {
		return nil, err
	}
	if err := checkSuccess(result.DocumentUpdate.Success, "update document"); err != nil {
		return nil, err
	}

	return result.DocumentUpdate.Document, nil
}
