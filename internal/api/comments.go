package api

import "context"

// Comment represents an issue comment
type Comment struct {
	ID        string     `json:"id"`
	Body      string     `json:"body"`
	CreatedAt string     `json:"createdAt"`
	User      *IssueUser `json:"user"`
}

// CommentCreateInput represents input for creating a comment
type CommentCreateInput struct {
	IssueID string
	Body    string
}

// Input builds the CommentCreateInput object
func (in CommentCreateInput) Input() Input {
	return Input{
		"issueId": in.IssueID,
		"body":    in.Body,
	}
}

const issueCommentsQuery = `query IssueComments($id: String!) {
  issue(id: $id) {
    comments {
      nodes {
        id
        body
        createdAt
        user { name }
      }
    }
  }
}`

const createCommentMutation = `mutation CreateComment($input: CommentCreateInput!) {
  commentCreate(input: $input) {
    success
    comment { id body createdAt user { name } }
  }
}`

// GetIssueComments fetches comments for an issue
func (c *Client) GetIssueComments(ctx context.Context, issueID string) ([]Comment, error) {
	var result struct {
		Issue *struct {
			Comments Connection[Comment] `json:"comments"`
		} `json:"issue"`
	}

	if err := c.Do(ctx, issueCommentsQuery, map[string]interface{}{"id": issueID}, &result); err != nil {
		return nil, err
	}
	if result.Issue == nil {
		return nil, &NotFoundError{Resource: "issue", ID: issueID}
	}

	return result.Issue.Comments.Nodes, nil
}

// CreateComment adds a comment to an issue
func (c *Client) CreateComment(ctx context.Context, input CommentCreateInput) (*Comment, error) {
	var result struct {
		CommentCreate struct {
			Success bool     `json:"success"`
			Comment *Comment `json:"comment"`
		} `json:"commentCreate"`
	}

	variables := map[string]interface{}{"input": input.Input()}
	if err := c.Do(ctx, createCommentMutation, variables, &result); err != nil {
		return nil, err
	}
	if err := checkSuccess(result.CommentCreate.Success, "create comment"); err != nil {
		return nil, err
	}

	return result.CommentCreate.Comment, nil
}
