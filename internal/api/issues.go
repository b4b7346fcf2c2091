package api

import (
	"context"
	"strings"

	"github.com/samber/lo"
)

// IssueState is the workflow state an issue is in
type IssueState struct {
	Name string `json:"name"`
}

// IssueUser is an assignee or author reference
type IssueUser struct {
	Name string `json:"name"`
}

// IssueTeam is the team an issue belongs to
type IssueTeam struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// IssueLabel is a label attached to an issue
type IssueLabel struct {
	Name string `json:"name"`
}

// Issue is a row in an issue list
type Issue struct {
	ID         string      `json:"id"`
	Identifier string      `json:"identifier"`
	Title      string      `json:"title"`
	Priority   int         `json:"priority"`
	State      *IssueState `json:"state"`
	Assignee   *IssueUser  `json:"assignee"`
}

// IssueDetail represents a full issue
type IssueDetail struct {
	ID          string                 `json:"id"`
	Identifier  string                 `json:"identifier"`
	Title       string                 `json:"title"`
	Description *string                `json:"description"`
	URL         string                 `json:"url"`
	Priority    int                    `json:"priority"`
	State       *IssueState            `json:"state"`
	Assignee    *IssueUser             `json:"assignee"`
	Team        IssueTeam              `json:"team"`
	Labels      Connection[IssueLabel] `json:"labels"`
	CreatedAt   string                 `json:"createdAt"`
	UpdatedAt   string                 `json:"updatedAt"`
}

// IssueRef is what create and update mutations return
type IssueRef struct {
	ID         string `json:"id"`
	Identifier string `json:"identifier"`
	Title      string `json:"title"`
	URL        string `json:"url"`
}

// IssueListOptions contains filters for listing issues. Empty fields are
// left out of the filter.
type IssueListOptions struct {
	Team     string
	State    string
	Assignee string
	Limit    int
}

// Filter builds the IssueFilter for the supplied options
func (o IssueListOptions) Filter() Filter {
	filter := Filter{}
	if o.Team != "" {
		filter["team"] = teamKeyFilter(o.Team)
	}
	if o.State != "" {
		filter["state"] = map[string]interface{}{"name": eqIgnoreCase(o.State)}
	}
	if o.Assignee != "" {
		filter["assignee"] = assigneeFilter(o.Assignee)
	}
	return filter
}

// IssueCreateInput represents input for creating an issue
type IssueCreateInput struct {
	Title       string
	TeamID      string
	Description *string
	Priority    *int
}

// Input builds the IssueCreateInput object
func (in IssueCreateInput) Input() Input {
	input := Input{
		"title":  in.Title,
		"teamId": in.TeamID,
	}
	input.setString("description", in.Description)
	input.setInt("priority", in.Priority)
	return input
}

// IssueUpdate holds the fields to change on an issue. State is a workflow
// state name and is resolved against the issue's team.
type IssueUpdate struct {
	Title       *string
	Description *string
	State       *string
	Priority    *int
}

// Empty reports whether no field was supplied
func (u IssueUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.State == nil && u.Priority == nil
}

const issuesQuery = `query Issues($first: Int, $filter: IssueFilter) {
  issues(first: $first, filter: $filter) {
    nodes {
      id
      identifier
      title
      priority
      state { name }
      assignee { name }
    }
  }
}`

const issueQuery = `query Issue($id: String!) {
  issue(id: $id) {
    id
    identifier
    title
    description
    url
    priority
    state { name }
    assignee { name }
    team { key name }
    labels { nodes { name } }
    createdAt
    updatedAt
  }
}`

const issueTeamStatesQuery = `query IssueTeamStates($id: String!) {
  issue(id: $id) {
    team {
      states { nodes { id name } }
    }
  }
}`

const createIssueMutation = `mutation CreateIssue($input: IssueCreateInput!) {
  issueCreate(input: $input) {
    success
    issue { id identifier title url }
  }
}`

const updateIssueMutation = `mutation UpdateIssue($id: String!, $input: IssueUpdateInput!) {
  issueUpdate(id: $id, input: $input) {
    success
    issue { id identifier title url }
  }
}`

const deleteIssueMutation = `mutation DeleteIssue($id: String!) {
  issueDelete(id: $id) {
    success
  }
}`

// GetIssues fetches issues matching the options
func (c *Client) GetIssues(ctx context.Context, opts IssueListOptions) ([]Issue, error) {
	var result struct {
		Issues Connection[Issue] `json:"issues"`
	}

	if err := c.Do(ctx, issuesQuery, listVariables(opts.Limit, opts.Filter()), &result); err != nil {
		return nil, err
	}

	return result.Issues.Nodes, nil
}

// GetIssue fetches a single issue by ID or identifier
func (c *Client) GetIssue(ctx context.Context, id string) (*IssueDetail, error) {
	var result struct {
		Issue *IssueDetail `json:"issue"`
	}

	if err := c.Do(ctx, issueQuery, map[string]interface{}{"id": id}, &result); err != nil {
		return nil, err
	}
	if result.Issue == nil {
		return nil, &NotFoundError{Resource: "issue", ID: id}
	}

	return result.Issue, nil
}

// CreateIssue creates a new issue
func (c *Client) CreateIssue(ctx context.Context, input IssueCreateInput) (*IssueRef, error) {
	var result struct {
		IssueCreate struct {
			Success bool      `json:"success"`
			Issue   *IssueRef `json:"issue"`
		} `json:"issueCreate"`
	}

	variables := map[string]interface{}{"input": input.Input()}
	if err := c.Do(ctx, createIssueMutation, variables, &result); err != nil {
		return nil, err
	}
	if err := checkSuccess(result.IssueCreate.Success, "create issue"); err != nil {
		return nil, err
	}

	return result.IssueCreate.Issue, nil
}

// UpdateIssue applies the supplied fields to an issue
func (c *Client) UpdateIssue(ctx context.Context, id string, update IssueUpdate) (*IssueRef, error) {
	if update.Empty() {
		return nil, ErrNoChanges
	}

	input := Input{}
	input.setString("title", update.Title)
	input.setString("description", update.Description)
	input.setInt("priority", update.Priority)

	if update.State != nil {
		stateID, err := c.ResolveStateID(ctx, id, *update.State)
		if err != nil {
			return nil, err
		}
		input["stateId"] = stateID
	}

	var result struct {
		IssueUpdate struct {
			Success bool      `json:"success"`
			Issue   *IssueRef `json:"issue"`
		} `json:"issueUpdate"`
	}

	variables := map[string]interface{}{
		"id":    id,
		"input": input,
	}
	if err := c.Do(ctx, updateIssueMutation, variables, &result); err != nil {
		return nil, err
	}
	if err := checkSuccess(result.IssueUpdate.Success, "update issue"); err != nil {
		return nil, err
	}

	return result.IssueUpdate.Issue, nil
}

// DeleteIssue moves an issue to the trash
func (c *Client) DeleteIssue(ctx context.Context, id string) error {
	var result struct {
		IssueDelete struct {
			Success bool `json:"success"`
		} `json:"issueDelete"`
	}

	if err := c.Do(ctx, deleteIssueMutation, map[string]interface{}{"id": id}, &result); err != nil {
		return err
	}

	return checkSuccess(result.IssueDelete.Success, "delete issue")
}

// ResolveStateID finds the workflow state with the given name in the issue's team
func (c *Client) ResolveStateID(ctx context.Context, issueID, name string) (string, error) {
	type state struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	var result struct {
		Issue *struct {
			Team struct {
				States Connection[state] `json:"states"`
			} `json:"team"`
		} `json:"issue"`
	}

	if err := c.Do(ctx, issueTeamStatesQuery, map[string]interface{}{"id": issueID}, &result); err != nil {
		return "", err
	}
	if result.Issue == nil {
		return "", &NotFoundError{Resource: "issue", ID: issueID}
	}

	match, ok := lo.Find(result.Issue.Team.States.Nodes, func(s state) bool {
		return strings.EqualFold(s.Name, name)
	})
	if !ok {
		return "", &NotFoundError{Resource: "workflow state", ID: name}
	}

	return match.ID, nil
}
