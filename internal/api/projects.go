package api

import "context"

// Project represents a project in a list
type Project struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	State      string  `json:"state"`
	Progress   float64 `json:"progress"`
	StartDate  *string `json:"startDate"`
	TargetDate *string `json:"targetDate"`
}

// ProjectDetail represents a full project
type ProjectDetail struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	State       string  `json:"state"`
	Progress    float64 `json:"progress"`
	StartDate   *string `json:"startDate"`
	TargetDate  *string `json:"targetDate"`
	URL         string  `json:"url"`
}

// ProjectRef is what project mutations return
type ProjectRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ProjectListOptions contains filters for listing projects
type ProjectListOptions struct {
	Team  string
	Limit int
}

// Filter builds the ProjectFilter for the supplied options
func (o ProjectListOptions) Filter() Filter {
	filter := Filter{}
	if o.Team != "" {
		filter["accessibleTeams"] = map[string]interface{}{"some": teamKeyFilter(o.Team)}
	}
	return filter
}

// ProjectCreateInput represents input for creating a project
type ProjectCreateInput struct {
	Name        string
	TeamIDs     []string
	Description *string
}

// Input builds the ProjectCreateInput object
func (in ProjectCreateInput) Input() Input {
	input := Input{
		"name":    in.Name,
		"teamIds": in.TeamIDs,
	}
	input.setString("description", in.Description)
	return input
}

// ProjectUpdate holds the fields to change on a project
type ProjectUpdate struct {
	Name        *string
	Description *string
	State       *string
}

// Empty reports whether no field was supplied
func (u ProjectUpdate) Empty() bool {
	return u.Name == nil && u.Description == nil && u.State == nil
}

// Input builds the ProjectUpdateInput object
func (u ProjectUpdate) Input() Input {
	input := Input{}
	input.setString("name", u.Name)
	input.setString("description", u.Description)
	input.setString("state", u.State)
	return input
}

const projectsQuery = `query Projects($first: Int, $filter: ProjectFilter) {
  projects(first: $first, filter: $filter) {
    nodes { id name state progress startDate targetDate }
  }
}`

const projectQuery = `query Project($id: String!) {
  project(id: $id) { id name description state progress startDate targetDate url }
}`

const createProjectMutation = `mutation CreateProject($input: ProjectCreateInput!) {
  projectCreate(input: $input) {
    success
    project { id name url }
  }
}`

const updateProjectMutation = `mutation UpdateProject($id: String!, $input: ProjectUpdateInput!) {
  projectUpdate(id: $id, input: $input) {
    success
    project { id name url }
  }
}`

// GetProjects fetches projects matching the options
func (c *Client) GetProjects(ctx context.Context, opts ProjectListOptions) ([]Project, error) {
	var result struct {
		Projects Connection[Project] `json:"projects"`
	}

	if err := c.Do(ctx, projectsQuery, listVariables(opts.Limit, opts.Filter()), &result); err != nil {
		return nil, err
	}

	return result.Projects.Nodes, nil
}

// GetProject fetches a single project
func (c *Client) GetProject(ctx context.Context, id string) (*ProjectDetail, error) {
	var result struct {
		Project *ProjectDetail `json:"project"`
	}

	if err := c.Do(ctx, projectQuery, map[string]interface{}{"id": id}, &result); err != nil {
		return nil, err
	}
	if result.Project == nil {
		return nil, &NotFoundError{Resource: "project", ID: id}
	}

	return result.Project, nil
}

// CreateProject creates a new project
func (c *Client) CreateProject(ctx context.Context, input ProjectCreateInput) (*ProjectRef, error) {
	var result struct {
		ProjectCreate struct {
			Success bool        `json:"success"`
			Project *ProjectRef `json:"project"`
		} `json:"projectCreate"`
	}

	variables := map[string]interface{}{"input": input.Input()}
	if err := c.Do(ctx, createProjectMutation, variables, &result); err != nil {
		return nil, err
	}
	if err := checkSuccess(result.ProjectCreate.Success, "create project"); err != nil {
		return nil, err
	}

	return result.ProjectCreate.Project, nil
}

// UpdateProject applies the supplied fields to a project
func (c *Client) UpdateProject(ctx context.Context, id string, update ProjectUpdate) (*ProjectRef, error) {
	if update.Empty() {
		return nil, ErrNoChanges
	}

	var result struct {
		ProjectUpdate struct {
			Success bool        `json:"success"`
			Project *ProjectRef `json:"project"`
		} `json:"projectUpdate"`
	}

	variables := map[string]interface{}{
		"id":    id,
		"input": update.Input(),
	}
	if err := c.Do(ctx, updateProjectMutation, variables, &result); err != nil {
		return nil, err
	}
	if err := checkSuccess(result.ProjectUpdate.Success, "update project"); err != nil {
		return nil, err
	}

	return result.ProjectUpdate.Project, nil
}
