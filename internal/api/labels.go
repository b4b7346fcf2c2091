package api

import "context"

// Label represents an issue label
type Label struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// LabelListOptions contains filters for listing labels
type LabelListOptions struct {
	Team string
}

// Filter builds the IssueLabelFilter for the supplied options
func (o LabelListOptions) Filter() Filter {
	filter := Filter{}
	if o.Team != "" {
		filter["team"] = teamKeyFilter(o.Team)
	}
	return filter
}

const labelsQuery = `query Labels($filter: IssueLabelFilter) {
  issueLabels(filter: $filter) {
    nodes { id name color }
  }
}`

// GetLabels fetches issue labels matching the options
func (c *Client) GetLabels(ctx context.Context, opts LabelListOptions) ([]Label, error) {
	var result struct {
		IssueLabels Connection[Label] `json:"issueLabels"`
	}

	variables := map[string]interface{}{"filter": opts.Filter()}
	if err := c.Do(ctx, labelsQuery, variables, &result); err != nil {
		return nil, err
	}

	return result.IssueLabels.Nodes, nil
}
