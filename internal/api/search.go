package api

import "context"

// SearchResult is an issue matched by full-text search
type SearchResult struct {
	ID         string      `json:"id"`
	Identifier string      `json:"identifier"`
	Title      string      `json:"title"`
	State      *IssueState `json:"state"`
}

const searchIssuesQuery = `query SearchIssues($term: String!, $first: Int) {
  searchIssues(term: $term, first: $first) {
    nodes {
      id
      identifier
      title
      state { name }
    }
  }
}`

// SearchIssues runs a full-text issue search
func (c *Client) SearchIssues(ctx context.Context, term string, limit int) ([]SearchResult, error) {
	var result struct {
		SearchIssues Connection[SearchResult] `json:"searchIssues"`
	}

	variables := map[string]interface{}{
		"term":  term,
		"first": limit,
	}
	if err := c.Do(ctx, searchIssuesQuery, variables, &result); err != nil {
		return nil, err
	}

	return result.SearchIssues.Nodes, nil
}
