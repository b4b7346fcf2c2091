package api

import (
	"context"
	"sort"
)

// WorkflowState represents a workflow state
type WorkflowState struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Color    string  `json:"color"`
	Position float64 `json:"position"`
}

const workflowStatesQuery = `query WorkflowStates($teamId: String!) {
  team(id: $teamId) {
    states {
      nodes { id name type color position }
    }
  }
}`

// GetWorkflowStates fetches workflow states for a team, ordered by position
func (c *Client) GetWorkflowStates(ctx context.Context, team string) ([]WorkflowState, error) {
	var result struct {
		Team *struct {
			States Connection[WorkflowState] `json:"states"`
		} `json:"team"`
	}

	if err := c.Do(ctx, workflowStatesQuery, map[string]interface{}{"teamId": team}, &result); err != nil {
		return nil, err
	}
	if result.Team == nil {
		return nil, &NotFoundError{Resource: "team", ID: team}
	}

	states := result.Team.States.Nodes
	sort.SliceStable(states, func(i, j int) bool {
		return states[i].Position < states[j].Position
	})

	return states, nil
}
