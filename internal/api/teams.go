package api

import "context"

// Team represents a Linear team
type Team struct {
	ID          string  `json:"id"`
	Key         string  `json:"key"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

const teamsQuery = `query Teams {
  teams {
    nodes { id key name description }
  }
}`

// The team field accepts either a UUID or a team key
const teamQuery = `query Team($id: String!) {
  team(id: $id) { id key name description }
}`

// GetTeams fetches all teams in the workspace
func (c *Client) GetTeams(ctx context.Context) ([]Team, error) {
	var result struct {
		Teams Connection[Team] `json:"teams"`
	}

	if err := c.Do(ctx, teamsQuery, nil, &result); err != nil {
		return nil, err
	}

	return result.Teams.Nodes, nil
}

// GetTeam fetches a team by key or ID
func (c *Client) GetTeam(ctx context.Context, keyOrID string) (*Team, error) {
	var result struct {
		Team *Team `json:"team"`
	}

	if err := c.Do(ctx, teamQuery, map[string]interface{}{"id": keyOrID}, &result); err != nil {
		return nil, err
	}
	if result.Team == nil {
		return nil, &NotFoundError{Resource: "team", ID: keyOrID}
	}

	return result.Team, nil
}
