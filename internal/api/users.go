package api

import "context"

// Viewer represents the authenticated user
type Viewer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// User represents a workspace member
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Active bool   `json:"active"`
}

const viewerQuery = `query Viewer {
  viewer { id name email }
}`

const usersQuery = `query Users($first: Int) {
  users(first: $first) {
    nodes { id name email active }
  }
}`

// GetViewer fetches the authenticated user's information
func (c *Client) GetViewer(ctx context.Context) (*Viewer, error) {
	var result struct {
		Viewer Viewer `json:"viewer"`
	}

	if err := c.Do(ctx, viewerQuery, nil, &result); err != nil {
		return nil, err
	}

	return &result.Viewer, nil
}

// GetUsers fetches workspace members
func (c *Client) GetUsers(ctx context.Context, limit int) ([]User, error) {
	var result struct {
		Users Connection[User] `json:"users"`
	}

	if err := c.Do(ctx, usersQuery, map[string]interface{}{"first": limit}, &result); err != nil {
		return nil, err
	}

	return result.Users.Nodes, nil
}
