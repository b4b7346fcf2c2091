package api

import "context"

// Cycle represents a cycle in a list
type Cycle struct {
	ID       string  `json:"id"`
	Number   int     `json:"number"`
	Name     *string `json:"name"`
	StartsAt string  `json:"startsAt"`
	EndsAt   string  `json:"endsAt"`
	Progress float64 `json:"progress"`
}

// CycleDetail represents a full cycle
type CycleDetail struct {
	ID          string  `json:"id"`
	Number      int     `json:"number"`
	Name        *string `json:"name"`
	StartsAt    string  `json:"startsAt"`
	EndsAt      string  `json:"endsAt"`
	Progress    float64 `json:"progress"`
	Description *string `json:"description"`
}

// CycleListOptions contains filters for listing cycles
type CycleListOptions struct {
	Team  string
	Limit int
}

// Filter builds the CycleFilter for the supplied options
func (o CycleListOptions) Filter() Filter {
	filter := Filter{}
	if o.Team != "" {
		filter["team"] = teamKeyFilter(o.Team)
	}
	return filter
}

const cyclesQuery = `query Cycles($first: Int, $filter: CycleFilter) {
  cycles(first: $first, filter: $filter) {
    nodes { id number name startsAt endsAt progress }
  }
}`

const cycleQuery = `query Cycle($id: String!) {
  cycle(id: $id) { id number name startsAt endsAt progress description }
}`

// GetCycles fetches cycles matching the options
func (c *Client) GetCycles(ctx context.Context, opts CycleListOptions) ([]Cycle, error) {
	var result struct {
		Cycles Connection[Cycle] `json:"cycles"`
	}

	if err := c.Do(ctx, cyclesQuery, listVariables(opts.Limit, opts.Filter()), &result); err != nil {
		return nil, err
	}

	return result.Cycles.Nodes, nil
}

// GetCycle fetches a single cycle
func (c *Client) GetCycle(ctx context.Context, id string) (*CycleDetail, error) {
	var result struct {
		Cycle *CycleDetail `json:"cycle"`
	}

	if err := c.Do(ctx, cycleQuery, map[string]interface{}{"id": id}, &result); err != nil {
		return nil, err
	}
	if result.Cycle == nil {
		return nil, &NotFoundError{Resource: "cycle", ID: id}
	}

	return result.Cycle, nil
}
