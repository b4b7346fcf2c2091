package api

import (
	"errors"
	"strings"
)

// ErrNoChanges is returned by update calls that were given no fields to change
var ErrNoChanges = errors.New("no changes requested")

// Filter is a GraphQL filter object. Linear treats the presence of a key as
// a constraint, so only keys for values the caller supplied are ever set.
type Filter map[string]interface{}

// Input is a partial mutation input holding only supplied fields
type Input map[string]interface{}

func eq(value interface{}) map[string]interface{} {
	return map[string]interface{}{"eq": value}
}

func eqIgnoreCase(value string) map[string]interface{} {
	return map[string]interface{}{"eqIgnoreCase": value}
}

// teamKeyFilter matches entities whose team has the given key
func teamKeyFilter(key string) map[string]interface{} {
	return map[string]interface{}{"key": eq(key)}
}

// assigneeFilter maps the --assignee flag to a UserFilter:
// "me" matches the viewer, an address matches by email, anything else by display name.
func assigneeFilter(assignee string) map[string]interface{} {
	switch {
	case strings.EqualFold(assignee, "me") || strings.EqualFold(assignee, "self"):
		return map[string]interface{}{"isMe": eq(true)}
	case strings.Contains(assignee, "@"):
		return map[string]interface{}{"email": eq(assignee)}
	default:
		return map[string]interface{}{"displayName": eqIgnoreCase(assignee)}
	}
}

func (in Input) setString(key string, value *string) {
	if value != nil {
		in[key] = *value
	}
}

func (in Input) setInt(key string, value *int) {
	if value != nil {
		in[key] = *value
	}
}

// listVariables builds the variables shared by every paginated list query
func listVariables(limit int, filter Filter) map[string]interface{} {
	if filter == nil {
		filter = Filter{}
	}
	return map[string]interface{}{
		"first":  limit,
		"filter": filter,
	}
}

// checkSuccess turns a mutation payload's success flag into an error
func checkSuccess(success bool, operation string) error {
	if !success {
		return newGraphQLError("failed to %s", operation)
	}
	return nil
}

// Connection is the nodes wrapper Linear uses for every list field
type Connection[T any] struct {
	Nodes []T `json:"nodes"`
}
