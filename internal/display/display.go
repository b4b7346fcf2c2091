// Package display holds pure formatting helpers shared by the renderers.
package display

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/samber/lo"
)

const (
	// Missing is shown in detail views for absent values
	Missing = "—"

	// Placeholder is shown in table cells for absent values
	Placeholder = "-"
)

var priorityLabels = []string{"None", "Urgent", "High", "Normal", "Low"}

// PriorityLabel maps Linear's 0-4 priority to its name
func PriorityLabel(priority int) string {
	if priority < 0 || priority >= len(priorityLabels) {
		return Missing
	}
	return priorityLabels[priority]
}

// Truncate shortens s to at most max runes, replacing the tail with an ellipsis
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	return string(runes[:max-1]) + "…"
}

// Date returns the YYYY-MM-DD part of an ISO-8601 timestamp
func Date(timestamp string) string {
	if len(timestamp) < 10 {
		return timestamp
	}
	return timestamp[:10]
}

// Percent formats a 0..1 progress value as a rounded percentage
func Percent(progress float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(progress*100)))
}

// OrMissing returns s, or the missing marker when s is nil or empty
func OrMissing(s *string) string {
	if s == nil || *s == "" {
		return Missing
	}
	return *s
}

// StateTypeOrder is the display order of workflow state groups
var StateTypeOrder = []string{"backlog", "unstarted", "started", "completed", "canceled"}

// StateGroup is a run of workflow states sharing a type
type StateGroup[T any] struct {
	Type   string
	States []T
}

// GroupByType buckets items in StateTypeOrder. Types outside that list
// (such as triage) are dropped, and empty groups are omitted.
func GroupByType[T any](items []T, typeOf func(T) string) []StateGroup[T] {
	byType := lo.GroupBy(items, typeOf)

	groups := make([]StateGroup[T], 0, len(StateTypeOrder))
	for _, t := range StateTypeOrder {
		if states := byType[t]; len(states) > 0 {
			groups = append(groups, StateGroup[T]{Type: t, States: states})
		}
	}
	return groups
}
