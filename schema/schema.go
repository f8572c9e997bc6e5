// Package schema has models, enums and shared types for all parts of burndown.
package schema

import (
	"math"
	"time"
)

// TicketRecord is one work item read from a record source.
// Created and Resolved are bucketed by their calendar date in their own location.
type TicketRecord struct {
	Key         string     `json:"key,omitempty"` // Optional identifier (Jira key, issue number, row number)
	Created     time.Time  `json:"created"`       // Date the ticket entered scope
	Resolved    *time.Time `json:"resolved"`      // Date the ticket was resolved, nil when unresolved
	StoryPoints float64    `json:"story_points"`  // Non-negative effort estimate
}

// IsResolved reports whether the ticket has a resolution date.
func (r TicketRecord) IsResolved() bool {
	return r.Resolved != nil
}

// ValidStoryPoints reports whether v is a usable estimate: finite and not negative.
func ValidStoryPoints(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
