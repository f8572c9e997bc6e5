// Package agg has aggregation logic for ticket scope over a date axis.
package agg

import (
	"sort"
	"time"

	"github.com/huangsam/burndown/internal/contract"
	"github.com/huangsam/burndown/schema"
)

// datedPoints is a sorted list of dates with the running story point total at each date.
type datedPoints struct {
	dates  []time.Time
	totals []float64
}

// ScopeIndex holds sorted prefix sums of created and resolved story points.
// Lookups are O(log n) so aggregating an axis is O(buckets log records).
type ScopeIndex struct {
	created  datedPoints
	resolved datedPoints
}

// NewScopeIndex builds the prefix sums for the given records.
// Records without a resolution date only contribute to created scope.
func NewScopeIndex(records []schema.TicketRecord) *ScopeIndex {
	created := make([]dated, 0, len(records))
	resolved := make([]dated, 0, len(records))
	for _, r := range records {
		created = append(created, dated{date: contract.ToDate(r.Created), points: r.StoryPoints})
		if r.IsResolved() {
			resolved = append(resolved, dated{date: contract.ToDate(*r.Resolved), points: r.StoryPoints})
		}
	}
	return &ScopeIndex{
		created:  buildPrefixSums(created),
		resolved: buildPrefixSums(resolved),
	}
}

// dated is a single (date, points) contribution before sorting.
type dated struct {
	date   time.Time
	points float64
}

// buildPrefixSums sorts contributions by date and accumulates them.
func buildPrefixSums(items []dated) datedPoints {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].date.Before(items[j].date)
	})
	out := datedPoints{
		dates:  make([]time.Time, len(items)),
		totals: make([]float64, len(items)),
	}
	running := 0.0
	for i, it := range items {
		running += it.points
		out.dates[i] = it.date
		out.totals[i] = running
	}
	return out
}

// sumThrough returns the total of all contributions dated on or before d.
func (dp datedPoints) sumThrough(d time.Time) float64 {
	// First index strictly after d; everything before it satisfies date <= d.
	idx := sort.Search(len(dp.dates), func(i int) bool {
		return dp.dates[i].After(d)
	})
	if idx == 0 {
		return 0
	}
	return dp.totals[idx-1]
}

// CreatedThrough returns the story points of records created on or before d.
func (s *ScopeIndex) CreatedThrough(d time.Time) float64 {
	return s.created.sumThrough(contract.ToDate(d))
}

// ResolvedThrough returns the story points of records resolved on or before d.
func (s *ScopeIndex) ResolvedThrough(d time.Time) float64 {
	return s.resolved.sumThrough(contract.ToDate(d))
}

// AggregateScope computes cumulative created, cumulative resolved and remaining scope
// for each axis date. Remaining scope is never clamped.
func AggregateScope(records []schema.TicketRecord, axis []time.Time) []schema.BurndownPoint {
	index := NewScopeIndex(records)
	points := make([]schema.BurndownPoint, len(axis))
	for i, d := range axis {
		created := index.CreatedThrough(d)
		resolved := index.ResolvedThrough(d)
		points[i] = schema.BurndownPoint{
			Date:               d,
			CumulativeCreated:  created,
			CumulativeResolved: resolved,
			RemainingScope:     created - resolved,
		}
	}
	return points
}
