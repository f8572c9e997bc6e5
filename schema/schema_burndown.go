package schema

import "time"

// BurndownParams holds every input of a single burndown build besides the records.
// All of them are explicit so a build is a pure function of its arguments.
type BurndownParams struct {
	Start            time.Time // First calendar date of the reporting range (inclusive)
	End              time.Time // Last calendar date of the reporting range (inclusive)
	AsOf             time.Time // Reference date separating history from projection
	Interval         Interval  // Bucketing rule for the axis
	VelocityOverride float64   // Used directly when > 0, otherwise velocity comes from history
}

// BurndownPoint is one bucketed date on the reporting axis.
type BurndownPoint struct {
	Date                      time.Time `json:"date"`
	CumulativeCreated         float64   `json:"cumulative_created"`
	CumulativeResolved        float64   `json:"cumulative_resolved"`
	RemainingScope            float64   `json:"remaining_scope"`
	PredictedBurndown         float64   `json:"predicted_burndown"`
	AdjustedPredictedBurndown float64   `json:"adjusted_predicted_burndown"`
	Projected                 bool      `json:"projected"` // True when Date is strictly after the as-of date
}

// BurndownResult is the full output of a burndown build.
type BurndownResult struct {
	Points         []BurndownPoint `json:"points"`
	Velocity       float64         `json:"velocity"`
	VelocityLabel  string          `json:"velocity_label"`
	VelocitySource VelocitySource  `json:"velocity_source"`
	Interval       Interval        `json:"interval"`
	Start          time.Time       `json:"start"`
	End            time.Time       `json:"end"`
	AsOf           time.Time       `json:"as_of"`
	CompletionDate *time.Time      `json:"completion_date"` // nil when the projection never reaches zero in range
	RecordCount    int             `json:"record_count"`
}

// HistoricalPoints returns the points on or before the as-of date.
func (r BurndownResult) HistoricalPoints() []BurndownPoint {
	var past []BurndownPoint
	for _, p := range r.Points {
		if !p.Projected {
			past = append(past, p)
		}
	}
	return past
}

// MaxRemainingScope returns the largest remaining scope in the series, or 0 for an empty series.
func (r BurndownResult) MaxRemainingScope() float64 {
	maxScope := 0.0
	for i, p := range r.Points {
		if i == 0 || p.RemainingScope > maxScope {
			maxScope = p.RemainingScope
		}
	}
	return maxScope
}
