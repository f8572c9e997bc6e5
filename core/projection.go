package core

import (
	"fmt"
	"time"

	"github.com/huangsam/burndown/internal/contract"
	"github.com/huangsam/burndown/schema"
)

// scopeGrowthFactor is the share of remaining scope added on top of the
// predicted burndown to get the adjusted (blended) burndown.
const scopeGrowthFactor = 0.15

// computeVelocity returns the override when it is positive, otherwise the average
// resolved story points per axis bucket up to and including asOf.
func computeVelocity(points []schema.BurndownPoint, asOf time.Time, override float64) (float64, schema.VelocitySource, error) {
	if override > 0 {
		return override, schema.OverrideVelocity, nil
	}

	pastCount := 0
	var lastPast schema.BurndownPoint
	for _, p := range points {
		if p.Date.After(asOf) {
			break
		}
		lastPast = p
		pastCount++
	}
	if pastCount == 0 {
		return 0, schema.HistoricalVelocity, fmt.Errorf("%w: first axis date %s is after %s", ErrNoHistory, points[0].Date.Format(contract.DateFormat), asOf.Format(contract.DateFormat))
	}
	return lastPast.CumulativeResolved / float64(pastCount), schema.HistoricalVelocity, nil
}

// projectBurndown walks the axis once and returns a new series with predicted and
// adjusted burndown filled in. The input slice is not modified.
//
// The running prediction starts from the first point's remaining scope. Points after
// asOf step down from the previous point's prediction by velocity, floored at zero.
// Points on or before asOf keep their actual remaining scope as the prediction.
func projectBurndown(points []schema.BurndownPoint, asOf time.Time, velocity float64) []schema.BurndownPoint {
	out := make([]schema.BurndownPoint, len(points))
	if len(points) == 0 {
		return out
	}

	predictedValue := points[0].RemainingScope
	for i, p := range points {
		if p.Date.After(asOf) {
			previous := points[0].RemainingScope
			if i > 0 {
				previous = out[i-1].PredictedBurndown
			}
			predictedValue = max(previous-velocity, 0)
			p.PredictedBurndown = predictedValue
			p.Projected = true
		} else {
			p.PredictedBurndown = p.RemainingScope
			p.Projected = false
		}

		if p.Date.Before(asOf) {
			p.AdjustedPredictedBurndown = max(p.RemainingScope, 0)
		} else {
			p.AdjustedPredictedBurndown = max(predictedValue+scopeGrowthFactor*p.RemainingScope, 0)
		}

		out[i] = p
	}
	return out
}

// PredictedCompletion returns the first date strictly after asOf whose predicted
// burndown reached zero. It returns nil when the projection never reaches zero in range.
func PredictedCompletion(points []schema.BurndownPoint, asOf time.Time) *time.Time {
	for _, p := range points {
		if p.Date.After(asOf) && p.PredictedBurndown <= 0 {
			d := p.Date
			return &d
		}
	}
	return nil
}
