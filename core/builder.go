package core

import (
	"github.com/huangsam/burndown/core/agg"
	"github.com/huangsam/burndown/internal/contract"
	"github.com/huangsam/burndown/schema"
)

// BuildBurndown turns ticket records into a burndown series with a constant-velocity
// projection. It is a pure function of its arguments: it reads no clock and no
// global state, and it returns either a complete result or an error.
//
// Errors wrap ErrInvalidInterval, ErrInvalidRange, ErrEmptyRange or ErrNoHistory.
func BuildBurndown(records []schema.TicketRecord, params schema.BurndownParams) (schema.BurndownResult, error) {
	axis, err := BuildAxis(params.Start, params.End, params.Interval)
	if err != nil {
		return schema.BurndownResult{}, err
	}
	// BuildAxis already rejected unknown intervals.
	label, _ := schema.VelocityLabel(params.Interval)

	asOf := contract.ToDate(params.AsOf)
	points := agg.AggregateScope(records, axis)

	velocity, source, err := computeVelocity(points, asOf, params.VelocityOverride)
	if err != nil {
		return schema.BurndownResult{}, err
	}

	projected := projectBurndown(points, asOf, velocity)

	return schema.BurndownResult{
		Points:         projected,
		Velocity:       velocity,
		VelocityLabel:  label,
		VelocitySource: source,
		Interval:       params.Interval,
		Start:          contract.ToDate(params.Start),
		End:            contract.ToDate(params.End),
		AsOf:           asOf,
		CompletionDate: PredictedCompletion(projected, asOf),
		RecordCount:    len(records),
	}, nil
}
