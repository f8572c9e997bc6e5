package core

import (
	"testing"
	"time"

	"github.com/huangsam/burndown/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(t time.Time) *time.Time { return &t }

func dailyParams(start, end, asOf time.Time) schema.BurndownParams {
	return schema.BurndownParams{Start: start, End: end, AsOf: asOf, Interval: schema.DailyInterval}
}

func TestBuildBurndownTwoRecords(t *testing.T) {
	records := []schema.TicketRecord{
		{Key: "A-1", Created: date(2024, 1, 1), Resolved: ptr(date(2024, 1, 10)), StoryPoints: 5},
		{Key: "A-2", Created: date(2024, 1, 5), StoryPoints: 3},
	}
	result, err := BuildBurndown(records, dailyParams(date(2024, 1, 1), date(2024, 1, 12), date(2024, 1, 12)))
	require.NoError(t, err)
	require.Len(t, result.Points, 12)

	last := result.Points[11]
	assert.Equal(t, date(2024, 1, 12), last.Date)
	assert.Equal(t, 8.0, last.CumulativeCreated)
	assert.Equal(t, 5.0, last.CumulativeResolved)
	assert.Equal(t, 3.0, last.RemainingScope)

	assert.InDelta(t, 5.0/12.0, result.Velocity, 1e-9)
	assert.Equal(t, schema.HistoricalVelocity, result.VelocitySource)
	assert.Equal(t, "/day", result.VelocityLabel)
	assert.Equal(t, 2, result.RecordCount)
	assert.Nil(t, result.CompletionDate)

	for _, p := range result.Points {
		assert.False(t, p.Projected)
		assert.Equal(t, p.RemainingScope, p.PredictedBurndown)
	}
}

func TestBuildBurndownEmptyRecords(t *testing.T) {
	result, err := BuildBurndown(nil, dailyParams(date(2024, 1, 1), date(2024, 1, 7), date(2024, 1, 3)))
	require.NoError(t, err)
	require.Len(t, result.Points, 7)

	for _, p := range result.Points {
		assert.Zero(t, p.CumulativeCreated)
		assert.Zero(t, p.CumulativeResolved)
		assert.Zero(t, p.RemainingScope)
		assert.Zero(t, p.PredictedBurndown)
	}
	assert.Zero(t, result.Velocity)
	assert.Equal(t, schema.HistoricalVelocity, result.VelocitySource)
}

func TestBuildBurndownOverrideSkipsHistory(t *testing.T) {
	t.Run("empty records", func(t *testing.T) {
		params := dailyParams(date(2024, 1, 1), date(2024, 1, 5), date(2024, 1, 3))
		params.VelocityOverride = 10
		result, err := BuildBurndown(nil, params)
		require.NoError(t, err)
		assert.Equal(t, 10.0, result.Velocity)
		assert.Equal(t, schema.OverrideVelocity, result.VelocitySource)
	})

	t.Run("as-of before the range", func(t *testing.T) {
		records := []schema.TicketRecord{{Key: "B-1", Created: date(2024, 1, 1), StoryPoints: 25}}
		params := dailyParams(date(2024, 1, 1), date(2024, 1, 5), date(2023, 12, 1))
		params.VelocityOverride = 10
		result, err := BuildBurndown(records, params)
		require.NoError(t, err)

		predicted := make([]float64, 0, len(result.Points))
		for _, p := range result.Points {
			assert.True(t, p.Projected)
			predicted = append(predicted, p.PredictedBurndown)
		}
		assert.Equal(t, []float64{15, 5, 0, 0, 0}, predicted)
		require.NotNil(t, result.CompletionDate)
		assert.Equal(t, date(2024, 1, 3), *result.CompletionDate)
	})
}

func TestBuildBurndownSinglePoint(t *testing.T) {
	day := date(2024, 3, 1)
	records := []schema.TicketRecord{{Key: "C-1", Created: day, StoryPoints: 2}}
	result, err := BuildBurndown(records, dailyParams(day, day, day))
	require.NoError(t, err)
	require.Len(t, result.Points, 1)
	assert.Equal(t, 2.0, result.Points[0].RemainingScope)
	assert.Zero(t, result.Velocity)
}

func TestBuildBurndownResolvedOnAsOf(t *testing.T) {
	records := []schema.TicketRecord{
		{Key: "D-1", Created: date(2024, 1, 1), Resolved: ptr(date(2024, 1, 5)), StoryPoints: 4},
		{Key: "D-2", Created: date(2024, 1, 1), StoryPoints: 6},
	}
	result, err := BuildBurndown(records, dailyParams(date(2024, 1, 1), date(2024, 1, 10), date(2024, 1, 5)))
	require.NoError(t, err)

	asOfPoint := result.Points[4]
	assert.Equal(t, date(2024, 1, 5), asOfPoint.Date)
	assert.Equal(t, 4.0, asOfPoint.CumulativeResolved)
	assert.False(t, asOfPoint.Projected)
	assert.Equal(t, 6.0, asOfPoint.PredictedBurndown)
	assert.True(t, result.Points[5].Projected)
	assert.InDelta(t, 0.8, result.Velocity, 1e-9)
}

func TestBuildBurndownAsOfTimeOfDay(t *testing.T) {
	records := []schema.TicketRecord{{Key: "E-1", Created: date(2024, 1, 1), StoryPoints: 1}}
	params := dailyParams(date(2024, 1, 1), date(2024, 1, 3), time.Date(2024, 1, 2, 17, 45, 0, 0, time.UTC))
	result, err := BuildBurndown(records, params)
	require.NoError(t, err)
	assert.Equal(t, date(2024, 1, 2), result.AsOf)
	assert.False(t, result.Points[1].Projected)
	assert.True(t, result.Points[2].Projected)
}

func TestBuildBurndownFullyHistorical(t *testing.T) {
	records := []schema.TicketRecord{
		{Key: "F-1", Created: date(2024, 1, 1), Resolved: ptr(date(2024, 1, 20)), StoryPoints: 8},
	}
	params := schema.BurndownParams{
		Start:    date(2024, 1, 1),
		End:      date(2024, 2, 29),
		AsOf:     date(2024, 6, 1),
		Interval: schema.WeeklyInterval,
	}
	result, err := BuildBurndown(records, params)
	require.NoError(t, err)
	assert.Equal(t, "/week", result.VelocityLabel)
	assert.False(t, result.Points[len(result.Points)-1].Date.After(params.AsOf))
	for _, p := range result.Points {
		assert.False(t, p.Projected)
		assert.Equal(t, p.RemainingScope, p.PredictedBurndown)
	}
	assert.Nil(t, result.CompletionDate)
}

func TestBuildBurndownErrors(t *testing.T) {
	tests := []struct {
		name     string
		params   schema.BurndownParams
		expected error
	}{
		{
			name:     "invalid interval",
			params:   schema.BurndownParams{Start: date(2024, 1, 1), End: date(2024, 1, 5), AsOf: date(2024, 1, 5), Interval: "yearly"},
			expected: ErrInvalidInterval,
		},
		{
			name:     "invalid range",
			params:   dailyParams(date(2024, 1, 5), date(2024, 1, 1), date(2024, 1, 5)),
			expected: ErrInvalidRange,
		},
		{
			name:     "empty range",
			params:   schema.BurndownParams{Start: date(2024, 1, 1), End: date(2024, 1, 20), AsOf: date(2024, 1, 20), Interval: schema.MonthlyInterval},
			expected: ErrEmptyRange,
		},
		{
			name:     "no history",
			params:   dailyParams(date(2024, 1, 1), date(2024, 1, 5), date(2023, 12, 31)),
			expected: ErrNoHistory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := BuildBurndown(nil, tt.params)
			assert.ErrorIs(t, err, tt.expected)
			assert.Empty(t, result.Points)
		})
	}
}

// sampleRecords returns a spread of records with mixed resolution state.
func sampleRecords() []schema.TicketRecord {
	return []schema.TicketRecord{
		{Key: "G-1", Created: date(2024, 1, 2), Resolved: ptr(date(2024, 1, 16)), StoryPoints: 5},
		{Key: "G-2", Created: date(2024, 1, 3), Resolved: ptr(date(2024, 2, 1)), StoryPoints: 8},
		{Key: "G-3", Created: date(2024, 1, 10), StoryPoints: 3},
		{Key: "G-4", Created: date(2024, 1, 18), Resolved: ptr(date(2024, 1, 19)), StoryPoints: 1},
		{Key: "G-5", Created: date(2024, 2, 5), StoryPoints: 13},
		{Key: "G-6", Created: date(2024, 2, 6), Resolved: ptr(date(2024, 2, 20)), StoryPoints: 2},
	}
}

func TestBuildBurndownProperties(t *testing.T) {
	records := sampleRecords()
	asOf := date(2024, 2, 14)

	for _, interval := range schema.AllIntervals {
		t.Run(string(interval), func(t *testing.T) {
			params := schema.BurndownParams{Start: date(2024, 1, 1), End: date(2024, 6, 30), AsOf: asOf, Interval: interval}
			result, err := BuildBurndown(records, params)
			require.NoError(t, err)

			for i, p := range result.Points {
				assert.Equal(t, p.CumulativeCreated-p.CumulativeResolved, p.RemainingScope)
				assert.GreaterOrEqual(t, p.AdjustedPredictedBurndown, 0.0)
				assert.Equal(t, p.Date.After(asOf), p.Projected)
				if i == 0 {
					continue
				}
				prev := result.Points[i-1]
				assert.GreaterOrEqual(t, p.CumulativeCreated, prev.CumulativeCreated)
				assert.GreaterOrEqual(t, p.CumulativeResolved, prev.CumulativeResolved)
				if p.Projected {
					assert.GreaterOrEqual(t, p.PredictedBurndown, 0.0)
					assert.LessOrEqual(t, p.PredictedBurndown, prev.PredictedBurndown)
				}
			}

			again, err := BuildBurndown(records, params)
			require.NoError(t, err)
			assert.Equal(t, result, again)
		})
	}
}

func TestBuildBurndownDoesNotMutateRecords(t *testing.T) {
	records := sampleRecords()
	snapshot := sampleRecords()
	_, err := BuildBurndown(records, dailyParams(date(2024, 1, 1), date(2024, 3, 1), date(2024, 2, 1)))
	require.NoError(t, err)
	assert.Equal(t, snapshot, records)
}
