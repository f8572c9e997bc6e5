package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/burndown/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeriesRowStructTags(t *testing.T) {
	sch := parquet.SchemaOf(SeriesRow{})
	require.NotNil(t, sch)

	expectedColumns := []string{
		"date", "phase", "cumulative_created", "cumulative_resolved", "remaining_scope",
		"predicted_burndown", "adjusted_predicted_burndown", "velocity", "velocity_label",
	}
	for _, colName := range expectedColumns {
		col, ok := sch.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestTicketRowStructTags(t *testing.T) {
	sch := parquet.SchemaOf(TicketRow{})
	for _, colName := range []string{"key", "created", "resolved", "story_points"} {
		_, ok := sch.Lookup(colName)
		assert.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func TestWriteSeriesParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "series.parquet")

	data := []SeriesRow{
		{Date: time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC), Phase: "Actual", CumulativeCreated: 8, CumulativeResolved: 5, RemainingScope: 3, PredictedBurndown: 3, AdjustedPredictedBurndown: 3, Velocity: 2.5, VelocityLabel: "/week"},
		{Date: time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC), Phase: "Projected", CumulativeCreated: 8, CumulativeResolved: 5, RemainingScope: 3, PredictedBurndown: 0.5, AdjustedPredictedBurndown: 0.95, Velocity: 2.5, VelocityLabel: "/week"},
	}
	require.NoError(t, WriteSeriesParquet(data, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[SeriesRow](file)
	defer func() { _ = reader.Close() }()

	readData := make([]SeriesRow, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	require.Equal(t, len(data), n)
	for i := range data {
		assert.True(t, data[i].Date.Equal(readData[i].Date))
		assert.Equal(t, data[i].Phase, readData[i].Phase)
		assert.Equal(t, data[i].PredictedBurndown, readData[i].PredictedBurndown)
		assert.Equal(t, data[i].VelocityLabel, readData[i].VelocityLabel)
	}
}

func TestTicketsRoundTrip(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "tickets.parquet")
	resolved := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	records := []schema.TicketRecord{
		{Key: "A-1", Created: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), Resolved: &resolved, StoryPoints: 5},
		{Key: "A-2", Created: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), StoryPoints: 3},
	}

	require.NoError(t, WriteTicketsParquet(TicketRowsFromRecords(records), outputPath))

	got, err := ReadTicketRecords(outputPath)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "A-1", got[0].Key)
	assert.True(t, records[0].Created.Equal(got[0].Created))
	require.NotNil(t, got[0].Resolved)
	assert.True(t, resolved.Equal(*got[0].Resolved))
	assert.Equal(t, 5.0, got[0].StoryPoints)

	assert.Nil(t, got[1].Resolved, "Open ticket should stay unresolved")
	assert.Equal(t, 3.0, got[1].StoryPoints)
}

func TestWriteSeriesParquet_EmptyData(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty.parquet")
	require.NoError(t, WriteSeriesParquet([]SeriesRow{}, outputPath))

	_, err := os.Stat(outputPath)
	assert.NoError(t, err, "Empty Parquet file should still be created")
}

func TestWriteSeriesParquet_InvalidPath(t *testing.T) {
	err := WriteSeriesParquet([]SeriesRow{{}}, "/nonexistent/dir/series.parquet")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output file")
}

func TestReadTicketRecords_MissingFile(t *testing.T) {
	_, err := ReadTicketRecords(filepath.Join(t.TempDir(), "missing.parquet"))
	assert.Error(t, err)
}

func TestReadTicketRecords_NegativePoints(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "tickets.parquet")
	rows := []TicketRow{
		{Key: "A-1", Created: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), StoryPoints: 2},
		{Key: "A-2", Created: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), StoryPoints: -5},
	}
	require.NoError(t, WriteTicketsParquet(rows, outputPath))

	_, err := ReadTicketRecords(outputPath)
	assert.ErrorContains(t, err, "row 2 (A-2)")
}
