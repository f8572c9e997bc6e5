// Package parquet provides data structures and functions for exchanging burndown
// data with Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/burndown/schema"
	"github.com/parquet-go/parquet-go"
)

// SeriesRow represents a single bucketed date of a burndown series.
type SeriesRow struct {
	// Date is the axis date (stored as TIMESTAMP with nanosecond precision)
	Date time.Time `parquet:"date,snappy"`

	// Phase is the label of the point relative to the as-of date
	Phase string `parquet:"phase,snappy"`

	// CumulativeCreated is the story points created on or before Date
	CumulativeCreated float64 `parquet:"cumulative_created,snappy"`

	// CumulativeResolved is the story points resolved on or before Date
	CumulativeResolved float64 `parquet:"cumulative_resolved,snappy"`

	// RemainingScope is created minus resolved
	RemainingScope float64 `parquet:"remaining_scope,snappy"`

	// PredictedBurndown is the constant-velocity projection
	PredictedBurndown float64 `parquet:"predicted_burndown,snappy"`

	// AdjustedPredictedBurndown is the projection with scope growth blended in
	AdjustedPredictedBurndown float64 `parquet:"adjusted_predicted_burndown,snappy"`

	// Velocity is repeated on every row so the file stands alone
	Velocity float64 `parquet:"velocity,snappy"`

	// VelocityLabel is the unit of Velocity (e.g. /week)
	VelocityLabel string `parquet:"velocity_label,snappy"`
}

// TicketRow represents one ticket record.
type TicketRow struct {
	// Key is the ticket identifier
	Key string `parquet:"key,snappy"`

	// Created is when the ticket entered scope
	Created time.Time `parquet:"created,snappy"`

	// Resolved is when the ticket left scope (nullable)
	Resolved *time.Time `parquet:"resolved,optional,snappy"`

	// StoryPoints is the size estimate of the ticket
	StoryPoints float64 `parquet:"story_points,snappy"`
}

// WriteSeriesParquet writes a slice of SeriesRow structs to a Parquet file.
func WriteSeriesParquet(data []SeriesRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteTicketsParquet writes a slice of TicketRow structs to a Parquet file.
func WriteTicketsParquet(data []TicketRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes rows to a Parquet file with a schema inferred from T's struct tags.
func writeParquet[T any](data []T, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ReadTicketRecords reads ticket records from a Parquet file written with the TicketRow schema.
func ReadTicketRecords(inputPath string) ([]schema.TicketRecord, error) {
	rows, err := parquet.ReadFile[TicketRow](inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet file: %w", err)
	}
	records := make([]schema.TicketRecord, len(rows))
	for i, r := range rows {
		if !schema.ValidStoryPoints(r.StoryPoints) {
			return nil, fmt.Errorf("row %d (%s): story points must be a finite non-negative number, got %v", i+1, r.Key, r.StoryPoints)
		}
		records[i] = r.ToRecord()
	}
	return records, nil
}

// ToRecord converts the row to a ticket record.
func (r TicketRow) ToRecord() schema.TicketRecord {
	return schema.TicketRecord{
		Key:         r.Key,
		Created:     r.Created.UTC(),
		Resolved:    utcPtr(r.Resolved),
		StoryPoints: r.StoryPoints,
	}
}

// TicketRowsFromRecords converts ticket records to Parquet rows.
func TicketRowsFromRecords(records []schema.TicketRecord) []TicketRow {
	rows := make([]TicketRow, len(records))
	for i, r := range records {
		rows[i] = TicketRow{
			Key:         r.Key,
			Created:     r.Created,
			Resolved:    r.Resolved,
			StoryPoints: r.StoryPoints,
		}
	}
	return rows
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
