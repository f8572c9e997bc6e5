package outwriter

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/burndown/internal/contract"
	"github.com/huangsam/burndown/internal/parquet"
	"github.com/huangsam/burndown/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintSeriesResults outputs the burndown series, dispatching based on the output format configured.
func PrintSeriesResults(result schema.BurndownResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatter(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForSeries(result, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForSeries(result, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := printParquetResultsForSeries(result, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := printSeriesTable(os.Stdout, result, cfg, fmtFloat, duration); err != nil {
			return fmt.Errorf("error writing series table output: %w", err)
		}
	}
	return nil
}

// printJSONResultsForSeries handles opening the file and calling the JSON writer.
func printJSONResultsForSeries(result schema.BurndownResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForSeries(w, result)
	}, "Wrote JSON series results")
}

// printCSVResultsForSeries handles opening the file and calling the CSV writer.
func printCSVResultsForSeries(result schema.BurndownResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVResultsForSeries(w, result, fmtFloat)
	}, "Wrote CSV series results")
}

// printParquetResultsForSeries writes the series to the Parquet output file.
func printParquetResultsForSeries(result schema.BurndownResult, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return fmt.Errorf("an output file is required for parquet output")
	}
	if err := parquet.WriteSeriesParquet(seriesParquetRows(result), cfg.OutputFile); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(os.Stderr, "💾 Wrote Parquet series results to %s\n", cfg.OutputFile)
	return nil
}

// printSeriesTable prints the series as a table followed by the velocity and completion summary.
func printSeriesTable(w io.Writer, result schema.BurndownResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	compact := useCompactTable(cfg)

	// --- 1. Define Headers ---
	headers := []string{"Date", "Phase", "Created", "Resolved", "Remaining", "Predicted", "Adjusted"}
	if compact {
		headers = []string{"Date", "Phase", "Remaining", "Predicted"}
	}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// --- 3. Prepare Data Rows ---
	var data [][]string
	for _, p := range result.Points {
		phase := contract.GetPlainLabel(p.Date, result.AsOf, p.PredictedBurndown)
		if cfg.UseColors {
			phase = contract.GetColorLabel(p.Date, result.AsOf, p.PredictedBurndown)
		}
		row := []string{p.Date.Format(contract.DateFormat), phase}
		if !compact {
			row = append(row, fmtFloat(p.CumulativeCreated), fmtFloat(p.CumulativeResolved))
		}
		row = append(row, fmtFloat(p.RemainingScope), fmtFloat(p.PredictedBurndown))
		if !compact {
			row = append(row, fmtFloat(p.AdjustedPredictedBurndown))
		}
		data = append(data, row)
	}

	// --- 4. Render the table ---
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "📉 Velocity: %.2f story points%s (%s)\n", result.Velocity, result.VelocityLabel, result.VelocitySource)
	_, _ = fmt.Fprintf(w, "🏁 Predicted completion: %s\n", formatCompletion(result.CompletionDate))
	_, _ = fmt.Fprintf(w, "Burndown built in %v from %d records. Cache backend: %s\n", duration, result.RecordCount, cfg.CacheBackend)
	return nil
}

// formatCompletion renders the completion date or a note that the projection never finishes.
func formatCompletion(completion *time.Time) string {
	if completion == nil {
		return "not within range"
	}
	return completion.Format(contract.DateFormat)
}
