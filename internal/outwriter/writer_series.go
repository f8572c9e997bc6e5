package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/huangsam/burndown/internal/contract"
	"github.com/huangsam/burndown/internal/parquet"
	"github.com/huangsam/burndown/schema"
)

// writeJSONResultsForSeries marshals the schema.BurndownResult to JSON and writes it.
func writeJSONResultsForSeries(w io.Writer, result schema.BurndownResult) error {
	return writeJSON(w, result)
}

// writeCSVResultsForSeries writes one CSV row per axis point.
func writeCSVResultsForSeries(w io.Writer, result schema.BurndownResult, fmtFloat func(float64) string) error {
	header := []string{
		"date",
		"phase",
		"cumulative_created",
		"cumulative_resolved",
		"remaining_scope",
		"predicted_burndown",
		"adjusted_predicted_burndown",
		"projected",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, p := range result.Points {
			row := []string{
				p.Date.Format(contract.DateFormat),
				contract.GetPlainLabel(p.Date, result.AsOf, p.PredictedBurndown),
				fmtFloat(p.CumulativeCreated),
				fmtFloat(p.CumulativeResolved),
				fmtFloat(p.RemainingScope),
				fmtFloat(p.PredictedBurndown),
				fmtFloat(p.AdjustedPredictedBurndown),
				strconv.FormatBool(p.Projected),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// seriesParquetRows converts the series to Parquet rows.
func seriesParquetRows(result schema.BurndownResult) []parquet.SeriesRow {
	rows := make([]parquet.SeriesRow, len(result.Points))
	for i, p := range result.Points {
		rows[i] = parquet.SeriesRow{
			Date:                      p.Date,
			Phase:                     contract.GetPlainLabel(p.Date, result.AsOf, p.PredictedBurndown),
			CumulativeCreated:         p.CumulativeCreated,
			CumulativeResolved:        p.CumulativeResolved,
			RemainingScope:            p.RemainingScope,
			PredictedBurndown:         p.PredictedBurndown,
			AdjustedPredictedBurndown: p.AdjustedPredictedBurndown,
			Velocity:                  result.Velocity,
			VelocityLabel:             result.VelocityLabel,
		}
	}
	return rows
}
