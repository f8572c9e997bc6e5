package schema

import (
	"path/filepath"
	"strings"
)

// velocityLabels maps each interval to the unit suffix shown next to velocity.
var velocityLabels = map[Interval]string{
	DailyInterval:    "/day",
	WeeklyInterval:   "/week",
	BiWeeklyInterval: "/2-weeks",
	MonthlyInterval:  "/month",
}

// VelocityLabel returns the display label for velocity in the given interval.
// The second return value is false for unknown intervals.
func VelocityLabel(interval Interval) (string, bool) {
	label, ok := velocityLabels[interval]
	return label, ok
}

// IsRemote reports whether the source kind is fetched over the network.
func (k SourceKind) IsRemote() bool {
	return k == JiraSource || k == GitHubSource
}

// SourceKindFromPath infers a file-based source kind from the file extension.
// It returns AutoSource when the extension is not recognized.
func SourceKindFromPath(path string) SourceKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv":
		return CSVSource
	case ".xlsx", ".xlsm":
		return XLSXSource
	case ".parquet", ".pq":
		return ParquetSource
	default:
		return AutoSource
	}
}

// ChartFormatFromPath infers the chart format from the output file extension.
func ChartFormatFromPath(path string) (ChartFormat, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNGChart, true
	case ".svg":
		return SVGChart, true
	default:
		return "", false
	}
}
