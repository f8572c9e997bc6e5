package schema

// Custom string types for type safety.
type (
	// Interval represents the bucketing rule of the reporting axis.
	Interval string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching.
	DatabaseBackend string

	// SourceKind represents where ticket records are loaded from.
	SourceKind string

	// ChartFormat represents the image format of a rendered chart.
	ChartFormat string

	// VelocitySource tells whether velocity came from history or an override.
	VelocitySource string
)

// All reporting intervals supported.
const (
	DailyInterval    Interval = "daily"
	WeeklyInterval   Interval = "weekly"
	BiWeeklyInterval Interval = "bi-weekly" // default
	MonthlyInterval  Interval = "monthly"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All cache backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default
)

// All record sources supported.
const (
	AutoSource    SourceKind = "auto" // default, picked from the file extension
	CSVSource     SourceKind = "csv"
	XLSXSource    SourceKind = "xlsx"
	ParquetSource SourceKind = "parquet"
	JiraSource    SourceKind = "jira"
	GitHubSource  SourceKind = "github"
)

// All chart formats supported.
const (
	PNGChart ChartFormat = "png" // default
	SVGChart ChartFormat = "svg"
)

// Velocity sources.
const (
	OverrideVelocity   VelocitySource = "override"
	HistoricalVelocity VelocitySource = "historical"
)

// AllIntervals returns a list of all supported intervals.
var AllIntervals = []Interval{DailyInterval, WeeklyInterval, BiWeeklyInterval, MonthlyInterval}

// ValidIntervals lists all valid intervals.
var ValidIntervals = map[Interval]struct{}{
	DailyInterval:    {},
	WeeklyInterval:   {},
	BiWeeklyInterval: {},
	MonthlyInterval:  {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidCacheBackends lists all valid cache backends.
var ValidCacheBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidSourceKinds lists all valid record sources.
var ValidSourceKinds = map[SourceKind]struct{}{
	AutoSource:    {},
	CSVSource:     {},
	XLSXSource:    {},
	ParquetSource: {},
	JiraSource:    {},
	GitHubSource:  {},
}

// ValidChartFormats lists all valid chart formats.
var ValidChartFormats = map[ChartFormat]struct{}{
	PNGChart: {},
	SVGChart: {},
}
