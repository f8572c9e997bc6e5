package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/burndown/schema"
)

// Default values for configuration.
const (
	DefaultPrecision       = 1
	DefaultLookbackWeeks   = 26
	DefaultLookaheadWeeks  = 26
	DefaultCacheTTL        = time.Hour
	DefaultJiraPointsField = "customfield_10016"
	DefaultPointsPrefix    = "points:"
	DefaultChartWidth      = 1400
	DefaultChartHeight     = 600
)

// Default column names of tabular record sources.
const (
	DefaultCreatedColumn  = "Created"
	DefaultResolvedColumn = "Resolved"
	DefaultPointsColumn   = "Story Points"
)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ColumnMapping names the tabular columns holding each record field.
type ColumnMapping struct {
	Created  string
	Resolved string
	Points   string
}

// JiraConfig holds the settings of the Jira record source.
type JiraConfig struct {
	URL         string
	Username    string
	Token       string // Please use env var as this is plaintext
	JQL         string
	PointsField string
}

// GitHubConfig holds the settings of the GitHub record source.
type GitHubConfig struct {
	Repo         string // owner/repo
	Token        string // Please use env var as this is plaintext
	BaseURL      string // Empty for github.com, https://host/api/v3/ for Enterprise
	Labels       []string
	PointsPrefix string
}

// Config holds the runtime configuration for a burndown run.
// This struct remains the "final, validated" config.
type Config struct {
	// --- Series parameters ---
	Interval schema.Interval
	Start    time.Time
	End      time.Time
	AsOf     time.Time
	Velocity float64 // 0 means derive from history

	// --- Record source ---
	Source    schema.SourceKind
	InputPath string
	Sheet     string
	Columns   ColumnMapping
	Jira      JiraConfig
	GitHub    GitHubConfig

	// --- Output ---
	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	// --- Chart ---
	ChartFile   string
	ChartFormat schema.ChartFormat
	ChartWidth  int
	ChartHeight int

	// --- Cache ---
	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext
	CacheTTL       time.Duration
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	InputPathStr string

	// InputOptional lets long-running servers start without an input file.
	// Each request then names its own file.
	InputOptional bool `mapstructure:"-"`

	// --- Fields from rootCmd.PersistentFlags() ---
	Interval       string  `mapstructure:"interval"`
	Start          string  `mapstructure:"start"`
	End            string  `mapstructure:"end"`
	AsOf           string  `mapstructure:"as-of"`
	Velocity       float64 `mapstructure:"velocity"`
	Source         string  `mapstructure:"source"`
	Sheet          string  `mapstructure:"sheet"`
	CreatedColumn  string  `mapstructure:"created-column"`
	ResolvedColumn string  `mapstructure:"resolved-column"`
	PointsColumn   string  `mapstructure:"points-column"`
	Precision      int     `mapstructure:"precision"`
	Output         string  `mapstructure:"output"`
	OutputFile     string  `mapstructure:"output-file"`
	Width          int     `mapstructure:"width"`
	Color          string  `mapstructure:"color"`
	CacheBackend   string  `mapstructure:"cache-backend"`
	CacheDBConnect string  `mapstructure:"cache-db-connect"`
	CacheTTL       string  `mapstructure:"cache-ttl"`

	// --- Jira source ---
	JiraURL         string `mapstructure:"jira-url"`
	JiraUsername    string `mapstructure:"jira-username"`
	JiraToken       string `mapstructure:"jira-token"`
	JQL             string `mapstructure:"jql"`
	JiraPointsField string `mapstructure:"jira-points-field"`

	// --- GitHub source ---
	GitHubRepo         string `mapstructure:"github-repo"`
	GitHubToken        string `mapstructure:"github-token"`
	GitHubBaseURL      string `mapstructure:"github-base-url"`
	GitHubLabels       string `mapstructure:"github-labels"`
	GitHubPointsPrefix string `mapstructure:"github-points-prefix"`

	// --- Fields from chartCmd.Flags() ---
	ChartFile   string `mapstructure:"chart-file"`
	ChartFormat string `mapstructure:"chart-format"`
	ChartWidth  int    `mapstructure:"chart-width"`
	ChartHeight int    `mapstructure:"chart-height"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.GitHub.Labels != nil {
		clone.GitHub.Labels = make([]string, len(c.GitHub.Labels))
		copy(clone.GitHub.Labels, c.GitHub.Labels)
	}
	return &clone
}

// Params returns the burndown build parameters carried by the config.
func (c *Config) Params() schema.BurndownParams {
	return schema.BurndownParams{
		Start:            c.Start,
		End:              c.End,
		AsOf:             c.AsOf,
		Interval:         c.Interval,
		VelocityOverride: c.Velocity,
	}
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct. now is the wall clock used for date defaults.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput, now time.Time) error {
	// All validation functions read from 'input' and populate 'cfg'.
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processSeriesParams(cfg, input, now); err != nil {
		return err
	}
	if err := processSource(cfg, input); err != nil {
		return err
	}
	if err := processChart(cfg, input); err != nil {
		return err
	}
	return validateBackendConfigs(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates the cache backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	backend := strings.ToLower(strings.TrimSpace(input.CacheBackend))
	if backend == "" {
		backend = string(schema.NoneBackend)
	}
	cfg.CacheBackend = schema.DatabaseBackend(backend)
	if _, ok := schema.ValidCacheBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	cfg.CacheTTL = DefaultCacheTTL
	if input.CacheTTL != "" {
		ttl, err := ParseDuration(input.CacheTTL)
		if err != nil {
			return fmt.Errorf("invalid --cache-ttl: %w", err)
		}
		cfg.CacheTTL = ttl
	}
	return nil
}

// validateSimpleInputs processes and validates all output related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	// Parse color flag
	color := input.Color
	if color == "" {
		color = "yes"
	}
	colors, err := ParseBoolString(color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required for parquet output")
	}

	if cfg.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", cfg.Width)
	}
	return nil
}

// processSeriesParams handles the interval, date range, as-of date and velocity.
func processSeriesParams(cfg *Config, input *ConfigRawInput, now time.Time) error {
	interval := strings.ToLower(strings.TrimSpace(input.Interval))
	if interval == "" {
		interval = string(schema.BiWeeklyInterval)
	}
	cfg.Interval = schema.Interval(interval)
	if _, ok := schema.ValidIntervals[cfg.Interval]; !ok {
		return fmt.Errorf("invalid interval '%s'. must be daily, weekly, bi-weekly, monthly", input.Interval)
	}

	if input.Velocity < 0 {
		return fmt.Errorf("velocity cannot be negative (received %.2f)", input.Velocity)
	}
	cfg.Velocity = input.Velocity

	// --- As-of date anchors the default range ---
	cfg.AsOf = ToDate(now)
	if input.AsOf != "" {
		t, err := ParseDate(input.AsOf, now)
		if err != nil {
			return fmt.Errorf("invalid --as-of: %w", err)
		}
		cfg.AsOf = t
	}

	cfg.Start = cfg.AsOf.AddDate(0, 0, -7*DefaultLookbackWeeks)
	if input.Start != "" {
		t, err := ParseDate(input.Start, now)
		if err != nil {
			return fmt.Errorf("invalid --start: %w", err)
		}
		cfg.Start = t
	}

	cfg.End = cfg.AsOf.AddDate(0, 0, 7*DefaultLookaheadWeeks)
	if input.End != "" {
		t, err := ParseDate(input.End, now)
		if err != nil {
			return fmt.Errorf("invalid --end: %w", err)
		}
		cfg.End = t
	}

	// --- Final Validation ---
	if cfg.Start.After(cfg.End) {
		return fmt.Errorf("start date (%s) cannot be after end date (%s)", cfg.Start.Format(DateFormat), cfg.End.Format(DateFormat))
	}
	return nil
}

// processSource resolves the record source kind and its settings.
func processSource(cfg *Config, input *ConfigRawInput) error {
	cfg.InputPath = strings.TrimSpace(input.InputPathStr)
	cfg.Sheet = input.Sheet
	cfg.Columns = ColumnMapping{
		Created:  firstNonEmpty(input.CreatedColumn, DefaultCreatedColumn),
		Resolved: firstNonEmpty(input.ResolvedColumn, DefaultResolvedColumn),
		Points:   firstNonEmpty(input.PointsColumn, DefaultPointsColumn),
	}

	kind := strings.ToLower(strings.TrimSpace(input.Source))
	if kind == "" {
		kind = string(schema.AutoSource)
	}
	cfg.Source = schema.SourceKind(kind)
	if _, ok := schema.ValidSourceKinds[cfg.Source]; !ok {
		return fmt.Errorf("invalid source '%s'. must be auto, csv, xlsx, parquet, jira, github", input.Source)
	}

	if cfg.Source == schema.AutoSource {
		if cfg.InputPath == "" {
			if input.InputOptional {
				return nil
			}
			return fmt.Errorf("an input file is required unless --source is jira or github")
		}
		cfg.Source = schema.SourceKindFromPath(cfg.InputPath)
		if cfg.Source == schema.AutoSource {
			return fmt.Errorf("cannot infer source from %q. Use --source csv, xlsx or parquet", cfg.InputPath)
		}
	}

	switch cfg.Source {
	case schema.JiraSource:
		cfg.Jira = JiraConfig{
			URL:         strings.TrimSpace(input.JiraURL),
			Username:    input.JiraUsername,
			Token:       input.JiraToken,
			JQL:         strings.TrimSpace(input.JQL),
			PointsField: firstNonEmpty(input.JiraPointsField, DefaultJiraPointsField),
		}
		if cfg.Jira.URL == "" {
			return fmt.Errorf("--jira-url is required for the jira source")
		}
		if cfg.Jira.JQL == "" {
			return fmt.Errorf("--jql is required for the jira source")
		}
	case schema.GitHubSource:
		cfg.GitHub = GitHubConfig{
			Repo:         strings.TrimSpace(input.GitHubRepo),
			Token:        input.GitHubToken,
			BaseURL:      strings.TrimSpace(input.GitHubBaseURL),
			Labels:       splitList(input.GitHubLabels),
			PointsPrefix: firstNonEmpty(input.GitHubPointsPrefix, DefaultPointsPrefix),
		}
		if parts := strings.Split(cfg.GitHub.Repo, "/"); len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return fmt.Errorf("invalid --github-repo '%s'. expected owner/repo", input.GitHubRepo)
		}
	default:
		if cfg.InputPath == "" && !input.InputOptional {
			return fmt.Errorf("an input file is required for the %s source", cfg.Source)
		}
	}
	return nil
}

// RevalidateInputFile points a cloned config at another tabular input file.
// The source kind is inferred from the file extension.
func RevalidateInputFile(cfg *Config, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("file_path is required")
	}
	kind := schema.SourceKindFromPath(path)
	if kind == schema.AutoSource {
		return fmt.Errorf("cannot infer source from %q. Expected .csv, .tsv, .xlsx or .parquet", path)
	}
	cfg.InputPath = path
	cfg.Source = kind
	return nil
}

// processChart validates the chart image settings.
func processChart(cfg *Config, input *ConfigRawInput) error {
	cfg.ChartFile = strings.TrimSpace(input.ChartFile)
	cfg.ChartWidth = input.ChartWidth
	if cfg.ChartWidth == 0 {
		cfg.ChartWidth = DefaultChartWidth
	}
	cfg.ChartHeight = input.ChartHeight
	if cfg.ChartHeight == 0 {
		cfg.ChartHeight = DefaultChartHeight
	}
	if cfg.ChartWidth < 0 || cfg.ChartHeight < 0 {
		return fmt.Errorf("chart dimensions cannot be negative (received %dx%d)", cfg.ChartWidth, cfg.ChartHeight)
	}

	format := strings.ToLower(strings.TrimSpace(input.ChartFormat))
	if format == "" {
		if inferred, ok := schema.ChartFormatFromPath(cfg.ChartFile); ok {
			format = string(inferred)
		} else {
			format = string(schema.PNGChart)
		}
	}
	cfg.ChartFormat = schema.ChartFormat(format)
	if _, ok := schema.ValidChartFormats[cfg.ChartFormat]; !ok {
		return fmt.Errorf("invalid chart format '%s'. must be png, svg", input.ChartFormat)
	}
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// RevalidateSeries re-applies series overrides on a cloned config.
// Empty strings and a zero velocity keep the existing values.
func RevalidateSeries(cfg *Config, interval, start, end, asOf string, velocity float64, now time.Time) error {
	input := &ConfigRawInput{
		Interval: firstNonEmpty(interval, string(cfg.Interval)),
		Start:    firstNonEmpty(start, cfg.Start.Format(DateFormat)),
		End:      firstNonEmpty(end, cfg.End.Format(DateFormat)),
		AsOf:     firstNonEmpty(asOf, cfg.AsOf.Format(DateFormat)),
		Velocity: cfg.Velocity,
	}
	if velocity != 0 {
		input.Velocity = velocity
	}
	return processSeriesParams(cfg, input, now)
}

// firstNonEmpty returns value unless it is blank, in which case it returns fallback.
func firstNonEmpty(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// splitList splits a comma-separated list and drops blank entries.
func splitList(s string) []string {
	var out []string
	for p := range strings.SplitSeq(s, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
