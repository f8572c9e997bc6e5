// Package cmd defines the command-line interface for burndown.
package cmd

import (
	"github.com/huangsam/burndown/internal/contract"
	"github.com/huangsam/burndown/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(seriesCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(mcpCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)
	cacheCmd.AddCommand(cacheMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("interval", string(schema.BiWeeklyInterval), "Axis interval: daily or weekly or bi-weekly or monthly")
	rootCmd.PersistentFlags().String("start", "", "Start date in ISO8601 or time ago (default: 26 weeks before --as-of)")
	rootCmd.PersistentFlags().String("end", "", "End date in ISO8601 or time from now (default: 26 weeks after --as-of)")
	rootCmd.PersistentFlags().String("as-of", "", "Date separating history from projection (default: today)")
	rootCmd.PersistentFlags().Float64("velocity", 0, "Story points burned per interval (0 = derive from history)")
	rootCmd.PersistentFlags().String("source", string(schema.AutoSource), "Record source: auto or csv or xlsx or parquet or jira or github")
	rootCmd.PersistentFlags().String("sheet", "", "Worksheet name for xlsx input (default: first sheet)")
	rootCmd.PersistentFlags().String("created-column", contract.DefaultCreatedColumn, "Column holding the created date")
	rootCmd.PersistentFlags().String("resolved-column", contract.DefaultResolvedColumn, "Column holding the resolved date")
	rootCmd.PersistentFlags().String("points-column", contract.DefaultPointsColumn, "Column holding the story points")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.NoneBackend), "Source cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("cache-ttl", "1 hour", "How long cached remote records stay fresh")
	rootCmd.PersistentFlags().String("jira-url", "", "Jira base URL for the jira source")
	rootCmd.PersistentFlags().String("jira-username", "", "Jira username for basic auth")
	rootCmd.PersistentFlags().String("jira-token", "", "Jira API token (prefer BURNDOWN_JIRA_TOKEN)")
	rootCmd.PersistentFlags().String("jql", "", "JQL query selecting the tickets")
	rootCmd.PersistentFlags().String("jira-points-field", contract.DefaultJiraPointsField, "Jira field holding story points")
	rootCmd.PersistentFlags().String("github-repo", "", "GitHub repository as owner/repo for the github source")
	rootCmd.PersistentFlags().String("github-token", "", "GitHub token (prefer BURNDOWN_GITHUB_TOKEN)")
	rootCmd.PersistentFlags().String("github-base-url", "", "GitHub Enterprise API URL (e.g., https://host/api/v3/)")
	rootCmd.PersistentFlags().String("github-labels", "", "Comma-separated issue labels to filter on")
	rootCmd.PersistentFlags().String("github-points-prefix", contract.DefaultPointsPrefix, "Label prefix carrying story points (e.g., points:5)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of chartCmd to Viper
	chartCmd.Flags().String("chart-file", "burndown.png", "Path to write the chart image to")
	chartCmd.Flags().String("chart-format", "", "Chart format: png or svg (default: from --chart-file extension)")
	chartCmd.Flags().Int("chart-width", contract.DefaultChartWidth, "Chart width in pixels")
	chartCmd.Flags().Int("chart-height", contract.DefaultChartHeight, "Chart height in pixels")
	if err := viper.BindPFlags(chartCmd.Flags()); err != nil {
		contract.LogFatal("Error binding chart flags", err)
	}

	// Bind all flags of cacheMigrateCmd to Viper
	cacheMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(cacheMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding cache migrate flags", err)
	}
}
