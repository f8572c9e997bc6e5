package cmd

import (
	"github.com/huangsam/burndown/core"
	"github.com/spf13/cobra"
)

// seriesCmd prints the burndown series with its projection.
var seriesCmd = &cobra.Command{
	Use:   "series [input-file]",
	Short: "Print the burndown series with predicted and adjusted burndown.",
	Long: `Bucket ticket records onto a date axis and forecast the remaining scope.

For every axis point the series shows:
- Cumulative created and resolved story points
- Remaining scope (created minus resolved)
- Predicted burndown stepping down by velocity after the as-of date
- Adjusted burndown that allows for scope growth

Velocity comes from --velocity when set, otherwise from the average
resolved points per interval up to the as-of date.

Examples:
  # Bi-weekly burndown of a spreadsheet export
  burndown series tickets.xlsx

  # Daily burndown for a sprint with a fixed velocity
  burndown series sprint.csv --interval daily --start 2024-01-01 --end 2024-01-14 --velocity 5

  # Burndown of a Jira filter, cached for a day
  burndown series --source jira --jira-url https://acme.atlassian.net --jql "project = OPS" --cache-backend sqlite --cache-ttl "1 day"

  # Export the series for a notebook
  burndown series tickets.csv --output parquet --output-file burndown.parquet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor(core.ExecuteBurndownSeries, "Cannot build burndown series")
	},
}
