package cmd

import (
	"github.com/huangsam/burndown/core"
	"github.com/spf13/cobra"
)

// chartCmd renders the burndown series as an image.
var chartCmd = &cobra.Command{
	Use:   "chart [input-file]",
	Short: "Render the burndown chart as a PNG or SVG image.",
	Long: `Render the burndown series as a chart.

The chart shows:
- Historical remaining scope up to the as-of date (filled)
- Predicted burndown across the whole range (dotted)
- A vertical marker at the predicted completion date, when it falls in range

Examples:
  # Write burndown.png next to the export
  burndown chart tickets.xlsx

  # SVG chart of a GitHub milestone with weekly buckets
  burndown chart --source github --github-repo acme/api --github-labels sprint-12 --interval weekly --chart-file sprint.svg`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor(core.ExecuteBurndownChart, "Cannot render burndown chart")
	},
}
