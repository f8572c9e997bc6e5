package outwriter

import (
	"io"

	"github.com/huangsam/burndown/internal/chart"
	"github.com/huangsam/burndown/internal/contract"
	"github.com/huangsam/burndown/schema"
)

// PrintChart renders the burndown chart to cfg.ChartFile, or stdout when it is empty.
func PrintChart(result schema.BurndownResult, cfg *contract.Config) error {
	opts := chart.Options{
		Format: cfg.ChartFormat,
		Width:  cfg.ChartWidth,
		Height: cfg.ChartHeight,
	}
	return writeWithFile(cfg.ChartFile, func(w io.Writer) error {
		return chart.Render(w, result, opts)
	}, "Wrote burndown chart")
}
