// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/huangsam/burndown/internal/contract"
	"github.com/huangsam/burndown/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteSeries prints the burndown series using the configured output format.
func (ow *OutWriter) WriteSeries(result schema.BurndownResult, cfg *contract.Config, duration time.Duration) error {
	return PrintSeriesResults(result, cfg, duration)
}

// WriteChart renders the burndown chart to the configured chart file.
func (ow *OutWriter) WriteChart(result schema.BurndownResult, cfg *contract.Config) error {
	return PrintChart(result, cfg)
}
