// Package core has core logic for building and projecting burndown series.
package core

import (
	"context"
	"time"

	"github.com/huangsam/burndown/core/agg"
	"github.com/huangsam/burndown/internal/contract"
	"github.com/huangsam/burndown/internal/outwriter"
	"github.com/huangsam/burndown/internal/source"
	"github.com/huangsam/burndown/schema"
)

// ExecutorFunc defines the function signature for executing different burndown modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// ExecuteBurndownSeries builds the burndown series and prints it in the configured format.
// It serves as the main entry point for the 'series' mode.
func ExecuteBurndownSeries(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	if cfg.Output != schema.TextOut && cfg.OutputFile == "" {
		// Keep stdout parseable for machine formats
		ctx = withSuppressHeader(ctx)
	}
	result, err := GetBurndownResult(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteSeries(result, cfg, duration)
}

// ExecuteBurndownChart builds the burndown series and renders it as a chart image.
// It serves as the main entry point for the 'chart' mode.
func ExecuteBurndownChart(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	if cfg.ChartFile == "" {
		// Image bytes go to stdout
		ctx = withSuppressHeader(ctx)
	}
	result, err := GetBurndownResult(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteChart(result, cfg)
}

// GetBurndownResult resolves the record source, loads its records through the
// source cache and builds the burndown series.
func GetBurndownResult(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.BurndownResult, error) {
	src, err := source.NewRecordSource(cfg)
	if err != nil {
		return schema.BurndownResult{}, err
	}
	return getBurndownResultFrom(ctx, cfg, src, mgr)
}

// getBurndownResultFrom is GetBurndownResult with an explicit record source.
func getBurndownResultFrom(ctx context.Context, cfg *contract.Config, src contract.RecordSource, mgr contract.CacheManager) (schema.BurndownResult, error) {
	if !shouldSuppressHeader(ctx) {
		outwriter.LogBurndownHeader(cfg, src.Describe())
	}

	records, err := agg.CachedLoadRecords(ctx, src, mgr, cfg.CacheTTL)
	if err != nil {
		return schema.BurndownResult{}, err
	}
	return BuildBurndown(records, cfg.Params())
}
