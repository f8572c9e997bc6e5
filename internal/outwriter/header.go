package outwriter

import (
	"fmt"

	"github.com/huangsam/burndown/internal/contract"
)

// LogBurndownHeader prints a concise, 2-line header before a burndown build.
func LogBurndownHeader(cfg *contract.Config, source string) {
	// Line 1: where the records come from
	fmt.Printf("🔎 Source: %s (%s)\n", source, cfg.Source)

	// Line 2: the reporting range and projection anchor
	fmt.Printf("📅 Range: %s → %s (Interval: %s, As of: %s)\n",
		cfg.Start.Format(contract.DateFormat),
		cfg.End.Format(contract.DateFormat),
		cfg.Interval,
		cfg.AsOf.Format(contract.DateFormat))
}
