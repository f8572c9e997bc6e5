package outwriter

import (
	"os"

	"github.com/huangsam/burndown/internal/contract"
	"golang.org/x/term"
)

// compactTableWidth is the terminal width below which the series table
// drops its cumulative columns.
const compactTableWidth = 90

// GetTerminalWidth returns the width override from flag/env, the detected
// terminal width, or a conservative default.
func GetTerminalWidth(cfg *contract.Config) int {
	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		return cfg.Width
	}

	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		return 80 // Conservative default for narrow terminals and CI
	}
	return detectedWidth
}

// useCompactTable reports whether the series table should use its narrow layout.
func useCompactTable(cfg *contract.Config) bool {
	return GetTerminalWidth(cfg) < compactTableWidth
}
