package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
)

// Phase label constants.
const (
	ActualValue    = "Actual"    // Historical point before the as-of date
	TodayValue     = "Today"     // Point on the as-of date
	ProjectedValue = "Projected" // Future point with remaining predicted scope
	DoneValue      = "Done"      // Future point where the prediction reached zero
)

// Color variables for console output.
var (
	ActualColor    = color.New(color.FgGreen)            // ActualColor represents recorded history.
	TodayColor     = color.New(color.FgCyan, color.Bold) // TodayColor marks the as-of boundary.
	ProjectedColor = color.New(color.FgRed)              // ProjectedColor represents forecast work left.
	DoneColor      = color.New(color.FgBlue, color.Bold) // DoneColor represents predicted completion.
)

// GetPlainLabel returns a plain text label for the phase of an axis point
// relative to the as-of date. This is the core logic used for
// CSV, JSON, and table printing.
func GetPlainLabel(date, asOf time.Time, predicted float64) string {
	switch {
	case date.Before(asOf):
		return ActualValue
	case date.Equal(asOf):
		return TodayValue
	case predicted <= 0:
		return DoneValue
	default:
		return ProjectedValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(date, asOf time.Time, predicted float64) string {
	text := GetPlainLabel(date, asOf, predicted)

	switch text {
	case ActualValue:
		return ActualColor.Sprint(text)
	case TodayValue:
		return TodayColor.Sprint(text)
	case DoneValue:
		return DoneColor.Sprint(text)
	default: // "Projected"
		return ProjectedColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".burndown_cache.db"
	}
	return filepath.Join(homeDir, ".burndown_cache.db")
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
