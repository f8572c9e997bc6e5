package contract

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateFormat is the calendar date representation used for input and output.
const DateFormat = time.DateOnly

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ToDate truncates t to its calendar date at UTC midnight.
// The calendar date is taken in t's own location so "2024-01-05T23:00:00-05:00" stays on the 5th.
func ToDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// maxRelativeValue bounds N in relative times so date arithmetic stays in range.
const maxRelativeValue = 1_000_000

// Define the regular expression to capture "N [units] ago" and "N [units] from now".
// e.g., "2 years ago", "3 months ago", "6 weeks from now".
var relativeTimeRe = regexp.MustCompile(`^(\d+)\s+(year|month|week|day)s?\s+(ago|from now)$`)

// ParseRelativeTime converts strings like "2 weeks ago" or "3 months from now"
// into a calendar date relative to now.
func ParseRelativeTime(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	matches := relativeTimeRe.FindStringSubmatch(s)

	if len(matches) == 0 {
		return time.Time{}, fmt.Errorf("invalid relative time format: %s", s)
	}

	// 1: Value (e.g., "2")
	// 2: Unit (e.g., "year" or "month")
	// 3: Direction
	value, err := strconv.Atoi(matches[1])
	if err != nil || value > maxRelativeValue {
		return time.Time{}, fmt.Errorf("invalid relative time value: %s", matches[1])
	}
	if matches[3] == "ago" {
		value = -value
	}

	switch matches[2] {
	case "year":
		return ToDate(now.AddDate(value, 0, 0)), nil
	case "month":
		return ToDate(now.AddDate(0, value, 0)), nil
	case "week":
		return ToDate(now.AddDate(0, 0, 7*value)), nil
	default: // day
		return ToDate(now.AddDate(0, 0, value)), nil
	}
}

// ParseDate parses a calendar date from user input. It accepts "today",
// YYYY-MM-DD, RFC3339 timestamps and relative forms like "4 weeks ago".
func ParseDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty date")
	}
	if strings.EqualFold(s, "today") {
		return ToDate(now), nil
	}
	if t, err := time.Parse(DateFormat, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(DateTimeFormat, s); err == nil {
		return ToDate(t), nil
	}
	t, err := ParseRelativeTime(s, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q. Expected YYYY-MM-DD, RFC3339, 'today' or 'N [units] ago/from now'", s)
	}
	return t, nil
}

// Define the regular expression to capture "N [units]".
var durationRe = regexp.MustCompile(`^(\d+)\s+(week|day|hour|minute)s?$`)

// ParseDuration converts strings like "2 hours" or "90m" into a time.Duration.
// It first tries Go's built-in time.ParseDuration for standard formats, then falls back
// to custom parsing for human-readable formats.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)

	// Try Go's built-in duration parsing first (e.g., "720h", "30m")
	if duration, err := time.ParseDuration(s); err == nil {
		if duration <= 0 {
			return 0, errors.New("duration must be positive")
		}
		return duration, nil
	}

	// Fall back to custom parsing for human-readable formats (e.g., "1 day", "2 weeks")
	s = strings.ToLower(s)
	matches := durationRe.FindStringSubmatch(s)
	if len(matches) == 0 {
		return 0, fmt.Errorf("invalid duration format: %s", s)
	}

	value, _ := strconv.Atoi(matches[1])
	var unit time.Duration
	switch matches[2] {
	case "week":
		unit = 7 * 24 * time.Hour
	case "day":
		unit = 24 * time.Hour
	case "hour":
		unit = time.Hour
	default: // minute
		unit = time.Minute
	}

	total := time.Duration(value) * unit
	if total == 0 {
		return 0, errors.New("zero duration is not useful")
	}
	if total < 0 || total/unit != time.Duration(value) {
		return 0, fmt.Errorf("duration out of range: %s", s)
	}
	return total, nil
}
