package core

import (
	"fmt"
	"time"

	"github.com/huangsam/burndown/internal/contract"
	"github.com/huangsam/burndown/schema"
)

// BuildAxis generates the ordered reporting dates between start and end inclusive.
//
//   - daily: every calendar day
//   - weekly: every Sunday
//   - bi-weekly: every 14 days from the first Sunday on or after start
//   - monthly: every calendar month-end
//
// Both bounds are truncated to calendar dates in UTC before bucketing.
func BuildAxis(start, end time.Time, interval schema.Interval) ([]time.Time, error) {
	start, end = contract.ToDate(start), contract.ToDate(end)
	if start.After(end) {
		return nil, fmt.Errorf("%w: start %s is after end %s", ErrInvalidRange, start.Format(contract.DateFormat), end.Format(contract.DateFormat))
	}

	var axis []time.Time
	switch interval {
	case schema.DailyInterval:
		axis = stepAxis(start, end, 1)
	case schema.WeeklyInterval:
		axis = stepAxis(firstSunday(start), end, 7)
	case schema.BiWeeklyInterval:
		axis = stepAxis(firstSunday(start), end, 14)
	case schema.MonthlyInterval:
		axis = monthEndAxis(start, end)
	default:
		return nil, fmt.Errorf("%w: %q (must be daily, weekly, bi-weekly or monthly)", ErrInvalidInterval, interval)
	}

	if len(axis) == 0 {
		return nil, fmt.Errorf("%w: no %s buckets between %s and %s", ErrEmptyRange, interval, start.Format(contract.DateFormat), end.Format(contract.DateFormat))
	}
	return axis, nil
}

// stepAxis returns dates from first to end inclusive, spaced by days.
func stepAxis(first, end time.Time, days int) []time.Time {
	var axis []time.Time
	for d := first; !d.After(end); d = d.AddDate(0, 0, days) {
		axis = append(axis, d)
	}
	return axis
}

// firstSunday returns the first Sunday on or after d.
func firstSunday(d time.Time) time.Time {
	offset := (7 - int(d.Weekday())) % 7
	return d.AddDate(0, 0, offset)
}

// monthEndAxis returns every last day of a month that falls within [start, end].
func monthEndAxis(start, end time.Time) []time.Time {
	var axis []time.Time
	year, month := start.Year(), start.Month()
	for {
		// Day 0 of the next month is the last day of this one.
		monthEnd := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
		if monthEnd.After(end) {
			break
		}
		if !monthEnd.Before(start) {
			axis = append(axis, monthEnd)
		}
		month++
		if month > time.December {
			month = time.January
			year++
		}
	}
	return axis
}
