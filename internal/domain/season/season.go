// Package season maps calendar dates to NHL season years.
//
// Season Y starts on September 1st of Y and ends on August 31st of Y+1.
package season

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const startMonth = time.September

// StartBound returns the first day of the given season.
func StartBound(year int) time.Time {
	return time.Date(year, startMonth, 1, 0, 0, 0, 0, time.UTC)
}

// EndBound returns August 31st of year, which closes season year-1.
func EndBound(year int) time.Time {
	return time.Date(year, startMonth, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
}

// Of returns the season year a date belongs to.
func Of(date time.Time) int {
	date = date.UTC()
	if date.Month() >= startMonth {
		return date.Year()
	}
	return date.Year() - 1
}

func ParseYear(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) != 4 {
		return 0, fmt.Errorf("season year %q: expected 4 digits", raw)
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("season year %q: %w", raw, err)
	}
	return year, nil
}
