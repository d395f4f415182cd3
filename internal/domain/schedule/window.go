package schedule

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

const (
	DefaultWindowDays = 7
	MaxWindowDays     = 30
)

// Window is a closed range of calendar dates sent as one upstream request.
type Window struct {
	From time.Time
	To   time.Time
}

func (w Window) Days() int {
	return DaysBetween(w.From, w.To) + 1
}

// Contains reports whether the calendar date falls inside the window.
func (w Window) Contains(date time.Time) bool {
	day := TruncateDay(date)
	return !day.Before(w.From) && !day.After(w.To)
}

func (w Window) String() string {
	return fmt.Sprintf("%s..%s", w.From.Format(DateLayout), w.To.Format(DateLayout))
}

// SplitWindows partitions [from, to] into consecutive windows of at most
// width days. Window i starts at from+i*width and never extends past to.
func SplitWindows(from, to time.Time, width int) []Window {
	from = TruncateDay(from)
	to = TruncateDay(to)
	if from.After(to) || width <= 0 {
		return nil
	}

	totalDays := DaysBetween(from, to) + 1
	out := make([]Window, 0, (totalDays+width-1)/width)
	for offset := 0; offset < totalDays; offset += width {
		end := offset + width - 1
		if end > totalDays-1 {
			end = totalDays - 1
		}
		out = append(out, Window{
			From: from.AddDate(0, 0, offset),
			To:   from.AddDate(0, 0, end),
		})
	}
	return out
}

// ParseDate parses a YYYY-MM-DD calendar date as UTC midnight.
func ParseDate(raw string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", raw, err)
	}
	return t, nil
}

// TruncateDay drops the clock part and normalizes to UTC.
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func DaysBetween(from, to time.Time) int {
	return int(TruncateDay(to).Sub(TruncateDay(from)).Hours() / 24)
}
