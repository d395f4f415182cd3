package schedule

import (
	"context"
	"time"
)

// Provider fetches the raw schedule payload for one window.
// Implementations must not serve cached pages: game states change after the fact.
type Provider interface {
	FetchSchedule(ctx context.Context, from, to time.Time) (RawSchedule, error)
}

// RawSchedule is one upstream response, grouped by day. NextStart is the first
// day the response did not cover; it is zero when the provider answered the
// whole requested range.
type RawSchedule struct {
	Days      []RawDay
	NextStart time.Time
}

type RawDay struct {
	Date  string
	Games []RawGame
}

// RawGame keeps upstream fields as pointers so a missing field can be told
// apart from a zero value.
type RawGame struct {
	ID           *int64  `validate:"required"`
	GameState    *string `validate:"required"`
	StartTimeUTC *string `validate:"required"`
	Venue        *string `validate:"required"`
	HomeTeam     *string `validate:"required"`
	AwayTeam     *string `validate:"required"`
	HomeScore    *int
	AwayScore    *int
}

// GameCount sums the games across all days of the payload.
func (r RawSchedule) GameCount() int {
	total := 0
	for _, day := range r.Days {
		total += len(day.Games)
	}
	return total
}
