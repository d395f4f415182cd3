package nhle

import (
	"fmt"
	"time"

	"github.com/riskibarqy/nhl-schedule/internal/domain/schedule"
)

type scheduleEnvelope struct {
	NextStartDate string          `json:"nextStartDate"`
	GameWeek      *[]gameWeekItem `json:"gameWeek"`
}

type gameWeekItem struct {
	Date  string     `json:"date"`
	Games []gameItem `json:"games"`
}

// Every field is optional on the wire; presence is checked by the normalizer.
type gameItem struct {
	ID           *int64         `json:"id"`
	GameState    *string        `json:"gameState"`
	StartTimeUTC *string        `json:"startTimeUTC"`
	Venue        *localizedName `json:"venue"`
	HomeTeam     *teamItem      `json:"homeTeam"`
	AwayTeam     *teamItem      `json:"awayTeam"`
}

type localizedName struct {
	Default *string `json:"default"`
}

type teamItem struct {
	Abbrev *string `json:"abbrev"`
	Score  *int    `json:"score"`
}

func (e scheduleEnvelope) toRaw() (schedule.RawSchedule, error) {
	if e.GameWeek == nil {
		return schedule.RawSchedule{}, nil
	}
	weeks := *e.GameWeek
	out := schedule.RawSchedule{Days: make([]schedule.RawDay, 0, len(weeks))}
	for _, week := range weeks {
		day := schedule.RawDay{
			Date:  week.Date,
			Games: make([]schedule.RawGame, 0, len(week.Games)),
		}
		for _, item := range week.Games {
			day.Games = append(day.Games, item.toRaw())
		}
		out.Days = append(out.Days, day)
	}

	next, err := e.nextStart(weeks)
	if err != nil {
		return schedule.RawSchedule{}, err
	}
	out.NextStart = next
	return out, nil
}

// nextStart prefers the upstream nextStartDate and otherwise assumes the week
// ends at its last listed day. An unparsable last day is left to the scanner.
func (e scheduleEnvelope) nextStart(weeks []gameWeekItem) (time.Time, error) {
	if e.NextStartDate != "" {
		next, err := schedule.ParseDate(e.NextStartDate)
		if err != nil {
			return time.Time{}, fmt.Errorf("nextStartDate: %w", err)
		}
		return next, nil
	}
	if len(weeks) == 0 {
		return time.Time{}, nil
	}
	last, err := schedule.ParseDate(weeks[len(weeks)-1].Date)
	if err != nil {
		return time.Time{}, nil
	}
	return last.AddDate(0, 0, 1), nil
}

func (g gameItem) toRaw() schedule.RawGame {
	raw := schedule.RawGame{
		ID:           g.ID,
		GameState:    g.GameState,
		StartTimeUTC: g.StartTimeUTC,
	}
	if g.Venue != nil {
		raw.Venue = g.Venue.Default
	}
	if g.HomeTeam != nil {
		raw.HomeTeam = g.HomeTeam.Abbrev
		raw.HomeScore = g.HomeTeam.Score
	}
	if g.AwayTeam != nil {
		raw.AwayTeam = g.AwayTeam.Abbrev
		raw.AwayScore = g.AwayTeam.Score
	}
	return raw
}
