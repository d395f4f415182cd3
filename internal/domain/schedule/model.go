package schedule

import "time"

// StateOff is the upstream code of a game whose result is final.
const StateOff = "OFF"

// Game represents one normalized schedule entry.
type Game struct {
	ID           int64     `json:"game_id"`
	Date         string    `json:"date"`
	StartTimeUTC time.Time `json:"start_time_utc"`
	Venue        string    `json:"venue"`
	HomeTeam     string    `json:"home_team"`
	AwayTeam     string    `json:"away_team"`
	HomeScore    int       `json:"home_score"`
	AwayScore    int       `json:"away_score"`
	Status       string    `json:"status"`
}

// IsOver reports whether the state code marks a game whose result is settled.
// The code is compared as sent; upstream states are upper case.
func IsOver(state string) bool {
	return state == StateOff
}
