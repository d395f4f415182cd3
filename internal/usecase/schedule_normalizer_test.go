package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/nhl-schedule/internal/domain/schedule"
	"github.com/riskibarqy/nhl-schedule/internal/domain/team"
)

func TestNormalizeSchedule_DefaultOptionsKeepFinishedRegularSeasonGame(t *testing.T) {
	t.Parallel()

	chunks := [][]schedule.RawGame{{rawGame(2023020001, schedule.StateOff, "2023-10-10T23:00:00Z")}}

	games, err := NormalizeSchedule(chunks, ScrapeOptions{}, team.NewResolver())
	if err != nil {
		t.Fatalf("normalize schedule: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("expected one game, got=%d", len(games))
	}

	got := games[0]
	if got.ID != 2023020001 {
		t.Fatalf("unexpected id: %d", got.ID)
	}
	if got.Date != "2023-10-10" {
		t.Fatalf("unexpected date: %s", got.Date)
	}
	if !got.StartTimeUTC.Equal(time.Date(2023, 10, 10, 23, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start time: %s", got.StartTimeUTC)
	}
	if got.Venue != "Scotiabank Arena" {
		t.Fatalf("unexpected venue: %s", got.Venue)
	}
	if got.HomeTeam != "TOR" || got.AwayTeam != "LAK" {
		t.Fatalf("unexpected teams: home=%s away=%s", got.HomeTeam, got.AwayTeam)
	}
	if got.HomeScore != 4 || got.AwayScore != 2 {
		t.Fatalf("unexpected score: %d-%d", got.HomeScore, got.AwayScore)
	}
	if got.Status != schedule.StateOff {
		t.Fatalf("unexpected status: %s", got.Status)
	}
}

func TestNormalizeSchedule_ExcludesSpecialGamesUnderEveryOption(t *testing.T) {
	t.Parallel()

	chunks := [][]schedule.RawGame{{rawGame(2023045000, schedule.StateOff, "2024-02-03T20:00:00Z")}}
	for _, opts := range allOptions() {
		games, err := NormalizeSchedule(chunks, opts, nil)
		if err != nil {
			t.Fatalf("opts=%+v: normalize schedule: %v", opts, err)
		}
		if len(games) != 0 {
			t.Fatalf("opts=%+v: expected special game to be excluded, got=%d", opts, len(games))
		}
	}
}

func TestNormalizeSchedule_KeepsChunkOrder(t *testing.T) {
	t.Parallel()

	chunks := [][]schedule.RawGame{
		{rawGame(2023020010, schedule.StateOff, "2023-10-12T23:00:00Z")},
		{rawGame(2023030005, schedule.StateOff, "2024-04-22T23:00:00Z")},
	}

	games, err := NormalizeSchedule(chunks, ScrapeOptions{}, nil)
	if err != nil {
		t.Fatalf("normalize schedule: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("expected two games, got=%d", len(games))
	}
	if games[0].ID != 2023020010 || games[1].ID != 2023030005 {
		t.Fatalf("unexpected order: %d, %d", games[0].ID, games[1].ID)
	}
}

func TestNormalizeSchedule_NotOverOnlyAddsGames(t *testing.T) {
	t.Parallel()

	chunks := [][]schedule.RawGame{{
		rawGame(2023020001, schedule.StateOff, "2023-10-10T23:00:00Z"),
		rawGame(2023020002, "LIVE", "2023-10-10T23:30:00Z"),
		rawGame(2023020003, "FUT", "2023-10-11T23:00:00Z"),
		rawGame(2023010004, schedule.StateOff, "2023-09-25T23:00:00Z"),
	}}

	for _, preseason := range []bool{false, true} {
		strict, err := NormalizeSchedule(chunks, ScrapeOptions{Preseason: preseason}, nil)
		if err != nil {
			t.Fatalf("normalize strict: %v", err)
		}
		relaxed, err := NormalizeSchedule(chunks, ScrapeOptions{Preseason: preseason, NotOver: true}, nil)
		if err != nil {
			t.Fatalf("normalize relaxed: %v", err)
		}

		relaxedIDs := make(map[int64]struct{}, len(relaxed))
		for _, game := range relaxed {
			relaxedIDs[game.ID] = struct{}{}
		}
		for _, game := range strict {
			if _, ok := relaxedIDs[game.ID]; !ok {
				t.Fatalf("preseason=%v: game %d dropped when NotOver enabled", preseason, game.ID)
			}
		}
		if len(relaxed) <= len(strict) {
			t.Fatalf("preseason=%v: expected NotOver to include unfinished games, strict=%d relaxed=%d", preseason, len(strict), len(relaxed))
		}
	}
}

func TestNormalizeSchedule_PreseasonOptIn(t *testing.T) {
	t.Parallel()

	chunks := [][]schedule.RawGame{{rawGame(2023010004, schedule.StateOff, "2023-09-25T23:00:00Z")}}

	games, err := NormalizeSchedule(chunks, ScrapeOptions{}, nil)
	if err != nil {
		t.Fatalf("normalize schedule: %v", err)
	}
	if len(games) != 0 {
		t.Fatalf("expected preseason game to be excluded by default")
	}

	games, err = NormalizeSchedule(chunks, ScrapeOptions{Preseason: true}, nil)
	if err != nil {
		t.Fatalf("normalize schedule: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("expected preseason game with opt-in, got=%d", len(games))
	}
}

func TestNormalizeSchedule_MissingScoreDefaultsToZero(t *testing.T) {
	t.Parallel()

	item := rawGame(2023020003, "FUT", "2023-10-11T23:00:00Z")
	item.HomeScore = nil
	item.AwayScore = nil

	games, err := NormalizeSchedule([][]schedule.RawGame{{item}}, ScrapeOptions{NotOver: true}, nil)
	if err != nil {
		t.Fatalf("normalize schedule: %v", err)
	}
	if len(games) != 1 || games[0].HomeScore != 0 || games[0].AwayScore != 0 {
		t.Fatalf("expected placeholder scores, got=%+v", games)
	}
}

func TestNormalizeSchedule_MalformedGameFailsCall(t *testing.T) {
	t.Parallel()

	missingVenue := rawGame(2023020001, schedule.StateOff, "2023-10-10T23:00:00Z")
	missingVenue.Venue = nil
	missingID := rawGame(2023020001, schedule.StateOff, "2023-10-10T23:00:00Z")
	missingID.ID = nil
	badStart := rawGame(2023020001, schedule.StateOff, "yesterday")
	shortID := rawGame(20230, schedule.StateOff, "2023-10-10T23:00:00Z")

	for name, item := range map[string]schedule.RawGame{
		"missing venue": missingVenue,
		"missing id":    missingID,
		"bad start":     badStart,
		"short id":      shortID,
	} {
		chunks := [][]schedule.RawGame{{rawGame(2023020002, schedule.StateOff, "2023-10-10T23:00:00Z"), item}}
		if _, err := NormalizeSchedule(chunks, ScrapeOptions{}, nil); !errors.Is(err, ErrMalformedPayload) {
			t.Fatalf("%s: expected ErrMalformedPayload, got %v", name, err)
		}
	}
}

func TestNormalizeSchedule_IgnoresMissingFieldsOfFilteredGames(t *testing.T) {
	t.Parallel()

	item := rawGame(2023020002, "LIVE", "2023-10-10T23:00:00Z")
	item.Venue = nil

	games, err := NormalizeSchedule([][]schedule.RawGame{{item}}, ScrapeOptions{}, nil)
	if err != nil {
		t.Fatalf("expected filtered game to be skipped without validation, got %v", err)
	}
	if len(games) != 0 {
		t.Fatalf("expected no games, got=%d", len(games))
	}
}

func allOptions() []ScrapeOptions {
	return []ScrapeOptions{
		{},
		{Preseason: true},
		{NotOver: true},
		{Preseason: true, NotOver: true},
	}
}

func rawGame(id int64, state, start string) schedule.RawGame {
	venue := "Scotiabank Arena"
	home := "TOR"
	away := "L.A"
	homeScore := 4
	awayScore := 2
	return schedule.RawGame{
		ID:           &id,
		GameState:    &state,
		StartTimeUTC: &start,
		Venue:        &venue,
		HomeTeam:     &home,
		AwayTeam:     &away,
		HomeScore:    &homeScore,
		AwayScore:    &awayScore,
	}
}
