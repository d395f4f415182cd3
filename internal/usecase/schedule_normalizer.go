package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/nhl-schedule/internal/domain/schedule"
)

// TeamResolver maps upstream team abbreviations to the codes used downstream.
type TeamResolver interface {
	Resolve(abbrev string) string
}

// ScrapeOptions relaxes the default inclusion rules.
type ScrapeOptions struct {
	// Preseason keeps games whose sequence number is below the regular season range.
	Preseason bool
	// NotOver keeps games regardless of state instead of settled games only.
	NotOver bool
}

var rawGameValidator = validator.New()

// NormalizeSchedule flattens scanned chunks into games, keeping chunk order
// and the upstream order within each chunk. Any structurally broken game
// fails the whole call.
func NormalizeSchedule(chunks [][]schedule.RawGame, opts ScrapeOptions, teams TeamResolver) ([]schedule.Game, error) {
	if teams == nil {
		teams = passthroughResolver{}
	}

	out := make([]schedule.Game, 0, countGames(chunks))
	for chunkIdx, chunk := range chunks {
		for gameIdx, item := range chunk {
			game, keep, err := normalizeGame(item, opts, teams)
			if err != nil {
				return nil, fmt.Errorf("%w: chunk=%d game=%d: %v", ErrMalformedPayload, chunkIdx, gameIdx, err)
			}
			if keep {
				out = append(out, game)
			}
		}
	}

	return out, nil
}

func normalizeGame(item schedule.RawGame, opts ScrapeOptions, teams TeamResolver) (schedule.Game, bool, error) {
	if err := rawGameValidator.StructPartial(item, "ID", "GameState"); err != nil {
		return schedule.Game{}, false, err
	}

	gameID, err := schedule.ParseGameID(*item.ID)
	if err != nil {
		return schedule.Game{}, false, err
	}
	if !includeGame(*item.GameState, gameID, opts) {
		return schedule.Game{}, false, nil
	}

	if err := rawGameValidator.Struct(item); err != nil {
		return schedule.Game{}, false, fmt.Errorf("game_id=%d: %w", *item.ID, err)
	}

	startRaw := strings.TrimSpace(*item.StartTimeUTC)
	startAt, err := time.Parse(time.RFC3339, startRaw)
	if err != nil {
		return schedule.Game{}, false, fmt.Errorf("game_id=%d: parse startTimeUTC: %w", *item.ID, err)
	}
	date, _, _ := strings.Cut(startRaw, "T")

	return schedule.Game{
		ID:           *item.ID,
		Date:         date,
		StartTimeUTC: startAt.UTC(),
		Venue:        *item.Venue,
		HomeTeam:     teams.Resolve(*item.HomeTeam),
		AwayTeam:     teams.Resolve(*item.AwayTeam),
		HomeScore:    intValue(item.HomeScore),
		AwayScore:    intValue(item.AwayScore),
		Status:       *item.GameState,
	}, true, nil
}

// includeGame applies the state filter, then the game type filter.
func includeGame(state string, id schedule.GameID, opts ScrapeOptions) bool {
	if !opts.NotOver && !schedule.IsOver(state) {
		return false
	}
	if id.IsSpecial() {
		return false
	}
	return opts.Preseason || !id.IsPreseason()
}

func countGames(chunks [][]schedule.RawGame) int {
	total := 0
	for _, chunk := range chunks {
		total += len(chunk)
	}
	return total
}

func intValue(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

type passthroughResolver struct{}

func (passthroughResolver) Resolve(abbrev string) string {
	return strings.TrimSpace(abbrev)
}
