package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/riskibarqy/nhl-schedule/internal/domain/schedule"
	"github.com/riskibarqy/nhl-schedule/internal/domain/season"
	"go.opentelemetry.io/otel/attribute"
)

// ResolveGames looks up the schedule entries of the given game ids. It scans
// from the start of the earliest id's season up to the end of the latest
// one's, or up to today when the latest season is still running.
func (s *ScheduleService) ResolveGames(ctx context.Context, gameIDs []int64) (ScrapeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.ResolveGames")
	defer span.End()

	if len(gameIDs) == 0 {
		return ScrapeResult{}, fmt.Errorf("%w: at least one game id is required", ErrInvalidInput)
	}

	wanted := make(map[int64]struct{}, len(gameIDs))
	keys := make([]string, 0, len(gameIDs))
	for _, id := range gameIDs {
		if _, err := schedule.ParseGameID(id); err != nil {
			return ScrapeResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if _, seen := wanted[id]; seen {
			continue
		}
		wanted[id] = struct{}{}
		keys = append(keys, strconv.FormatInt(id, 10))
	}
	// Ids are fixed width, so lexical order matches numeric order.
	sort.Strings(keys)

	yearFrom, err := season.ParseYear(keys[0][:4])
	if err != nil {
		return ScrapeResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	yearTo, err := season.ParseYear(keys[len(keys)-1][:4])
	if err != nil {
		return ScrapeResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	today := schedule.TruncateDay(s.clock.Now().UTC())
	from := season.StartBound(yearFrom)
	to := season.EndBound(yearTo + 1)
	if yearTo == season.Of(today) {
		to = today
	}

	span.SetAttributes(
		attribute.Int("schedule.requested_games", len(wanted)),
		attribute.Int("schedule.season_from", yearFrom),
		attribute.Int("schedule.season_to", yearTo),
	)
	s.logger.InfoContext(ctx, "resolving game dates",
		"games", len(wanted),
		"date_from", from.Format(schedule.DateLayout),
		"date_to", to.Format(schedule.DateLayout),
	)

	scraped, err := s.Scrape(ctx, from, to, ScrapeOptions{Preseason: true, NotOver: true})
	if err != nil {
		return ScrapeResult{}, fmt.Errorf("scrape schedule for game ids: %w", err)
	}

	games := make([]schedule.Game, 0, len(wanted))
	for _, game := range scraped.Games {
		if _, ok := wanted[game.ID]; ok {
			games = append(games, game)
		}
	}

	return ScrapeResult{
		Games:   games,
		Windows: scraped.Windows,
	}, nil
}
