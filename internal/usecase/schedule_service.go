package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/nhl-schedule/internal/domain/schedule"
	"github.com/riskibarqy/nhl-schedule/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

// WindowOutcome tags what a single window fetch produced.
type WindowOutcome string

const (
	WindowFetched WindowOutcome = "fetched"
	WindowEmpty   WindowOutcome = "empty"
	WindowFailed  WindowOutcome = "failed"
)

type WindowResult struct {
	Window   schedule.Window
	Outcome  WindowOutcome
	Games    int
	Requests int
	Err      error
}

// ScanResult holds the raw games per window, in window order, plus the
// outcome of every window including the ones that produced nothing.
type ScanResult struct {
	Chunks  [][]schedule.RawGame
	Windows []WindowResult
}

// Failed returns the windows whose fetch did not succeed.
func (r ScanResult) Failed() []WindowResult {
	out := make([]WindowResult, 0)
	for _, item := range r.Windows {
		if item.Outcome == WindowFailed {
			out = append(out, item)
		}
	}
	return out
}

type ScrapeResult struct {
	Games   []schedule.Game
	Windows []WindowResult
}

type ScheduleServiceConfig struct {
	// WindowDays is the span of each window; a window may take several requests.
	WindowDays int
	// StrictWindows aborts a scan on the first failed window instead of skipping it.
	StrictWindows bool
	Clock         clockwork.Clock
	Logger        *logging.Logger
}

type ScheduleService struct {
	provider   schedule.Provider
	teams      TeamResolver
	windowDays int
	strict     bool
	clock      clockwork.Clock
	logger     *logging.Logger
}

func NewScheduleService(provider schedule.Provider, teams TeamResolver, cfg ScheduleServiceConfig) *ScheduleService {
	windowDays := cfg.WindowDays
	if windowDays <= 0 {
		windowDays = schedule.DefaultWindowDays
	}
	if windowDays > schedule.MaxWindowDays {
		windowDays = schedule.MaxWindowDays
	}
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	return &ScheduleService{
		provider:   provider,
		teams:      teams,
		windowDays: windowDays,
		strict:     cfg.StrictWindows,
		clock:      clock,
		logger:     logger,
	}
}

// Scrape returns the normalized games between from and to, both inclusive.
func (s *ScheduleService) Scrape(ctx context.Context, from, to time.Time, opts ScrapeOptions) (ScrapeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.Scrape")
	defer span.End()

	scan, err := s.Scan(ctx, from, to)
	if err != nil {
		return ScrapeResult{}, err
	}

	games, err := NormalizeSchedule(scan.Chunks, opts, s.teams)
	if err != nil {
		return ScrapeResult{}, fmt.Errorf("normalize schedule: %w", err)
	}
	span.SetAttributes(attribute.Int("schedule.games", len(games)))

	return ScrapeResult{
		Games:   games,
		Windows: scan.Windows,
	}, nil
}

// Scan fetches [from, to] one window at a time, in order.
func (s *ScheduleService) Scan(ctx context.Context, from, to time.Time) (ScanResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.Scan")
	defer span.End()

	if s.provider == nil {
		return ScanResult{}, fmt.Errorf("%w: schedule provider is not configured", ErrDependencyUnavailable)
	}

	from = schedule.TruncateDay(from)
	to = schedule.TruncateDay(to)
	if from.After(to) {
		return ScanResult{}, fmt.Errorf("%w: date_from=%s is after date_to=%s", ErrInvalidInput, from.Format(schedule.DateLayout), to.Format(schedule.DateLayout))
	}

	windows := schedule.SplitWindows(from, to, s.windowDays)
	span.SetAttributes(
		attribute.String("schedule.from", from.Format(schedule.DateLayout)),
		attribute.String("schedule.to", to.Format(schedule.DateLayout)),
		attribute.Int("schedule.windows", len(windows)),
	)

	result := ScanResult{
		Chunks:  make([][]schedule.RawGame, 0, len(windows)),
		Windows: make([]WindowResult, 0, len(windows)),
	}
	for _, window := range windows {
		if err := ctx.Err(); err != nil {
			return ScanResult{}, err
		}

		games, outcome := s.fetchWindow(ctx, window)
		if ctx.Err() != nil {
			return ScanResult{}, ctx.Err()
		}
		result.Windows = append(result.Windows, outcome)

		switch outcome.Outcome {
		case WindowFailed:
			s.logger.WarnContext(ctx, "schedule window fetch failed, skipping window",
				"window", window.String(),
				"error", outcome.Err,
			)
			if s.strict {
				return ScanResult{}, fmt.Errorf("fetch schedule window %s: %w", window, outcome.Err)
			}
		case WindowFetched:
			result.Chunks = append(result.Chunks, games)
		}
		s.logger.DebugContext(ctx, "schedule window scanned",
			"window", window.String(),
			"outcome", string(outcome.Outcome),
			"games", outcome.Games,
			"requests", outcome.Requests,
		)
	}

	return result, nil
}

// fetchWindow keeps requesting from the provider's NextStart until the window
// is covered. NextStart only moves forward, so a window takes at most
// window.Days() requests.
func (s *ScheduleService) fetchWindow(ctx context.Context, window schedule.Window) ([]schedule.RawGame, WindowResult) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.fetchWindow")
	defer span.End()

	result := WindowResult{Window: window}
	games := make([]schedule.RawGame, 0)
	cursor := window.From
	for {
		payload, err := s.provider.FetchSchedule(ctx, cursor, window.To)
		result.Requests++
		if err != nil {
			return nil, failWindow(result, err)
		}

		for _, day := range payload.Days {
			if day.Date != "" {
				date, err := schedule.ParseDate(day.Date)
				if err != nil {
					return nil, failWindow(result, fmt.Errorf("%w: %v", ErrMalformedPayload, err))
				}
				// Pages may run past the window; keep only this window's days.
				if !window.Contains(date) {
					continue
				}
			}
			games = append(games, day.Games...)
		}

		next := payload.NextStart
		if next.IsZero() {
			break
		}
		next = schedule.TruncateDay(next)
		if !next.After(cursor) || next.After(window.To) {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, failWindow(result, err)
		}
		cursor = next
	}
	span.SetAttributes(attribute.Int("schedule.window.requests", result.Requests))

	result.Games = len(games)
	if len(games) == 0 {
		result.Outcome = WindowEmpty
		return nil, result
	}
	result.Outcome = WindowFetched
	return games, result
}

func failWindow(result WindowResult, err error) WindowResult {
	result.Outcome = WindowFailed
	result.Err = err
	return result
}
