package app

import (
	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/nhl-schedule/external/nhle"
	"github.com/riskibarqy/nhl-schedule/internal/config"
	"github.com/riskibarqy/nhl-schedule/internal/domain/team"
	"github.com/riskibarqy/nhl-schedule/internal/platform/logging"
	"github.com/riskibarqy/nhl-schedule/internal/usecase"
)

// NewScheduleService wires the NHL client into the schedule usecase.
func NewScheduleService(cfg config.Config, logger *logging.Logger, clock clockwork.Clock) *usecase.ScheduleService {
	if logger == nil {
		logger = logging.Default()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	client := nhle.NewClient(nhle.ClientConfig{
		BaseURL:        cfg.NHLEBaseURL,
		Timeout:        cfg.NHLETimeout,
		Logger:         logger.Named("nhle"),
		Clock:          clock,
		CircuitBreaker: cfg.NHLECircuitBreaker(),
	})

	return usecase.NewScheduleService(client, team.NewResolver(), usecase.ScheduleServiceConfig{
		WindowDays:    cfg.ScheduleWindowDays,
		StrictWindows: cfg.ScheduleStrictWindows,
		Clock:         clock,
		Logger:        logger.Named("schedule"),
	})
}
