package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/nhl-schedule/internal/app"
	"github.com/riskibarqy/nhl-schedule/internal/config"
	"github.com/riskibarqy/nhl-schedule/internal/domain/schedule"
	"github.com/riskibarqy/nhl-schedule/internal/observability"
	"github.com/riskibarqy/nhl-schedule/internal/platform/logging"
	"github.com/riskibarqy/nhl-schedule/internal/usecase"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

type request struct {
	from    time.Time
	to      time.Time
	gameIDs []int64
	opts    usecase.ScrapeOptions
}

type output struct {
	Games   []schedule.Game `json:"games"`
	Windows []windowSummary `json:"windows"`
}

type windowSummary struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Outcome  string `json:"outcome"`
	Games    int    `json:"games"`
	Requests int    `json:"requests"`
	Error    string `json:"error,omitempty"`
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
		os.Exit(1)
	}

	req, err := parseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewJSON(cfg.LogLevel).With("service", cfg.ServiceName, "env", cfg.AppEnv)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg, logger, req, os.Stdout)
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if shutdownErr := shutdownTracing(shutdownCtx); shutdownErr != nil {
		logger.Warn("shutdown uptrace", "error", shutdownErr)
	}

	if err != nil {
		logger.Error("schedule scrape failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *logging.Logger, req request, stdout io.Writer) error {
	ctx, span := otel.Tracer("nhl-schedule/cmd/schedule").Start(ctx, "schedule.run")
	defer span.End()

	svc := app.NewScheduleService(cfg, logger, clockwork.NewRealClock())

	var (
		result usecase.ScrapeResult
		err    error
	)
	if len(req.gameIDs) > 0 {
		result, err = svc.ResolveGames(ctx, req.gameIDs)
	} else {
		result, err = svc.Scrape(ctx, req.from, req.to, req.opts)
	}
	if err != nil {
		span.RecordError(err)
		return err
	}

	out := buildOutput(result)
	failed := 0
	for _, item := range out.Windows {
		if item.Outcome == string(usecase.WindowFailed) {
			failed++
		}
	}
	span.SetAttributes(
		attribute.Int("schedule.games", len(out.Games)),
		attribute.Int("schedule.failed_windows", failed),
	)
	logger.InfoContext(ctx, "schedule scrape finished",
		"games", len(out.Games),
		"windows", len(out.Windows),
		"failed_windows", failed,
	)

	raw, err := sonic.Marshal(out)
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	raw = append(raw, '\n')
	if _, err := stdout.Write(raw); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func parseArgs(args []string, stderr io.Writer) (request, error) {
	fs := flag.NewFlagSet("schedule", flag.ContinueOnError)
	fs.SetOutput(stderr)
	from := fs.String("from", "", "first date to scrape, YYYY-MM-DD")
	to := fs.String("to", "", "last date to scrape, YYYY-MM-DD (inclusive)")
	games := fs.String("games", "", "comma separated game ids to look up")
	preseason := fs.Bool("preseason", false, "include preseason games")
	notOver := fs.Bool("not-over", false, "include games that are not finished")
	if err := fs.Parse(args); err != nil {
		return request{}, err
	}

	if strings.TrimSpace(*games) != "" {
		if *from != "" || *to != "" {
			return request{}, fmt.Errorf("-games cannot be combined with -from/-to")
		}
		ids, err := parseGameIDs(*games)
		if err != nil {
			return request{}, err
		}
		return request{gameIDs: ids}, nil
	}

	if *from == "" || *to == "" {
		return request{}, fmt.Errorf("either -games or both -from and -to are required")
	}
	fromDate, err := schedule.ParseDate(strings.TrimSpace(*from))
	if err != nil {
		return request{}, fmt.Errorf("invalid -from: %w", err)
	}
	toDate, err := schedule.ParseDate(strings.TrimSpace(*to))
	if err != nil {
		return request{}, fmt.Errorf("invalid -to: %w", err)
	}
	if fromDate.After(toDate) {
		return request{}, fmt.Errorf("-from %s is after -to %s", *from, *to)
	}

	return request{
		from: fromDate,
		to:   toDate,
		opts: usecase.ScrapeOptions{Preseason: *preseason, NotOver: *notOver},
	}, nil
}

func parseGameIDs(raw string) ([]int64, error) {
	parts := strings.Split(raw, ",")
	out := make([]int64, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		id, err := strconv.ParseInt(item, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid game id %q: %w", item, err)
		}
		out = append(out, id)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("-games needs at least one id")
	}
	return out, nil
}

func buildOutput(result usecase.ScrapeResult) output {
	out := output{
		Games:   result.Games,
		Windows: make([]windowSummary, 0, len(result.Windows)),
	}
	if out.Games == nil {
		out.Games = []schedule.Game{}
	}
	for _, item := range result.Windows {
		summary := windowSummary{
			From:    item.Window.From.Format(schedule.DateLayout),
			To:      item.Window.To.Format(schedule.DateLayout),
			Outcome:  string(item.Outcome),
			Games:    item.Games,
			Requests: item.Requests,
		}
		if item.Err != nil {
			summary.Error = item.Err.Error()
		}
		out.Windows = append(out.Windows, summary)
	}
	return out
}
