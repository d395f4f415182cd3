package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/nhl-schedule/internal/domain/schedule"
	"github.com/riskibarqy/nhl-schedule/internal/platform/logging"
	"github.com/riskibarqy/nhl-schedule/internal/platform/resilience"
)

// Config stores runtime configuration for the schedule scraper.
type Config struct {
	AppEnv                    string        `validate:"oneof=dev stage prod"`
	ServiceName               string        `validate:"required"`
	ServiceVersion            string        `validate:"required"`
	NHLEBaseURL               string        `validate:"required,url"`
	NHLETimeout               time.Duration `validate:"gt=0"`
	NHLECircuitEnabled        bool
	NHLECircuitFailureCount   int           `validate:"min=1"`
	NHLECircuitOpenTimeout    time.Duration `validate:"gt=0"`
	NHLECircuitHalfOpenMaxReq int           `validate:"min=1"`
	ScheduleWindowDays        int           `validate:"min=1,max=30"`
	ScheduleStrictWindows     bool
	UptraceEnabled            bool
	UptraceDSN                string `validate:"required_if=UptraceEnabled true"`
	LogLevel                  logging.Level
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

var configValidator = validator.New()

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	nhleTimeout, err := time.ParseDuration(getEnv("NHLE_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NHLE_TIMEOUT: %w", err)
	}

	nhleCircuitEnabled, err := strconv.ParseBool(getEnv("NHLE_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NHLE_CIRCUIT_ENABLED: %w", err)
	}

	nhleCircuitFailureCount, err := getEnvAsInt("NHLE_CIRCUIT_FAILURE_COUNT", resilience.DefaultFailureThreshold)
	if err != nil {
		return Config{}, fmt.Errorf("parse NHLE_CIRCUIT_FAILURE_COUNT: %w", err)
	}

	nhleCircuitOpenTimeout, err := time.ParseDuration(getEnv("NHLE_CIRCUIT_OPEN_TIMEOUT", resilience.DefaultOpenTimeout.String()))
	if err != nil {
		return Config{}, fmt.Errorf("parse NHLE_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}

	nhleCircuitHalfOpenMaxReq, err := getEnvAsInt("NHLE_CIRCUIT_HALF_OPEN_MAX_REQ", resilience.DefaultHalfOpenMaxReq)
	if err != nil {
		return Config{}, fmt.Errorf("parse NHLE_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}

	windowDays, err := getEnvAsInt("SCHEDULE_WINDOW_DAYS", schedule.DefaultWindowDays)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCHEDULE_WINDOW_DAYS: %w", err)
	}

	strictWindows, err := strconv.ParseBool(getEnv("SCHEDULE_STRICT_WINDOWS", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SCHEDULE_STRICT_WINDOWS: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}

	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}

	cfg := Config{
		AppEnv:                    appEnv,
		ServiceName:               strings.TrimSpace(getEnv("APP_SERVICE_NAME", "nhl-schedule")),
		ServiceVersion:            strings.TrimSpace(getEnv("APP_SERVICE_VERSION", "dev")),
		NHLEBaseURL:               strings.TrimRight(strings.TrimSpace(getEnv("NHLE_BASE_URL", "https://api-web.nhle.com/v1")), "/"),
		NHLETimeout:               nhleTimeout,
		NHLECircuitEnabled:        nhleCircuitEnabled,
		NHLECircuitFailureCount:   nhleCircuitFailureCount,
		NHLECircuitOpenTimeout:    nhleCircuitOpenTimeout,
		NHLECircuitHalfOpenMaxReq: nhleCircuitHalfOpenMaxReq,
		ScheduleWindowDays:        windowDays,
		ScheduleStrictWindows:     strictWindows,
		UptraceEnabled:            uptraceEnabled,
		UptraceDSN:                uptraceDSN,
		LogLevel:                  logging.ParseLevel(strings.ToLower(strings.TrimSpace(getEnv("APP_LOG_LEVEL", "info")))),
	}
	if err := configValidator.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// NHLECircuitBreaker returns the breaker settings of the schedule client.
func (c Config) NHLECircuitBreaker() resilience.CircuitBreakerConfig {
	return resilience.CircuitBreakerConfig{
		Enabled:          c.NHLECircuitEnabled,
		FailureThreshold: c.NHLECircuitFailureCount,
		OpenTimeout:      c.NHLECircuitOpenTimeout,
		HalfOpenMaxReq:   c.NHLECircuitHalfOpenMaxReq,
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		key, value, ok := strings.Cut(strings.TrimSpace(item), "=")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(key), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(value), "\"'")
		}
	}

	return ""
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
