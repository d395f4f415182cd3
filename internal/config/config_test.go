package config

import (
	"testing"
	"time"

	"github.com/riskibarqy/nhl-schedule/internal/platform/logging"
)

var configKeys = []string{
	"APP_ENV",
	"APP_SERVICE_NAME",
	"APP_SERVICE_VERSION",
	"APP_LOG_LEVEL",
	"NHLE_BASE_URL",
	"NHLE_TIMEOUT",
	"NHLE_CIRCUIT_ENABLED",
	"NHLE_CIRCUIT_FAILURE_COUNT",
	"NHLE_CIRCUIT_OPEN_TIMEOUT",
	"NHLE_CIRCUIT_HALF_OPEN_MAX_REQ",
	"SCHEDULE_WINDOW_DAYS",
	"SCHEDULE_STRICT_WINDOWS",
	"UPTRACE_ENABLED",
	"UPTRACE_DSN",
	"OTEL_EXPORTER_OTLP_HEADERS",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AppEnv != EnvDev {
		t.Fatalf("unexpected AppEnv: %q", cfg.AppEnv)
	}
	if cfg.ServiceName != "nhl-schedule" {
		t.Fatalf("unexpected ServiceName: %q", cfg.ServiceName)
	}
	if cfg.NHLEBaseURL != "https://api-web.nhle.com/v1" {
		t.Fatalf("unexpected NHLEBaseURL: %q", cfg.NHLEBaseURL)
	}
	if cfg.NHLETimeout != 20*time.Second {
		t.Fatalf("unexpected NHLETimeout: %s", cfg.NHLETimeout)
	}
	if cfg.ScheduleWindowDays != 7 {
		t.Fatalf("unexpected ScheduleWindowDays: %d", cfg.ScheduleWindowDays)
	}
	if cfg.ScheduleStrictWindows {
		t.Fatalf("expected ScheduleStrictWindows=false")
	}
	if cfg.UptraceEnabled {
		t.Fatalf("expected UptraceEnabled=false")
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected LogLevel: %s", cfg.LogLevel)
	}

	breaker := cfg.NHLECircuitBreaker()
	if !breaker.Enabled || breaker.FailureThreshold != 5 || breaker.OpenTimeout != 15*time.Second || breaker.HalfOpenMaxReq != 2 {
		t.Fatalf("unexpected breaker config: %+v", breaker)
	}
}

func TestLoad_AppEnvValidation(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "invalid")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	clearEnv(t)
	t.Setenv("UPTRACE_ENABLED", "true")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	clearEnv(t)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "foo=bar, uptrace-dsn=\"https://token@api.uptrace.dev?grpc=4317\"")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_WindowDaysBounds(t *testing.T) {
	for _, raw := range []string{"0", "31", "-7"} {
		clearEnv(t)
		t.Setenv("SCHEDULE_WINDOW_DAYS", raw)

		if _, err := Load(); err == nil {
			t.Fatalf("expected error for SCHEDULE_WINDOW_DAYS=%s", raw)
		}
	}

	clearEnv(t)
	t.Setenv("SCHEDULE_WINDOW_DAYS", "30")
	t.Setenv("SCHEDULE_STRICT_WINDOWS", "true")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ScheduleWindowDays != 30 || !cfg.ScheduleStrictWindows {
		t.Fatalf("unexpected schedule config: days=%d strict=%v", cfg.ScheduleWindowDays, cfg.ScheduleStrictWindows)
	}
}

func TestLoad_CircuitBreakerValidation(t *testing.T) {
	clearEnv(t)
	t.Setenv("NHLE_CIRCUIT_FAILURE_COUNT", "0")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for NHLE_CIRCUIT_FAILURE_COUNT=0")
	}

	clearEnv(t)
	t.Setenv("NHLE_CIRCUIT_OPEN_TIMEOUT", "soon")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unparsable NHLE_CIRCUIT_OPEN_TIMEOUT")
	}

	clearEnv(t)
	t.Setenv("NHLE_CIRCUIT_ENABLED", "false")
	t.Setenv("NHLE_CIRCUIT_FAILURE_COUNT", "3")
	t.Setenv("NHLE_CIRCUIT_OPEN_TIMEOUT", "1m")
	t.Setenv("NHLE_CIRCUIT_HALF_OPEN_MAX_REQ", "1")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	breaker := cfg.NHLECircuitBreaker()
	if breaker.Enabled || breaker.FailureThreshold != 3 || breaker.OpenTimeout != time.Minute || breaker.HalfOpenMaxReq != 1 {
		t.Fatalf("unexpected breaker config: %+v", breaker)
	}
}

func TestLoad_NHLEOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("NHLE_BASE_URL", " http://localhost:8080/v1/ ")
	t.Setenv("NHLE_TIMEOUT", "5s")
	t.Setenv("APP_LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.NHLEBaseURL != "http://localhost:8080/v1" {
		t.Fatalf("unexpected NHLEBaseURL: %q", cfg.NHLEBaseURL)
	}
	if cfg.NHLETimeout != 5*time.Second {
		t.Fatalf("unexpected NHLETimeout: %s", cfg.NHLETimeout)
	}
	if cfg.LogLevel != logging.LevelDebug {
		t.Fatalf("unexpected LogLevel: %s", cfg.LogLevel)
	}
}

func TestLoad_RejectsInvalidBaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("NHLE_BASE_URL", "not a url")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid NHLE_BASE_URL")
	}
}
