package nhle

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/nhl-schedule/internal/domain/schedule"
	"github.com/riskibarqy/nhl-schedule/internal/platform/logging"
	"github.com/riskibarqy/nhl-schedule/internal/platform/resilience"
	"github.com/riskibarqy/nhl-schedule/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultBaseURL = "https://api-web.nhle.com/v1"
	defaultTimeout = 20 * time.Second
	maxBodyBytes   = 6 << 20
)

var errNHLETransient = crerr.New("nhle transient failure")

// The body buffer goes back to the pool after decoding, so decoded strings
// must not alias it.
var payloadDecoder = sonic.ConfigStd

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	Logger         *logging.Logger
	Clock          clockwork.Clock
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads the public NHL schedule feed. Every call goes to the network.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

var _ schedule.Provider = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := cfg.CircuitBreaker.WithDefaults()

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg, cfg.Clock),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// FetchSchedule requests the schedule starting at from. The upstream answers
// one week per request whatever to is; the returned NextStart tells the caller
// where the following week begins.
func (c *Client) FetchSchedule(ctx context.Context, from, to time.Time) (schedule.RawSchedule, error) {
	if from.After(to) {
		return schedule.RawSchedule{}, fmt.Errorf("%w: date_from=%s is after date_to=%s", usecase.ErrInvalidInput, from.Format(schedule.DateLayout), to.Format(schedule.DateLayout))
	}

	path := "/schedule/" + from.Format(schedule.DateLayout)
	var envelope scheduleEnvelope
	if err := c.doJSON(ctx, path, &envelope); err != nil {
		return schedule.RawSchedule{}, fmt.Errorf("fetch schedule date_from=%s date_to=%s: %w", from.Format(schedule.DateLayout), to.Format(schedule.DateLayout), err)
	}
	if envelope.GameWeek == nil {
		return schedule.RawSchedule{}, fmt.Errorf("%w: schedule payload has no gameWeek", usecase.ErrMalformedPayload)
	}

	out, err := envelope.toRaw()
	if err != nil {
		return schedule.RawSchedule{}, fmt.Errorf("%w: %v", usecase.ErrMalformedPayload, err)
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "nhle circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: schedule provider is temporarily unavailable: %w", usecase.ErrDependencyUnavailable, err)
		}
	}

	fullURL := c.baseURL + path
	err := c.executeRequest(ctx, fullURL, target)
	if c.circuitEnabled {
		c.breaker.Record(err, isNHLECircuitFailure)
	}
	if err != nil {
		c.logger.WarnContext(ctx, "nhle request failed", "url", fullURL, "error", err)
		return err
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("cache-control", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return crerr.Mark(fmt.Errorf("%w: send request: %v", usecase.ErrDependencyUnavailable, err), errNHLETransient)
	}
	defer resp.Body.Close()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, maxBodyBytes)); err != nil {
		return crerr.Mark(fmt.Errorf("%w: read response body: %v", usecase.ErrDependencyUnavailable, err), errNHLETransient)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := fmt.Errorf("%w: provider status=%d body=%s", usecase.ErrDependencyUnavailable, resp.StatusCode, abbreviateBody(buf.B))
		if isRetryableStatus(resp.StatusCode) {
			return crerr.Mark(statusErr, errNHLETransient)
		}
		return statusErr
	}

	if err := payloadDecoder.Unmarshal(buf.B, target); err != nil {
		return fmt.Errorf("%w: decode provider payload: %v", usecase.ErrMalformedPayload, err)
	}
	return nil
}

func isNHLECircuitFailure(err error) bool {
	return crerr.Is(err, errNHLETransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
