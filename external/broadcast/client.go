// Package broadcast talks to the TV network's public schedule API to pull
// the air dates of each league episode.
package broadcast

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/chaeyoungson/goalgirls/internal/platform/logging"
	"github.com/chaeyoungson/goalgirls/internal/platform/resilience"
	"github.com/chaeyoungson/goalgirls/internal/usecase"
)

var errBroadcastTransient = crerr.New("broadcast schedule transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client implements usecase.EpisodeLister against the network's schedule
// feed. Responses are not cached here; the feed is cheap and the site's
// read cache sits above the usecase layer.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 5 * time.Second
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type scheduleEnvelope struct {
	Episodes []scheduleEpisode `json:"episodes"`
}

type scheduleEpisode struct {
	Season     int    `json:"season"`
	Episode    int    `json:"episode"`
	Title      string `json:"title"`
	AirsAt     string `json:"airs_at"`
	ChannelTag string `json:"channel_tag"`
}

func (c *Client) ListEpisodes(ctx context.Context, season int) ([]usecase.ExternalEpisode, error) {
	if season <= 0 {
		return nil, crerr.New("season must be greater than zero")
	}
	if c.baseURL == "" {
		return nil, crerr.New("broadcast base url is not configured")
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "broadcast circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("broadcast schedule is temporarily unavailable: %w", err)
		}
	}

	// Concurrent page loads for the same season collapse into one fetch.
	key := "episodes:" + strconv.Itoa(season)
	value, err, _ := c.flight.Do(key, func() (any, error) {
		return c.fetchEpisodes(ctx, season)
	})
	c.recordCircuitResult(err)
	if err != nil {
		return nil, err
	}

	episodes, ok := value.([]usecase.ExternalEpisode)
	if !ok {
		return nil, crerr.Newf("unexpected schedule payload type %T", value)
	}
	return episodes, nil
}

func (c *Client) fetchEpisodes(ctx context.Context, season int) ([]usecase.ExternalEpisode, error) {
	requestURL := fmt.Sprintf("%s/v1/seasons/%d/episodes", c.baseURL, season)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "create schedule request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch schedule season=%d: %v", errBroadcastTransient, season, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode/100 != 2 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if isRetryableStatus(resp.StatusCode) {
			return nil, fmt.Errorf(
				"%w: fetch schedule season=%d status=%d body=%s",
				errBroadcastTransient, season, resp.StatusCode, strings.TrimSpace(string(raw)),
			)
		}
		return nil, crerr.Newf("fetch schedule season=%d status=%d body=%s", season, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var envelope scheduleEnvelope
	if err := sonic.ConfigDefault.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, crerr.Wrapf(err, "decode schedule season=%d", season)
	}

	out := make([]usecase.ExternalEpisode, 0, len(envelope.Episodes))
	for _, item := range envelope.Episodes {
		if item.Episode <= 0 {
			continue
		}
		airsAt, err := time.Parse(time.RFC3339, strings.TrimSpace(item.AirsAt))
		if err != nil {
			c.logger.WarnContext(ctx, "skip episode with bad air time",
				"season", item.Season,
				"episode", item.Episode,
				"airs_at", item.AirsAt,
			)
			continue
		}
		out = append(out, usecase.ExternalEpisode{
			Season:     item.Season,
			Episode:    item.Episode,
			Title:      strings.TrimSpace(item.Title),
			AirsAt:     airsAt,
			ChannelTag: strings.TrimSpace(item.ChannelTag),
		})
	}
	return out, nil
}

func (c *Client) recordCircuitResult(err error) {
	if !c.circuitEnabled || c.breaker == nil {
		return
	}
	if err == nil {
		c.breaker.RecordSuccess()
		return
	}
	if stderrors.Is(err, errBroadcastTransient) {
		c.breaker.RecordFailure()
		return
	}
	c.breaker.RecordSuccess()
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}
