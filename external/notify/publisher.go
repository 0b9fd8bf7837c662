// Package notify pushes submitted-result announcements to the community
// webhook so the team boards light up right after a match is entered.
package notify

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/chaeyoungson/goalgirls/internal/platform/logging"
	"github.com/chaeyoungson/goalgirls/internal/platform/resilience"
)

var errNotifyTransient = crerr.New("notify webhook transient failure")

type PublisherConfig struct {
	WebhookURL     string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Publisher implements usecase.ResultAnnouncer over a plain webhook POST.
// Failures are reported to the caller, which treats announcements as best
// effort.
type Publisher struct {
	client         *http.Client
	webhookURL     string
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	now            func() time.Time
}

func NewPublisher(cfg PublisherConfig, logger *logging.Logger) *Publisher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Publisher{
		client:         &http.Client{Timeout: timeout},
		webhookURL:     strings.TrimSpace(cfg.WebhookURL),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
		now:            time.Now,
	}
}

type resultAnnouncement struct {
	Event       string `json:"event"`
	MatchID     string `json:"match_id"`
	SubmittedAt string `json:"submitted_at"`
}

func (p *Publisher) AnnounceResult(ctx context.Context, matchID string) error {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return crerr.New("match id is required")
	}

	webhookURL, err := validateHTTPURL(p.webhookURL)
	if err != nil {
		return crerr.Wrap(err, "invalid NOTIFY_WEBHOOK_URL")
	}

	if p.circuitEnabled {
		if err := p.breaker.Allow(); err != nil {
			p.logger.WarnContext(ctx, "notify circuit breaker rejected request", "state", p.breaker.State())
			return fmt.Errorf("notify webhook is temporarily unavailable: %w", err)
		}
	}

	body, err := sonic.Marshal(resultAnnouncement{
		Event:       "match.result_submitted",
		MatchID:     matchID,
		SubmittedAt: p.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return crerr.Wrap(err, "marshal announcement payload")
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	_, _ = buf.Write(body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, strings.NewReader(buf.String()))
	if err != nil {
		return crerr.Wrap(err, "create webhook request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		callErr := fmt.Errorf("%w: post announcement match_id=%s: %v", errNotifyTransient, matchID, err)
		p.recordCircuitResult(callErr)
		return callErr
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode/100 != 2 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		callErr := fmt.Errorf(
			"%w: post announcement match_id=%s status=%d body=%s",
			errNotifyTransient, matchID, resp.StatusCode, strings.TrimSpace(string(raw)),
		)
		if !isRetryableStatus(resp.StatusCode) {
			callErr = crerr.Newf(
				"post announcement match_id=%s status=%d body=%s",
				matchID, resp.StatusCode, strings.TrimSpace(string(raw)),
			)
		}
		p.recordCircuitResult(callErr)
		return callErr
	}

	p.logger.InfoContext(ctx, "result announcement published", "match_id", matchID)
	p.recordCircuitResult(nil)
	return nil
}

func validateHTTPURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}

	return candidate, nil
}

func (p *Publisher) recordCircuitResult(err error) {
	if !p.circuitEnabled || p.breaker == nil {
		return
	}
	if err == nil {
		p.breaker.RecordSuccess()
		return
	}
	if stderrors.Is(err, errNotifyTransient) {
		p.breaker.RecordFailure()
		return
	}
	p.breaker.RecordSuccess()
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}
