package routing

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"courier-dispatch/internal/domain"
	"courier-dispatch/internal/logx"
)

type routeProvider interface {
	ComputeRoute(ctx context.Context, origin, dest domain.Coordinates, prefs domain.RoutePreferences) (domain.RouteEstimate, error)
}

type counter interface {
	Inc()
}

// RetryConfig describes RetryingProvider behaviour.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingProvider retries transient provider failures with exponential backoff.
type RetryingProvider struct {
	next    routeProvider
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
}

// NewRetryingProvider returns nil when next is nil.
func NewRetryingProvider(next routeProvider, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingProvider {
	if next == nil {
		return nil
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryingProvider{next: next, logger: logger, retries: retries, cfg: cfg}
}

// ComputeRoute delegates to the wrapped provider, retrying 429, 5xx and network errors.
func (p *RetryingProvider) ComputeRoute(ctx context.Context, origin, dest domain.Coordinates, prefs domain.RoutePreferences) (domain.RouteEstimate, error) {
	var lastErr error
	for attempt := 1; attempt <= p.cfg.MaxAttempts; attempt++ {
		est, err := p.next.ComputeRoute(ctx, origin, dest, prefs)
		if err == nil {
			return est, nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == p.cfg.MaxAttempts || !isRetryable(err) {
			break
		}

		delay := backoff(p.cfg.BaseDelay, p.cfg.MaxDelay, attempt)
		if p.retries != nil {
			p.retries.Inc()
		}
		p.logger.Warn("route provider retry",
			logx.Event("provider_retry"),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Err(err),
		)
		if !sleepWithContext(ctx, delay) {
			break
		}
	}
	return domain.RouteEstimate{}, lastErr
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var he *httpStatusError
	if errors.As(err, &he) {
		return he.Code == http.StatusTooManyRequests || he.Code >= 500
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
