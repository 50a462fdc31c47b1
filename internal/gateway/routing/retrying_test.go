package routing

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"courier-dispatch/internal/apperr"
	"courier-dispatch/internal/domain"
	"courier-dispatch/internal/logx"
	testlog "courier-dispatch/internal/testutil"
)

type providerFunc func(ctx context.Context, origin, dest domain.Coordinates, prefs domain.RoutePreferences) (domain.RouteEstimate, error)

func (f providerFunc) ComputeRoute(ctx context.Context, origin, dest domain.Coordinates, prefs domain.RoutePreferences) (domain.RouteEstimate, error) {
	return f(ctx, origin, dest, prefs)
}

type counterStub struct{ n int64 }

func (c *counterStub) Inc() { atomic.AddInt64(&c.n, 1) }
func (c *counterStub) Count() int64 {
	return atomic.LoadInt64(&c.n)
}

func unavailable(code int) error {
	return fmt.Errorf("%w: %w", apperr.ErrProviderUnavailable, &httpStatusError{Code: code})
}

func TestRetryingProvider_RetriesThenSucceeds(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	var calls int32
	next := providerFunc(func(context.Context, domain.Coordinates, domain.Coordinates, domain.RoutePreferences) (domain.RouteEstimate, error) {
		if atomic.AddInt32(&calls, 1) < 3 {
			return domain.RouteEstimate{}, unavailable(503)
		}
		return domain.RouteEstimate{DurationSeconds: 60, Live: true}, nil
	})
	ctr := &counterStub{}

	p := NewRetryingProvider(next, rec.Logger(), ctr, RetryConfig{MaxAttempts: 5})
	got, err := p.ComputeRoute(context.Background(), nairobi, westIn, domain.DefaultRoutePreferences())

	require.NoError(t, err)
	require.Equal(t, 60, got.DurationSeconds)
	require.EqualValues(t, 3, atomic.LoadInt32(&calls))
	require.EqualValues(t, 2, ctr.Count())
	require.Len(t, rec.ByEvent("provider_retry"), 2)
}

func TestRetryingProvider_NoRetryOnRejectedRequest(t *testing.T) {
	t.Parallel()

	var calls int32
	next := providerFunc(func(context.Context, domain.Coordinates, domain.Coordinates, domain.RoutePreferences) (domain.RouteEstimate, error) {
		atomic.AddInt32(&calls, 1)
		return domain.RouteEstimate{}, &httpStatusError{Code: 400}
	})

	p := NewRetryingProvider(next, logx.Nop(), nil, RetryConfig{MaxAttempts: 3})
	_, err := p.ComputeRoute(context.Background(), nairobi, westIn, domain.DefaultRoutePreferences())

	var he *httpStatusError
	require.ErrorAs(t, err, &he)
	require.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestRetryingProvider_NoRetryOnForbidden(t *testing.T) {
	t.Parallel()

	var calls int32
	next := providerFunc(func(context.Context, domain.Coordinates, domain.Coordinates, domain.RoutePreferences) (domain.RouteEstimate, error) {
		atomic.AddInt32(&calls, 1)
		return domain.RouteEstimate{}, unavailable(403)
	})

	p := NewRetryingProvider(next, logx.Nop(), nil, RetryConfig{MaxAttempts: 3})
	_, err := p.ComputeRoute(context.Background(), nairobi, westIn, domain.DefaultRoutePreferences())

	require.ErrorIs(t, err, apperr.ErrProviderUnavailable)
	require.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestRetryingProvider_StopsWhenContextDone(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	var calls int32
	next := providerFunc(func(context.Context, domain.Coordinates, domain.Coordinates, domain.RoutePreferences) (domain.RouteEstimate, error) {
		atomic.AddInt32(&calls, 1)
		cancel()
		return domain.RouteEstimate{}, unavailable(502)
	})

	p := NewRetryingProvider(next, logx.Nop(), nil, RetryConfig{MaxAttempts: 5, BaseDelay: time.Hour, MaxDelay: time.Hour})
	_, err := p.ComputeRoute(ctx, nairobi, westIn, domain.DefaultRoutePreferences())

	require.Error(t, err)
	require.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestNewRetryingProvider_NilNext(t *testing.T) {
	t.Parallel()
	require.Nil(t, NewRetryingProvider(nil, logx.Nop(), nil, RetryConfig{}))
}

func TestBackoff(t *testing.T) {
	t.Parallel()

	base, max := 100*time.Millisecond, 300*time.Millisecond
	require.Equal(t, 100*time.Millisecond, backoff(base, max, 1))
	require.Equal(t, 200*time.Millisecond, backoff(base, max, 2))
	require.Equal(t, max, backoff(base, max, 3))
}

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	require.True(t, isRetryable(unavailable(429)))
	require.True(t, isRetryable(unavailable(500)))
	require.False(t, isRetryable(unavailable(401)))
	require.False(t, isRetryable(context.DeadlineExceeded))
	require.False(t, isRetryable(errors.New("decode")))
}
