package planner_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"courier-dispatch/internal/apperr"
	"courier-dispatch/internal/domain"
	"courier-dispatch/internal/logx"
)

func TestValidateAddress_Routable(t *testing.T) {
	t.Parallel()

	check, err := newPlanner(&stubLister{}, &straightLineProvider{}, logx.Nop(), nil).
		ValidateAddress(context.Background(), dest)

	require.NoError(t, err)
	require.True(t, check.Routable)
	require.True(t, check.WithinServiceArea)
	require.False(t, check.RequiresManualReview)
	require.InDelta(t, 2.44, check.DistanceKm, 0.02)
	require.Equal(t, 5, check.DurationMinutes)
}

func TestValidateAddress_OutsideServiceArea(t *testing.T) {
	t.Parallel()

	mombasa := domain.Coordinates{Lat: -4.0435, Lng: 39.6682}
	check, err := newPlanner(&stubLister{}, &straightLineProvider{}, logx.Nop(), nil).
		ValidateAddress(context.Background(), mombasa)

	require.NoError(t, err)
	require.True(t, check.Routable)
	require.False(t, check.WithinServiceArea)
}

func TestValidateAddress_ProviderDownNeedsReview(t *testing.T) {
	t.Parallel()

	provider := &straightLineProvider{fail: func(domain.Coordinates) error { return apperr.ErrProviderUnavailable }}
	check, err := newPlanner(&stubLister{}, provider, logx.Nop(), nil).
		ValidateAddress(context.Background(), dest)

	require.NoError(t, err)
	require.False(t, check.Routable)
	require.True(t, check.RequiresManualReview)
	require.True(t, check.WithinServiceArea)
}

func TestValidateAddress_RejectedRoute(t *testing.T) {
	t.Parallel()

	provider := &straightLineProvider{fail: func(domain.Coordinates) error { return errors.New("no route over water") }}
	check, err := newPlanner(&stubLister{}, provider, logx.Nop(), nil).
		ValidateAddress(context.Background(), dest)

	require.NoError(t, err)
	require.False(t, check.Routable)
	require.True(t, check.RequiresManualReview)
	require.Contains(t, check.Reason, "no route over water")
}

func TestValidateAddress_Invalid(t *testing.T) {
	t.Parallel()

	_, err := newPlanner(&stubLister{}, &straightLineProvider{}, logx.Nop(), nil).
		ValidateAddress(context.Background(), domain.Coordinates{Lng: 200})
	require.ErrorIs(t, err, apperr.ErrInvalid)
}
