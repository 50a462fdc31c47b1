package repository

import (
	"context"
	"fmt"
	"time"

	"courier-dispatch/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RouteCacheRepo stores live route estimates until they expire.
type RouteCacheRepo struct{ db *pgxpool.Pool }

// NewRouteCacheRepo creates a new RouteCacheRepo.
func NewRouteCacheRepo(db *pgxpool.Pool) *RouteCacheRepo { return &RouteCacheRepo{db: db} }

// Get returns a cached estimate that has not expired at now, or nil.
func (r *RouteCacheRepo) Get(ctx context.Context, key string, now time.Time) (*domain.RouteEstimate, error) {
	var est domain.RouteEstimate
	err := r.db.QueryRow(ctx, `
        SELECT distance_meters, duration_seconds, polyline
        FROM route_cache
        WHERE key = $1 AND expires_at > $2
    `, key, now).Scan(&est.DistanceMeters, &est.DurationSeconds, &est.Polyline)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cached route %q: %w", key, err)
	}
	est.Live = true
	return &est, nil
}

// Put stores or replaces an estimate.
func (r *RouteCacheRepo) Put(ctx context.Context, key string, est domain.RouteEstimate, expiresAt time.Time) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO route_cache (key, distance_meters, duration_seconds, polyline, expires_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (key) DO UPDATE
        SET distance_meters = EXCLUDED.distance_meters,
            duration_seconds = EXCLUDED.duration_seconds,
            polyline = EXCLUDED.polyline,
            expires_at = EXCLUDED.expires_at
    `, key, est.DistanceMeters, est.DurationSeconds, est.Polyline, expiresAt)
	if err != nil {
		return fmt.Errorf("put cached route %q: %w", key, err)
	}
	return nil
}

// Purge deletes entries expired at now.
func (r *RouteCacheRepo) Purge(ctx context.Context, now time.Time) (int64, error) {
	ct, err := r.db.Exec(ctx, `DELETE FROM route_cache WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("purge route cache: %w", err)
	}
	return ct.RowsAffected(), nil
}
