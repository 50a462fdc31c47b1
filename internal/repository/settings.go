package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"courier-dispatch/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Setting keys.
const (
	SettingManualMode = "delivery_manual_mode"
	SettingDepotLat   = "business_latitude"
	SettingDepotLng   = "business_longitude"
)

// SettingsRepo reads key/value business settings.
type SettingsRepo struct{ db *pgxpool.Pool }

// NewSettingsRepo creates a new SettingsRepo.
func NewSettingsRepo(db *pgxpool.Pool) *SettingsRepo { return &SettingsRepo{db: db} }

func (r *SettingsRepo) get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := r.db.QueryRow(ctx, `SELECT value FROM settings WHERE key = $1`, key).Scan(&v)
	if err != nil {
		if IsNotFound(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get setting %q: %w", key, err)
	}
	return strings.TrimSpace(v), true, nil
}

// ManualMode reports whether live routing is switched off. Missing means off.
func (r *SettingsRepo) ManualMode(ctx context.Context) (bool, error) {
	v, ok, err := r.get(ctx, SettingManualMode)
	if err != nil || !ok {
		return false, err
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true, nil
	}
	return false, nil
}

// Depot returns the configured business location, or nil when unset or unparsable.
func (r *SettingsRepo) Depot(ctx context.Context) (*domain.Coordinates, error) {
	latRaw, ok, err := r.get(ctx, SettingDepotLat)
	if err != nil || !ok {
		return nil, err
	}
	lngRaw, ok, err := r.get(ctx, SettingDepotLng)
	if err != nil || !ok {
		return nil, err
	}
	lat, errLat := strconv.ParseFloat(latRaw, 64)
	lng, errLng := strconv.ParseFloat(lngRaw, 64)
	if errLat != nil || errLng != nil {
		return nil, nil
	}
	c := domain.Coordinates{Lat: lat, Lng: lng}
	if !c.Valid() {
		return nil, nil
	}
	return &c, nil
}
