// Package geo holds straight-line distance and travel time estimation.
package geo

import (
	"math"

	"courier-dispatch/internal/domain"
)

// EarthRadiusKm is the mean Earth radius.
const EarthRadiusKm = 6371.0

// DefaultSpeedKmh is the assumed average urban travel speed.
const DefaultSpeedKmh = 30.0

// Distance returns the haversine distance in kilometers.
// Invalid coordinates yield NaN; callers validate first.
func Distance(origin, destination domain.Coordinates) float64 {
	dLat := toRad(destination.Lat - origin.Lat)
	dLng := toRad(destination.Lng - origin.Lng)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(origin.Lat))*math.Cos(toRad(destination.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// EstimateDuration returns travel seconds at the given speed.
// A non-positive speed falls back to DefaultSpeedKmh.
func EstimateDuration(distanceKm, speedKmh float64) float64 {
	if speedKmh <= 0 {
		speedKmh = DefaultSpeedKmh
	}
	return distanceKm / speedKmh * 3600
}

// Estimate builds a degraded RouteEstimate between two points.
func Estimate(origin, destination domain.Coordinates, speedKmh float64) domain.RouteEstimate {
	km := Distance(origin, destination)
	return domain.RouteEstimate{
		DistanceMeters:  int(km * 1000),
		DurationSeconds: int(EstimateDuration(km, speedKmh)),
		Live:            false,
	}
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
