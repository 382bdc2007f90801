// Package geo computes great-circle distances and guess scores for the game.
package geo

import (
	"errors"
	"fmt"
	"math"
)

const (
	// EarthRadiusKm is the mean Earth radius used by the haversine formula.
	EarthRadiusKm = 6371.0

	// MaxScore is awarded for a guess at distance zero.
	MaxScore = 5000

	// decayKm controls how quickly the score falls off with distance.
	decayKm = 2000.0
)

// ErrInvalidCoordinate is returned for NaN, infinite, or out-of-range coordinates.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Point is a geographic coordinate in degrees (WGS 84).
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Validate checks that both components are finite and within valid ranges.
func (p Point) Validate() error {
	if math.IsNaN(p.Lat) || math.IsInf(p.Lat, 0) || p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("%w: lat %v", ErrInvalidCoordinate, p.Lat)
	}
	if math.IsNaN(p.Lng) || math.IsInf(p.Lng, 0) || p.Lng < -180 || p.Lng > 180 {
		return fmt.Errorf("%w: lng %v", ErrInvalidCoordinate, p.Lng)
	}
	return nil
}

// HaversineKm returns the great-circle distance between a and b in kilometers.
func HaversineKm(a, b Point) (float64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	if err := b.Validate(); err != nil {
		return 0, err
	}

	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c, nil
}

// Score maps a distance in kilometers to points by exponential decay,
// rounded to the nearest integer and clamped to [0, MaxScore].
func Score(distanceKm float64) int {
	score := int(math.Round(MaxScore * math.Exp(-distanceKm/decayKm)))
	return min(max(score, 0), MaxScore)
}

// ScoreGuess computes the distance between the true location and the guess,
// and the resulting score.
func ScoreGuess(actual, guess Point) (distanceKm float64, score int, err error) {
	distanceKm, err = HaversineKm(actual, guess)
	if err != nil {
		return 0, 0, err
	}
	return distanceKm, Score(distanceKm), nil
}

func toRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}
