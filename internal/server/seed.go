package server

import (
	"context"
	"fmt"
	"log/slog"
)

// demoLocations is a small starter pool so a fresh install can play a full
// game immediately. Coordinates are the real landmarks.
var demoLocations = []Location{
	{
		Title: "Charles Bridge", Lat: 50.0865, Lng: 14.4114,
		Country: "Czechia", Region: "Prague",
		ImageURLs: []string{"https://images.panoquest.example/charles-bridge-1.jpg", "https://images.panoquest.example/charles-bridge-2.jpg"},
	},
	{
		Title: "Eiffel Tower", Lat: 48.8584, Lng: 2.2945,
		Country: "France", Region: "Paris",
		ImageURLs: []string{"https://images.panoquest.example/eiffel-tower.jpg"},
	},
	{
		Title: "Tower Bridge", Lat: 51.5055, Lng: -0.0754,
		Country: "United Kingdom", Region: "London",
		ImageURLs: []string{"https://images.panoquest.example/tower-bridge.jpg"},
	},
	{
		Title: "Colosseum", Lat: 41.8902, Lng: 12.4922,
		Country: "Italy", Region: "Rome",
		ImageURLs: []string{"https://images.panoquest.example/colosseum.jpg"},
	},
	{
		Title: "Brandenburg Gate", Lat: 52.5163, Lng: 13.3777,
		Country: "Germany", Region: "Berlin",
		ImageURLs: []string{"https://images.panoquest.example/brandenburg-gate.jpg"},
	},
	{
		Title: "Sagrada Familia", Lat: 41.4036, Lng: 2.1744,
		Country: "Spain", Region: "Barcelona",
		ImageURLs: []string{"https://images.panoquest.example/sagrada-familia-1.jpg", "https://images.panoquest.example/sagrada-familia-2.jpg"},
	},
	{
		Title: "Charles de Gaulle Etoile", Lat: 48.8738, Lng: 2.295,
		Country: "France", Region: "Paris",
		ImageURLs: []string{"https://images.panoquest.example/arc-de-triomphe.jpg"},
	},
}

// SeedDemoLocations fills an empty pool with the starter locations.
// Idempotent: does nothing once any location exists.
func SeedDemoLocations(ctx context.Context, logger *slog.Logger, store *SQLiteStore) error {
	existing, err := store.ListLocations(ctx)
	if err != nil {
		return fmt.Errorf("checking location pool: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, loc := range demoLocations {
		if _, err := store.CreateLocation(ctx, loc); err != nil {
			return fmt.Errorf("seeding location %q: %w", loc.Title, err)
		}
	}

	logger.Info("seeded demo locations", "count", len(demoLocations))
	return nil
}
