package server

import (
	"errors"
	"fmt"
	"testing"
)

func testPool(size int) []Location {
	pool := make([]Location, size)
	for i := range pool {
		pool[i] = Location{
			ID:        fmt.Sprintf("loc-%d", i),
			Title:     fmt.Sprintf("Place %d", i),
			Lat:       float64(i),
			Lng:       float64(i),
			ImageURLs: []string{fmt.Sprintf("https://img.example/%d.jpg", i)},
		}
	}
	return pool
}

func TestDealRoundsDistinct(t *testing.T) {
	pool := testPool(5)

	dealt, err := dealRounds(pool, 5)
	if err != nil {
		t.Fatalf("dealRounds: %v", err)
	}
	if len(dealt) != 5 {
		t.Fatalf("dealt %d locations, want 5", len(dealt))
	}

	seen := make(map[string]bool)
	for _, loc := range dealt {
		if seen[loc.ID] {
			t.Errorf("location %s dealt twice", loc.ID)
		}
		seen[loc.ID] = true
	}
}

func TestDealRoundsSubsetOfPool(t *testing.T) {
	pool := testPool(20)
	inPool := make(map[string]bool, len(pool))
	for _, loc := range pool {
		inPool[loc.ID] = true
	}

	dealt, err := dealRounds(pool, 5)
	if err != nil {
		t.Fatalf("dealRounds: %v", err)
	}
	for _, loc := range dealt {
		if !inPool[loc.ID] {
			t.Errorf("dealt unknown location %s", loc.ID)
		}
	}
}

func TestDealRoundsInsufficient(t *testing.T) {
	_, err := dealRounds(testPool(4), 5)
	if !errors.Is(err, ErrInsufficientLocations) {
		t.Fatalf("err = %v, want ErrInsufficientLocations", err)
	}
}

func TestDealRoundsDoesNotMutatePool(t *testing.T) {
	pool := testPool(10)
	first := pool[0].ID

	for range 10 {
		if _, err := dealRounds(pool, 5); err != nil {
			t.Fatalf("dealRounds: %v", err)
		}
	}
	if pool[0].ID != first {
		t.Error("dealRounds reordered the caller's pool slice")
	}
}

func TestRandomImage(t *testing.T) {
	loc := Location{ImageURLs: []string{"a.jpg", "b.jpg", "c.jpg"}}
	valid := map[string]bool{"a.jpg": true, "b.jpg": true, "c.jpg": true}

	for range 20 {
		if img := randomImage(loc); !valid[img] {
			t.Fatalf("randomImage returned %q, not in the location's set", img)
		}
	}

	if img := randomImage(Location{}); img != "" {
		t.Errorf("randomImage on empty set = %q, want empty", img)
	}
}
