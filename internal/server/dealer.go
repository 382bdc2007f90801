package server

import (
	"fmt"
	"math/rand/v2"
)

// dealRounds picks n distinct locations from the pool in random order.
// The pool is copied before shuffling; callers keep their slice intact.
func dealRounds(pool []Location, n int) ([]Location, error) {
	if len(pool) < n {
		return nil, fmt.Errorf("%w: pool has %d, need %d", ErrInsufficientLocations, len(pool), n)
	}

	shuffled := make([]Location, len(pool))
	copy(shuffled, pool)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	return shuffled[:n], nil
}

// randomImage picks one of the location's display images. Locations can
// carry several shots of the same place; each round view serves one at
// random so repeated plays don't always show the same frame.
func randomImage(loc Location) string {
	if len(loc.ImageURLs) == 0 {
		return ""
	}
	return loc.ImageURLs[rand.IntN(len(loc.ImageURLs))]
}
