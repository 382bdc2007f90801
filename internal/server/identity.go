package server

import "net/http"

// Identity resolves the player behind a request. Authentication happens
// upstream (reverse proxy, BaaS edge); the engine only needs an opaque id
// to attribute games to, and anonymous play is a first-class case.
type Identity interface {
	// PlayerID returns the player's opaque id, or ok=false for anonymous.
	PlayerID(r *http.Request) (id string, ok bool)
}

const playerIDHeader = "X-Player-ID"

// HeaderIdentity reads the player id from the X-Player-ID header.
type HeaderIdentity struct{}

func (HeaderIdentity) PlayerID(r *http.Request) (string, bool) {
	id := r.Header.Get(playerIDHeader)
	return id, id != ""
}

// playerRef converts a resolved identity to the nullable foreign key the
// store persists.
func playerRef(identity Identity, r *http.Request) *string {
	if identity == nil {
		return nil
	}
	id, ok := identity.PlayerID(r)
	if !ok {
		return nil
	}
	return &id
}
