package server

import (
	"errors"
	"log/slog"
	"net/http"
)

// RoundView is the pre-guess view of a round. It deliberately carries no
// coordinates: leaking the true location before the guess breaks the game.
type RoundView struct {
	RoundIndex int    `json:"roundIndex"`
	ImageURL   string `json:"imageUrl"`
}

// StartGameResponse is the response for POST /api/games.
type StartGameResponse struct {
	GameID string    `json:"gameId"`
	Round  RoundView `json:"round"`
}

func handleStartGame(logger *slog.Logger, store Store, identity Identity, roundsPerGame int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pool, err := store.ListLocations(r.Context())
		if err != nil {
			logger.Error("listing locations", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		dealt, err := dealRounds(pool, roundsPerGame)
		if errors.Is(err, ErrInsufficientLocations) {
			writeError(w, http.StatusBadRequest, "not enough locations to start a game")
			return
		}
		if err != nil {
			logger.Error("dealing rounds", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		game, rounds, err := store.CreateGame(r.Context(), playerRef(identity, r), dealt)
		if err != nil {
			logger.Error("creating game", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusCreated, StartGameResponse{
			GameID: game.ID,
			Round: RoundView{
				RoundIndex: rounds[0].RoundIndex,
				ImageURL:   randomImage(rounds[0].Location),
			},
		})
	}
}
