package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GameRoundStatus describes a round's progress without exposing any
// location coordinates.
type GameRoundStatus struct {
	RoundIndex int  `json:"roundIndex"`
	Guessed    bool `json:"guessed"`
	Score      *int `json:"score"`
}

// GameResponse is the response for GET /api/games/{gameID}.
type GameResponse struct {
	GameID     string            `json:"gameId"`
	Status     string            `json:"status"`
	TotalScore int               `json:"totalScore"`
	CreatedAt  string            `json:"createdAt"`
	FinishedAt *string           `json:"finishedAt"`
	Rounds     []GameRoundStatus `json:"rounds"`
}

func handleGetGame(logger *slog.Logger, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID := chi.URLParam(r, "gameID")

		game, err := store.GetGame(r.Context(), gameID)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "game not found")
			return
		}
		if err != nil {
			logger.Error("reading game", "game_id", gameID, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		rounds, err := store.ListRounds(r.Context(), gameID)
		if err != nil {
			logger.Error("reading rounds", "game_id", gameID, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		status := "in_progress"
		if game.FinishedAt != nil {
			status = "finished"
		}

		statuses := make([]GameRoundStatus, 0, len(rounds))
		for _, round := range rounds {
			statuses = append(statuses, GameRoundStatus{
				RoundIndex: round.RoundIndex,
				Guessed:    round.Guessed(),
				Score:      round.Score,
			})
		}

		writeJSON(w, http.StatusOK, GameResponse{
			GameID:     game.ID,
			Status:     status,
			TotalScore: game.TotalScore,
			CreatedAt:  game.CreatedAt,
			FinishedAt: game.FinishedAt,
			Rounds:     statuses,
		})
	}
}
