package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RoundResult is one line of the end-of-game breakdown. Guess fields are
// null for rounds that were never guessed.
type RoundResult struct {
	RoundIndex    int      `json:"roundIndex"`
	LocationTitle string   `json:"locationTitle"`
	GuessLat      *float64 `json:"guessLat"`
	GuessLng      *float64 `json:"guessLng"`
	CorrectLat    float64  `json:"correctLat"`
	CorrectLng    float64  `json:"correctLng"`
	DistanceKm    *float64 `json:"distanceKm"`
	Score         *int     `json:"score"`
}

// FinishGameResponse is the response for POST /api/games/{gameID}/finish.
type FinishGameResponse struct {
	GameID     string        `json:"gameId"`
	TotalScore int           `json:"totalScore"`
	FinishedAt string        `json:"finishedAt"`
	Rounds     []RoundResult `json:"rounds"`
}

func handleFinishGame(logger *slog.Logger, store Store, lb *Leaderboard, broker *Broker, allowEarlyFinish bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID := chi.URLParam(r, "gameID")
		if gameID == "" {
			writeError(w, http.StatusBadRequest, "game id is required")
			return
		}

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
		wasFinished := game.FinishedAt != nil

		rounds, err := store.ListRounds(r.Context(), gameID)
		if err != nil {
			logger.Error("reading rounds", "game_id", gameID, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		// Unguessed rounds count zero; finishing early just caps the
		// achievable score. Operators can disable that tolerance.
		total := 0
		guessed := 0
		for _, round := range rounds {
			if round.Score != nil {
				total += *round.Score
				guessed++
			}
		}
		if !allowEarlyFinish && !wasFinished && guessed < len(rounds) {
			writeError(w, http.StatusConflict, "not all rounds are guessed")
			return
		}

		game, err = store.FinishGame(r.Context(), gameID, total)
		if err != nil {
			logger.Error("updating game", "game_id", gameID, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		// Repeated finishes recompute the same total but never re-enter
		// the board or re-announce the result.
		if !wasFinished {
			if lb != nil {
				if err := lb.Record(r.Context(), game); err != nil {
					logger.Error("recording leaderboard entry", "game_id", gameID, "error", err)
				}
			}
			if broker != nil {
				broker.Publish(LiveEvent{
					Type:       "game_finished",
					GameID:     game.ID,
					PlayerID:   game.PlayerID,
					TotalScore: game.TotalScore,
					FinishedAt: deref(game.FinishedAt),
				})
			}
		}

		results := make([]RoundResult, 0, len(rounds))
		for _, round := range rounds {
			result := RoundResult{
				RoundIndex:    round.RoundIndex,
				LocationTitle: round.Location.Title,
				GuessLat:      round.GuessLat,
				GuessLng:      round.GuessLng,
				CorrectLat:    round.Location.Lat,
				CorrectLng:    round.Location.Lng,
				Score:         round.Score,
			}
			if round.DistanceKm != nil {
				d := roundTo2(*round.DistanceKm)
				result.DistanceKm = &d
			}
			results = append(results, result)
		}

		writeJSON(w, http.StatusOK, FinishGameResponse{
			GameID:     game.ID,
			TotalScore: game.TotalScore,
			FinishedAt: deref(game.FinishedAt),
			Rounds:     results,
		})
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
