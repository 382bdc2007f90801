package server

import (
	"errors"
	"log/slog"
	"math"
	"net/http"

	"github.com/panoquest/api/internal/geo"
)

// GuessRequest is the request body for submitting a guess. Pointers so that
// absent fields are distinguishable from a guess at (0, 0).
type GuessRequest struct {
	GuessLat *float64 `json:"guessLat"`
	GuessLng *float64 `json:"guessLng"`
}

// GuessResponse reveals the true coordinates post-guess for result-map
// rendering.
type GuessResponse struct {
	DistanceKm      float64 `json:"distanceKm"`
	Score           int     `json:"score"`
	CorrectLat      float64 `json:"correctLat"`
	CorrectLng      float64 `json:"correctLng"`
	TotalScoreSoFar int     `json:"totalScoreSoFar"`
}

func handleSubmitGuess(logger *slog.Logger, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, roundIndex, err := roundParams(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		var req GuessRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.GuessLat == nil || req.GuessLng == nil {
			writeError(w, http.StatusBadRequest, "guessLat and guessLng are required")
			return
		}

		guess := geo.Point{Lat: *req.GuessLat, Lng: *req.GuessLng}
		if err := guess.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
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
		if game.FinishedAt != nil {
			writeError(w, http.StatusConflict, "game already finished")
			return
		}

		round, err := store.GetRound(r.Context(), gameID, roundIndex)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "round not found")
			return
		}
		if err != nil {
			logger.Error("reading round", "game_id", gameID, "round_index", roundIndex, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if round.Guessed() {
			writeError(w, http.StatusBadRequest, "round already guessed")
			return
		}

		actual := geo.Point{Lat: round.Location.Lat, Lng: round.Location.Lng}
		distanceKm, score, err := geo.ScoreGuess(actual, guess)
		if err != nil {
			// Reached only if the stored location is corrupt; the guess
			// was validated above.
			logger.Error("scoring guess", "game_id", gameID, "round_index", roundIndex, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		// The conditional write is the authority on "exactly once"; the
		// Guessed check above only short-circuits the common case.
		err = store.RecordGuess(r.Context(), round.ID, Guess{
			Lat:        guess.Lat,
			Lng:        guess.Lng,
			DistanceKm: distanceKm,
			Score:      score,
		})
		if errors.Is(err, ErrAlreadyGuessed) {
			writeError(w, http.StatusBadRequest, "round already guessed")
			return
		}
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "round not found")
			return
		}
		if err != nil {
			logger.Error("updating round", "game_id", gameID, "round_index", roundIndex, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		total, err := store.SumScores(r.Context(), gameID)
		if err != nil {
			logger.Error("summing scores", "game_id", gameID, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if err := store.SetTotalScore(r.Context(), gameID, total); err != nil {
			logger.Error("updating game total", "game_id", gameID, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, GuessResponse{
			DistanceKm:      roundTo2(distanceKm),
			Score:           score,
			CorrectLat:      round.Location.Lat,
			CorrectLng:      round.Location.Lng,
			TotalScoreSoFar: total,
		})
	}
}

// roundTo2 rounds for display only; the store keeps full precision.
func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
