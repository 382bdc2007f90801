package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func roundParams(r *http.Request) (gameID string, roundIndex int, err error) {
	gameID = chi.URLParam(r, "gameID")
	roundIndex, err = strconv.Atoi(chi.URLParam(r, "roundIndex"))
	if err != nil || gameID == "" || roundIndex < 1 {
		return "", 0, errors.New("invalid game id or round index")
	}
	return gameID, roundIndex, nil
}

func handleGetRound(logger *slog.Logger, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, roundIndex, err := roundParams(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
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

		writeJSON(w, http.StatusOK, RoundView{
			RoundIndex: round.RoundIndex,
			ImageURL:   randomImage(round.Location),
		})
	}
}
