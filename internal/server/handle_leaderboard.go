package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
)

const (
	defaultBoardLimit = 10
	maxBoardLimit     = 100
)

// LeaderboardEntry is one ranked finished game.
type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	GameID     string  `json:"gameId"`
	PlayerID   *string `json:"playerId"`
	TotalScore int     `json:"totalScore"`
	FinishedAt string  `json:"finishedAt"`
}

// LeaderboardResponse is the response for GET /api/leaderboard.
type LeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
}

func handleLeaderboard(logger *slog.Logger, lb *Leaderboard, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if lb == nil {
			writeJSON(w, http.StatusOK, LeaderboardResponse{Entries: []LeaderboardEntry{}})
			return
		}

		limit := defaultBoardLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 || n > maxBoardLimit {
				writeError(w, http.StatusBadRequest, "limit must be between 1 and 100")
				return
			}
			limit = n
		}

		ids, err := lb.TopGameIDs(r.Context(), limit)
		if err != nil {
			logger.Error("reading leaderboard", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		entries := make([]LeaderboardEntry, 0, len(ids))
		for _, id := range ids {
			game, err := store.GetGame(r.Context(), id)
			if errors.Is(err, ErrNotFound) {
				// Board member without a backing row; skip rather than 500.
				continue
			}
			if err != nil {
				logger.Error("hydrating leaderboard entry", "game_id", id, "error", err)
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
			entries = append(entries, LeaderboardEntry{
				Rank:       len(entries) + 1,
				GameID:     game.ID,
				PlayerID:   game.PlayerID,
				TotalScore: game.TotalScore,
				FinishedAt: deref(game.FinishedAt),
			})
		}

		writeJSON(w, http.StatusOK, LeaderboardResponse{Entries: entries})
	}
}
