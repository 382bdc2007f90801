package server

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const leaderboardKey = "panoquest:leaderboard"

// Leaderboard keeps finished games ranked by final score in a Redis sorted
// set. SQLite stays the source of truth; the set only orders game ids.
type Leaderboard struct {
	rdb *redis.Client
}

func NewLeaderboard(rdb *redis.Client) *Leaderboard {
	return &Leaderboard{rdb: rdb}
}

// Record enters a finished game into the board. Called once per game;
// re-adding the same member would just overwrite the identical score.
func (l *Leaderboard) Record(ctx context.Context, game Game) error {
	err := l.rdb.ZAdd(ctx, leaderboardKey, redis.Z{
		Score:  float64(game.TotalScore),
		Member: game.ID,
	}).Err()
	if err != nil {
		return fmt.Errorf("adding game %s to leaderboard: %w", game.ID, err)
	}
	return nil
}

// TopGameIDs returns up to limit game ids, best score first.
func (l *Leaderboard) TopGameIDs(ctx context.Context, limit int) ([]string, error) {
	ids, err := l.rdb.ZRevRange(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("reading leaderboard: %w", err)
	}
	return ids, nil
}
