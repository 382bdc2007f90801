package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// SQLiteStore implements Store and the admin persistence on top of a single
// SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const locationColumns = `id, title, lat, lng, COALESCE(country, ''), COALESCE(region, ''), image_urls, created_at`

func scanLocation(row interface{ Scan(...any) error }) (Location, error) {
	var loc Location
	var imagesJSON string
	if err := row.Scan(&loc.ID, &loc.Title, &loc.Lat, &loc.Lng, &loc.Country, &loc.Region, &imagesJSON, &loc.CreatedAt); err != nil {
		return Location{}, err
	}
	if err := json.Unmarshal([]byte(imagesJSON), &loc.ImageURLs); err != nil {
		return Location{}, fmt.Errorf("decoding image_urls for location %s: %w", loc.ID, err)
	}
	return loc, nil
}

func (s *SQLiteStore) ListLocations(ctx context.Context) ([]Location, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+locationColumns+` FROM locations ORDER BY created_at, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []Location
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		locations = append(locations, loc)
	}
	return locations, rows.Err()
}

func (s *SQLiteStore) CreateGame(ctx context.Context, playerID *string, dealt []Location) (Game, []Round, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Game{}, nil, err
	}
	defer tx.Rollback()

	game := Game{ID: uuid.NewString(), PlayerID: playerID}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO games (id, player_id)
		VALUES (?, ?)
		RETURNING created_at
	`, game.ID, playerID).Scan(&game.CreatedAt)
	if err != nil {
		return Game{}, nil, fmt.Errorf("inserting game: %w", err)
	}

	rounds := make([]Round, 0, len(dealt))
	for i, loc := range dealt {
		round := Round{
			ID:         uuid.NewString(),
			GameID:     game.ID,
			RoundIndex: i + 1,
			Location:   loc,
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO game_rounds (id, game_id, round_index, location_id)
			VALUES (?, ?, ?, ?)
		`, round.ID, round.GameID, round.RoundIndex, loc.ID)
		if err != nil {
			return Game{}, nil, fmt.Errorf("inserting round %d: %w", round.RoundIndex, err)
		}
		rounds = append(rounds, round)
	}

	if err := tx.Commit(); err != nil {
		return Game{}, nil, err
	}
	return game, rounds, nil
}

func (s *SQLiteStore) GetGame(ctx context.Context, gameID string) (Game, error) {
	var game Game
	err := s.db.QueryRowContext(ctx, `
		SELECT id, player_id, total_score, created_at, finished_at
		FROM games WHERE id = ?
	`, gameID).Scan(&game.ID, &game.PlayerID, &game.TotalScore, &game.CreatedAt, &game.FinishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Game{}, ErrNotFound
	}
	return game, err
}

const roundQuery = `
	SELECT r.id, r.game_id, r.round_index,
		r.guess_lat, r.guess_lng, r.distance_km, r.score, r.guessed_at,
		l.id, l.title, l.lat, l.lng, COALESCE(l.country, ''), COALESCE(l.region, ''), l.image_urls, l.created_at
	FROM game_rounds r
	JOIN locations l ON l.id = r.location_id
`

func scanRound(row interface{ Scan(...any) error }) (Round, error) {
	var r Round
	var imagesJSON string
	err := row.Scan(&r.ID, &r.GameID, &r.RoundIndex,
		&r.GuessLat, &r.GuessLng, &r.DistanceKm, &r.Score, &r.GuessedAt,
		&r.Location.ID, &r.Location.Title, &r.Location.Lat, &r.Location.Lng,
		&r.Location.Country, &r.Location.Region, &imagesJSON, &r.Location.CreatedAt)
	if err != nil {
		return Round{}, err
	}
	if err := json.Unmarshal([]byte(imagesJSON), &r.Location.ImageURLs); err != nil {
		return Round{}, fmt.Errorf("decoding image_urls for location %s: %w", r.Location.ID, err)
	}
	return r, nil
}

func (s *SQLiteStore) GetRound(ctx context.Context, gameID string, roundIndex int) (Round, error) {
	row := s.db.QueryRowContext(ctx, roundQuery+`
		WHERE r.game_id = ? AND r.round_index = ?
	`, gameID, roundIndex)

	round, err := scanRound(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Round{}, ErrNotFound
	}
	return round, err
}

func (s *SQLiteStore) ListRounds(ctx context.Context, gameID string) ([]Round, error) {
	rows, err := s.db.QueryContext(ctx, roundQuery+`
		WHERE r.game_id = ? ORDER BY r.round_index
	`, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rounds []Round
	for rows.Next() {
		round, err := scanRound(rows)
		if err != nil {
			return nil, err
		}
		rounds = append(rounds, round)
	}
	return rounds, rows.Err()
}

// RecordGuess writes all four guess fields plus the timestamp in one
// conditional update. The `guessed_at IS NULL` guard is what makes two
// racing guesses on the same round resolve to exactly one scoring event.
func (s *SQLiteStore) RecordGuess(ctx context.Context, roundID string, g Guess) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE game_rounds
		SET guess_lat = ?, guess_lng = ?, distance_km = ?, score = ?,
			guessed_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
		WHERE id = ? AND guessed_at IS NULL
	`, g.Lat, g.Lng, g.DistanceKm, g.Score, roundID)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists int
		err := s.db.QueryRowContext(ctx, `SELECT 1 FROM game_rounds WHERE id = ?`, roundID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return ErrAlreadyGuessed
	}
	return nil
}

func (s *SQLiteStore) SumScores(ctx context.Context, gameID string) (int, error) {
	var total int
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(score), 0) FROM game_rounds
		WHERE game_id = ? AND score IS NOT NULL
	`, gameID).Scan(&total)
	return total, err
}

func (s *SQLiteStore) SetTotalScore(ctx context.Context, gameID string, total int) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE games SET total_score = ? WHERE id = ?
	`, total, gameID)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// FinishGame stamps finished_at at most once. A repeat call leaves the
// original timestamp and total in place and returns the stored row.
func (s *SQLiteStore) FinishGame(ctx context.Context, gameID string, total int) (Game, error) {
	_, err := s.db.ExecContext(ctx, `
		UPDATE games
		SET total_score = ?, finished_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
		WHERE id = ? AND finished_at IS NULL
	`, total, gameID)
	if err != nil {
		return Game{}, err
	}
	return s.GetGame(ctx, gameID)
}
