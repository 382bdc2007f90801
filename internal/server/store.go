package server

import (
	"context"
	"errors"
)

// Sentinel errors callers match with errors.Is. Handlers map these to HTTP
// statuses; anything else is a store failure and surfaces as a 500.
var (
	ErrNotFound              = errors.New("not found")
	ErrAlreadyGuessed        = errors.New("round already guessed")
	ErrInsufficientLocations = errors.New("not enough locations")
	ErrLocationInUse         = errors.New("location referenced by rounds")
)

// Location is a guessable place from the pool. Gameplay never mutates it.
type Location struct {
	ID        string
	Title     string
	Lat       float64
	Lng       float64
	Country   string
	Region    string
	ImageURLs []string
	CreatedAt string
}

// Game is one playthrough of RoundsPerGame rounds.
type Game struct {
	ID         string
	PlayerID   *string
	TotalScore int
	CreatedAt  string
	FinishedAt *string
}

// Round is one guess-a-location cycle within a game. The guess fields are
// all nil until the round is guessed, then all set, exactly once.
type Round struct {
	ID         string
	GameID     string
	RoundIndex int
	Location   Location
	GuessLat   *float64
	GuessLng   *float64
	DistanceKm *float64
	Score      *int
	GuessedAt  *string
}

// Guessed reports whether the round's single guess has been recorded.
func (r Round) Guessed() bool {
	return r.GuessedAt != nil
}

// Guess is the scored result written onto a round.
type Guess struct {
	Lat        float64
	Lng        float64
	DistanceKm float64
	Score      int
}

// Store is the persistence boundary for the game engine. The session-facing
// handlers depend on this interface only; SQLiteStore is wired in at startup.
type Store interface {
	// ListLocations returns the full location pool.
	ListLocations(ctx context.Context) ([]Location, error)

	// CreateGame persists a new game and one round per dealt location,
	// indexed 1..len(dealt), in a single transaction.
	CreateGame(ctx context.Context, playerID *string, dealt []Location) (Game, []Round, error)

	GetGame(ctx context.Context, gameID string) (Game, error)
	GetRound(ctx context.Context, gameID string, roundIndex int) (Round, error)
	ListRounds(ctx context.Context, gameID string) ([]Round, error)

	// RecordGuess writes all guess fields in one conditional update and
	// fails with ErrAlreadyGuessed if the round was guessed before,
	// regardless of how the two writes race.
	RecordGuess(ctx context.Context, roundID string, g Guess) error

	// SumScores recomputes the running total from the guessed rounds.
	SumScores(ctx context.Context, gameID string) (int, error)

	// SetTotalScore persists the recomputed running total on the game.
	SetTotalScore(ctx context.Context, gameID string, total int) error

	// FinishGame stamps finished_at and the final total. Finishing an
	// already-finished game is a no-op that returns the stored row.
	FinishGame(ctx context.Context, gameID string, total int) (Game, error)
}
