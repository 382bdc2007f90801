package migrations_test

import (
	"context"
	"testing"

	"github.com/panoquest/api/internal/database"
	"github.com/panoquest/api/internal/migrations"
)

func TestMigrations(t *testing.T) {
	db, err := database.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	// Verify all tables exist by querying sqlite_master.
	want := []string{"locations", "games", "game_rounds", "admins", "admin_sessions"}

	for _, table := range want {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %q not found: %v", table, err)
		}
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	db, err := database.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := migrations.Run(db); err != nil {
		t.Fatalf("second run (should be no-op): %v", err)
	}
}

func TestRoundIndexUnique(t *testing.T) {
	db, err := database.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	mustExec := func(query string, args ...any) {
		t.Helper()
		if _, err := db.Exec(query, args...); err != nil {
			t.Fatalf("exec %s: %v", query, err)
		}
	}

	mustExec(`INSERT INTO locations (id, title, lat, lng) VALUES ('loc1', 'Prague', 50.0875, 14.4213)`)
	mustExec(`INSERT INTO games (id) VALUES ('g1')`)
	mustExec(`INSERT INTO game_rounds (id, game_id, round_index, location_id) VALUES ('r1', 'g1', 1, 'loc1')`)

	if _, err := db.Exec(`INSERT INTO game_rounds (id, game_id, round_index, location_id) VALUES ('r2', 'g1', 1, 'loc1')`); err == nil {
		t.Fatal("expected duplicate (game_id, round_index) insert to fail")
	}
}
