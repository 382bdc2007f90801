package server

import (
	"database/sql"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/swaggest/swgui/v5emb"
)

// Deps carries everything the route tree needs. Assembled once in main;
// tests build a partial one around an in-memory store.
type Deps struct {
	Logger   *slog.Logger
	Store    Store
	Admin    *SQLiteStore
	Identity Identity
	Broker   *Broker

	// Leaderboard is nil when Redis is not configured; finish still works,
	// the board just stays empty.
	Leaderboard *Leaderboard

	RoundsPerGame    int
	AllowEarlyFinish bool

	// Health probes.
	DB    *sql.DB
	Redis *redis.Client

	SPADir string
}

func AddRoutes(r chi.Router, d Deps) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("PanoQuest API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(d.Logger, d.DB, d.Redis))
	r.Get("/ws/live", handleWSLive(d.Logger, d.Broker))

	// Player routes. Identity is optional; anonymous play is allowed.
	r.Route("/api", func(r chi.Router) {
		r.Post("/games", handleStartGame(d.Logger, d.Store, d.Identity, d.RoundsPerGame))
		r.Get("/games/{gameID}", handleGetGame(d.Logger, d.Store))
		r.Get("/games/{gameID}/rounds/{roundIndex}", handleGetRound(d.Logger, d.Store))
		r.Post("/games/{gameID}/rounds/{roundIndex}/guess", handleSubmitGuess(d.Logger, d.Store))
		r.Post("/games/{gameID}/finish", handleFinishGame(d.Logger, d.Store, d.Leaderboard, d.Broker, d.AllowEarlyFinish))
		r.Get("/leaderboard", handleLeaderboard(d.Logger, d.Leaderboard, d.Store))
		r.Get("/leaderboard/events", handleEvents(d.Broker))
	})

	// Admin auth + location-pool management.
	r.Post("/api/admin/login", handleAdminLogin(d.Admin))
	r.Post("/api/admin/logout", handleAdminLogout(d.Admin))
	r.Get("/api/admin/me", handleAdminMe(d.Admin))

	r.Route("/api/admin/locations", func(r chi.Router) {
		r.Use(adminAuthMiddleware(d.Admin))
		r.Get("/", handleAdminListLocations(d.Logger, d.Admin))
		r.Post("/", handleAdminCreateLocation(d.Logger, d.Admin))
		r.Get("/{id}", handleAdminGetLocation(d.Logger, d.Admin))
		r.Put("/{id}", handleAdminUpdateLocation(d.Logger, d.Admin))
		r.Delete("/{id}", handleAdminDeleteLocation(d.Logger, d.Admin))
	})

	if d.SPADir != "" {
		if info, err := os.Stat(d.SPADir); err == nil && info.IsDir() {
			d.Logger.Info("serving SPA", "dir", d.SPADir)
			r.NotFound(handleSPA(d.SPADir))
		}
	}
}
