package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/panoquest/api/internal/geo"
)

// AdminLocation is the admin view of a pool entry, coordinates included.
type AdminLocation struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Lat       float64  `json:"lat"`
	Lng       float64  `json:"lng"`
	Country   string   `json:"country"`
	Region    string   `json:"region"`
	ImageURLs []string `json:"imageUrls"`
	CreatedAt string   `json:"createdAt"`
}

// AdminLocationRequest is the create/update body for pool entries.
type AdminLocationRequest struct {
	Title     string   `json:"title"`
	Lat       float64  `json:"lat"`
	Lng       float64  `json:"lng"`
	Country   string   `json:"country"`
	Region    string   `json:"region"`
	ImageURLs []string `json:"imageUrls"`
}

func (req *AdminLocationRequest) validate() string {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return "title is required"
	}
	if err := (geo.Point{Lat: req.Lat, Lng: req.Lng}).Validate(); err != nil {
		return err.Error()
	}
	if len(req.ImageURLs) == 0 {
		return "at least one image url is required"
	}
	for _, url := range req.ImageURLs {
		if strings.TrimSpace(url) == "" {
			return "image urls must not be blank"
		}
	}
	return ""
}

func (req *AdminLocationRequest) toLocation() Location {
	return Location{
		Title:     req.Title,
		Lat:       req.Lat,
		Lng:       req.Lng,
		Country:   strings.TrimSpace(req.Country),
		Region:    strings.TrimSpace(req.Region),
		ImageURLs: req.ImageURLs,
	}
}

func adminLocationView(loc Location) AdminLocation {
	return AdminLocation{
		ID:        loc.ID,
		Title:     loc.Title,
		Lat:       loc.Lat,
		Lng:       loc.Lng,
		Country:   loc.Country,
		Region:    loc.Region,
		ImageURLs: loc.ImageURLs,
		CreatedAt: loc.CreatedAt,
	}
}

func handleAdminListLocations(logger *slog.Logger, store *SQLiteStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		locations, err := store.ListLocations(r.Context())
		if err != nil {
			logger.Error("listing locations", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		views := make([]AdminLocation, 0, len(locations))
		for _, loc := range locations {
			views = append(views, adminLocationView(loc))
		}
		writeJSON(w, http.StatusOK, views)
	}
}

func handleAdminCreateLocation(logger *slog.Logger, store *SQLiteStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdminLocationRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg := req.validate(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		loc, err := store.CreateLocation(r.Context(), req.toLocation())
		if err != nil {
			logger.Error("creating location", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		logger.Info("location created", "location_id", loc.ID, "admin", adminFrom(r).Email)
		writeJSON(w, http.StatusCreated, adminLocationView(loc))
	}
}

func handleAdminGetLocation(logger *slog.Logger, store *SQLiteStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		loc, err := store.GetLocation(r.Context(), id)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "location not found")
			return
		}
		if err != nil {
			logger.Error("reading location", "location_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, adminLocationView(loc))
	}
}

func handleAdminUpdateLocation(logger *slog.Logger, store *SQLiteStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req AdminLocationRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg := req.validate(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		loc := req.toLocation()
		loc.ID = id
		loc, err := store.UpdateLocation(r.Context(), loc)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "location not found")
			return
		}
		if err != nil {
			logger.Error("updating location", "location_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, adminLocationView(loc))
	}
}

func handleAdminDeleteLocation(logger *slog.Logger, store *SQLiteStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		err := store.DeleteLocation(r.Context(), id)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "location not found")
			return
		}
		if errors.Is(err, ErrLocationInUse) {
			writeError(w, http.StatusConflict, "location is referenced by game rounds")
			return
		}
		if err != nil {
			logger.Error("deleting location", "location_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		logger.Info("location deleted", "location_id", id, "admin", adminFrom(r).Email)
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}
