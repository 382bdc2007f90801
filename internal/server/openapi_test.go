package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandleOpenAPI(t *testing.T) {
	h := handleOpenAPI()
	req := httptest.NewRequest(http.MethodGet, "/openapi.json", nil)
	rec := httptest.NewRecorder()

	h(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	if got := rec.Header().Get("Content-Type"); !strings.Contains(got, "application/json") {
		t.Fatalf("content-type = %q, want application/json", got)
	}

	body := rec.Body.String()
	if !strings.Contains(body, `"openapi": "3.1.0"`) {
		t.Fatalf("body missing openapi version")
	}
	if !strings.Contains(body, `"/healthz"`) {
		t.Fatalf("body missing /healthz path")
	}

	// Every player operation must be documented.
	for _, path := range []string{
		`"/api/games"`,
		`"/api/games/{gameID}/rounds/{roundIndex}"`,
		`"/api/games/{gameID}/rounds/{roundIndex}/guess"`,
		`"/api/games/{gameID}/finish"`,
		`"/api/leaderboard"`,
	} {
		if !strings.Contains(body, path) {
			t.Errorf("body missing %s path", path)
		}
	}
}

func TestOpenAPIRoundViewHasNoCoordinates(t *testing.T) {
	h := handleOpenAPI()
	req := httptest.NewRequest(http.MethodGet, "/openapi.json", nil)
	rec := httptest.NewRecorder()

	h(rec, req)

	// The documented pre-guess round schema must not advertise coordinate
	// fields.
	body := rec.Body.String()
	if !strings.Contains(body, "ServerRoundView") {
		t.Skip("RoundView schema name not present; schema naming changed")
	}

	start := strings.Index(body, `"ServerRoundView"`)
	end := len(body)
	if next := strings.Index(body[start+1:], `"Server`); next > 0 {
		end = start + 1 + next
	}
	schema := body[start:end]
	for _, field := range []string{"correctLat", "correctLng", `"lat"`, `"lng"`} {
		if strings.Contains(schema, field) {
			t.Errorf("RoundView schema contains %s", field)
		}
	}
}
