package server

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
)

func loginAdmin(t *testing.T, r http.Handler, store *SQLiteStore) *http.Cookie {
	t.Helper()

	if err := store.EnsureAdmin(context.Background(), "admin@example.com", "hunter22"); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}

	w := doJSON(t, r, http.MethodPost, "/api/admin/login",
		AdminLoginRequest{Email: "admin@example.com", Password: "hunter22"}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == adminCookieName && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatal("login did not set a session cookie")
	return nil
}

func withCookie(c *http.Cookie) http.Header {
	h := http.Header{}
	h.Set("Cookie", c.String())
	return h
}

func TestAdminLoginWrongPassword(t *testing.T) {
	store, _ := testStore(t)
	r := testRouter(t, store)

	if err := store.EnsureAdmin(context.Background(), "admin@example.com", "hunter22"); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}

	w := doJSON(t, r, http.MethodPost, "/api/admin/login",
		AdminLoginRequest{Email: "admin@example.com", Password: "wrong"}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAdminLocationsRequireAuth(t *testing.T) {
	store, _ := testStore(t)
	r := testRouter(t, store)

	w := doJSON(t, r, http.MethodPost, "/api/admin/locations/", AdminLocationRequest{
		Title:     "Prague Castle",
		Lat:       50.0902,
		Lng:       14.4005,
		ImageURLs: []string{"https://img.example/prague.jpg"},
	}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAdminLocationLifecycle(t *testing.T) {
	store, _ := testStore(t)
	r := testRouter(t, store)
	cookie := loginAdmin(t, r, store)

	create := doJSON(t, r, http.MethodPost, "/api/admin/locations/", AdminLocationRequest{
		Title:     "Prague Castle",
		Lat:       50.0902,
		Lng:       14.4005,
		Country:   "Czechia",
		ImageURLs: []string{"https://img.example/prague.jpg"},
	}, withCookie(cookie))
	if create.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", create.Code, create.Body.String())
	}
	var created AdminLocation
	json.NewDecoder(create.Body).Decode(&created)
	if created.ID == "" {
		t.Fatal("created location has no id")
	}

	list := doJSON(t, r, http.MethodGet, "/api/admin/locations/", nil, withCookie(cookie))
	if list.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", list.Code)
	}
	var listed []AdminLocation
	json.NewDecoder(list.Body).Decode(&listed)
	if len(listed) != 1 || listed[0].ID != created.ID {
		t.Fatalf("list = %+v, want the created location", listed)
	}

	update := doJSON(t, r, http.MethodPut, "/api/admin/locations/"+created.ID, AdminLocationRequest{
		Title:     "Prague Castle and Cathedral",
		Lat:       50.0902,
		Lng:       14.4005,
		Country:   "Czechia",
		ImageURLs: []string{"https://img.example/prague.jpg", "https://img.example/prague2.jpg"},
	}, withCookie(cookie))
	if update.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", update.Code, update.Body.String())
	}
	var updated AdminLocation
	json.NewDecoder(update.Body).Decode(&updated)
	if updated.Title != "Prague Castle and Cathedral" || len(updated.ImageURLs) != 2 {
		t.Errorf("update not applied: %+v", updated)
	}

	del := doJSON(t, r, http.MethodDelete, "/api/admin/locations/"+created.ID, nil, withCookie(cookie))
	if del.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d: %s", del.Code, del.Body.String())
	}

	get := doJSON(t, r, http.MethodGet, "/api/admin/locations/"+created.ID, nil, withCookie(cookie))
	if get.Code != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404, got %d", get.Code)
	}
}

func TestAdminLocationValidation(t *testing.T) {
	store, _ := testStore(t)
	r := testRouter(t, store)
	cookie := loginAdmin(t, r, store)

	tests := []struct {
		name string
		body AdminLocationRequest
	}{
		{"empty title", AdminLocationRequest{Lat: 1, Lng: 2, ImageURLs: []string{"https://x/1.jpg"}}},
		{"lat out of range", AdminLocationRequest{Title: "x", Lat: 91, Lng: 0, ImageURLs: []string{"https://x/1.jpg"}}},
		{"no images", AdminLocationRequest{Title: "x", Lat: 1, Lng: 2}},
		{"blank image url", AdminLocationRequest{Title: "x", Lat: 1, Lng: 2, ImageURLs: []string{" "}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/admin/locations/", tt.body, withCookie(cookie))
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestAdminLogoutInvalidatesSession(t *testing.T) {
	store, _ := testStore(t)
	r := testRouter(t, store)
	cookie := loginAdmin(t, r, store)

	me := doJSON(t, r, http.MethodGet, "/api/admin/me", nil, withCookie(cookie))
	if me.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d", me.Code)
	}

	logout := doJSON(t, r, http.MethodPost, "/api/admin/logout", nil, withCookie(cookie))
	if logout.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", logout.Code)
	}

	after := doJSON(t, r, http.MethodGet, "/api/admin/me", nil, withCookie(cookie))
	if after.Code != http.StatusUnauthorized {
		t.Fatalf("me after logout: expected 401, got %d", after.Code)
	}
}
