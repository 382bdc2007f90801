package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func (s *SQLiteStore) AdminByEmail(ctx context.Context, email string) (adminID, passwordHash string, err error) {
	err = s.db.QueryRowContext(ctx, `
		SELECT id, password_hash FROM admins WHERE email = ?
	`, email).Scan(&adminID, &passwordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", ErrNotFound
	}
	return adminID, passwordHash, err
}

func (s *SQLiteStore) CreateAdminSession(ctx context.Context, adminID string) (string, error) {
	var sessionID string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO admin_sessions (admin_id)
		VALUES (?)
		RETURNING id
	`, adminID).Scan(&sessionID)
	return sessionID, err
}

func (s *SQLiteStore) DeleteAdminSession(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE id = ?`, sessionID)
	return err
}

func (s *SQLiteStore) AdminFromSession(ctx context.Context, sessionID string) (adminSession, error) {
	var sess adminSession
	err := s.db.QueryRowContext(ctx, `
		SELECT a.id, a.email
		FROM admin_sessions s
		JOIN admins a ON a.id = s.admin_id
		WHERE s.id = ?
	`, sessionID).Scan(&sess.AdminID, &sess.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return adminSession{}, errNoAdminSession
	}
	return sess, err
}

// EnsureAdmin creates the bootstrap admin account if no account with that
// email exists yet. Idempotent across restarts.
func (s *SQLiteStore) EnsureAdmin(ctx context.Context, email, password string) error {
	if _, _, err := s.AdminByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO admins (id, email, password_hash)
		VALUES (?, ?, ?)
	`, uuid.NewString(), email, string(hash))
	return err
}

func (s *SQLiteStore) CreateLocation(ctx context.Context, loc Location) (Location, error) {
	loc.ID = uuid.NewString()
	imagesJSON, err := json.Marshal(loc.ImageURLs)
	if err != nil {
		return Location{}, err
	}

	err = s.db.QueryRowContext(ctx, `
		INSERT INTO locations (id, title, lat, lng, country, region, image_urls)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING created_at
	`, loc.ID, loc.Title, loc.Lat, loc.Lng, loc.Country, loc.Region, string(imagesJSON)).Scan(&loc.CreatedAt)
	if err != nil {
		return Location{}, err
	}
	return loc, nil
}

func (s *SQLiteStore) GetLocation(ctx context.Context, id string) (Location, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+locationColumns+` FROM locations WHERE id = ?
	`, id)

	loc, err := scanLocation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Location{}, ErrNotFound
	}
	return loc, err
}

func (s *SQLiteStore) UpdateLocation(ctx context.Context, loc Location) (Location, error) {
	imagesJSON, err := json.Marshal(loc.ImageURLs)
	if err != nil {
		return Location{}, err
	}

	err = s.db.QueryRowContext(ctx, `
		UPDATE locations SET title = ?, lat = ?, lng = ?, country = ?, region = ?, image_urls = ?
		WHERE id = ?
		RETURNING created_at
	`, loc.Title, loc.Lat, loc.Lng, loc.Country, loc.Region, string(imagesJSON), loc.ID).Scan(&loc.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Location{}, ErrNotFound
	}
	if err != nil {
		return Location{}, err
	}
	return loc, nil
}

// DeleteLocation refuses to remove a location that any round references,
// finished or not, so past games keep their breakdowns intact.
func (s *SQLiteStore) DeleteLocation(ctx context.Context, id string) error {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM game_rounds WHERE location_id = ?
	`, id).Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrLocationInUse
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM locations WHERE id = ?`, id)
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
