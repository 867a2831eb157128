// Package store persists per-item user state: favorites and submitted
// reviews. It is the only durable state the application owns; everything
// else is refetched from the Joiefull API.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Review is one saved review for a clothing item. Rating 0 means the user
// submitted text without a star rating.
type Review struct {
	ClothingID int    `db:"clothing_id"`
	Review     string `db:"review"`
	Rating     int    `db:"rating"`
}

// Store wraps the SQLite database holding favorites and reviews.
type Store struct {
	db *sqlx.DB
}

// Open creates the database file (and parent directories) if needed and
// ensures the schema exists.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS favorites(
  clothing_id INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS reviews(
  clothing_id INTEGER PRIMARY KEY,
  review TEXT NOT NULL DEFAULT '',
  rating INTEGER NOT NULL DEFAULT 0 CHECK (rating BETWEEN 0 AND 5),
  updated_at TEXT DEFAULT CURRENT_TIMESTAMP
);
`
	_, err := db.Exec(schema)
	return err
}

// AddFavorite marks a clothing id as favorited. Adding an id that is already
// a favorite is a no-op.
func (s *Store) AddFavorite(clothingID int) error {
	_, err := s.db.Exec(`
	  INSERT INTO favorites(clothing_id) VALUES(?)
	  ON CONFLICT(clothing_id) DO NOTHING
	`, clothingID)
	return err
}

// RemoveFavorite unmarks a clothing id. Removing an id that is not a
// favorite is a no-op.
func (s *Store) RemoveFavorite(clothingID int) error {
	_, err := s.db.Exec(`DELETE FROM favorites WHERE clothing_id=?`, clothingID)
	return err
}

// IsFavorite reports whether the id is currently favorited.
func (s *Store) IsFavorite(clothingID int) (bool, error) {
	var n int
	if err := s.db.Get(&n, `SELECT COUNT(*) FROM favorites WHERE clothing_id=?`, clothingID); err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListFavorites returns the set of all favorited ids.
func (s *Store) ListFavorites() (map[int]struct{}, error) {
	var ids []int
	if err := s.db.Select(&ids, `SELECT clothing_id FROM favorites`); err != nil {
		return nil, err
	}
	out := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out, nil
}

// SaveReview upserts the review for a clothing id; resubmitting replaces the
// previous record rather than duplicating it.
func (s *Store) SaveReview(clothingID int, review string, rating int) error {
	_, err := s.db.Exec(`
	  INSERT INTO reviews(clothing_id, review, rating, updated_at)
	  VALUES(?, ?, ?, CURRENT_TIMESTAMP)
	  ON CONFLICT(clothing_id) DO UPDATE SET
	    review = excluded.review,
	    rating = excluded.rating,
	    updated_at = excluded.updated_at
	`, clothingID, review, rating)
	return err
}

// GetReview returns the saved review for a clothing id, or nil when none
// exists.
func (s *Store) GetReview(clothingID int) (*Review, error) {
	var rec Review
	err := s.db.Get(&rec, `
	  SELECT clothing_id, review, rating FROM reviews WHERE clothing_id=?
	`, clothingID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
