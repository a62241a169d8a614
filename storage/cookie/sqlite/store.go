// Package sqlitecookie persists cookies in a local sqlite database so the
// session survives restarts, the way a browser profile would.
package sqlitecookie

import (
	"database/sql"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/trezcool/lessonhub/core/session"
)

const schema = `
CREATE TABLE IF NOT EXISTS cookies (
	name       TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	path       TEXT NOT NULL DEFAULT '/',
	expires_at TIMESTAMP NOT NULL
)`

type Store struct {
	db *sql.DB
}

var _ session.CookieStore = (*Store)(nil)

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "opening cookie db")
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "migrating cookie db")
	}
	return &Store{db: db}, nil
}

func (s *Store) Get(name string) (string, error) {
	var (
		value     string
		expiresAt time.Time
	)
	row := s.db.QueryRow(`SELECT value, expires_at FROM cookies WHERE name = ?`, name)
	if err := row.Scan(&value, &expiresAt); err != nil {
		if err == sql.ErrNoRows {
			return "", session.ErrNoCookie
		}
		return "", errors.Wrap(err, "reading cookie")
	}
	if time.Now().After(expiresAt) {
		return "", session.ErrNoCookie
	}
	return value, nil
}

func (s *Store) Set(name, value, path string, expires time.Time) error {
	_, err := s.db.Exec(
		`INSERT INTO cookies (name, value, path, expires_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET value = excluded.value, path = excluded.path, expires_at = excluded.expires_at`,
		name, value, path, expires.UTC(),
	)
	return errors.Wrap(err, "writing cookie")
}

// Expire clears a cookie by moving its expiry into the past; Get treats it
// as absent from then on.
func (s *Store) Expire(name string) error {
	_, err := s.db.Exec(
		`UPDATE cookies SET expires_at = ? WHERE name = ?`,
		time.Now().Add(-24*time.Hour).UTC(), name,
	)
	return errors.Wrap(err, "expiring cookie")
}

func (s *Store) Close() error {
	return s.db.Close()
}
