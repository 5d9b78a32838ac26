// Package localstore keeps the small amount of client state that survives a
// restart: the admin token, its expiration, the chosen avatar and optionally
// the cart.
package localstore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

const (
	KeyToken           = "token"
	KeyTokenExpiration = "tokenExpiration"
	KeyAvatar          = "avatar"
	KeyCart            = "cart"
)

var ErrNotFound = errors.New("key not found")

type Store struct {
	db *sql.DB
}

// Open opens or creates the sqlite file at path. ":memory:" gives a
// throwaway store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// one connection, otherwise every ":memory:" connection is its own database
	db.SetMaxOpenConns(1)
	if _, err = db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	)`); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("localstore get")
		return "", err
	}
	return value, nil
}

func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().Unix())
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("localstore set")
	}
	return err
}

func (s *Store) Delete(keys ...string) error {
	for _, key := range keys {
		if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
			log.Error().Err(err).Str("key", key).Msg("localstore delete")
			return err
		}
	}
	return nil
}

// SaveToken stores the admin token together with its expiration.
func (s *Store) SaveToken(token string, expiresAt time.Time) error {
	if err := s.Set(KeyToken, token); err != nil {
		return err
	}
	return s.Set(KeyTokenExpiration, strconv.FormatInt(expiresAt.UnixMilli(), 10))
}

// LoadToken returns ErrNotFound when no token or no expiration is stored.
func (s *Store) LoadToken() (token string, expiresAt time.Time, err error) {
	if token, err = s.Get(KeyToken); err != nil {
		return
	}
	raw, err := s.Get(KeyTokenExpiration)
	if err != nil {
		return
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return "", time.Time{}, ErrNotFound
	}
	expiresAt = time.UnixMilli(ms)
	return
}

func (s *Store) ClearToken() error {
	return s.Delete(KeyToken, KeyTokenExpiration)
}

// SaveCart stores the ordered list of book ids in the cart.
func (s *Store) SaveCart(ids []string) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return s.Set(KeyCart, string(data))
}

func (s *Store) LoadCart() ([]string, error) {
	raw, err := s.Get(KeyCart)
	if err != nil {
		return nil, err
	}
	var ids []string
	if err = json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}
