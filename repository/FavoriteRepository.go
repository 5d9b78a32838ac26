package repository

import (
	"database/sql"
	"errors"
	"time"

	"bookStore/models"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type FavoriteRepository interface {
	GetFavoriteIds(userId string) (bookIds []string, err error)
	SetFavoriteIds(userId string, bookIds []string) (err error)
}

type FavoriteRepo struct {
	db *sql.DB
}

func NewFavoriteRepository(conn *sql.DB) (FavoriteRepository, error) {
	if conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := conn.Ping()
	if err != nil {
		return nil, err
	}
	return &FavoriteRepo{
		db: conn,
	}, nil
}

// GetFavoriteIds returns an empty list for users that never saved favorites.
func (f *FavoriteRepo) GetFavoriteIds(userId string) (bookIds []string, err error) {
	err = f.db.QueryRow("SELECT BookIds FROM Favorites WHERE UserId = $1", userId).Scan(pq.Array(&bookIds))
	if err != nil {
		if err == sql.ErrNoRows {
			err = nil
			bookIds = []string{}
			return
		}
		log.Error().Err(err).Msg("GetFavoriteIds")
		err = models.ErrServerError
	}
	return
}

// SetFavoriteIds replaces the whole list.
func (f *FavoriteRepo) SetFavoriteIds(userId string, bookIds []string) (err error) {
	if bookIds == nil {
		bookIds = []string{}
	}
	_, err = f.db.Exec(`INSERT INTO Favorites (UserId, BookIds, UpdatedAt) VALUES ($1, $2, $3)
		ON CONFLICT (UserId) DO UPDATE SET BookIds = EXCLUDED.BookIds, UpdatedAt = EXCLUDED.UpdatedAt`,
		userId, pq.Array(bookIds), time.Now().UTC())
	if err != nil {
		log.Error().Err(err).Msg("SetFavoriteIds")
		err = models.ErrServerError
	}
	return
}
