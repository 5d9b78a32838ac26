package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookStore/models"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type BookRepository interface {
	GetBookById(id string) (bModel models.Book_db, exists bool, err error)
	GetBooks(offset, limit int) (books []models.Book_db, total int, err error)
	GetBooksByIds(ids []string) (books []models.Book_db, err error)
	CreateBook(bModel models.Book_db) (err error)
	UpdateBook(id string, upd models.BookUpdate) (updated models.Book_db, err error)
	DeleteBook(id string) (err error)
	CountBooks() (total int, trending int, err error)
}

type BookRepo struct {
	db *sql.DB
}

const bookColumns = "Id, Title, Author, Description, Category, OldPrice, NewPrice, CoverImage, Images, Trending, Recommended, CreatedAt, UpdatedAt"

func NewBookRepository(conn *sql.DB) (BookRepository, error) {
	if conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := conn.Ping()
	if err != nil {
		return nil, err
	}
	return &BookRepo{
		db: conn,
	}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (b models.Book_db, err error) {
	err = row.Scan(&b.Id, &b.Title, &b.Author, &b.Description, &b.Category,
		&b.OldPrice, &b.NewPrice, &b.CoverImage, pq.Array(&b.Images),
		&b.Trending, &b.Recommended, &b.CreatedAt, &b.UpdatedAt)
	return
}

func (b *BookRepo) GetBookById(id string) (bModel models.Book_db, exists bool, err error) {
	row := b.db.QueryRow("SELECT "+bookColumns+" FROM Books WHERE Id = $1", id)
	bModel, err = scanBook(row)
	if err != nil {
		if err == sql.ErrNoRows {
			err = nil
		} else {
			log.Error().Err(err).Msg("GetBookById")
			err = models.ErrServerError
		}
		return
	}
	exists = true
	return
}

func (b *BookRepo) GetBooks(offset, limit int) (books []models.Book_db, total int, err error) {
	err = b.db.QueryRow("SELECT COUNT(*) FROM Books").Scan(&total)
	if err != nil {
		log.Error().Err(err).Msg("GetBooks[1]")
		err = models.ErrServerError
		return
	}

	query := "SELECT " + bookColumns + " FROM Books ORDER BY CreatedAt DESC"
	var params []any
	if limit > 0 {
		query = query + " LIMIT $1 OFFSET $2"
		params = append(params, limit, offset)
	}
	rows, e := b.db.Query(query, params...)
	if e != nil {
		log.Error().Err(e).Msg("GetBooks[2]")
		err = models.ErrServerError
		return
	}
	defer rows.Close()

	for rows.Next() {
		var bk models.Book_db
		bk, err = scanBook(rows)
		if err != nil {
			log.Error().Err(err).Msg("GetBooks[3]")
			err = models.ErrServerError
			return
		}
		books = append(books, bk)
	}
	if err = rows.Err(); err != nil {
		log.Error().Err(err).Msg("GetBooks[4]")
		err = models.ErrServerError
	}
	return
}

// GetBooksByIds returns the books in the order of ids, silently skipping
// unknown ids.
func (b *BookRepo) GetBooksByIds(ids []string) (books []models.Book_db, err error) {
	if len(ids) == 0 {
		return
	}
	rows, e := b.db.Query("SELECT "+bookColumns+" FROM Books WHERE Id = ANY($1)", pq.Array(ids))
	if e != nil {
		log.Error().Err(e).Msg("GetBooksByIds[1]")
		err = models.ErrServerError
		return
	}
	defer rows.Close()

	found := make(map[string]models.Book_db, len(ids))
	for rows.Next() {
		var bk models.Book_db
		bk, err = scanBook(rows)
		if err != nil {
			log.Error().Err(err).Msg("GetBooksByIds[2]")
			err = models.ErrServerError
			return
		}
		found[bk.Id] = bk
	}
	if err = rows.Err(); err != nil {
		log.Error().Err(err).Msg("GetBooksByIds[3]")
		err = models.ErrServerError
		return
	}
	for _, id := range ids {
		if bk, ok := found[id]; ok {
			books = append(books, bk)
			delete(found, id)
		}
	}
	return
}

func (b *BookRepo) CreateBook(bModel models.Book_db) (err error) {
	_, err = b.db.Exec("INSERT INTO Books ("+bookColumns+") VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)",
		bModel.Id, bModel.Title, bModel.Author, bModel.Description, bModel.Category,
		bModel.OldPrice, bModel.NewPrice, bModel.CoverImage, pq.Array(bModel.Images),
		bModel.Trending, bModel.Recommended, bModel.CreatedAt, bModel.UpdatedAt)
	if err != nil {
		log.Error().Err(err).Msg("CreateBook")
		err = models.ErrServerError
	}
	return
}

func (b *BookRepo) UpdateBook(id string, upd models.BookUpdate) (updated models.Book_db, err error) {
	var sets []string
	var params []any
	add := func(column string, value any) {
		params = append(params, value)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(params)))
	}

	if upd.Title != nil {
		add("Title", *upd.Title)
	}
	if upd.Author != nil {
		add("Author", *upd.Author)
	}
	if upd.Description != nil {
		add("Description", *upd.Description)
	}
	if upd.Category != nil {
		add("Category", *upd.Category)
	}
	if upd.OldPrice != nil {
		add("OldPrice", *upd.OldPrice)
	}
	if upd.NewPrice != nil {
		add("NewPrice", *upd.NewPrice)
	}
	if upd.CoverImage != nil {
		add("CoverImage", *upd.CoverImage)
	}
	if upd.Images != nil {
		add("Images", pq.Array(upd.Images))
	}
	if upd.Trending != nil {
		add("Trending", *upd.Trending)
	}
	if upd.Recommended != nil {
		add("Recommended", *upd.Recommended)
	}
	add("UpdatedAt", time.Now().UTC())

	params = append(params, id)
	query := fmt.Sprintf("UPDATE Books SET %s WHERE Id=$%d RETURNING %s", strings.Join(sets, ", "), len(params), bookColumns)
	updated, err = scanBook(b.db.QueryRow(query, params...))
	if err != nil {
		if err == sql.ErrNoRows {
			err = models.ErrNotFoundError
		} else {
			log.Error().Err(err).Msg("UpdateBook")
			err = models.ErrServerError
		}
	}
	return
}

func (b *BookRepo) DeleteBook(id string) (err error) {
	res, e := b.db.Exec("DELETE FROM Books WHERE Id=$1", id)
	if e != nil {
		log.Error().Err(e).Msg("DeleteBook[1]")
		err = models.ErrServerError
		return
	}
	n, e := res.RowsAffected()
	if e != nil {
		log.Error().Err(e).Msg("DeleteBook[2]")
		err = models.ErrServerError
		return
	}
	if n == 0 {
		err = models.ErrNotFoundError
	}
	return
}

func (b *BookRepo) CountBooks() (total int, trending int, err error) {
	err = b.db.QueryRow("SELECT COUNT(*), COUNT(*) FILTER (WHERE Trending) FROM Books").Scan(&total, &trending)
	if err != nil {
		log.Error().Err(err).Msg("CountBooks")
		err = models.ErrServerError
	}
	return
}
