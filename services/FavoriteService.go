package services

import (
	"strings"

	"bookStore/entities"
	"bookStore/models"
	"bookStore/repository"
)

type FavoriteService struct {
	fr repository.FavoriteRepository
	br repository.BookRepository
}

func NewFavoriteService(favRepo repository.FavoriteRepository, bookRepo repository.BookRepository) FavoriteService {
	return FavoriteService{
		fr: favRepo,
		br: bookRepo,
	}
}

func (fs *FavoriteService) GetFavorites(userId string) (books []entities.Book, err error) {
	if strings.TrimSpace(userId) == "" {
		err = models.ErrBadRequest
		return
	}
	ids, err := fs.fr.GetFavoriteIds(userId)
	if err != nil {
		return
	}
	bModels, err := fs.br.GetBooksByIds(ids)
	if err != nil {
		return
	}
	books = booksToEntities(bModels)
	return
}

// SetFavorites replaces the user's whole list and returns the stored books.
// Duplicate and empty ids are dropped, order is kept.
func (fs *FavoriteService) SetFavorites(userId string, bookIds []string) (books []entities.Book, err error) {
	if strings.TrimSpace(userId) == "" {
		err = models.ErrBadRequest
		return
	}
	seen := make(map[string]bool, len(bookIds))
	ids := make([]string, 0, len(bookIds))
	for _, id := range bookIds {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	err = fs.fr.SetFavoriteIds(userId, ids)
	if err != nil {
		return
	}
	bModels, err := fs.br.GetBooksByIds(ids)
	if err != nil {
		return
	}
	books = booksToEntities(bModels)
	return
}
