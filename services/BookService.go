package services

import (
	"database/sql"
	"io"
	"strings"
	"time"

	"bookStore/entities"
	"bookStore/models"
	"bookStore/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// MaxExtraImages is the number of images a book may carry besides its cover.
const MaxExtraImages = 4

type BookService struct {
	br repository.BookRepository
	ir repository.ImageRepository
}

func NewBookService(bRepo repository.BookRepository, iRepo repository.ImageRepository) BookService {
	return BookService{
		br: bRepo,
		ir: iRepo,
	}
}

func BookToEntity(b models.Book_db) entities.Book {
	images := b.Images
	if images == nil {
		images = []string{}
	}
	return entities.Book{
		Id:          b.Id,
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description.String,
		Category:    b.Category,
		OldPrice:    b.OldPrice,
		NewPrice:    b.NewPrice,
		CoverImage:  b.CoverImage,
		Images:      images,
		Trending:    b.Trending,
		Recommended: b.Recommended,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func booksToEntities(books []models.Book_db) []entities.Book {
	res := make([]entities.Book, 0, len(books))
	for _, b := range books {
		res = append(res, BookToEntity(b))
	}
	return res
}

// GetBooks returns one page of the catalog, newest first. A limit of zero or
// less returns every book on a single page.
func (bs *BookService) GetBooks(page, limit int) (res entities.BookPage, err error) {
	if page < 1 {
		page = 1
	}
	offset := 0
	if limit > 0 {
		offset = (page - 1) * limit
	}
	books, total, err := bs.br.GetBooks(offset, limit)
	if err != nil {
		return
	}
	res.Books = booksToEntities(books)
	res.Total = total
	res.CurrentPage = page
	res.TotalPages = 1
	if limit > 0 {
		res.TotalPages = (total + limit - 1) / limit
	} else {
		res.CurrentPage = 1
	}
	return
}

func (bs *BookService) GetBookById(id string) (book entities.Book, err error) {
	bModel, exists, err := bs.br.GetBookById(id)
	if err != nil {
		return
	}
	if !exists {
		err = models.ErrNotFoundError
		return
	}
	book = BookToEntity(bModel)
	return
}

func (bs *BookService) GetBooksByIds(ids []string) (books []entities.Book, err error) {
	bModels, err := bs.br.GetBooksByIds(ids)
	if err != nil {
		return
	}
	books = booksToEntities(bModels)
	return
}

func (bs *BookService) SaveImage(src io.Reader, filename string) (url string, err error) {
	url, err = bs.ir.SaveImage(src, filename)
	return
}

func validPrice(p *decimal.Decimal) bool {
	return p != nil && !p.IsNegative()
}

func (bs *BookService) CreateBook(req entities.BookRequest) (book entities.Book, err error) {
	if req.Title == nil || strings.TrimSpace(*req.Title) == "" ||
		req.Author == nil || strings.TrimSpace(*req.Author) == "" ||
		req.Category == nil || !models.IsCategory(*req.Category) ||
		!validPrice(req.OldPrice) || !validPrice(req.NewPrice) ||
		req.CoverImage == nil || *req.CoverImage == "" {
		log.Warn().Msg("CreateBook: missing or invalid book fields")
		err = models.ErrBadRequest
		return
	}
	if len(req.Images) > MaxExtraImages {
		log.Warn().Int("images", len(req.Images)).Msg("CreateBook: too many images")
		err = models.ErrBadRequest
		return
	}

	now := time.Now().UTC()
	bModel := models.Book_db{
		Id:         uuid.NewString(),
		Title:      strings.TrimSpace(*req.Title),
		Author:     strings.TrimSpace(*req.Author),
		Category:   *req.Category,
		OldPrice:   *req.OldPrice,
		NewPrice:   *req.NewPrice,
		CoverImage: *req.CoverImage,
		Images:     req.Images,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if bModel.Images == nil {
		bModel.Images = []string{}
	}
	if req.Description != nil {
		bModel.Description = sql.NullString{String: *req.Description, Valid: true}
	}
	if req.Trending != nil {
		bModel.Trending = *req.Trending
	}
	if req.Recommended != nil {
		bModel.Recommended = *req.Recommended
	}

	err = bs.br.CreateBook(bModel)
	if err != nil {
		return
	}
	book = BookToEntity(bModel)
	return
}

func (bs *BookService) UpdateBook(id string, req entities.BookRequest) (book entities.Book, err error) {
	if (req.Title != nil && strings.TrimSpace(*req.Title) == "") ||
		(req.Author != nil && strings.TrimSpace(*req.Author) == "") ||
		(req.Category != nil && !models.IsCategory(*req.Category)) ||
		(req.OldPrice != nil && req.OldPrice.IsNegative()) ||
		(req.NewPrice != nil && req.NewPrice.IsNegative()) ||
		(req.CoverImage != nil && *req.CoverImage == "") ||
		len(req.Images) > MaxExtraImages {
		log.Warn().Str("book", id).Msg("UpdateBook: invalid book fields")
		err = models.ErrBadRequest
		return
	}

	old, exists, err := bs.br.GetBookById(id)
	if err != nil {
		return
	}
	if !exists {
		err = models.ErrNotFoundError
		return
	}

	upd := models.BookUpdate{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Category:    req.Category,
		OldPrice:    req.OldPrice,
		NewPrice:    req.NewPrice,
		CoverImage:  req.CoverImage,
		Images:      req.Images,
		Trending:    req.Trending,
		Recommended: req.Recommended,
	}
	bModel, err := bs.br.UpdateBook(id, upd)
	if err != nil {
		return
	}
	bs.DiscardImages(replacedImages(old, bModel))
	book = BookToEntity(bModel)
	return
}

// replacedImages lists the stored images of before that after no longer uses.
func replacedImages(before, after models.Book_db) (urls []string) {
	inUse := map[string]bool{after.CoverImage: true}
	for _, img := range after.Images {
		inUse[img] = true
	}
	for _, img := range append([]string{before.CoverImage}, before.Images...) {
		if img != "" && !inUse[img] {
			urls = append(urls, img)
		}
	}
	return
}

// DiscardImages deletes stored images best effort. Failures are only logged.
func (bs *BookService) DiscardImages(urls []string) {
	for _, img := range urls {
		if e := bs.ir.DeleteImage(img); e != nil {
			log.Warn().Err(e).Str("image", img).Msg("DiscardImages: image left on disk")
		}
	}
}

// DeleteBook removes the book and, best effort, its stored images.
func (bs *BookService) DeleteBook(id string) (err error) {
	bModel, exists, err := bs.br.GetBookById(id)
	if err != nil {
		return
	}
	if !exists {
		err = models.ErrNotFoundError
		return
	}
	err = bs.br.DeleteBook(id)
	if err != nil {
		return
	}
	bs.DiscardImages(append([]string{bModel.CoverImage}, bModel.Images...))
	return
}
