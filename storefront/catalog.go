package storefront

import (
	"context"
	"strings"

	"bookStore/entities"
	"bookStore/models"
)

// PageSize is the number of books on one catalog page.
const PageSize = 48

// IsAllCategories reports whether category selects every book.
func IsAllCategories(category string) bool {
	c := strings.TrimSpace(category)
	return c == "" || c == models.CategoryAll || strings.EqualFold(c, "all")
}

// Matches is the catalog filter: the category must be "all" or equal the
// book's category ignoring case, and a non-empty query must be a case
// insensitive substring of the title, author or category.
func Matches(b entities.Book, category, query string) bool {
	if !IsAllCategories(category) && !strings.EqualFold(b.Category, strings.TrimSpace(category)) {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(b.Title), q) ||
		strings.Contains(strings.ToLower(b.Author), q) ||
		strings.Contains(strings.ToLower(b.Category), q)
}

func Filter(books []entities.Book, category, query string) []entities.Book {
	res := make([]entities.Book, 0, len(books))
	for _, b := range books {
		if Matches(b, category, query) {
			res = append(res, b)
		}
	}
	return res
}

// TotalPages is ceil(n / size).
func TotalPages(n, size int) int {
	if size <= 0 {
		return 1
	}
	return (n + size - 1) / size
}

// ClampPage keeps page inside [1, totalPages]. With no pages it is 1.
func ClampPage(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

type CatalogState struct {
	Books    []entities.Book
	Loaded   bool
	Category string
	Query    string
	Page     int
}

// CatalogView is what one render of the catalog shows.
type CatalogView struct {
	Items      []entities.Book
	Matches    int
	Page       int
	TotalPages int
	NoData     bool
}

type BooksAPI interface {
	FetchAllBooks(ctx context.Context) ([]entities.Book, error)
}

type Catalog struct {
	store    *Store[CatalogState]
	pageSize int
}

func NewCatalog(pageSize int) *Catalog {
	if pageSize <= 0 {
		pageSize = PageSize
	}
	return &Catalog{
		store:    NewStore(CatalogState{Category: models.CategoryAll, Page: 1}),
		pageSize: pageSize,
	}
}

// Load fetches the whole book list. On failure the catalog stays in its
// no-data state.
func (c *Catalog) Load(ctx context.Context, api BooksAPI) error {
	books, err := api.FetchAllBooks(ctx)
	if err != nil {
		return err
	}
	c.SetBooks(books)
	return nil
}

func (c *Catalog) SetBooks(books []entities.Book) {
	c.store.Update(func(st CatalogState) CatalogState {
		st.Books = books
		st.Loaded = true
		st.Page = c.clamp(st, st.Page)
		return st
	})
}

func (c *Catalog) SetCategory(category string) {
	c.store.Update(func(st CatalogState) CatalogState {
		if IsAllCategories(category) {
			category = models.CategoryAll
		}
		if st.Category != category {
			st.Category = category
			st.Page = 1
		}
		return st
	})
}

func (c *Catalog) SetQuery(query string) {
	query = strings.TrimSpace(query)
	c.store.Update(func(st CatalogState) CatalogState {
		if st.Query != query {
			st.Query = query
			st.Page = 1
		}
		return st
	})
}

func (c *Catalog) SetPage(page int) {
	c.store.Update(func(st CatalogState) CatalogState {
		st.Page = c.clamp(st, page)
		return st
	})
}

func (c *Catalog) clamp(st CatalogState, page int) int {
	n := len(Filter(st.Books, st.Category, st.Query))
	return ClampPage(page, TotalPages(n, c.pageSize))
}

func (c *Catalog) State() CatalogState {
	return c.store.Get()
}

func (c *Catalog) View() CatalogView {
	st := c.store.Get()
	if !st.Loaded || len(st.Books) == 0 {
		return CatalogView{Page: 1, NoData: true}
	}
	matches := Filter(st.Books, st.Category, st.Query)
	total := TotalPages(len(matches), c.pageSize)
	page := ClampPage(st.Page, total)
	start := (page - 1) * c.pageSize
	end := start + c.pageSize
	if start > len(matches) {
		start = len(matches)
	}
	if end > len(matches) {
		end = len(matches)
	}
	return CatalogView{
		Items:      matches[start:end],
		Matches:    len(matches),
		Page:       page,
		TotalPages: total,
	}
}

func (c *Catalog) Subscribe(fn func(CatalogState)) (unsubscribe func()) {
	return c.store.Subscribe(fn)
}
