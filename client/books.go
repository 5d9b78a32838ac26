package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"bookStore/entities"
)

func BooksKey(page, limit int) string {
	return fmt.Sprintf("books?page=%d&limit=%d", page, limit)
}

func BookKey(id string) string {
	return "book/" + id
}

func BooksBatchKey(ids []string) string {
	return "books/batch/" + strings.Join(ids, ",")
}

func bookListTags(books []entities.Book) []Tag {
	tags := []Tag{{Type: TagBooks}}
	for _, b := range books {
		tags = append(tags, Tag{Type: TagBooks, Id: b.Id})
	}
	return tags
}

// FetchBooks lists one page of books. A limit of zero asks for all of them.
func (c *Client) FetchBooks(ctx context.Context, page, limit int) (entities.BookPage, error) {
	return query(ctx, c, BooksKey(page, limit), func(ctx context.Context) (res entities.BookPage, err error) {
		q := url.Values{}
		if page > 0 {
			q.Set("page", strconv.Itoa(page))
		}
		if limit > 0 {
			q.Set("limit", strconv.Itoa(limit))
		}
		path := "/api/books"
		if len(q) > 0 {
			path += "?" + q.Encode()
		}
		err = c.doJSON(ctx, http.MethodGet, path, nil, &res)
		return
	}, func(p entities.BookPage) []Tag { return bookListTags(p.Books) })
}

func (c *Client) FetchAllBooks(ctx context.Context) ([]entities.Book, error) {
	page, err := c.FetchBooks(ctx, 0, 0)
	return page.Books, err
}

func (c *Client) FetchBook(ctx context.Context, id string) (entities.Book, error) {
	return query(ctx, c, BookKey(id), func(ctx context.Context) (res entities.Book, err error) {
		err = c.doJSON(ctx, http.MethodGet, "/api/books/"+url.PathEscape(id), nil, &res)
		return
	}, func(b entities.Book) []Tag { return []Tag{{Type: TagBooks, Id: id}} })
}

func (c *Client) FetchBooksByIds(ctx context.Context, ids []string) ([]entities.Book, error) {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	return query(ctx, c, BooksBatchKey(sorted), func(ctx context.Context) (res []entities.Book, err error) {
		err = c.doJSON(ctx, http.MethodPost, "/api/books/batch", entities.BatchRequest{Ids: ids}, &res)
		return
	}, bookListTags)
}

// Upload is a file attached to a book form.
type Upload struct {
	Filename string
	Data     io.Reader
}

// BookForm is the multipart payload of a book create or edit.
type BookForm struct {
	Fields entities.BookRequest
	Cover  *Upload
	Images []Upload
}

func (f BookForm) encode() (body *bytes.Buffer, contentType string, err error) {
	body = &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	write := func(key, value string) {
		if err == nil {
			err = mw.WriteField(key, value)
		}
	}
	r := f.Fields
	if r.Title != nil {
		write("title", *r.Title)
	}
	if r.Author != nil {
		write("author", *r.Author)
	}
	if r.Description != nil {
		write("description", *r.Description)
	}
	if r.Category != nil {
		write("category", *r.Category)
	}
	if r.OldPrice != nil {
		write("oldPrice", r.OldPrice.String())
	}
	if r.NewPrice != nil {
		write("newPrice", r.NewPrice.String())
	}
	if r.CoverImage != nil && f.Cover == nil {
		write("coverImage", *r.CoverImage)
	}
	if r.Trending != nil {
		write("trending", strconv.FormatBool(*r.Trending))
	}
	if r.Recommended != nil {
		write("recommended", strconv.FormatBool(*r.Recommended))
	}

	attach := func(field string, u Upload) {
		if err != nil {
			return
		}
		var part io.Writer
		if part, err = mw.CreateFormFile(field, u.Filename); err != nil {
			return
		}
		_, err = io.Copy(part, u.Data)
	}
	if f.Cover != nil {
		attach("coverImage", *f.Cover)
	}
	for _, img := range f.Images {
		attach("images", img)
	}
	if err != nil {
		return
	}
	err = mw.Close()
	contentType = mw.FormDataContentType()
	return
}

func (c *Client) CreateBook(ctx context.Context, form BookForm) (book entities.Book, err error) {
	body, contentType, err := form.encode()
	if err != nil {
		return
	}
	if err = c.do(ctx, http.MethodPost, "/api/books/create-book", body, contentType, &book); err != nil {
		return
	}
	c.Invalidate(ctx, Tag{Type: TagBooks})
	return
}

// UpdateBook sends a JSON partial update.
func (c *Client) UpdateBook(ctx context.Context, id string, req entities.BookRequest) (book entities.Book, err error) {
	if err = c.doJSON(ctx, http.MethodPut, "/api/books/edit/"+url.PathEscape(id), req, &book); err != nil {
		return
	}
	c.Invalidate(ctx, Tag{Type: TagBooks, Id: id})
	return
}

// UpdateBookForm sends a multipart partial update, used when images change.
func (c *Client) UpdateBookForm(ctx context.Context, id string, form BookForm) (book entities.Book, err error) {
	body, contentType, err := form.encode()
	if err != nil {
		return
	}
	if err = c.do(ctx, http.MethodPut, "/api/books/edit/"+url.PathEscape(id), body, contentType, &book); err != nil {
		return
	}
	c.Invalidate(ctx, Tag{Type: TagBooks, Id: id})
	return
}

func (c *Client) DeleteBook(ctx context.Context, id string) (err error) {
	if err = c.doJSON(ctx, http.MethodDelete, "/api/books/"+url.PathEscape(id), nil, nil); err != nil {
		return
	}
	c.Invalidate(ctx, Tag{Type: TagBooks})
	return
}
