package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"bookStore/entities"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalidationDuringFetchIsNotCached(t *testing.T) {
	c := newCache()
	ctx := context.Background()
	started := make(chan struct{})
	release := make(chan struct{})

	done := make(chan any)
	go func() {
		v, err := c.load(ctx, "books", func(ctx context.Context) (any, []Tag, error) {
			close(started)
			<-release
			return "stale", []Tag{{Type: TagBooks, Id: "b1"}}, nil
		})
		assert.NoError(t, err)
		done <- v
	}()

	<-started
	c.invalidate(ctx, Tag{Type: TagBooks})
	close(release)
	assert.Equal(t, "stale", <-done)

	_, ok := c.get("books")
	assert.False(t, ok)

	v, err := c.load(ctx, "books", func(ctx context.Context) (any, []Tag, error) {
		return "fresh", []Tag{{Type: TagBooks}}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", v)
	v, ok = c.get("books")
	assert.True(t, ok)
	assert.Equal(t, "fresh", v)
}

func TestUnrelatedInvalidationKeepsFetchedValue(t *testing.T) {
	c := newCache()
	ctx := context.Background()
	started := make(chan struct{})
	release := make(chan struct{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := c.load(ctx, "books", func(ctx context.Context) (any, []Tag, error) {
			close(started)
			<-release
			return "books", []Tag{{Type: TagBooks}}, nil
		})
		assert.NoError(t, err)
	}()

	<-started
	c.invalidate(ctx, Tag{Type: TagOrders})
	close(release)
	<-done

	_, ok := c.get("books")
	assert.True(t, ok)
}

func TestDeleteDuringBookListFetch(t *testing.T) {
	var (
		mu    sync.Mutex
		books = []entities.Book{
			{Id: "b1", Title: "หนึ่ง", NewPrice: decimal.NewFromInt(100)},
			{Id: "b2", Title: "สอง", NewPrice: decimal.NewFromInt(250)},
		}
		gets int
	)
	started := make(chan struct{})
	release := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/books":
			mu.Lock()
			gets++
			first := gets == 1
			snapshot := append([]entities.Book(nil), books...)
			mu.Unlock()
			if first {
				close(started)
				<-release
			}
			json.NewEncoder(w).Encode(entities.BookPage{Books: snapshot, Total: len(snapshot), CurrentPage: 1, TotalPages: 1})
		case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/api/books/"):
			id := strings.TrimPrefix(r.URL.Path, "/api/books/")
			mu.Lock()
			for i, b := range books {
				if b.Id == id {
					books = append(books[:i], books[i+1:]...)
					break
				}
			}
			mu.Unlock()
			json.NewEncoder(w).Encode(map[string]string{"message": "deleted"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL)
	ctx := context.Background()

	done := make(chan []entities.Book)
	go func() {
		res, err := c.FetchAllBooks(ctx)
		assert.NoError(t, err)
		done <- res
	}()

	<-started
	require.NoError(t, c.DeleteBook(ctx, "b1"))
	close(release)
	assert.Len(t, <-done, 2)

	res, err := c.FetchAllBooks(ctx)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "b2", res[0].Id)
}
