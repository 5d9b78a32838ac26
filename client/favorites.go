package client

import (
	"context"
	"net/http"
	"net/url"

	"bookStore/entities"
)

func FavoritesKey(userId string) string {
	return "favorites/" + userId
}

func (c *Client) Favorites(ctx context.Context, userId string) ([]entities.Book, error) {
	return query(ctx, c, FavoritesKey(userId), func(ctx context.Context) (res []entities.Book, err error) {
		err = c.doJSON(ctx, http.MethodGet, "/api/favorites/"+url.PathEscape(userId), nil, &res)
		return
	}, func([]entities.Book) []Tag { return []Tag{{Type: TagFavorites, Id: userId}} })
}

// SetFavorites replaces the user's whole favorites list with bookIds and
// returns the list the server stored.
func (c *Client) SetFavorites(ctx context.Context, userId string, bookIds []string) (books []entities.Book, err error) {
	if bookIds == nil {
		bookIds = []string{}
	}
	err = c.doJSON(ctx, http.MethodPost, "/api/favorites/"+url.PathEscape(userId), entities.FavoritesRequest{BookIds: bookIds}, &books)
	if err != nil {
		return
	}
	c.Invalidate(ctx, Tag{Type: TagFavorites, Id: userId})
	return
}
