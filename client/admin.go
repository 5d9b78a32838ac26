package client

import (
	"context"
	"net/http"

	"bookStore/entities"
	"bookStore/models"
)

func (c *Client) AdminLogin(ctx context.Context, username, password string) (res entities.LoginResponse, err error) {
	err = c.doJSON(ctx, http.MethodPost, "/api/auth/admin", models.Credentials{Username: username, Password: password}, &res)
	return
}

func (c *Client) AdminLogout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

func (c *Client) AdminStats(ctx context.Context) (stats entities.AdminStats, err error) {
	err = c.doJSON(ctx, http.MethodGet, "/api/admin", nil, &stats)
	return
}
