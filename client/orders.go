package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"bookStore/entities"
)

func OrdersByEmailKey(email string) string {
	return "orders/email/" + strings.ToLower(email)
}

const AllOrdersKey = "orders/all"

func orderListTags(orders []entities.Order) []Tag {
	tags := []Tag{{Type: TagOrders}}
	for _, o := range orders {
		tags = append(tags, Tag{Type: TagOrders, Id: o.Id})
	}
	return tags
}

func (c *Client) OrdersByEmail(ctx context.Context, email string) ([]entities.Order, error) {
	return query(ctx, c, OrdersByEmailKey(email), func(ctx context.Context) (res []entities.Order, err error) {
		err = c.doJSON(ctx, http.MethodGet, "/api/orders/email/"+url.PathEscape(email), nil, &res)
		return
	}, orderListTags)
}

func (c *Client) AllOrders(ctx context.Context) ([]entities.Order, error) {
	return query(ctx, c, AllOrdersKey, func(ctx context.Context) (res []entities.Order, err error) {
		err = c.doJSON(ctx, http.MethodGet, "/api/orders/all", nil, &res)
		return
	}, orderListTags)
}

func (c *Client) CreateOrder(ctx context.Context, req entities.OrderRequest) (order entities.Order, err error) {
	if err = c.doJSON(ctx, http.MethodPost, "/api/orders", req, &order); err != nil {
		return
	}
	c.Invalidate(ctx, Tag{Type: TagOrders})
	return
}

func (c *Client) UpdateOrderStatus(ctx context.Context, orderId string, status string) (order entities.Order, err error) {
	err = c.doJSON(ctx, http.MethodPatch, "/api/orders/status/"+url.PathEscape(orderId), entities.StatusRequest{Status: status}, &order)
	if err != nil {
		return
	}
	c.Invalidate(ctx, Tag{Type: TagOrders, Id: orderId})
	return
}

func (c *Client) CancelOrder(ctx context.Context, orderId string) (order entities.Order, err error) {
	if err = c.doJSON(ctx, http.MethodPatch, "/api/orders/cancel/"+url.PathEscape(orderId), nil, &order); err != nil {
		return
	}
	c.Invalidate(ctx, Tag{Type: TagOrders, Id: orderId})
	return
}

func (c *Client) DeleteOrder(ctx context.Context, orderId string) (err error) {
	if err = c.doJSON(ctx, http.MethodDelete, "/api/orders/delete/"+url.PathEscape(orderId), nil, nil); err != nil {
		return
	}
	c.Invalidate(ctx, Tag{Type: TagOrders})
	return
}
