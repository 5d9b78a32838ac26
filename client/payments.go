package client

import (
	"context"
	"net/http"
	"net/url"

	"bookStore/entities"
	"bookStore/models"
)

func (c *Client) CreateCheckoutSession(ctx context.Context, req entities.CheckoutRequest) (session entities.CheckoutSession, err error) {
	err = c.doJSON(ctx, http.MethodPost, "/api/create-checkout-session", req, &session)
	return
}

// CheckPayment is never cached, every call reaches the server.
func (c *Client) CheckPayment(ctx context.Context, sessionId string) (status entities.PaymentStatus, err error) {
	err = c.doJSON(ctx, http.MethodGet, "/api/check-payment/"+url.PathEscape(sessionId), nil, &status)
	if err != nil {
		return
	}
	if status.Status == models.PaymentPaid && status.OrderId != "" {
		c.Invalidate(ctx, Tag{Type: TagOrders, Id: status.OrderId})
	}
	return
}
