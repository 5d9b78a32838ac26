package services

import (
	"context"
	"errors"

	"bookStore/entities"
	"bookStore/models"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

const PaymentCurrency = "thb"

// PaymentGateway hosts the card payment page for an order.
type PaymentGateway interface {
	CreateSession(ctx context.Context, orderId string, items []entities.CheckoutItem, successURL, cancelURL string) (sessionId string, url string, err error)
	// SessionStatus reports the gateway payment status ("paid", "unpaid", ...)
	// and the order id the session was opened for.
	SessionStatus(ctx context.Context, sessionId string) (status string, orderId string, err error)
}

var ErrPaymentsDisabled = errors.New("payments are not configured")

type StripeGateway struct {
	sc *client.API
}

// NewStripeGateway returns a gateway backed by Stripe Checkout. An empty key
// yields a gateway that refuses every call.
func NewStripeGateway(secretKey string) *StripeGateway {
	if secretKey == "" {
		return &StripeGateway{}
	}
	return &StripeGateway{sc: client.New(secretKey, nil)}
}

// toMinorUnits converts a baht price into satang.
func toMinorUnits(price decimal.Decimal) int64 {
	return price.Shift(2).Round(0).IntPart()
}

func (g *StripeGateway) CreateSession(ctx context.Context, orderId string, items []entities.CheckoutItem, successURL, cancelURL string) (sessionId string, url string, err error) {
	if g.sc == nil {
		err = ErrPaymentsDisabled
		return
	}
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(successURL),
		CancelURL:         stripe.String(cancelURL),
		ClientReferenceID: stripe.String(orderId),
	}
	params.Context = ctx
	params.AddMetadata("orderId", orderId)
	for _, item := range items {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(PaymentCurrency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Title),
				},
				UnitAmount: stripe.Int64(toMinorUnits(item.Price)),
			},
			Quantity: stripe.Int64(item.Quantity),
		})
	}

	s, err := g.sc.CheckoutSessions.New(params)
	if err != nil {
		log.Error().Err(err).Str("order", orderId).Msg("CreateSession")
		err = models.ErrServerError
		return
	}
	sessionId = s.ID
	url = s.URL
	return
}

func (g *StripeGateway) SessionStatus(ctx context.Context, sessionId string) (status string, orderId string, err error) {
	if g.sc == nil {
		err = ErrPaymentsDisabled
		return
	}
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	s, err := g.sc.CheckoutSessions.Get(sessionId, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode == 404 {
			err = models.ErrNotFoundError
			return
		}
		log.Error().Err(err).Str("session", sessionId).Msg("SessionStatus")
		err = models.ErrServerError
		return
	}
	status = string(s.PaymentStatus)
	orderId = s.Metadata["orderId"]
	if orderId == "" {
		orderId = s.ClientReferenceID
	}
	return
}
