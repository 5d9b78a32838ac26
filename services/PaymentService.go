package services

import (
	"context"
	"net/url"
	"strings"

	"bookStore/entities"
	"bookStore/models"
	"bookStore/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type PaymentService struct {
	gw          PaymentGateway
	or          repository.OrderRepository
	br          repository.BookRepository
	cr          repository.CheckoutRepository
	frontendUrl string
}

func NewPaymentService(gateway PaymentGateway, orderRepo repository.OrderRepository, bookRepo repository.BookRepository, checkoutRepo repository.CheckoutRepository, frontendUrl string) PaymentService {
	return PaymentService{
		gw:          gateway,
		or:          orderRepo,
		br:          bookRepo,
		cr:          checkoutRepo,
		frontendUrl: strings.TrimRight(frontendUrl, "/"),
	}
}

func (ps *PaymentService) successURL() string {
	return ps.frontendUrl + "/success?session_id={CHECKOUT_SESSION_ID}"
}

func (ps *PaymentService) cancelURL(orderId string) string {
	return ps.frontendUrl + "/cancel?order_id=" + url.QueryEscape(orderId)
}

// lineItems prices the order from the books it references. When the current
// book prices no longer add up to the stored total, the order is charged as a
// single line so the customer pays exactly what the order recorded.
func (ps *PaymentService) lineItems(order models.Order_db) (items []entities.CheckoutItem, err error) {
	books, err := ps.br.GetBooksByIds(order.ProductIds)
	if err != nil {
		return
	}
	sum := decimal.Zero
	for _, b := range books {
		items = append(items, entities.CheckoutItem{Id: b.Id, Title: b.Title, Price: b.NewPrice, Quantity: 1})
		sum = sum.Add(b.NewPrice)
	}
	if len(items) == 0 || !sum.Equal(order.TotalPrice) {
		log.Warn().Str("order", order.Id).Str("total", order.TotalPrice.String()).Str("books", sum.String()).Msg("lineItems: charging order total")
		items = []entities.CheckoutItem{{Id: order.Id, Title: "คำสั่งซื้อ " + order.Id, Price: order.TotalPrice, Quantity: 1}}
	}
	return
}

// CreateCheckoutSession opens a hosted payment page for a stored order. Prices
// always come from the server side; items sent by the client are ignored.
func (ps *PaymentService) CreateCheckoutSession(ctx context.Context, req entities.CheckoutRequest) (res entities.CheckoutSession, err error) {
	if req.OrderId == "" {
		err = models.ErrBadRequest
		return
	}

	order, exists, err := ps.or.GetOrderById(req.OrderId)
	if err != nil {
		return
	}
	if !exists {
		err = models.ErrNotFoundError
		return
	}
	if order.PaymentStatus == models.PaymentPaid || order.PaymentStatus == models.PaymentCancelled {
		log.Warn().Str("order", order.Id).Str("payment", order.PaymentStatus).Msg("CreateCheckoutSession: order is closed")
		err = models.ErrNotAllowed
		return
	}

	items, err := ps.lineItems(order)
	if err != nil {
		return
	}
	sessionId, sessionUrl, err := ps.gw.CreateSession(ctx, order.Id, items, ps.successURL(), ps.cancelURL(order.Id))
	if err != nil {
		return
	}
	res = entities.CheckoutSession{
		SessionId: sessionId,
		Url:       sessionUrl,
		OrderId:   order.Id,
		Status:    models.PaymentPending,
	}
	if err = ps.cr.SetCheckout(res); err != nil {
		return
	}
	err = ps.or.SetCheckoutSession(order.Id, sessionId)
	return
}

// CheckPayment asks the gateway about a session and marks the order paid the
// first time the gateway reports it paid.
func (ps *PaymentService) CheckPayment(ctx context.Context, sessionId string) (res entities.PaymentStatus, err error) {
	if sessionId == "" {
		err = models.ErrBadRequest
		return
	}
	checkout, known, err := ps.cr.GetCheckout(sessionId)
	if err != nil {
		return
	}
	status, orderId, err := ps.gw.SessionStatus(ctx, sessionId)
	if err != nil {
		return
	}
	if known {
		orderId = checkout.OrderId
	}
	res = entities.PaymentStatus{Status: status, OrderId: orderId}
	if status != models.PaymentPaid || orderId == "" {
		return
	}

	order, exists, err := ps.or.GetOrderById(orderId)
	if err != nil {
		return
	}
	if !exists {
		err = models.ErrNotFoundError
		return
	}
	if order.PaymentStatus != models.PaymentPaid {
		log.Info().Str("order", orderId).Msg("order paid")
		if err = ps.or.SetPaymentStatus(orderId, models.StatusPaid, models.PaymentPaid); err != nil {
			return
		}
	}
	if known && checkout.Status != models.PaymentPaid {
		err = ps.cr.SetCheckoutStatus(sessionId, models.PaymentPaid)
	}
	return
}
