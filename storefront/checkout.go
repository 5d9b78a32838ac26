package storefront

import (
	"context"
	"strings"

	"bookStore/entities"
	"bookStore/models"

	"github.com/rs/zerolog/log"
)

type PaymentMethod string

const (
	PayOnline         PaymentMethod = "online"
	PayCashOnDelivery PaymentMethod = "cod"
)

const (
	MsgOrderPlaced = "สั่งซื้อสำเร็จ"
	MsgOrderFailed = "ไม่สามารถดำเนินการสั่งซื้อได้ กรุณาลองใหม่อีกครั้ง"
)

// ShippingForm is what the customer fills in on the checkout page. The email
// comes from the session.
type ShippingForm struct {
	Name    string
	Phone   string
	Address entities.Address
	Method  PaymentMethod
}

type CheckoutAPI interface {
	CreateOrder(ctx context.Context, req entities.OrderRequest) (entities.Order, error)
	CreateCheckoutSession(ctx context.Context, req entities.CheckoutRequest) (entities.CheckoutSession, error)
	CancelOrder(ctx context.Context, orderId string) (entities.Order, error)
}

// CheckoutResult tells the caller where to go next: the hosted payment page
// for online payment, the order history otherwise.
type CheckoutResult struct {
	Order       entities.Order
	RedirectURL string
	Route       string
}

type Checkout struct {
	api      CheckoutAPI
	cart     *Cart
	session  *Session
	notifier Notifier
}

func NewCheckout(api CheckoutAPI, cart *Cart, session *Session, n Notifier) *Checkout {
	if n == nil {
		n = LogNotifier{}
	}
	return &Checkout{api: api, cart: cart, session: session, notifier: n}
}

func (c *Checkout) orderRequest(form ShippingForm, email string) entities.OrderRequest {
	req := entities.OrderRequest{
		Name:  strings.TrimSpace(form.Name),
		Email: email,
		Phone: strings.TrimSpace(form.Phone),
		Address: entities.Address{
			FullAddress: strings.TrimSpace(form.Address.FullAddress),
			District:    strings.TrimSpace(form.Address.District),
			Amphure:     strings.TrimSpace(form.Address.Amphure),
			Province:    strings.TrimSpace(form.Address.Province),
			Zipcode:     strings.TrimSpace(form.Address.Zipcode),
		},
		ProductIds:    c.cart.Ids(),
		TotalPrice:    c.cart.Total(),
		Status:        models.StatusPending,
		PaymentStatus: models.PaymentPending,
	}
	if form.Method == PayCashOnDelivery {
		req.PaymentStatus = models.PaymentCashOnDelivery
	}
	return req
}

// Validate checks the shipping fields only.
func (c *Checkout) Validate(form ShippingForm) error {
	req := c.orderRequest(form, "customer@example.com")
	req.ProductIds = []string{"-"}
	return entities.Validate(req)
}

// PlaceOrder validates the form, creates the order and, for online payment,
// opens a hosted checkout session. Nothing is sent when validation fails.
// The cart is emptied once the order exists.
func (c *Checkout) PlaceOrder(ctx context.Context, form ShippingForm) (res CheckoutResult, err error) {
	if err = c.Validate(form); err != nil {
		return
	}
	user, ok := c.session.User()
	if !ok || user.Email == "" {
		err = ErrLoginRequired
		c.notifier.Warn("กรุณาเข้าสู่ระบบก่อนทำการสั่งซื้อ")
		return
	}
	if c.cart.Len() == 0 {
		err = ErrEmptyCart
		return
	}
	if form.Method != PayOnline && form.Method != PayCashOnDelivery {
		err = ValidationErrors{"method": "choose a payment method"}
		return
	}

	req := c.orderRequest(form, user.Email)
	items := c.cart.Items()
	order, err := c.api.CreateOrder(ctx, req)
	if err != nil {
		log.Error().Err(err).Msg("create order")
		c.notifier.Error(MsgOrderFailed, err)
		return
	}
	res.Order = order

	if form.Method == PayCashOnDelivery {
		c.cart.Clear()
		c.notifier.Success(MsgOrderPlaced)
		res.Route = RouteOrders
		return
	}

	checkoutItems := make([]entities.CheckoutItem, 0, len(items))
	for _, b := range items {
		checkoutItems = append(checkoutItems, entities.CheckoutItem{Id: b.Id, Title: b.Title, Price: b.NewPrice, Quantity: 1})
	}
	session, err := c.api.CreateCheckoutSession(ctx, entities.CheckoutRequest{OrderId: order.Id, Items: checkoutItems})
	if err != nil {
		log.Error().Err(err).Str("order", order.Id).Msg("create checkout session")
		c.notifier.Error(MsgOrderFailed, err)
		return
	}
	c.cart.Clear()
	res.RedirectURL = session.Url
	return
}

// CancelOrder backs the payment cancel page. Failures are only logged.
func (c *Checkout) CancelOrder(ctx context.Context, orderId string) {
	if orderId == "" {
		return
	}
	if _, err := c.api.CancelOrder(ctx, orderId); err != nil {
		log.Error().Err(err).Str("order", orderId).Msg("cancel order")
		return
	}
	log.Info().Str("order", orderId).Msg("order cancelled")
}
