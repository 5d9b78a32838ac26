package storefront

import (
	"context"

	"bookStore/entities"

	"github.com/rs/zerolog/log"
)

type OrdersAPI interface {
	OrdersByEmail(ctx context.Context, email string) ([]entities.Order, error)
}

type OrderHistoryState struct {
	Orders []entities.Order
	Loaded bool
	Err    error
}

// OrderHistory is the signed in customer's order list. It reloads whenever
// an admin changes a delivery status.
type OrderHistory struct {
	api     OrdersAPI
	session *Session
	store   *Store[OrderHistoryState]
	off     func()
}

func NewOrderHistory(api OrdersAPI, session *Session, bus *Bus) *OrderHistory {
	h := &OrderHistory{api: api, session: session, store: NewStore(OrderHistoryState{})}
	if bus != nil {
		h.off = bus.On(EventOrderStatusUpdated, func(any) {
			if err := h.Load(context.Background()); err != nil && err != ErrLoginRequired {
				log.Warn().Err(err).Msg("order history reload")
			}
		})
	}
	return h
}

func (h *OrderHistory) Load(ctx context.Context) error {
	user, ok := h.session.User()
	if !ok || user.Email == "" {
		return ErrLoginRequired
	}
	orders, err := h.api.OrdersByEmail(ctx, user.Email)
	if err != nil {
		h.store.Update(func(st OrderHistoryState) OrderHistoryState {
			st.Err = err
			return st
		})
		return err
	}
	h.store.Set(OrderHistoryState{Orders: orders, Loaded: true})
	return nil
}

func (h *OrderHistory) Orders() []entities.Order {
	return h.store.Get().Orders
}

// Empty reports a loaded history without orders.
func (h *OrderHistory) Empty() bool {
	st := h.store.Get()
	return st.Loaded && len(st.Orders) == 0
}

func (h *OrderHistory) Subscribe(fn func(OrderHistoryState)) (unsubscribe func()) {
	return h.store.Subscribe(fn)
}

func (h *OrderHistory) Close() {
	if h.off != nil {
		h.off()
	}
}
