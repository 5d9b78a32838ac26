package services

import (
	"strings"
	"time"

	"bookStore/entities"
	"bookStore/models"
	"bookStore/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type OrderService struct {
	or repository.OrderRepository
	br repository.BookRepository
}

func NewOrderService(orderRepo repository.OrderRepository, bookRepo repository.BookRepository) OrderService {
	return OrderService{
		or: orderRepo,
		br: bookRepo,
	}
}

func OrderToEntity(o models.Order_db) entities.Order {
	ids := o.ProductIds
	if ids == nil {
		ids = []string{}
	}
	return entities.Order{
		Id:    o.Id,
		Name:  o.Name,
		Email: o.Email,
		Phone: o.Phone,
		Address: entities.Address{
			FullAddress: o.FullAddress,
			District:    o.District,
			Amphure:     o.Amphure,
			Province:    o.Province,
			Zipcode:     o.Zipcode,
		},
		ProductIds:        ids,
		TotalPrice:        o.TotalPrice,
		Status:            o.Status,
		PaymentStatus:     o.PaymentStatus,
		CheckoutSessionId: o.CheckoutSessionId.String,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

func ordersToEntities(orders []models.Order_db) []entities.Order {
	res := make([]entities.Order, 0, len(orders))
	for _, o := range orders {
		res = append(res, OrderToEntity(o))
	}
	return res
}

// CreateOrder validates the payload and stores a new order. The total is
// computed from the current book prices and never changes afterwards.
func (ors *OrderService) CreateOrder(req entities.OrderRequest) (order entities.Order, err error) {
	if err = entities.Validate(req); err != nil {
		log.Warn().Err(err).Msg("CreateOrder: invalid payload")
		return
	}

	books, err := ors.br.GetBooksByIds(req.ProductIds)
	if err != nil {
		return
	}
	if len(books) == 0 {
		log.Warn().Strs("ids", req.ProductIds).Msg("CreateOrder: no known books")
		err = models.ErrBadRequest
		return
	}
	total := decimal.Zero
	ids := make([]string, 0, len(books))
	for _, b := range books {
		total = total.Add(b.NewPrice)
		ids = append(ids, b.Id)
	}

	if req.Status != "" && req.Status != models.StatusPending {
		log.Warn().Str("status", req.Status).Msg("CreateOrder: client status ignored")
	}
	status := models.StatusPending
	paymentStatus := models.PaymentPending
	if req.PaymentStatus == models.PaymentCashOnDelivery {
		paymentStatus = models.PaymentCashOnDelivery
	}

	now := time.Now().UTC()
	oModel := models.Order_db{
		Id:            uuid.NewString(),
		Name:          strings.TrimSpace(req.Name),
		Email:         strings.TrimSpace(req.Email),
		Phone:         req.Phone,
		FullAddress:   req.Address.FullAddress,
		District:      req.Address.District,
		Amphure:       req.Address.Amphure,
		Province:      req.Address.Province,
		Zipcode:       req.Address.Zipcode,
		ProductIds:    ids,
		TotalPrice:    total,
		Status:        status,
		PaymentStatus: paymentStatus,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	err = ors.or.CreateOrder(oModel)
	if err != nil {
		return
	}
	order = OrderToEntity(oModel)
	return
}

func (ors *OrderService) GetOrderById(orderId string) (order entities.Order, err error) {
	oModel, exists, err := ors.or.GetOrderById(orderId)
	if err != nil {
		return
	}
	if !exists {
		err = models.ErrNotFoundError
		return
	}
	order = OrderToEntity(oModel)
	return
}

func (ors *OrderService) GetOrdersByEmail(email string) (orders []entities.Order, err error) {
	if strings.TrimSpace(email) == "" {
		err = models.ErrBadRequest
		return
	}
	oModels, err := ors.or.GetOrdersByEmail(strings.TrimSpace(email))
	if err != nil {
		return
	}
	orders = ordersToEntities(oModels)
	return
}

func (ors *OrderService) GetAllOrders() (orders []entities.Order, err error) {
	oModels, err := ors.or.GetAllOrders()
	if err != nil {
		return
	}
	orders = ordersToEntities(oModels)
	return
}

func (ors *OrderService) SetOrderStatus(orderId string, status string) (order entities.Order, err error) {
	if !models.IsOrderStatus(status) {
		log.Warn().Str("status", status).Msg("SetOrderStatus: unknown status")
		err = models.ErrBadRequest
		return
	}
	err = ors.or.SetOrderStatus(orderId, status)
	if err != nil {
		return
	}
	order, err = ors.GetOrderById(orderId)
	return
}

func (ors *OrderService) CancelOrder(orderId string) (order entities.Order, err error) {
	err = ors.or.CancelOrder(orderId)
	if err != nil {
		return
	}
	order, err = ors.GetOrderById(orderId)
	return
}

func (ors *OrderService) DeleteOrder(orderId string) (err error) {
	err = ors.or.DeleteOrder(orderId)
	return
}
