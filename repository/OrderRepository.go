package repository

import (
	"database/sql"
	"errors"
	"time"

	"bookStore/models"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type OrderRepository interface {
	CreateOrder(order models.Order_db) (err error)
	GetOrderById(orderId string) (order models.Order_db, exists bool, err error)
	GetOrdersByEmail(email string) (orders []models.Order_db, err error)
	GetAllOrders() (orders []models.Order_db, err error)
	SetOrderStatus(orderId string, status string) (err error)
	SetPaymentStatus(orderId string, status string, paymentStatus string) (err error)
	SetCheckoutSession(orderId string, sessionId string) (err error)
	CancelOrder(orderId string) (err error)
	DeleteOrder(orderId string) (err error)
	GetOrderStats() (stats models.Stats_db, err error)
}

type OrderRepo struct {
	db *sql.DB
}

const orderColumns = "Id, Name, Email, Phone, FullAddress, District, Amphure, Province, Zipcode, ProductIds, TotalPrice, Status, PaymentStatus, CheckoutSessionId, CreatedAt, UpdatedAt"

func NewOrderRepository(conn *sql.DB) (OrderRepository, error) {
	if conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := conn.Ping()
	if err != nil {
		return nil, err
	}
	return &OrderRepo{
		db: conn,
	}, nil
}

func scanOrder(row rowScanner) (o models.Order_db, err error) {
	err = row.Scan(&o.Id, &o.Name, &o.Email, &o.Phone, &o.FullAddress, &o.District,
		&o.Amphure, &o.Province, &o.Zipcode, pq.Array(&o.ProductIds), &o.TotalPrice,
		&o.Status, &o.PaymentStatus, &o.CheckoutSessionId, &o.CreatedAt, &o.UpdatedAt)
	return
}

func (o *OrderRepo) CreateOrder(order models.Order_db) (err error) {
	_, err = o.db.Exec("INSERT INTO Orders ("+orderColumns+") VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)",
		order.Id, order.Name, order.Email, order.Phone, order.FullAddress, order.District,
		order.Amphure, order.Province, order.Zipcode, pq.Array(order.ProductIds), order.TotalPrice,
		order.Status, order.PaymentStatus, order.CheckoutSessionId, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		log.Error().Err(err).Msg("CreateOrder")
		err = models.ErrServerError
	}
	return
}

func (o *OrderRepo) GetOrderById(orderId string) (order models.Order_db, exists bool, err error) {
	order, err = scanOrder(o.db.QueryRow("SELECT "+orderColumns+" FROM Orders WHERE Id=$1", orderId))
	if err != nil {
		if err == sql.ErrNoRows {
			err = nil
		} else {
			log.Error().Err(err).Msg("GetOrderById")
			err = models.ErrServerError
		}
		return
	}
	exists = true
	return
}

func (o *OrderRepo) GetOrdersByEmail(email string) (orders []models.Order_db, err error) {
	orders, err = o.queryOrders("GetOrdersByEmail", "SELECT "+orderColumns+" FROM Orders WHERE LOWER(Email) = LOWER($1) ORDER BY CreatedAt DESC", email)
	return
}

func (o *OrderRepo) GetAllOrders() (orders []models.Order_db, err error) {
	orders, err = o.queryOrders("GetAllOrders", "SELECT "+orderColumns+" FROM Orders ORDER BY CreatedAt DESC")
	return
}

func (o *OrderRepo) queryOrders(caller string, query string, params ...any) (orders []models.Order_db, err error) {
	rows, e := o.db.Query(query, params...)
	if e != nil {
		log.Error().Err(e).Msg(caller + "[1]")
		err = models.ErrServerError
		return
	}
	defer rows.Close()

	for rows.Next() {
		var ord models.Order_db
		ord, err = scanOrder(rows)
		if err != nil {
			log.Error().Err(err).Msg(caller + "[2]")
			err = models.ErrServerError
			return
		}
		orders = append(orders, ord)
	}
	if err = rows.Err(); err != nil {
		log.Error().Err(err).Msg(caller + "[3]")
		err = models.ErrServerError
	}
	return
}

func (o *OrderRepo) SetOrderStatus(orderId string, status string) (err error) {
	err = o.exec("SetOrderStatus", "UPDATE Orders SET Status=$1, UpdatedAt=$2 WHERE Id=$3", status, time.Now().UTC(), orderId)
	return
}

func (o *OrderRepo) SetPaymentStatus(orderId string, status string, paymentStatus string) (err error) {
	err = o.exec("SetPaymentStatus", "UPDATE Orders SET Status=$1, PaymentStatus=$2, UpdatedAt=$3 WHERE Id=$4", status, paymentStatus, time.Now().UTC(), orderId)
	return
}

func (o *OrderRepo) SetCheckoutSession(orderId string, sessionId string) (err error) {
	err = o.exec("SetCheckoutSession", "UPDATE Orders SET CheckoutSessionId=$1, UpdatedAt=$2 WHERE Id=$3", sessionId, time.Now().UTC(), orderId)
	return
}

func (o *OrderRepo) CancelOrder(orderId string) (err error) {
	var paymentStatus string
	err = o.db.QueryRow("SELECT PaymentStatus FROM Orders WHERE Id=$1", orderId).Scan(&paymentStatus)
	if err != nil {
		if err == sql.ErrNoRows {
			err = models.ErrNotFoundError
		} else {
			log.Error().Err(err).Msg("CancelOrder[1]")
			err = models.ErrServerError
		}
		return
	}
	if paymentStatus == models.PaymentPaid {
		log.Warn().Str("order", orderId).Msg("can not cancel a paid order")
		err = models.ErrNotAllowed
		return
	}
	err = o.exec("CancelOrder", "UPDATE Orders SET Status=$1, PaymentStatus=$2, UpdatedAt=$3 WHERE Id=$4",
		models.StatusCancelled, models.PaymentCancelled, time.Now().UTC(), orderId)
	return
}

func (o *OrderRepo) DeleteOrder(orderId string) (err error) {
	err = o.exec("DeleteOrder", "DELETE FROM Orders WHERE Id=$1", orderId)
	return
}

// exec runs a single row mutation and reports ErrNotFoundError when no row matched.
func (o *OrderRepo) exec(caller string, query string, params ...any) (err error) {
	res, e := o.db.Exec(query, params...)
	if e != nil {
		log.Error().Err(e).Msg(caller + "[1]")
		err = models.ErrServerError
		return
	}
	n, e := res.RowsAffected()
	if e != nil {
		log.Error().Err(e).Msg(caller + "[2]")
		err = models.ErrServerError
		return
	}
	if n == 0 {
		err = models.ErrNotFoundError
	}
	return
}

// GetOrderStats counts orders per status. Cancelled orders are excluded
// from total sales.
func (o *OrderRepo) GetOrderStats() (stats models.Stats_db, err error) {
	stats.OrdersByStatus = make(map[string]int)
	stats.TotalSales = decimal.Zero

	rows, e := o.db.Query("SELECT Status, COUNT(*), COALESCE(SUM(TotalPrice), 0) FROM Orders GROUP BY Status")
	if e != nil {
		log.Error().Err(e).Msg("GetOrderStats[1]")
		err = models.ErrServerError
		return
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		var sum decimal.Decimal
		if err = rows.Scan(&status, &count, &sum); err != nil {
			log.Error().Err(err).Msg("GetOrderStats[2]")
			err = models.ErrServerError
			return
		}
		stats.OrdersByStatus[status] = count
		stats.TotalOrders += count
		if status != models.StatusCancelled {
			stats.TotalSales = stats.TotalSales.Add(sum)
		}
	}
	if err = rows.Err(); err != nil {
		log.Error().Err(err).Msg("GetOrderStats[3]")
		err = models.ErrServerError
	}
	return
}
