package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type Book struct {
	Id          string          `json:"_id"`
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	OldPrice    decimal.Decimal `json:"oldPrice"`
	NewPrice    decimal.Decimal `json:"newPrice"`
	CoverImage  string          `json:"coverImage"`
	Images      []string        `json:"images"`
	Trending    bool            `json:"trending"`
	Recommended bool            `json:"recommended"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type BookPage struct {
	Books       []Book `json:"books"`
	Total       int    `json:"total"`
	CurrentPage int    `json:"currentPage"`
	TotalPages  int    `json:"totalPages"`
}

// BookRequest is the JSON shape of a book create or edit. Pointer fields
// distinguish "not sent" from zero values on partial updates.
type BookRequest struct {
	Title       *string          `json:"title"`
	Author      *string          `json:"author"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	OldPrice    *decimal.Decimal `json:"oldPrice"`
	NewPrice    *decimal.Decimal `json:"newPrice"`
	CoverImage  *string          `json:"coverImage"`
	Images      []string         `json:"images"`
	Trending    *bool            `json:"trending"`
	Recommended *bool            `json:"recommended"`
}

type BatchRequest struct {
	Ids []string `json:"ids"`
}

type Address struct {
	FullAddress string `json:"fullAddress" validate:"required"`
	District    string `json:"district" validate:"required"`
	Amphure     string `json:"amphure" validate:"required"`
	Province    string `json:"province" validate:"required"`
	Zipcode     string `json:"zipcode" validate:"required,number,len=5"`
}

type Order struct {
	Id                string          `json:"_id"`
	Name              string          `json:"name"`
	Email             string          `json:"email"`
	Phone             string          `json:"phone"`
	Address           Address         `json:"address"`
	ProductIds        []string        `json:"productIds"`
	TotalPrice        decimal.Decimal `json:"totalPrice"`
	Status            string          `json:"status"`
	PaymentStatus     string          `json:"paymentStatus"`
	CheckoutSessionId string          `json:"checkoutSessionId,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

type OrderRequest struct {
	Name          string          `json:"name" validate:"required"`
	Email         string          `json:"email" validate:"required,email"`
	Phone         string          `json:"phone" validate:"required,number,len=10"`
	Address       Address         `json:"address" validate:"required"`
	ProductIds    []string        `json:"productIds" validate:"required,min=1,dive,required"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"paymentStatus"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

type FavoritesRequest struct {
	BookIds []string `json:"bookIds"`
}

type CheckoutItem struct {
	Id       string          `json:"id"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
}

type CheckoutRequest struct {
	OrderId string         `json:"orderId"`
	Items   []CheckoutItem `json:"items"`
}

type CheckoutSession struct {
	SessionId string `json:"sessionId"`
	Url       string `json:"url"`
	OrderId   string `json:"orderId"`
	Status    string `json:"status"`
}

type PaymentStatus struct {
	Status  string `json:"status"`
	OrderId string `json:"orderId"`
}

type AdminUser struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type LoginResponse struct {
	Message string    `json:"message"`
	Token   string    `json:"token"`
	User    AdminUser `json:"user"`
}

type AdminStats struct {
	TotalBooks              int             `json:"totalBooks"`
	TotalSales              decimal.Decimal `json:"totalSales"`
	TrendingBooks           int             `json:"trendingBooks"`
	TrendingBooksPercentage decimal.Decimal `json:"trendingBooksPercentage"`
	TotalOrders             int             `json:"totalOrders"`
	OrdersByStatus          map[string]int  `json:"ordersByStatus"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}
