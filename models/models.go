package models

import (
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrBadRequest = errors.New("bad request")
var ErrUnautorized = errors.New("unautorized")
var ErrForbidden = errors.New("forbidden")
var ErrServerError = errors.New("server error")
var ErrNotFoundError = errors.New("not found")
var ErrNotAllowed = errors.New("not acceptable")

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// order statuses, Thai labels are the stored and wire values
const (
	StatusPending   = "รอดำเนินการ"
	StatusPreparing = "กำลังจัดเตรียมสินค้า"
	StatusShipping  = "กำลังจัดส่ง"
	StatusDelivered = "จัดส่งสำเร็จ"
	StatusProblem   = "มีปัญหาในการจัดส่ง"
	StatusCancelled = "ยกเลิกการจัดส่ง"
	StatusPaid      = "ชำระเงินแล้ว"
)

const (
	PaymentPending        = "pending"
	PaymentPaid           = "paid"
	PaymentCashOnDelivery = "ชำระเงินปลายทาง"
	PaymentCancelled      = "cancelled"
)

var OrderStatuses = []string{
	StatusPending,
	StatusPreparing,
	StatusShipping,
	StatusDelivered,
	StatusProblem,
	StatusCancelled,
	StatusPaid,
}

const CategoryAll = "ทุกประเภท"

var Categories = []string{
	"ธุรกิจ",
	"จิตวิทยา",
	"โปรแกรม",
	"ภาษา",
	"การ์ตูน",
	"คอมพิวเตอร์",
	"สุขภาพ",
	"หนังสืออิเล็กทรอนิกส์",
	"ดนตรี",
	"ท่องเที่ยว",
	"ความรัก",
}

func IsOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func IsCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

type Credentials struct {
	Password string `json:"password"`
	Username string `json:"username"`
}

type Book_db struct {
	Id          string
	Title       string
	Author      string
	Description sql.NullString
	Category    string
	OldPrice    decimal.Decimal
	NewPrice    decimal.Decimal
	CoverImage  string
	Images      []string
	Trending    bool
	Recommended bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BookUpdate carries a partial edit, nil fields are left untouched.
type BookUpdate struct {
	Title       *string
	Author      *string
	Description *string
	Category    *string
	OldPrice    *decimal.Decimal
	NewPrice    *decimal.Decimal
	CoverImage  *string
	Images      []string
	Trending    *bool
	Recommended *bool
}

type Order_db struct {
	Id                string
	Name              string
	Email             string
	Phone             string
	FullAddress       string
	District          string
	Amphure           string
	Province          string
	Zipcode           string
	ProductIds        []string
	TotalPrice        decimal.Decimal
	Status            string
	PaymentStatus     string
	CheckoutSessionId sql.NullString
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type User_db struct {
	Id       int
	Username string
	Password string
	Role     string
}

type Stats_db struct {
	TotalBooks     int
	TrendingBooks  int
	TotalOrders    int
	TotalSales     decimal.Decimal
	OrdersByStatus map[string]int
}
