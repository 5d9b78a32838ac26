package storefront

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"bookStore/client"
	"bookStore/entities"
	"bookStore/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func testBook(id, title, author, category string, price int64) entities.Book {
	return entities.Book{
		Id:       id,
		Title:    title,
		Author:   author,
		Category: category,
		OldPrice: decimal.NewFromInt(price + 50),
		NewPrice: decimal.NewFromInt(price),
	}
}

// tenBooks has exactly three books in the health category.
func tenBooks() []entities.Book {
	return []entities.Book{
		testBook("B1", "รวยด้วยหุ้น", "นักลงทุน", "ธุรกิจ", 250),
		testBook("B2", "กินดีอยู่ดี", "หมอแนน", "สุขภาพ", 180),
		testBook("B3", "เรียนภาษาอังกฤษ", "ครูพี่", "ภาษา", 220),
		testBook("B4", "นอนหลับให้เป็น", "หมอแนน", "สุขภาพ", 199),
		testBook("B5", "Go in Practice", "Butcher", "โปรแกรม", 890),
		testBook("B6", "One Piece 1", "Oda", "การ์ตูน", 65),
		testBook("B7", "จิตวิทยาสายดาร์ก", "ดร.โจ", "จิตวิทยา", 245),
		testBook("B8", "วิ่งเพื่อชีวิต", "โค้ชเอ", "สุขภาพ", 210),
		testBook("B9", "เที่ยวญี่ปุ่น", "นักเดินทาง", "ท่องเที่ยว", 320),
		testBook("B10", "กีตาร์เบื้องต้น", "มือกีตาร์", "ดนตรี", 150),
	}
}

func adminToken(t *testing.T, role string, exp time.Time) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": role,
		"exp":  exp.Unix(),
	}).SignedString([]byte("any-key"))
	require.NoError(t, err)
	return token
}

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	warnings  []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordingNotifier) Warn(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.warnings = append(n.warnings, msg)
}

func (n *recordingNotifier) Error(msg string, err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

type answer bool

func (a answer) Confirm(string, string) bool { return bool(a) }

// fakeShop stands in for the API client.
type fakeShop struct {
	mu sync.Mutex

	books     []entities.Book
	booksErr  error
	favorites map[string][]string

	sentFavorites [][]string
	favReply      func(ids []string) []entities.Book
	replied       []entities.Book
	favErr        error

	orders      []entities.Order
	orderReqs   []entities.OrderRequest
	orderErr    error
	checkouts   []entities.CheckoutRequest
	checkoutErr error
	cancelled   []string
	ordersCalls int

	payments   []entities.PaymentStatus
	paymentErr error
	checks     int

	loginToken    string
	adminErr      error
	adminCalls    []string
	statusUpdates map[string]string
}

func newFakeShop() *fakeShop {
	return &fakeShop{
		books:         tenBooks(),
		favorites:     map[string][]string{},
		statusUpdates: map[string]string{},
	}
}

func (f *fakeShop) bookById(id string) (entities.Book, bool) {
	for _, b := range f.books {
		if b.Id == id {
			return b, true
		}
	}
	return entities.Book{}, false
}

func (f *fakeShop) FetchAllBooks(ctx context.Context) ([]entities.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.adminCalls = append(f.adminCalls, "FetchAllBooks")
	if f.booksErr != nil {
		return nil, f.booksErr
	}
	return append([]entities.Book(nil), f.books...), nil
}

func (f *fakeShop) Favorites(ctx context.Context, userId string) ([]entities.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.replied != nil {
		return f.replied, nil
	}
	var res []entities.Book
	for _, id := range f.favorites[userId] {
		if b, ok := f.bookById(id); ok {
			res = append(res, b)
		}
	}
	return res, nil
}

func (f *fakeShop) SetFavorites(ctx context.Context, userId string, bookIds []string) ([]entities.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sentFavorites = append(f.sentFavorites, append([]string(nil), bookIds...))
	if f.favErr != nil {
		return nil, f.favErr
	}
	f.favorites[userId] = bookIds
	if f.favReply != nil {
		f.replied = f.favReply(bookIds)
		return f.replied, nil
	}
	var res []entities.Book
	for _, id := range bookIds {
		if b, ok := f.bookById(id); ok {
			res = append(res, b)
		}
	}
	return res, nil
}

func (f *fakeShop) CreateOrder(ctx context.Context, req entities.OrderRequest) (entities.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orderReqs = append(f.orderReqs, req)
	if f.orderErr != nil {
		return entities.Order{}, f.orderErr
	}
	o := entities.Order{
		Id:            fmt.Sprintf("o%d", len(f.orderReqs)),
		Email:         req.Email,
		ProductIds:    req.ProductIds,
		TotalPrice:    req.TotalPrice,
		Status:        req.Status,
		PaymentStatus: req.PaymentStatus,
	}
	f.orders = append(f.orders, o)
	return o, nil
}

func (f *fakeShop) CreateCheckoutSession(ctx context.Context, req entities.CheckoutRequest) (entities.CheckoutSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checkouts = append(f.checkouts, req)
	if f.checkoutErr != nil {
		return entities.CheckoutSession{}, f.checkoutErr
	}
	return entities.CheckoutSession{
		SessionId: "cs_" + req.OrderId,
		Url:       "https://checkout.stripe.com/c/pay/cs_" + req.OrderId,
		OrderId:   req.OrderId,
		Status:    models.PaymentPending,
	}, nil
}

func (f *fakeShop) CancelOrder(ctx context.Context, orderId string) (entities.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled = append(f.cancelled, orderId)
	return entities.Order{Id: orderId, Status: models.StatusCancelled}, nil
}

func (f *fakeShop) OrdersByEmail(ctx context.Context, email string) ([]entities.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ordersCalls++
	var res []entities.Order
	for _, o := range f.orders {
		if o.Email == email {
			if s, ok := f.statusUpdates[o.Id]; ok {
				o.Status = s
			}
			res = append(res, o)
		}
	}
	return res, nil
}

func (f *fakeShop) CheckPayment(ctx context.Context, sessionId string) (entities.PaymentStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checks++
	if f.paymentErr != nil {
		return entities.PaymentStatus{}, f.paymentErr
	}
	if len(f.payments) == 0 {
		return entities.PaymentStatus{Status: "unpaid"}, nil
	}
	next := f.payments[0]
	if len(f.payments) > 1 {
		f.payments = f.payments[1:]
	}
	return next, nil
}

func (f *fakeShop) call(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.adminCalls = append(f.adminCalls, name)
	return f.adminErr
}

func (f *fakeShop) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.adminCalls...)
}

func (f *fakeShop) AdminLogin(ctx context.Context, username, password string) (entities.LoginResponse, error) {
	if err := f.call("AdminLogin"); err != nil {
		return entities.LoginResponse{}, err
	}
	return entities.LoginResponse{Token: f.loginToken, User: entities.AdminUser{Username: username, Role: models.RoleAdmin}}, nil
}

func (f *fakeShop) AdminLogout(ctx context.Context) error {
	return f.call("AdminLogout")
}

func (f *fakeShop) AdminStats(ctx context.Context) (entities.AdminStats, error) {
	if err := f.call("AdminStats"); err != nil {
		return entities.AdminStats{}, err
	}
	return entities.AdminStats{TotalBooks: len(f.books)}, nil
}

func (f *fakeShop) CreateBook(ctx context.Context, form client.BookForm) (entities.Book, error) {
	if err := f.call("CreateBook"); err != nil {
		return entities.Book{}, err
	}
	return entities.Book{Id: "new", Title: *form.Fields.Title}, nil
}

func (f *fakeShop) UpdateBook(ctx context.Context, id string, req entities.BookRequest) (entities.Book, error) {
	if err := f.call("UpdateBook"); err != nil {
		return entities.Book{}, err
	}
	return entities.Book{Id: id}, nil
}

func (f *fakeShop) UpdateBookForm(ctx context.Context, id string, form client.BookForm) (entities.Book, error) {
	if err := f.call("UpdateBookForm"); err != nil {
		return entities.Book{}, err
	}
	return entities.Book{Id: id}, nil
}

func (f *fakeShop) DeleteBook(ctx context.Context, id string) error {
	return f.call("DeleteBook")
}

func (f *fakeShop) AllOrders(ctx context.Context) ([]entities.Order, error) {
	if err := f.call("AllOrders"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entities.Order(nil), f.orders...), nil
}

func (f *fakeShop) UpdateOrderStatus(ctx context.Context, orderId string, status string) (entities.Order, error) {
	if err := f.call("UpdateOrderStatus"); err != nil {
		return entities.Order{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusUpdates[orderId] = status
	return entities.Order{Id: orderId, Status: status}, nil
}

func (f *fakeShop) DeleteOrder(ctx context.Context, orderId string) error {
	return f.call("DeleteOrder")
}
