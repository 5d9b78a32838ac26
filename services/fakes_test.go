package services

import (
	"context"
	"io"
	"sort"
	"sync"

	"bookStore/entities"
	"bookStore/models"

	"github.com/google/uuid"
)

type fakeBookRepo struct {
	books map[string]models.Book_db
}

func newFakeBookRepo(books ...models.Book_db) *fakeBookRepo {
	r := &fakeBookRepo{books: map[string]models.Book_db{}}
	for _, b := range books {
		r.books[b.Id] = b
	}
	return r
}

func (r *fakeBookRepo) GetBookById(id string) (models.Book_db, bool, error) {
	b, ok := r.books[id]
	return b, ok, nil
}

func (r *fakeBookRepo) GetBooks(offset, limit int) ([]models.Book_db, int, error) {
	var all []models.Book_db
	for _, b := range r.books {
		all = append(all, b)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Id < all[j].Id })
	total := len(all)
	if limit <= 0 {
		return all, total, nil
	}
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (r *fakeBookRepo) GetBooksByIds(ids []string) (res []models.Book_db, err error) {
	for _, id := range ids {
		if b, ok := r.books[id]; ok {
			res = append(res, b)
		}
	}
	return
}

func (r *fakeBookRepo) CreateBook(b models.Book_db) error {
	r.books[b.Id] = b
	return nil
}

func (r *fakeBookRepo) UpdateBook(id string, upd models.BookUpdate) (models.Book_db, error) {
	b, ok := r.books[id]
	if !ok {
		return b, models.ErrNotFoundError
	}
	if upd.Title != nil {
		b.Title = *upd.Title
	}
	if upd.NewPrice != nil {
		b.NewPrice = *upd.NewPrice
	}
	if upd.Trending != nil {
		b.Trending = *upd.Trending
	}
	if upd.CoverImage != nil {
		b.CoverImage = *upd.CoverImage
	}
	if upd.Images != nil {
		b.Images = upd.Images
	}
	r.books[id] = b
	return b, nil
}

func (r *fakeBookRepo) DeleteBook(id string) error {
	if _, ok := r.books[id]; !ok {
		return models.ErrNotFoundError
	}
	delete(r.books, id)
	return nil
}

func (r *fakeBookRepo) CountBooks() (total int, trending int, err error) {
	for _, b := range r.books {
		total++
		if b.Trending {
			trending++
		}
	}
	return
}

type fakeImageRepo struct {
	saved   []string
	deleted []string
}

func (r *fakeImageRepo) SaveImage(src io.Reader, filename string) (string, error) {
	url := "/uploads/" + filename
	r.saved = append(r.saved, url)
	return url, nil
}

func (r *fakeImageRepo) DeleteImage(url string) error {
	r.deleted = append(r.deleted, url)
	return nil
}

type fakeOrderRepo struct {
	orders map[string]models.Order_db
}

func newFakeOrderRepo(orders ...models.Order_db) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: map[string]models.Order_db{}}
	for _, o := range orders {
		r.orders[o.Id] = o
	}
	return r
}

func (r *fakeOrderRepo) CreateOrder(o models.Order_db) error {
	r.orders[o.Id] = o
	return nil
}

func (r *fakeOrderRepo) GetOrderById(id string) (models.Order_db, bool, error) {
	o, ok := r.orders[id]
	return o, ok, nil
}

func (r *fakeOrderRepo) GetOrdersByEmail(email string) (res []models.Order_db, err error) {
	for _, o := range r.orders {
		if o.Email == email {
			res = append(res, o)
		}
	}
	return
}

func (r *fakeOrderRepo) GetAllOrders() (res []models.Order_db, err error) {
	for _, o := range r.orders {
		res = append(res, o)
	}
	return
}

func (r *fakeOrderRepo) update(id string, fn func(o *models.Order_db)) error {
	o, ok := r.orders[id]
	if !ok {
		return models.ErrNotFoundError
	}
	fn(&o)
	r.orders[id] = o
	return nil
}

func (r *fakeOrderRepo) SetOrderStatus(id string, status string) error {
	return r.update(id, func(o *models.Order_db) { o.Status = status })
}

func (r *fakeOrderRepo) SetPaymentStatus(id string, status string, paymentStatus string) error {
	return r.update(id, func(o *models.Order_db) {
		o.Status = status
		o.PaymentStatus = paymentStatus
	})
}

func (r *fakeOrderRepo) SetCheckoutSession(id string, sessionId string) error {
	return r.update(id, func(o *models.Order_db) {
		o.CheckoutSessionId.String = sessionId
		o.CheckoutSessionId.Valid = true
	})
}

func (r *fakeOrderRepo) CancelOrder(id string) error {
	o, ok := r.orders[id]
	if !ok {
		return models.ErrNotFoundError
	}
	if o.PaymentStatus == models.PaymentPaid {
		return models.ErrNotAllowed
	}
	return r.update(id, func(o *models.Order_db) {
		o.Status = models.StatusCancelled
		o.PaymentStatus = models.PaymentCancelled
	})
}

func (r *fakeOrderRepo) DeleteOrder(id string) error {
	if _, ok := r.orders[id]; !ok {
		return models.ErrNotFoundError
	}
	delete(r.orders, id)
	return nil
}

func (r *fakeOrderRepo) GetOrderStats() (stats models.Stats_db, err error) {
	stats.OrdersByStatus = map[string]int{}
	for _, o := range r.orders {
		stats.OrdersByStatus[o.Status]++
		stats.TotalOrders++
		if o.Status != models.StatusCancelled {
			stats.TotalSales = stats.TotalSales.Add(o.TotalPrice)
		}
	}
	return
}

type fakeFavoriteRepo struct {
	ids map[string][]string
}

func (r *fakeFavoriteRepo) GetFavoriteIds(userId string) ([]string, error) {
	if ids, ok := r.ids[userId]; ok {
		return ids, nil
	}
	return []string{}, nil
}

func (r *fakeFavoriteRepo) SetFavoriteIds(userId string, ids []string) error {
	r.ids[userId] = ids
	return nil
}

type fakeCheckoutRepo struct {
	sessions map[string]entities.CheckoutSession
}

func (r *fakeCheckoutRepo) SetCheckout(s entities.CheckoutSession) error {
	r.sessions[s.SessionId] = s
	return nil
}

func (r *fakeCheckoutRepo) GetCheckout(id string) (entities.CheckoutSession, bool, error) {
	s, ok := r.sessions[id]
	return s, ok, nil
}

func (r *fakeCheckoutRepo) SetCheckoutStatus(id string, status string) error {
	s, ok := r.sessions[id]
	if !ok {
		return models.ErrNotFoundError
	}
	s.Status = status
	r.sessions[id] = s
	return nil
}

type fakeUserRepo struct {
	users map[string]models.User_db
}

func (r *fakeUserRepo) GetUserById(id int) (models.User_db, bool, error) {
	for _, u := range r.users {
		if u.Id == id {
			return u, true, nil
		}
	}
	return models.User_db{}, false, nil
}

func (r *fakeUserRepo) GetUserByName(name string) (models.User_db, bool, error) {
	u, ok := r.users[name]
	return u, ok, nil
}

func (r *fakeUserRepo) EncryptPassword(p string) (string, error) { return "hashed:" + p, nil }

func (r *fakeUserRepo) VerifyPassword(hashed string, sent string) bool {
	return hashed == "hashed:"+sent
}

func (r *fakeUserRepo) UpdatePassword(userId int, newPassword string) error { return nil }

func (r *fakeUserRepo) AddNewUser(u models.User_db) (int, error) {
	u.Id = len(r.users) + 1
	r.users[u.Username] = u
	return u.Id, nil
}

func (r *fakeUserRepo) EnsureAdmin(username string, password string) error { return nil }

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]string
}

func (r *fakeSessionRepo) CreateSession(userId int, role string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := uuid.NewString()
	r.sessions[id] = role
	return id, nil
}

func (r *fakeSessionRepo) DeleteSession(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r *fakeSessionRepo) GetUserSessionInfo(id string) (int, string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	role, ok := r.sessions[id]
	return 1, role, ok, nil
}

type fakeGateway struct {
	created []string
	items   []entities.CheckoutItem
	success string
	cancel  string
	status  map[string]string
	orderOf map[string]string
	err     error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{status: map[string]string{}, orderOf: map[string]string{}}
}

func (g *fakeGateway) CreateSession(ctx context.Context, orderId string, items []entities.CheckoutItem, successURL, cancelURL string) (string, string, error) {
	if g.err != nil {
		return "", "", g.err
	}
	id := "cs_test_" + orderId
	g.created = append(g.created, id)
	g.items = items
	g.success = successURL
	g.cancel = cancelURL
	g.status[id] = "unpaid"
	g.orderOf[id] = orderId
	return id, "https://checkout.stripe.com/c/pay/" + id, nil
}

func (g *fakeGateway) SessionStatus(ctx context.Context, sessionId string) (string, string, error) {
	if g.err != nil {
		return "", "", g.err
	}
	status, ok := g.status[sessionId]
	if !ok {
		return "", "", models.ErrNotFoundError
	}
	return status, g.orderOf[sessionId], nil
}
