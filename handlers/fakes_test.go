package handlers

import (
	"sync"

	"bookStore/models"
)

type memBooks struct {
	mu    sync.Mutex
	books []models.Book_db
}

func (m *memBooks) find(id string) int {
	for i, b := range m.books {
		if b.Id == id {
			return i
		}
	}
	return -1
}

func (m *memBooks) GetBookById(id string) (models.Book_db, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.find(id); i >= 0 {
		return m.books[i], true, nil
	}
	return models.Book_db{}, false, nil
}

func (m *memBooks) GetBooks(offset, limit int) ([]models.Book_db, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := len(m.books)
	if limit <= 0 {
		return append([]models.Book_db(nil), m.books...), total, nil
	}
	end := offset + limit
	if offset > total {
		offset = total
	}
	if end > total {
		end = total
	}
	return append([]models.Book_db(nil), m.books[offset:end]...), total, nil
}

func (m *memBooks) GetBooksByIds(ids []string) (res []models.Book_db, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		if i := m.find(id); i >= 0 {
			res = append(res, m.books[i])
		}
	}
	return
}

func (m *memBooks) CreateBook(b models.Book_db) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.books = append(m.books, b)
	return nil
}

func (m *memBooks) UpdateBook(id string, upd models.BookUpdate) (models.Book_db, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.find(id)
	if i < 0 {
		return models.Book_db{}, models.ErrNotFoundError
	}
	if upd.Title != nil {
		m.books[i].Title = *upd.Title
	}
	if upd.CoverImage != nil {
		m.books[i].CoverImage = *upd.CoverImage
	}
	if upd.Images != nil {
		m.books[i].Images = upd.Images
	}
	return m.books[i], nil
}

func (m *memBooks) DeleteBook(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.find(id)
	if i < 0 {
		return models.ErrNotFoundError
	}
	m.books = append(m.books[:i], m.books[i+1:]...)
	return nil
}

func (m *memBooks) CountBooks() (total int, trending int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.books {
		total++
		if b.Trending {
			trending++
		}
	}
	return
}

type memOrders struct {
	mu     sync.Mutex
	orders map[string]models.Order_db
}

func (m *memOrders) CreateOrder(o models.Order_db) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[o.Id] = o
	return nil
}

func (m *memOrders) GetOrderById(id string) (models.Order_db, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	return o, ok, nil
}

func (m *memOrders) GetOrdersByEmail(email string) (res []models.Order_db, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.Email == email {
			res = append(res, o)
		}
	}
	return
}

func (m *memOrders) GetAllOrders() (res []models.Order_db, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		res = append(res, o)
	}
	return
}

func (m *memOrders) set(id string, fn func(o *models.Order_db) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return models.ErrNotFoundError
	}
	if err := fn(&o); err != nil {
		return err
	}
	m.orders[id] = o
	return nil
}

func (m *memOrders) SetOrderStatus(id string, status string) error {
	return m.set(id, func(o *models.Order_db) error {
		o.Status = status
		return nil
	})
}

func (m *memOrders) SetPaymentStatus(id string, status string, paymentStatus string) error {
	return m.set(id, func(o *models.Order_db) error {
		o.Status = status
		o.PaymentStatus = paymentStatus
		return nil
	})
}

func (m *memOrders) SetCheckoutSession(id string, sessionId string) error {
	return m.set(id, func(o *models.Order_db) error {
		o.CheckoutSessionId.String = sessionId
		o.CheckoutSessionId.Valid = true
		return nil
	})
}

func (m *memOrders) CancelOrder(id string) error {
	return m.set(id, func(o *models.Order_db) error {
		if o.PaymentStatus == models.PaymentPaid {
			return models.ErrNotAllowed
		}
		o.Status = models.StatusCancelled
		o.PaymentStatus = models.PaymentCancelled
		return nil
	})
}

func (m *memOrders) DeleteOrder(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[id]; !ok {
		return models.ErrNotFoundError
	}
	delete(m.orders, id)
	return nil
}

func (m *memOrders) GetOrderStats() (stats models.Stats_db, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats.OrdersByStatus = map[string]int{}
	for _, o := range m.orders {
		stats.TotalOrders++
		stats.OrdersByStatus[o.Status]++
		if o.Status != models.StatusCancelled {
			stats.TotalSales = stats.TotalSales.Add(o.TotalPrice)
		}
	}
	return
}

type memFavorites struct {
	mu  sync.Mutex
	ids map[string][]string
}

func (m *memFavorites) GetFavoriteIds(userId string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ids, ok := m.ids[userId]; ok {
		return ids, nil
	}
	return []string{}, nil
}

func (m *memFavorites) SetFavoriteIds(userId string, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ids[userId] = ids
	return nil
}

// memUsers stores plain passwords.
type memUsers struct {
	users map[string]models.User_db
}

func (m *memUsers) GetUserById(id int) (models.User_db, bool, error) {
	for _, u := range m.users {
		if u.Id == id {
			return u, true, nil
		}
	}
	return models.User_db{}, false, nil
}

func (m *memUsers) GetUserByName(name string) (models.User_db, bool, error) {
	u, ok := m.users[name]
	return u, ok, nil
}

func (m *memUsers) EncryptPassword(p string) (string, error) { return p, nil }

func (m *memUsers) VerifyPassword(hashed string, sent string) bool { return hashed == sent }

func (m *memUsers) UpdatePassword(userId int, newPassword string) error { return nil }

func (m *memUsers) AddNewUser(u models.User_db) (int, error) { return 0, nil }

func (m *memUsers) EnsureAdmin(username string, password string) error { return nil }
