package storefront

import (
	"context"
	"strings"

	"bookStore/client"
	"bookStore/entities"
	"bookStore/models"

	"github.com/rs/zerolog/log"
)

// AdminPageSize is the number of rows on one dashboard table page.
const AdminPageSize = 10

type AdminAPI interface {
	AdminLogin(ctx context.Context, username, password string) (entities.LoginResponse, error)
	AdminLogout(ctx context.Context) error
	AdminStats(ctx context.Context) (entities.AdminStats, error)
	FetchAllBooks(ctx context.Context) ([]entities.Book, error)
	CreateBook(ctx context.Context, form client.BookForm) (entities.Book, error)
	UpdateBook(ctx context.Context, id string, req entities.BookRequest) (entities.Book, error)
	UpdateBookForm(ctx context.Context, id string, form client.BookForm) (entities.Book, error)
	DeleteBook(ctx context.Context, id string) error
	AllOrders(ctx context.Context) ([]entities.Order, error)
	UpdateOrderStatus(ctx context.Context, orderId string, status string) (entities.Order, error)
	DeleteOrder(ctx context.Context, orderId string) error
}

// Admin holds the dashboard actions. Every call checks the admin token first
// and every mutation is confirmed by the user.
type Admin struct {
	api      AdminAPI
	session  *Session
	confirm  Confirmer
	notifier Notifier
	bus      *Bus
}

func NewAdmin(api AdminAPI, session *Session, confirm Confirmer, n Notifier, bus *Bus) *Admin {
	if confirm == nil {
		confirm = AlwaysConfirm{}
	}
	if n == nil {
		n = LogNotifier{}
	}
	return &Admin{api: api, session: session, confirm: confirm, notifier: n, bus: bus}
}

func (a *Admin) Login(ctx context.Context, username, password string) error {
	res, err := a.api.AdminLogin(ctx, username, password)
	if err != nil {
		a.notifier.Error("ชื่อผู้ใช้หรือรหัสผ่านไม่ถูกต้อง", err)
		return err
	}
	if err = a.session.SetAdminToken(res.Token); err != nil {
		return err
	}
	a.notifier.Success("Admin Login successful")
	return nil
}

func (a *Admin) Logout(ctx context.Context) error {
	if !a.confirm.Confirm("ออกจากระบบ", "คุณต้องการออกจากระบบหรือไม่?") {
		return ErrCancelled
	}
	if err := a.api.AdminLogout(ctx); err != nil && !client.IsAuthError(err) {
		log.Warn().Err(err).Msg("admin logout")
	}
	a.session.ClearToken()
	return nil
}

// guard handles the shared start of every action: the token check and, for
// mutations, the confirmation.
func (a *Admin) guard(title, text string) error {
	if err := a.session.RequireAdmin(); err != nil {
		return err
	}
	if title != "" && !a.confirm.Confirm(title, text) {
		return ErrCancelled
	}
	return nil
}

// done reports the outcome of a mutation to the user.
func (a *Admin) done(success string, err error) error {
	if err != nil {
		if client.IsAuthError(err) {
			a.session.ClearToken()
			return ErrLoginRequired
		}
		a.notifier.Error("เกิดข้อผิดพลาด", err)
		return err
	}
	a.notifier.Success(success)
	return nil
}

func (a *Admin) Stats(ctx context.Context) (entities.AdminStats, error) {
	if err := a.guard("", ""); err != nil {
		return entities.AdminStats{}, err
	}
	return a.api.AdminStats(ctx)
}

// Books lists the books matching query, AdminPageSize per page.
func (a *Admin) Books(ctx context.Context, query string, page int) (Page[entities.Book], error) {
	if err := a.guard("", ""); err != nil {
		return Page[entities.Book]{}, err
	}
	books, err := a.api.FetchAllBooks(ctx)
	if err != nil {
		return Page[entities.Book]{}, err
	}
	return Paginate(Filter(books, models.CategoryAll, query), page, AdminPageSize), nil
}

func (a *Admin) AddBook(ctx context.Context, form client.BookForm) (book entities.Book, err error) {
	if err = a.guard("เพิ่มหนังสือ", "ยืนยันการเพิ่มหนังสือ?"); err != nil {
		return
	}
	book, err = a.api.CreateBook(ctx, form)
	err = a.done("Book added successfully", err)
	return
}

// EditBook sends a multipart update when files are attached and JSON
// otherwise.
func (a *Admin) EditBook(ctx context.Context, id string, form client.BookForm) (book entities.Book, err error) {
	if err = a.guard("แก้ไขหนังสือ", "ยืนยันการแก้ไขหนังสือ?"); err != nil {
		return
	}
	if form.Cover != nil || len(form.Images) > 0 {
		book, err = a.api.UpdateBookForm(ctx, id, form)
	} else {
		book, err = a.api.UpdateBook(ctx, id, form.Fields)
	}
	err = a.done("Book updated successfully", err)
	return
}

func (a *Admin) DeleteBook(ctx context.Context, id string) error {
	if err := a.guard("ลบหนังสือ", "คุณแน่ใจหรือไม่ที่จะลบหนังสือเล่มนี้?"); err != nil {
		return err
	}
	return a.done("Book deleted successfully", a.api.DeleteBook(ctx, id))
}

func orderMatches(o entities.Order, q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	for _, f := range []string{o.Id, o.Name, o.Email, o.Phone, o.Status} {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// Orders lists the orders whose id, name, email, phone or status contains
// query.
func (a *Admin) Orders(ctx context.Context, query string, page int) (Page[entities.Order], error) {
	if err := a.guard("", ""); err != nil {
		return Page[entities.Order]{}, err
	}
	orders, err := a.api.AllOrders(ctx)
	if err != nil {
		return Page[entities.Order]{}, err
	}
	matched := make([]entities.Order, 0, len(orders))
	for _, o := range orders {
		if orderMatches(o, query) {
			matched = append(matched, o)
		}
	}
	return Paginate(matched, page, AdminPageSize), nil
}

// UpdateOrderStatus changes the delivery status and tells other views.
func (a *Admin) UpdateOrderStatus(ctx context.Context, orderId string, status string) (order entities.Order, err error) {
	if !models.IsOrderStatus(status) {
		err = ValidationErrors{"status": "unknown order status"}
		return
	}
	if err = a.guard("เปลี่ยนสถานะ", "ต้องการเปลี่ยนสถานะเป็น "+status+" หรือไม่?"); err != nil {
		return
	}
	order, err = a.api.UpdateOrderStatus(ctx, orderId, status)
	if err = a.done("Status updated successfully", err); err != nil {
		return
	}
	if a.bus != nil {
		a.bus.Emit(EventOrderStatusUpdated, order)
	}
	return
}

func (a *Admin) DeleteOrder(ctx context.Context, orderId string) error {
	if err := a.guard("ลบคำสั่งซื้อ", "คุณแน่ใจหรือไม่ที่จะลบคำสั่งซื้อนี้?"); err != nil {
		return err
	}
	return a.done("Order deleted successfully", a.api.DeleteOrder(ctx, orderId))
}
