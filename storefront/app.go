package storefront

import (
	"context"
	"net/http"

	"bookStore/client"
	"bookStore/entities"
	"bookStore/localstore"

	"github.com/rs/zerolog/log"
)

type Config struct {
	// BaseURL overrides the API root picked from Production.
	BaseURL    string
	Production bool
	AdminEmail string
	// LocalPath is the sqlite file for persisted state, in memory when empty.
	LocalPath   string
	PersistCart bool
	HTTPClient  *http.Client
	Notifier    Notifier
	Confirmer   Confirmer
	Navigate    func(path string)
}

// App wires the storefront stores to one API client and one local store.
type App struct {
	Client    *client.Client
	Local     *localstore.Store
	Bus       *Bus
	Session   *Session
	Cart      *Cart
	Favorites *Favorites
	Catalog   *Catalog
	Search    *SearchBox
	Checkout  *Checkout
	Payments  *PaymentPoller
	Orders    *OrderHistory
	Admin     *Admin

	navigate func(path string)
	unwatch  func()
}

func NewApp(cfg Config) (*App, error) {
	path := cfg.LocalPath
	if path == "" {
		path = ":memory:"
	}
	local, err := localstore.Open(path)
	if err != nil {
		return nil, err
	}

	a := &App{Local: local, Bus: NewBus(), navigate: cfg.Navigate}
	if a.navigate == nil {
		a.navigate = func(string) {}
	}
	a.Session = NewSession(local, cfg.AdminEmail)

	opts := []client.Option{
		client.WithTokenSource(a.Session),
		client.WithUnauthorizedHandler(a.Session.ClearToken),
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, client.WithHTTPClient(cfg.HTTPClient))
	}
	a.Client = client.New(client.BaseURL(cfg.Production, cfg.BaseURL), opts...)

	a.Cart = NewCart(cfg.Notifier)
	if cfg.PersistCart {
		a.Cart.SetPersister(local)
	}
	a.Favorites = NewFavorites(a.Client, cfg.Notifier)
	a.Catalog = NewCatalog(PageSize)
	a.Search = NewSearchBox(a.Catalog, func(path string) { a.Navigate(path) }, SearchDelay)
	a.Checkout = NewCheckout(a.Client, a.Cart, a.Session, cfg.Notifier)
	a.Payments = NewPaymentPoller(a.Client, PaymentPollInterval)
	a.Orders = NewOrderHistory(a.Client, a.Session, a.Bus)
	a.Admin = NewAdmin(a.Client, a.Session, cfg.Confirmer, cfg.Notifier, a.Bus)
	return a, nil
}

// Start restores persisted state and loads the catalog. A failed catalog
// load leaves the no-data state and is returned.
func (a *App) Start(ctx context.Context) error {
	if err := a.Session.Load(); err != nil {
		log.Warn().Err(err).Msg("session restore")
	}
	if err := a.Cart.Restore(ctx, a.Client.FetchBooksByIds); err != nil {
		log.Warn().Err(err).Msg("cart restore")
	}
	a.unwatch = a.Client.Watch(client.BooksKey(0, 0), func() {
		if err := a.loadBooks(context.Background()); err != nil {
			log.Warn().Err(err).Msg("catalog reload")
		}
	})
	return a.loadBooks(ctx)
}

func (a *App) loadBooks(ctx context.Context) error {
	books, err := a.Client.FetchAllBooks(ctx)
	if err != nil {
		return err
	}
	a.Catalog.SetBooks(books)
	a.Search.SetBooks(books)
	return nil
}

// SignIn records the customer and loads their favorites.
func (a *App) SignIn(ctx context.Context, u User) error {
	a.Session.Login(u)
	return a.Favorites.FetchForUser(ctx, u.Uid)
}

func (a *App) SignOut() {
	a.Session.Logout()
	a.Favorites.Clear()
}

// ToggleFavorite toggles book for the signed in customer, if any.
func (a *App) ToggleFavorite(ctx context.Context, book entities.Book) (bool, error) {
	var user *User
	if u, ok := a.Session.User(); ok {
		user = &u
	}
	return a.Favorites.Toggle(ctx, book, user)
}

// Navigate sends the view to path, or to where the route guards redirect it,
// and returns the path actually shown.
func (a *App) Navigate(path string) string {
	target := Resolve(a.Session, path)
	if target != path {
		log.Debug().Str("from", path).Str("to", target).Msg("navigation redirected")
	}
	a.navigate(target)
	return target
}

func (a *App) Close() error {
	if a.unwatch != nil {
		a.unwatch()
	}
	a.Search.Close()
	a.Orders.Close()
	return a.Local.Close()
}
