package storefront

import (
	"context"

	"bookStore/entities"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	MsgAddedToCart   = "สินค้าของคุณอยู่ในตะกร้าเรียบร้อยแล้ว"
	MsgAlreadyInCart = "This item is already in the cart"
)

// CartPersister saves the cart between runs. Only ids are stored, books are
// fetched again on restore.
type CartPersister interface {
	SaveCart(ids []string) error
	LoadCart() ([]string, error)
}

// Cart is an ordered set of books, unique by id.
type Cart struct {
	store    *Store[[]entities.Book]
	notifier Notifier
	persist  CartPersister
}

func NewCart(n Notifier) *Cart {
	if n == nil {
		n = LogNotifier{}
	}
	return &Cart{store: NewStore[[]entities.Book](nil), notifier: n}
}

// SetPersister makes every change be written through p.
func (c *Cart) SetPersister(p CartPersister) {
	c.persist = p
}

// Add appends book unless a book with the same id is already there.
func (c *Cart) Add(book entities.Book) (added bool) {
	c.store.Update(func(items []entities.Book) []entities.Book {
		for _, it := range items {
			if it.Id == book.Id {
				return items
			}
		}
		added = true
		next := make([]entities.Book, 0, len(items)+1)
		next = append(next, items...)
		return append(next, book)
	})
	if added {
		c.notifier.Success(MsgAddedToCart)
		c.save()
	} else {
		c.notifier.Warn(MsgAlreadyInCart)
	}
	return
}

func (c *Cart) Remove(book entities.Book) {
	removed := false
	c.store.Update(func(items []entities.Book) []entities.Book {
		next := make([]entities.Book, 0, len(items))
		for _, it := range items {
			if it.Id == book.Id {
				removed = true
				continue
			}
			next = append(next, it)
		}
		if !removed {
			return items
		}
		return next
	})
	if removed {
		c.save()
	}
}

func (c *Cart) Clear() {
	c.store.Set(nil)
	c.save()
}

func (c *Cart) Items() []entities.Book {
	items := c.store.Get()
	return append([]entities.Book(nil), items...)
}

func (c *Cart) Len() int {
	return len(c.store.Get())
}

func (c *Cart) Ids() []string {
	items := c.store.Get()
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.Id)
	}
	return ids
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.store.Get() {
		total = total.Add(it.NewPrice)
	}
	return total
}

// TotalString formats the total with two decimals, e.g. "350.00".
func (c *Cart) TotalString() string {
	return c.Total().StringFixed(2)
}

func (c *Cart) Subscribe(fn func([]entities.Book)) (unsubscribe func()) {
	return c.store.Subscribe(fn)
}

// Restore reloads the persisted cart. Ids the server no longer knows are
// dropped. An unreadable store leaves the cart empty.
func (c *Cart) Restore(ctx context.Context, fetch func(ctx context.Context, ids []string) ([]entities.Book, error)) error {
	if c.persist == nil {
		return nil
	}
	ids, err := c.persist.LoadCart()
	if err != nil {
		log.Warn().Err(err).Msg("cart not restored")
		return nil
	}
	if len(ids) == 0 {
		return nil
	}
	books, err := fetch(ctx, ids)
	if err != nil {
		return err
	}
	c.store.Set(books)
	return nil
}

func (c *Cart) save() {
	if c.persist == nil {
		return
	}
	if err := c.persist.SaveCart(c.Ids()); err != nil {
		log.Warn().Err(err).Msg("cart not persisted")
	}
}
