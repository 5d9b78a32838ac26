package storefront

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"bookStore/entities"
	"bookStore/localstore"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddTwice(t *testing.T) {
	n := &recordingNotifier{}
	cart := NewCart(n)
	book := testBook("B1", "รวยด้วยหุ้น", "นักลงทุน", "ธุรกิจ", 250)

	assert.True(t, cart.Add(book))
	assert.False(t, cart.Add(book))

	assert.Equal(t, 1, cart.Len())
	assert.Equal(t, []string{MsgAddedToCart}, n.successes)
	assert.Equal(t, []string{MsgAlreadyInCart}, n.warnings)
}

func TestCartRemove(t *testing.T) {
	cart := NewCart(&recordingNotifier{})
	books := tenBooks()
	cart.Add(books[0])
	cart.Add(books[1])

	var seen int
	off := cart.Subscribe(func([]entities.Book) { seen++ })
	defer off()

	cart.Remove(books[5])
	assert.Equal(t, []string{"B1", "B2"}, cart.Ids())

	cart.Remove(books[0])
	assert.Equal(t, []string{"B2"}, cart.Ids())
	assert.Equal(t, 1, seen)
}

func TestCartTotal(t *testing.T) {
	cart := NewCart(&recordingNotifier{})
	assert.Equal(t, "0.00", cart.TotalString())

	cart.Add(testBook("a", "A", "x", "ธุรกิจ", 100))
	cart.Add(testBook("b", "B", "y", "ภาษา", 250))
	assert.Equal(t, "350.00", cart.TotalString())

	cart.Clear()
	assert.Zero(t, cart.Len())
	assert.Equal(t, "0.00", cart.TotalString())
}

func TestCartItemsIsACopy(t *testing.T) {
	cart := NewCart(&recordingNotifier{})
	cart.Add(testBook("a", "A", "x", "ธุรกิจ", 100))

	items := cart.Items()
	items[0].Title = "changed"
	assert.Equal(t, "A", cart.Items()[0].Title)
}

func TestCartPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.db")
	store, err := localstore.Open(path)
	require.NoError(t, err)
	defer store.Close()

	books := tenBooks()
	cart := NewCart(&recordingNotifier{})
	cart.SetPersister(store)
	cart.Add(books[6])
	cart.Add(books[0])
	cart.Add(books[3])
	cart.Remove(books[0])

	ids, err := store.LoadCart()
	require.NoError(t, err)
	assert.Equal(t, []string{"B7", "B4"}, ids)

	restored := NewCart(&recordingNotifier{})
	restored.SetPersister(store)
	var asked []string
	err = restored.Restore(context.Background(), func(ctx context.Context, ids []string) ([]entities.Book, error) {
		asked = ids
		return []entities.Book{books[6]}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"B7", "B4"}, asked)
	assert.Equal(t, []string{"B7"}, restored.Ids())
}

func TestCartRestoreWithoutPersister(t *testing.T) {
	cart := NewCart(nil)
	err := cart.Restore(context.Background(), func(context.Context, []string) ([]entities.Book, error) {
		return nil, errors.New("must not be called")
	})
	assert.NoError(t, err)
	assert.Zero(t, cart.Len())
}

type brokenStore struct{}

func (brokenStore) SaveCart([]string) error { return errors.New("disk full") }
func (brokenStore) LoadCart() ([]string, error) { return nil, errors.New("database is locked") }

func TestCartRestoreLogsUnreadableStore(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = prev }()

	cart := NewCart(nil)
	cart.SetPersister(brokenStore{})
	err := cart.Restore(context.Background(), func(context.Context, []string) ([]entities.Book, error) {
		return nil, errors.New("must not be called")
	})
	assert.NoError(t, err)
	assert.Zero(t, cart.Len())
	assert.Contains(t, buf.String(), "cart not restored")
	assert.Contains(t, buf.String(), "database is locked")
}
