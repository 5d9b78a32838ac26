package storefront

import (
	"context"

	"bookStore/entities"

	"github.com/rs/zerolog/log"
)

const MsgLoginForFavorites = "กรุณาเข้าสู่ระบบก่อนเพิ่มรายการโปรด"

type FavoritesAPI interface {
	Favorites(ctx context.Context, userId string) ([]entities.Book, error)
	SetFavorites(ctx context.Context, userId string, bookIds []string) ([]entities.Book, error)
}

type FavoritesState struct {
	Items   []entities.Book
	Loading bool
	Err     error
}

// Favorites mirrors the signed in user's favorites list. The server copy
// always wins.
//
// The server only accepts the whole list, so two toggles racing from stale
// local state can lose one of the updates. The follow-up fetch narrows but
// does not close that window.
type Favorites struct {
	api      FavoritesAPI
	store    *Store[FavoritesState]
	notifier Notifier
}

func NewFavorites(api FavoritesAPI, n Notifier) *Favorites {
	if n == nil {
		n = LogNotifier{}
	}
	return &Favorites{api: api, store: NewStore(FavoritesState{}), notifier: n}
}

func (f *Favorites) setLoading() {
	f.store.Update(func(st FavoritesState) FavoritesState {
		st.Loading = true
		st.Err = nil
		return st
	})
}

func (f *Favorites) fail(err error) {
	f.store.Update(func(st FavoritesState) FavoritesState {
		st.Loading = false
		st.Err = err
		return st
	})
}

func (f *Favorites) replace(items []entities.Book) {
	f.store.Set(FavoritesState{Items: items})
}

// FetchForUser replaces the local list with the server's.
func (f *Favorites) FetchForUser(ctx context.Context, userId string) error {
	f.setLoading()
	items, err := f.api.Favorites(ctx, userId)
	if err != nil {
		log.Error().Err(err).Str("user", userId).Msg("fetch favorites")
		f.fail(err)
		return err
	}
	f.replace(items)
	return nil
}

// Toggle adds book when it is not a favorite yet and removes it otherwise.
// The full resulting id list is sent, the server reply becomes the local
// state and a fresh fetch follows.
func (f *Favorites) Toggle(ctx context.Context, book entities.Book, user *User) (added bool, err error) {
	if user == nil || user.Uid == "" {
		f.notifier.Warn(MsgLoginForFavorites)
		return false, ErrLoginRequired
	}

	current := f.store.Get().Items
	ids := make([]string, 0, len(current)+1)
	for _, it := range current {
		if it.Id == book.Id {
			continue
		}
		ids = append(ids, it.Id)
	}
	added = len(ids) == len(current)
	if added {
		ids = append(ids, book.Id)
	}

	f.setLoading()
	items, err := f.api.SetFavorites(ctx, user.Uid, ids)
	if err != nil {
		log.Error().Err(err).Str("user", user.Uid).Msg("update favorites")
		f.fail(err)
		f.notifier.Error("ไม่สามารถอัปเดตรายการโปรดได้", err)
		return false, err
	}
	f.replace(items)

	if e := f.FetchForUser(ctx, user.Uid); e != nil {
		log.Warn().Err(e).Msg("favorites refetch failed")
	}
	return added, nil
}

func (f *Favorites) Contains(bookId string) bool {
	for _, it := range f.store.Get().Items {
		if it.Id == bookId {
			return true
		}
	}
	return false
}

func (f *Favorites) Items() []entities.Book {
	return append([]entities.Book(nil), f.store.Get().Items...)
}

func (f *Favorites) State() FavoritesState {
	return f.store.Get()
}

func (f *Favorites) Clear() {
	f.store.Set(FavoritesState{})
}

func (f *Favorites) Subscribe(fn func(FavoritesState)) (unsubscribe func()) {
	return f.store.Subscribe(fn)
}
