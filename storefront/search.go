package storefront

import (
	"net/url"
	"strings"
	"sync"
	"time"

	"bookStore/entities"
)

// SearchBox drives the suggestion panel and keeps the catalog query and the
// page url in step with what the user typed.
type SearchBox struct {
	mu          sync.Mutex
	catalog     *Catalog
	debounce    *Debouncer
	suggester   *Suggester
	term        string
	suggestions *Store[Suggestions]
	navigate    func(path string)
}

// NewSearchBox wires a search box to catalog. navigate receives the url the
// page should show and may be nil.
func NewSearchBox(catalog *Catalog, navigate func(path string), delay time.Duration) *SearchBox {
	if navigate == nil {
		navigate = func(string) {}
	}
	return &SearchBox{
		catalog:     catalog,
		debounce:    NewDebouncer(delay),
		suggester:   NewSuggester(nil),
		suggestions: NewStore(Suggestions{}),
		navigate:    navigate,
	}
}

func (s *SearchBox) SetBooks(books []entities.Book) {
	s.mu.Lock()
	s.suggester = NewSuggester(books)
	term := s.term
	s.mu.Unlock()
	if strings.TrimSpace(term) == "" {
		s.suggestions.Set(s.currentSuggester().Suggest(""))
	}
}

func (s *SearchBox) currentSuggester() *Suggester {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.suggester
}

// Type records a keystroke. A blank term resets at once, anything else is
// searched after the debounce delay.
func (s *SearchBox) Type(term string) {
	s.mu.Lock()
	s.term = term
	s.mu.Unlock()

	if strings.TrimSpace(term) == "" {
		s.debounce.Stop()
		s.suggestions.Set(s.currentSuggester().Suggest(""))
		s.catalog.SetQuery("")
		s.navigate(RouteBooks)
		return
	}
	s.debounce.Call(func() { s.search(term) })
}

func (s *SearchBox) search(term string) {
	s.mu.Lock()
	if s.term != term {
		s.mu.Unlock()
		return
	}
	sg := s.suggester
	s.mu.Unlock()

	s.suggestions.Set(sg.Suggest(term))
	s.catalog.SetQuery(term)
	s.navigate(BooksQueryPath(term))
}

// Submit runs the search immediately, skipping the debounce.
func (s *SearchBox) Submit() {
	s.debounce.Stop()
	s.mu.Lock()
	term := s.term
	s.mu.Unlock()
	if strings.TrimSpace(term) == "" {
		s.catalog.SetQuery("")
		s.navigate(RouteBooks)
		return
	}
	s.search(term)
}

// Suggestions returns the full ranked groups.
func (s *SearchBox) Suggestions() Suggestions {
	return s.suggestions.Get()
}

// Displayed returns what the panel shows.
func (s *SearchBox) Displayed() Suggestions {
	return s.suggestions.Get().Top(SuggestDisplay)
}

func (s *SearchBox) Subscribe(fn func(Suggestions)) (unsubscribe func()) {
	return s.suggestions.Subscribe(fn)
}

func (s *SearchBox) Close() {
	s.debounce.Stop()
}

func BooksQueryPath(term string) string {
	return RouteBooks + "?q=" + url.QueryEscape(term)
}
