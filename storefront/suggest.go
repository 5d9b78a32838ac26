package storefront

import (
	"sort"
	"strings"

	"bookStore/entities"

	"github.com/agnivade/levenshtein"
)

const (
	SuggestThreshold = 0.4
	SuggestLimit     = 5
	SuggestDisplay   = 3
)

type Suggestions struct {
	Authors    []string
	Titles     []string
	Categories []string
}

// Top cuts every group to at most n entries.
func (s Suggestions) Top(n int) Suggestions {
	cut := func(v []string) []string {
		if len(v) > n {
			return v[:n]
		}
		return v
	}
	return Suggestions{Authors: cut(s.Authors), Titles: cut(s.Titles), Categories: cut(s.Categories)}
}

func (s Suggestions) Empty() bool {
	return len(s.Authors) == 0 && len(s.Titles) == 0 && len(s.Categories) == 0
}

// Suggester finds books approximately matching a query on title, author or
// category.
type Suggester struct {
	books     []entities.Book
	threshold float64
	limit     int
}

func NewSuggester(books []entities.Book) *Suggester {
	return &Suggester{books: books, threshold: SuggestThreshold, limit: SuggestLimit}
}

// Score is the smallest edit distance between query and any same length
// window of text, divided by the query length. 0 is an exact substring, 1 or
// more shares nothing.
func Score(query, text string) float64 {
	q := []rune(strings.ToLower(query))
	t := []rune(strings.ToLower(text))
	if len(q) == 0 {
		return 0
	}
	if len(t) <= len(q) {
		return float64(levenshtein.ComputeDistance(string(q), string(t))) / float64(len(q))
	}
	best := len(q)
	for i := 0; i+len(q) <= len(t) && best > 0; i++ {
		if d := levenshtein.ComputeDistance(string(q), string(t[i:i+len(q)])); d < best {
			best = d
		}
	}
	return float64(best) / float64(len(q))
}

type scored struct {
	book  entities.Book
	score float64
}

// Suggest returns up to SuggestLimit unique values per field. Books are
// ranked by their best field score and kept while below the threshold. An
// empty query lists the first books unfiltered.
func (s *Suggester) Suggest(query string) Suggestions {
	if strings.TrimSpace(query) == "" {
		return s.initial()
	}

	var hits []scored
	for _, b := range s.books {
		sc := Score(query, b.Title)
		if v := Score(query, b.Author); v < sc {
			sc = v
		}
		if v := Score(query, b.Category); v < sc {
			sc = v
		}
		if sc < s.threshold {
			hits = append(hits, scored{book: b, score: sc})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score < hits[j].score })

	var res Suggestions
	seen := map[string]map[string]bool{"a": {}, "t": {}, "c": {}}
	add := func(group string, dst *[]string, v string) {
		if strings.TrimSpace(v) == "" || seen[group][v] {
			return
		}
		seen[group][v] = true
		*dst = append(*dst, v)
	}
	for _, h := range hits {
		add("a", &res.Authors, h.book.Author)
		add("t", &res.Titles, h.book.Title)
		add("c", &res.Categories, h.book.Category)
	}
	return res.Top(s.limit)
}

func (s *Suggester) initial() Suggestions {
	var res Suggestions
	authors := map[string]bool{}
	categories := map[string]bool{}
	for _, b := range s.books {
		if !authors[b.Author] {
			authors[b.Author] = true
			res.Authors = append(res.Authors, b.Author)
		}
		res.Titles = append(res.Titles, b.Title)
		if !categories[b.Category] {
			categories[b.Category] = true
			res.Categories = append(res.Categories, b.Category)
		}
	}
	return res.Top(s.limit)
}
