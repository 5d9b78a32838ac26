package storefront

type Page[T any] struct {
	Items      []T
	Total      int
	Page       int
	TotalPages int
}

// Paginate returns page of items, clamped to the pages that exist.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = len(items)
	}
	total := TotalPages(len(items), size)
	page = ClampPage(page, total)
	start := (page - 1) * size
	end := start + size
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}
	return Page[T]{Items: items[start:end], Total: len(items), Page: page, TotalPages: total}
}
