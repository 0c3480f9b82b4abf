// Package paging filters and paginates record lists on the client. The API
// returns whole collections; search and page windows are applied locally.
package paging

import "strings"

// DefaultPageSize is used when a query does not set one.
const DefaultPageSize = 10

// Searchable is anything that exposes lowercase text to match against.
type Searchable interface {
	SearchText() string
}

// Query selects a window of a filtered list. Page is 1-based.
type Query struct {
	Search   string
	Page     int
	PageSize int
}

type Page[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	Total      int
	TotalPages int
}

// HasNext reports whether a later page exists.
func (p Page[T]) HasNext() bool {
	return p.Page < p.TotalPages
}

// Filter keeps the items whose search text contains every word of search,
// case-insensitively. An empty search keeps everything.
func Filter[T Searchable](items []T, search string) []T {
	words := strings.Fields(strings.ToLower(search))
	if len(words) == 0 {
		return items
	}

	out := make([]T, 0, len(items))
	for _, it := range items {
		text := strings.ToLower(it.SearchText())
		match := true
		for _, w := range words {
			if !strings.Contains(text, w) {
				match = false
				break
			}
		}
		if match {
			out = append(out, it)
		}
	}
	return out
}

// Apply filters items and cuts the requested page. Pages below 1 become 1
// and pages past the end clamp to the last page.
func Apply[T Searchable](items []T, q Query) Page[T] {
	size := q.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}

	filtered := Filter(items, q.Search)
	total := len(filtered)
	totalPages := total / size
	if total%size != 0 {
		totalPages++
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	if totalPages == 0 {
		page = 1
	}

	start := (page - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page[T]{
		Items:      filtered[start:end],
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: totalPages,
	}
}
