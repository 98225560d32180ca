package utils

import (
	"net/http"
	"strconv"
)

// Pagination is a validated page/limit pair. Out-of-range input is
// clamped to the defaults rather than rejected.
type Pagination struct {
	Page  int
	Limit int
}

func ParsePagination(r *http.Request) Pagination {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}

	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = 10
	}

	return Pagination{Page: page, Limit: limit}
}

func (p Pagination) Skip() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}

// TotalPages is ceil(total/limit).
func TotalPages(total int64, limit int) int {
	if limit < 1 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// PageSlice windows an in-memory collection. Pages past the end yield an
// empty slice, never an error.
func PageSlice[T any](items []T, p Pagination) []T {
	start := int(p.Skip())
	if start >= len(items) {
		return []T{}
	}
	end := start + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
