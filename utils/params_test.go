package utils

import (
	"net/http/httptest"
	"testing"
)

func TestParsePagination(t *testing.T) {
	cases := []struct {
		url       string
		wantPage  int
		wantLimit int
	}{
		{"/api/blogs", 1, 10},
		{"/api/blogs?page=3&limit=10", 3, 10},
		{"/api/blogs?page=0&limit=-5", 1, 10},
		{"/api/blogs?page=abc&limit=xyz", 1, 10},
		{"/api/blogs?page=2&limit=25", 2, 25},
	}
	for _, c := range cases {
		r := httptest.NewRequest("GET", c.url, nil)
		p := ParsePagination(r)
		if p.Page != c.wantPage || p.Limit != c.wantLimit {
			t.Errorf("ParsePagination(%q) = %+v, want page=%d limit=%d", c.url, p, c.wantPage, c.wantLimit)
		}
	}
}

func TestSkipAndTotalPages(t *testing.T) {
	p := Pagination{Page: 3, Limit: 10}
	if p.Skip() != 20 {
		t.Errorf("Skip = %d, want 20", p.Skip())
	}
	if got := TotalPages(25, 10); got != 3 {
		t.Errorf("TotalPages(25, 10) = %d, want 3", got)
	}
	if got := TotalPages(30, 10); got != 3 {
		t.Errorf("TotalPages(30, 10) = %d, want 3", got)
	}
	if got := TotalPages(0, 10); got != 0 {
		t.Errorf("TotalPages(0, 10) = %d, want 0", got)
	}
}

func TestPageSlice(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i + 1
	}

	got := PageSlice(items, Pagination{Page: 3, Limit: 10})
	if len(got) != 5 || got[0] != 21 || got[4] != 25 {
		t.Errorf("page 3 of 25 = %v, want items 21..25", got)
	}

	if got := PageSlice(items, Pagination{Page: 10, Limit: 10}); len(got) != 0 {
		t.Errorf("out-of-range page returned %v, want empty", got)
	}

	if got := PageSlice([]int{}, Pagination{Page: 1, Limit: 10}); len(got) != 0 {
		t.Errorf("empty collection returned %v", got)
	}
}

func TestSplitCategories(t *testing.T) {
	got := SplitCategories("tech, news ,,  ")
	if len(got) != 2 || got[0] != "tech" || got[1] != "news" {
		t.Errorf("SplitCategories = %v", got)
	}
	if got := SplitCategories(""); len(got) != 0 {
		t.Errorf("SplitCategories(\"\") = %v, want empty", got)
	}
}
