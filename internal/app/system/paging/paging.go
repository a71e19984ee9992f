// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

const (
	// DefaultLimit is the page size when the request names none.
	DefaultLimit = 10
	// MaxLimit caps a requested page size.
	MaxLimit = 100
	// MaxPage caps a requested page number so Skip stays far from overflow.
	MaxPage = 1_000_000
)

// Page is a 1-based page number and a page size.
type Page struct {
	Number int
	Limit  int
}

// Parse reads ?page and ?limit. Missing or invalid values fall back to
// page 1 and DefaultLimit; limit is clamped to MaxLimit and page to MaxPage.
func Parse(r *http.Request) Page {
	p := Page{
		Number: positiveInt(query.Get(r, "page"), 1),
		Limit:  positiveInt(query.Get(r, "limit"), DefaultLimit),
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Number > MaxPage {
		p.Number = MaxPage
	}
	return p
}

func positiveInt(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// Skip is the number of documents before this page.
func (p Page) Skip() int64 { return int64(p.Number-1) * int64(p.Limit) }

// TotalPages is ceil(total / limit).
func (p Page) TotalPages(total int64) int64 {
	if total <= 0 || p.Limit <= 0 {
		return 0
	}
	l := int64(p.Limit)
	return (total + l - 1) / l
}
