package query

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page is the pagination window of a listing.
type Page struct {
	Skip        int
	PerPage     int
	CurrentPage int
}

// BuildPagination resolves page and limit. Missing, non-numeric or
// non-positive values fall back to DefaultPage and DefaultLimit, a limit
// above MaxLimit is capped to MaxLimit, and page is capped so that Skip
// never overflows. Skip is never negative.
func BuildPagination(page, limit string) Page {
	p := positiveInt(page, DefaultPage)
	l := min(positiveInt(limit, DefaultLimit), MaxLimit)
	p = min(p, math.MaxInt/l)
	return Page{
		Skip:        (p - 1) * l,
		PerPage:     l,
		CurrentPage: p,
	}
}

// TotalPages is ceil(total / perPage).
func (p Page) TotalPages(total int64) int {
	if p.PerPage <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(p.PerPage)))
}

func positiveInt(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return def
	}
	return n
}
