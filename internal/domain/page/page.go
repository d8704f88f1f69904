package page

import "fmt"

// Pagination limits shared by discovery and search.
const (
	DefaultLimit = 20
	MaxLimit     = 100
	// MaxOffset bounds how deep a client can page, so offset+limit never overflows and no
	// source is asked for more than MaxOffset+MaxLimit rows.
	MaxOffset = 10000
)

// Page is a validated limit/offset window.
type Page struct {
	limit  int
	offset int
}

// New validates a page window. limit must be positive, offset within [0, MaxOffset].
func New(limit, offset int) (Page, error) {
	if limit <= 0 {
		return Page{}, fmt.Errorf("limit must be positive, got %d", limit)
	}
	if offset < 0 || offset > MaxOffset {
		return Page{}, fmt.Errorf("offset must be between 0 and %d, got %d", MaxOffset, offset)
	}
	return Page{limit: limit, offset: offset}, nil
}

// Clamp builds a page from untrusted values: non-positive limit falls back to def,
// limit above maxLimit is capped, a negative offset becomes zero and an offset above
// MaxOffset is capped.
func Clamp(limit, offset, def, maxLimit int) Page {
	if limit <= 0 {
		limit = def
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	if offset > MaxOffset {
		offset = MaxOffset
	}
	return Page{limit: limit, offset: offset}
}

// Limit returns the page size.
func (p Page) Limit() int { return p.limit }

// Offset returns the number of items skipped.
func (p Page) Offset() int { return p.offset }

// End returns offset+limit, the number of leading items a source must provide to fill the page.
func (p Page) End() int { return p.offset + p.limit }

// Slice returns the window [offset, offset+limit) of n items as bounds safe for slicing.
func (p Page) Slice(n int) (from, to int) {
	from = p.offset
	if from > n {
		from = n
	}
	to = from + p.limit
	if to > n {
		to = n
	}
	return from, to
}
