package services

import "math"

// DefaultPerPage is used when a caller asks for a non-positive page size.
const DefaultPerPage = 5

// Page is one window of an ordered listing.
type Page[T any] struct {
	Items   []T
	Total   int64
	Page    int
	PerPage int
	Pages   int
	HasPrev bool
	HasNext bool
	PrevNum int // 0 when HasPrev is false
	NextNum int // 0 when HasNext is false
}

// normalizePage clamps page to 1 and falls back to DefaultPerPage.
func normalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	return page, perPage
}

// offsetFor saturates at math.MaxInt instead of wrapping for huge pages.
func offsetFor(page, perPage int) int {
	if page-1 > math.MaxInt/perPage {
		return math.MaxInt
	}
	return (page - 1) * perPage
}

// NewPage computes the page metadata. Pages beyond the end are legal and
// simply carry no items.
func NewPage[T any](items []T, total int64, page, perPage int) *Page[T] {
	page, perPage = normalizePage(page, perPage)

	pages := int((total + int64(perPage) - 1) / int64(perPage))
	p := &Page[T]{
		Items:   items,
		Total:   total,
		Page:    page,
		PerPage: perPage,
		Pages:   pages,
		HasPrev: page > 1,
		HasNext: page < pages,
	}
	if p.HasPrev {
		p.PrevNum = page - 1
	}
	if p.HasNext {
		p.NextNum = page + 1
	}
	return p
}
