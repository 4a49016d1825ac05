package algo

import "github.com/huangsam/benchboard/schema"

// Paginate returns the requested 1-based page of items. Out-of-range pages
// clamp to the nearest valid page; a non-positive size uses the default.
func Paginate[T any](items []T, page, size int) ([]T, schema.Pagination) {
	if size <= 0 {
		size = schema.DefaultPageSize
	}
	total := len(items)
	totalPages := (total + size - 1) / size

	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	info := schema.Pagination{
		Page:       page,
		PageSize:   size,
		TotalPages: totalPages,
		TotalItems: total,
	}
	if total == 0 {
		return []T{}, info
	}

	start := (page - 1) * size
	end := min(start+size, total)
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out, info
}

// Pager tracks the view state of an index: the active query and the
// current page. Any change to the query resets the page to 1.
type Pager struct {
	query schema.Query
	page  int
	size  int
}

// NewPager creates a pager on page 1. A non-positive size uses the default.
func NewPager(size int) *Pager {
	if size <= 0 {
		size = schema.DefaultPageSize
	}
	return &Pager{page: 1, size: size}
}

// SetQuery updates the criteria and returns to page 1 when they changed.
func (p *Pager) SetQuery(q schema.Query) {
	if q != p.query {
		p.page = 1
	}
	p.query = q
}

// SetPage requests a page. The request is clamped when a page is taken.
func (p *Pager) SetPage(page int) {
	p.page = page
}

// Query returns the active criteria.
func (p *Pager) Query() schema.Query { return p.query }

// Page returns the current page.
func (p *Pager) Page() int { return p.page }

// PageOf filters, sorts and slices items with the pager state, storing the
// clamped page number back on the pager.
func PageOf[T FilterableItem](p *Pager, items []T) ([]T, schema.Pagination) {
	filtered := FilterAndSort(items, p.query)
	out, info := Paginate(filtered, p.page, p.size)
	p.page = info.Page
	return out, info
}
