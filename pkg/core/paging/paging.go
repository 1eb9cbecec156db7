package paging

import "math"

// DefaultPageSize is used when no page size is configured.
const DefaultPageSize = 50

// Paging is the metadata block returned with every page.
type Paging struct {
	PageCount          int   `json:"PageCount"`
	PageSize           int   `json:"PageSize"`    // items actually returned
	PageMaxSize        int   `json:"PageMaxSize"` // effective page size
	PageNumber         int   `json:"PageNumber"`
	TotalNumberOfItems int64 `json:"TotalNumberOfItems"`
}

// Envelope wraps one page of items with its paging metadata.
type Envelope[T any] struct {
	Items  []T    `json:"Items"`
	Paging Paging `json:"Paging"`
}

// Paginator computes page sizes, counts and offsets.
// It never rejects out of range input: a page past the end is just empty.
type Paginator struct {
	DefaultPageSize int
}

func New(defaultPageSize int) Paginator {
	if defaultPageSize <= 0 {
		defaultPageSize = DefaultPageSize
	}
	return Paginator{DefaultPageSize: defaultPageSize}
}

// EffectiveSize returns size when positive, the default otherwise.
func (p Paginator) EffectiveSize(size int) int {
	if size > 0 {
		return size
	}
	if p.DefaultPageSize > 0 {
		return p.DefaultPageSize
	}
	return DefaultPageSize
}

// PageCount is ceil(total/effective size), 0 for an empty source.
func (p Paginator) PageCount(total int64, size int) int {
	if total <= 0 {
		return 0
	}
	eff := int64(p.EffectiveSize(size))
	return int((total-1)/eff + 1)
}

// Offset returns the number of items preceding the requested page.
// It saturates at math.MaxInt, which is past the end of any source.
func (p Paginator) Offset(page, size int) int {
	if page < 1 {
		page = 1
	}
	eff := p.EffectiveSize(size)
	if page-1 > math.MaxInt/eff {
		return math.MaxInt
	}
	return (page - 1) * eff
}

// Window returns the bounds [start, end) of the requested page within a
// source of length n. Both bounds are clamped to n.
func (p Paginator) Window(n, page, size int) (start, end int) {
	start = p.Offset(page, size)
	if start >= n {
		return n, n
	}
	end = n
	if limit := p.EffectiveSize(size); limit < n-start {
		end = start + limit
	}
	return start, end
}

// Meta builds the paging block for a page holding returned items.
// A page number below 1 is reported as 1.
func (p Paginator) Meta(total int64, page, size, returned int) Paging {
	if page < 1 {
		page = 1
	}
	return Paging{
		PageCount:          p.PageCount(total, size),
		PageSize:           returned,
		PageMaxSize:        p.EffectiveSize(size),
		PageNumber:         page,
		TotalNumberOfItems: total,
	}
}

// Wrap builds an envelope around an already sliced page.
func Wrap[T any](p Paginator, items []T, total int64, page, size int) Envelope[T] {
	if items == nil {
		items = []T{}
	}
	return Envelope[T]{
		Items:  items,
		Paging: p.Meta(total, page, size, len(items)),
	}
}

// Page slices an ordered source and wraps the requested page.
func Page[T any](p Paginator, source []T, page, size int) Envelope[T] {
	start, end := p.Window(len(source), page, size)
	items := source[start:end]
	return Wrap(p, items, int64(len(source)), page, size)
}

// Map converts the items of an envelope while keeping its paging block.
func Map[T, U any](e Envelope[T], fn func(T) U) Envelope[U] {
	out := make([]U, 0, len(e.Items))
	for _, item := range e.Items {
		out = append(out, fn(item))
	}
	return Envelope[U]{Items: out, Paging: e.Paging}
}
